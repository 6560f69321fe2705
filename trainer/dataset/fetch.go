/*
 *     Copyright 2026 The Modelgate Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */


package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-http-utils/headers"

	"github.com/modelgate/modelgate/internal/mgerrors"
)

// WDBCURL is the UCI Wisconsin diagnostic breast cancer data.
const WDBCURL = "https://archive.ics.uci.edu/ml/machine-learning-databases/breast-cancer-wisconsin/wdbc.data"

// TargetColumn is the header of the label column written by ConvertWDBC.
const TargetColumn = "target"

// WDBCFeatureNames are the 30 features of a WDBC row, in file order.
var WDBCFeatureNames = func() []string {
	measures := []string{
		"radius", "texture", "perimeter", "area", "smoothness",
		"compactness", "concavity", "concave_points", "symmetry", "fractal_dimension",
	}

	names := make([]string, 0, 3*len(measures))
	for _, prefix := range []string{"mean_%s", "%s_error", "worst_%s"} {
		for _, m := range measures {
			names = append(names, fmt.Sprintf(prefix, m))
		}
	}

	return names
}()

// Fetch downloads WDBC data from url and writes it to w as ConvertWDBC does.
// It returns the number of rows written.
func Fetch(ctx context.Context, client *http.Client, url string, w io.Writer) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, mgerrors.Wrap(mgerrors.CodeConfiguration, err, "fetch dataset")
	}
	req.Header.Set(headers.Accept, "text/plain, text/csv")

	resp, err := client.Do(req)
	if err != nil {
		return 0, mgerrors.ExternalLibrary(err, "fetch dataset")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, mgerrors.ExternalLibrary(fmt.Errorf("unexpected status %s", resp.Status), "fetch dataset")
	}

	return ConvertWDBC(resp.Body, w)
}

// ConvertWDBC rewrites rows of id, diagnosis and 30 features into a headed
// csv of the features followed by the target, 0 for malignant and 1 for
// benign.
func ConvertWDBC(r io.Reader, w io.Writer) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	writer := csv.NewWriter(w)

	if err := writer.Write(append(append([]string{}, WDBCFeatureNames...), TargetColumn)); err != nil {
		return 0, err
	}

	rows := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return rows, mgerrors.Wrap(mgerrors.CodeData, err, "read wdbc")
		}

		if len(row) != len(WDBCFeatureNames)+2 {
			return rows, mgerrors.Data("wdbc row %d has %d columns, expected %d", rows+1, len(row), len(WDBCFeatureNames)+2)
		}

		var target string
		switch strings.TrimSpace(row[1]) {
		case "M":
			target = "0"
		case "B":
			target = "1"
		default:
			return rows, mgerrors.Data("wdbc row %d has unknown diagnosis %q", rows+1, row[1])
		}

		out := make([]string, 0, len(WDBCFeatureNames)+1)
		for _, v := range row[2:] {
			v = strings.TrimSpace(v)
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				return rows, mgerrors.Data("wdbc row %d has invalid feature %q", rows+1, v)
			}
			out = append(out, v)
		}

		if err := writer.Write(append(out, target)); err != nil {
			return rows, err
		}
		rows++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return rows, err
	}

	if rows == 0 {
		return 0, mgerrors.Data("wdbc data is empty")
	}

	return rows, nil
}
