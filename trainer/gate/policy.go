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

package gate

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/modelgate/modelgate/internal/mgerrors"
	"github.com/modelgate/modelgate/trainer/models"
)

// TiePreference names the candidate selected when the top metrics are equal.
type TiePreference string

const (
	// PreferRandomForest selects the random forest on equal metrics.
	PreferRandomForest TiePreference = models.RandomForestName

	// PreferLogisticRegression selects the logistic regression on equal metrics.
	PreferLogisticRegression TiePreference = models.LogisticRegressionName

	// DefaultTiePreference is the tie preference of a new gate.
	DefaultTiePreference = PreferRandomForest
)

// initialVersion is the tag given when the current tag is not v<digits>.
const initialVersion = "v2"

var versionRegexp = regexp.MustCompile(`^v(\d+)$`)

// ParseTiePreference returns the tie preference named s.
func ParseTiePreference(s string) (TiePreference, error) {
	switch TiePreference(s) {
	case PreferRandomForest, PreferLogisticRegression:
		return TiePreference(s), nil
	default:
		return "", mgerrors.Configuration("unknown tie preference %q", s)
	}
}

// ValidateMetric returns a DataError unless v is a finite value in [0,1].
func ValidateMetric(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return mgerrors.Data("metric of %s is not finite: %v", name, v)
	}

	if v < 0 || v > 1 {
		return mgerrors.Data("metric of %s is out of range [0,1]: %v", name, v)
	}

	return nil
}

// Select returns the candidate with the highest metric. Among equal top
// metrics the preferred candidate wins, otherwise the smallest model name.
func Select(candidates []Candidate, preference TiePreference) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, mgerrors.Data("no candidates to select from")
	}

	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.ModelName]; ok {
			return Candidate{}, mgerrors.Data("duplicate candidate %s", c.ModelName)
		}
		seen[c.ModelName] = struct{}{}
	}

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.F1Score != b.F1Score {
			return a.F1Score > b.F1Score
		}

		if a.ModelName == string(preference) || b.ModelName == string(preference) {
			return a.ModelName == string(preference)
		}

		return a.ModelName < b.ModelName
	})

	return sorted[0], nil
}

// ShouldPromote reports whether a candidate scoring v replaces a production
// model scoring baseline. Equal scores promote.
func ShouldPromote(v, baseline float64) bool {
	return v >= baseline
}

// NextVersion returns v<N+1> for a current tag v<N>, and v2 for any other tag.
func NextVersion(current string) string {
	matches := versionRegexp.FindStringSubmatch(current)
	if matches == nil {
		return initialVersion
	}

	n, err := strconv.ParseUint(matches[1], 10, 63)
	if err != nil {
		return initialVersion
	}

	return fmt.Sprintf("v%d", n+1)
}
