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


package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	logger "github.com/modelgate/modelgate/internal/mglog"
	"github.com/modelgate/modelgate/trainer/dataset"
)

var (
	fetchURL     string
	fetchOutput  string
	fetchTimeout time.Duration
)

var datasetCmd = &cobra.Command{
	Use:               "dataset",
	Short:             "manage the training dataset",
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
}

// datasetFetchCmd writes the breast cancer dataset in the trainer csv layout.
var datasetFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "download the breast cancer dataset",
	Long: `download the Wisconsin diagnostic breast cancer data and write it as a csv of 30 features
followed by the target column, 0 for malignant and 1 for benign.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		output := fetchOutput
		if output == "" {
			output = cfg.Dataset.Path
		}

		if output == "" {
			return errors.New("dataset fetch requires --output or dataset.path")
		}

		if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
			return err
		}

		f, err := os.CreateTemp(filepath.Dir(output), "."+filepath.Base(output)+".tmp-*")
		if err != nil {
			return err
		}
		defer os.Remove(f.Name())

		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		rows, err := dataset.Fetch(ctx, &http.Client{}, fetchURL, f)
		if err != nil {
			f.Close()
			return err
		}

		if err := f.Close(); err != nil {
			return err
		}

		if err := os.Rename(f.Name(), output); err != nil {
			return err
		}

		logger.Infof("wrote %d rows to %s", rows, output)
		return nil
	},
}

func init() {
	flags := datasetFetchCmd.Flags()
	flags.StringVar(&fetchURL, "url", dataset.WDBCURL, "the url of the wdbc data")
	flags.StringVar(&fetchOutput, "output", "", "the path of the csv written, defaults to dataset.path")
	flags.DurationVar(&fetchTimeout, "timeout", time.Minute, "the download timeout")

	datasetCmd.AddCommand(datasetFetchCmd)
	rootCmd.AddCommand(datasetCmd)
}
