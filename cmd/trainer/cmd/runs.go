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
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/modelgate/modelgate/trainer"
)

var (
	runsRaw   bool
	runsClear bool
)

// runsCmd shows the recorded gate runs.
var runsCmd = &cobra.Command{
	Use:               "runs",
	Short:             "show the recorded runs",
	Long:              `show the recorded trainer runs with their candidate scores and gate outcome.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := initMgpath(cfg)
		if err != nil {
			return err
		}

		t, err := trainer.New(cfg, d)
		if err != nil {
			return err
		}

		switch {
		case runsClear:
			return t.ClearRuns()
		case runsRaw:
			return t.ExportRuns(os.Stdout)
		}

		runs, err := t.Runs()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tLOGISTIC REGRESSION F1\tRANDOM FOREST F1\tSELECTED\tBASELINE F1\tOUTCOME\tVERSION\tDRY RUN")
		for _, run := range runs {
			fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%s\t%.4f\t%s\t%s\t%t\n",
				run.ID, run.CreatedAt, run.LogisticRegressionF1, run.RandomForestF1,
				run.SelectedModel, run.BaselineF1, run.Outcome, run.Version, run.DryRun)
		}

		return w.Flush()
	},
}

func init() {
	flags := runsCmd.Flags()
	flags.BoolVar(&runsRaw, "raw", false, "print the raw csv records")
	flags.BoolVar(&runsClear, "clear", false, "remove every recorded run")
	rootCmd.AddCommand(runsCmd)
}
