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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/modelgate/modelgate/cmd/dependency"
	logger "github.com/modelgate/modelgate/internal/mglog"
	"github.com/modelgate/modelgate/pkg/mgpath"
	"github.com/modelgate/modelgate/trainer"
	"github.com/modelgate/modelgate/trainer/config"
	"github.com/modelgate/modelgate/version"
)

var (
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "trainer",
	Short: "the trainer of modelgate",
	Long: `Trainer is a batch job, it trains the logistic regression and random forest candidates on the dataset,
compares them by F1 score and promotes the winner to production when it is at least as good as the current production model.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Validate config.
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Initialize mgpath.
		d, err := initMgpath(cfg)
		if err != nil {
			return err
		}

		// Initialize logger.
		if err := logger.InitTrainer(cfg.Verbose, cfg.Console, d.LogDir(), logger.LogRotateConfig{
			MaxSize:    cfg.Log.MaxSize,
			MaxAge:     cfg.Log.MaxAge,
			MaxBackups: cfg.Log.MaxBackups,
		}); err != nil {
			return fmt.Errorf("init trainer logger: %w", err)
		}

		return runTrainer(ctx, cancel, d)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	// Initialize default trainer config.
	cfg = config.New()

	// Initialize command and config.
	dependency.InitCommandAndConfig(rootCmd, true, cfg)

	flags := rootCmd.Flags()
	flags.String("dataset", "", "the path of the csv dataset")
	flags.Bool("dry-run", false, "evaluate and decide without writing the registry or the artifact")
	if err := viper.BindPFlag("dataset.path", flags.Lookup("dataset")); err != nil {
		panic(err)
	}

	if err := viper.BindPFlag("gate.dryRun", flags.Lookup("dry-run")); err != nil {
		panic(err)
	}
}

func initMgpath(cfg *config.Config) (mgpath.Mgpath, error) {
	var options []mgpath.Option
	if cfg.Storage.WorkHome != "" {
		options = append(options, mgpath.WithWorkHome(cfg.Storage.WorkHome))
	}

	if cfg.Log.Dir != "" {
		options = append(options, mgpath.WithLogDir(cfg.Log.Dir))
	}

	if cfg.Storage.DataDir != "" {
		options = append(options, mgpath.WithDataDir(cfg.Storage.DataDir))
	}

	if cfg.Storage.RegistryPath != "" {
		options = append(options, mgpath.WithRegistryPath(cfg.Storage.RegistryPath))
	}

	if cfg.Storage.ArtifactPath != "" {
		options = append(options, mgpath.WithArtifactPath(cfg.Storage.ArtifactPath))
	}

	return mgpath.New(options...)
}

func runTrainer(ctx context.Context, cancel context.CancelFunc, d mgpath.Mgpath) error {
	logger.Infof("version:\n%s", version.Version())
	dependency.InitVerboseMode(cfg.Verbose, cfg.PProfPort)

	t, err := trainer.New(cfg, d)
	if err != nil {
		return err
	}

	dependency.SetupQuitSignalHandler(cancel)
	decision, err := t.Run(ctx)
	if err != nil {
		return err
	}

	logger.Infof("run finished, approved: %t", decision.Approved)
	return nil
}
