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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/modelgate/modelgate/cmd/dependency"
	logger "github.com/modelgate/modelgate/internal/mglog"
	"github.com/modelgate/modelgate/pkg/mgpath"
	"github.com/modelgate/modelgate/server"
	"github.com/modelgate/modelgate/server/config"
	"github.com/modelgate/modelgate/version"
)

var (
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "the model server of modelgate",
	Long: `Server loads the production model artifact promoted by the trainer and serves
predictions over http. The artifact is loaded once at start-up, a missing or malformed artifact is fatal.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Validate config.
		if err := cfg.Validate(); err != nil {
			return err
		}

		// Initialize mgpath.
		d, err := initMgpath(cfg)
		if err != nil {
			return err
		}

		// Initialize logger.
		if err := logger.InitServer(cfg.Verbose, cfg.Console, d.LogDir(), logger.LogRotateConfig{
			MaxSize:    cfg.Log.MaxSize,
			MaxAge:     cfg.Log.MaxAge,
			MaxBackups: cfg.Log.MaxBackups,
		}); err != nil {
			return fmt.Errorf("init server logger: %w", err)
		}

		return runServer(d)
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
	// Initialize default server config.
	cfg = config.New()

	// Initialize command and config.
	dependency.InitCommandAndConfig(rootCmd, true, cfg)

	flags := rootCmd.Flags()
	flags.String("addr", config.DefaultServerAddr, "the listen address of the server")
	flags.String("artifact", "", "the path of the production model artifact")
	if err := viper.BindPFlag("server.addr", flags.Lookup("addr")); err != nil {
		panic(err)
	}

	if err := viper.BindPFlag("storage.artifactPath", flags.Lookup("artifact")); err != nil {
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

	if cfg.Storage.ArtifactPath != "" {
		options = append(options, mgpath.WithArtifactPath(cfg.Storage.ArtifactPath))
	}

	return mgpath.New(options...)
}

func runServer(d mgpath.Mgpath) error {
	logger.Infof("version:\n%s", version.Version())
	dependency.InitVerboseMode(cfg.Verbose, cfg.PProfPort)

	shutdown, err := dependency.InitTracer(cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer shutdown()

	svr, err := server.New(cfg, d)
	if err != nil {
		return err
	}

	dependency.SetupQuitSignalHandler(svr.Stop)
	return svr.Serve()
}
