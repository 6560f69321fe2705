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

package dependency

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/mitchellh/mapstructure"
	"github.com/phayes/freeport"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	logger "github.com/modelgate/modelgate/internal/mglog"
	"github.com/modelgate/modelgate/pkg/mgpath"
)

// EnvPrefix is the prefix of the environment variables of every binary.
const EnvPrefix = "modelgate"

// InitCommandAndConfig adds the common flags and sub commands to a root
// command and loads config from the config file, env and flags before run.
func InitCommandAndConfig(cmd *cobra.Command, useConfigFile bool, config any) {
	rootName := cmd.Root().Name()
	cobra.OnInitialize(func() {
		initConfig(useConfigFile, rootName, config)
	})

	if !cmd.HasParent() {
		// Add common flags.
		flags := cmd.PersistentFlags()
		flags.Bool("console", false, "whether logger output records to the stdout")
		flags.Bool("verbose", false, "whether logger use debug level")
		flags.Int("pprof-port", 0, "listen port for pprof and statsview in verbose mode, 0 selects a free port")
		if useConfigFile {
			flags.String("config", "", fmt.Sprintf("the path of configuration file with yaml extension name, default is %s, it can also be set by env var: %s",
				filepath.Join(mgpath.DefaultConfigDir, rootName+".yaml"), strings.ToUpper(EnvPrefix+"_"+rootName+"_config")))
		}

		// Bind common flags.
		if err := viper.BindPFlags(flags); err != nil {
			panic(fmt.Errorf("bind common flags to viper: %w", err))
		}

		// Config for binding env.
		viper.SetEnvPrefix(EnvPrefix + "_" + rootName)
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		viper.AutomaticEnv()
		_ = viper.BindEnv("config")

		// Add common cmds only on root cmd.
		cmd.AddCommand(VersionCmd)
	}
}

// InitVerboseMode sets the debug level and serves pprof and statsview.
func InitVerboseMode(verbose bool, pprofPort int) {
	if !verbose {
		return
	}

	logger.SetLevel(zapcore.DebugLevel)

	// Enable go pprof and statsview.
	go func() {
		if pprofPort == 0 {
			pprofPort, _ = freeport.GetFreePort()
		}

		debugAddr := fmt.Sprintf("localhost:%d", pprofPort)
		viewer.SetConfiguration(viewer.WithAddr(debugAddr))

		logger.With("pprof", fmt.Sprintf("http://%s/debug/pprof", debugAddr),
			"statsview", fmt.Sprintf("http://%s/debug/statsview", debugAddr)).
			Infof("enable pprof at %s", debugAddr)

		if err := statsview.New().Start(); err != nil {
			logger.Warnf("serve pprof error: %v", err)
		}
	}()
}

// SetupQuitSignalHandler calls handler once on SIGINT or SIGTERM.
func SetupQuitSignalHandler(handler func()) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-signals
		logger.Infof("receive %s signal, exiting", sig.String())
		handler()
	}()
}

func initConfig(useConfigFile bool, name string, config any) {
	// Use config file and read once.
	if useConfigFile {
		cfgFile := viper.GetString("config")
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath(mgpath.DefaultConfigDir)
			viper.SetConfigName(name)
			viper.SetConfigType("yaml")
		}

		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				panic(err)
			}
		}
	}

	if err := viper.Unmarshal(config, initDecoderConfig); err != nil {
		panic(fmt.Errorf("unmarshal config to struct: %w", err))
	}
}

func initDecoderConfig(dc *mapstructure.DecoderConfig) {
	dc.TagName = "mapstructure"
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	dc.WeaklyTypedInput = true
}
