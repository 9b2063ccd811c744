/*
Copyright (c) YugabyteDB, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Printi/db-dump-file-anonymizer/src/config"
	"github.com/Printi/db-dump-file-anonymizer/src/utils"
)

var (
	cfgFile string
	logDir  string
)

// commands that never touch a dump and log nowhere
var quietCommands = []string{"version", "list-formats"}

var rootCmd = &cobra.Command{
	Use:   "db-dump-anonymizer",
	Short: "Replace sensitive column values in MySQL dump files with generated fake data",
	Long: `A streaming rewriter for mysqldump-style SQL dumps. Column values of the configured
tables are replaced with fake values produced by the configured formats; every other
byte of the dump is copied through unchanged.`,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		overrides, err := initConfig(cmd)
		if err != nil {
			utils.ErrExit("failed to initialize config: %w", err)
		}
		err = config.ValidateLogLevel()
		if err != nil {
			utils.ErrExit("%w", err)
		}
		InitLogging(logDir, lo.Contains(quietCommands, cmd.Name()), cmd.Name())
		for _, o := range overrides {
			log.Infof("flag %q set from config key %q: %s", o.FlagName, o.ConfigKey, redactValue(o.FlagName, o.Value))
		}
	},

	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config-file", "c", "",
		"path to a yaml config file (default $"+CONFIG_FILE_ENV_VAR+" or ~/"+DEFAULT_CONFIG_FILE_NAME+".yaml)")
	rootCmd.PersistentFlags().StringVarP(&config.LogLevel, "log-level", "l", config.DEFAULT_LOG_LEVEL,
		"log level: trace, debug, info, warn, error, fatal, panic")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "",
		"directory for the rotated log file (default: log to stderr)")
}
