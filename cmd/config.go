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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	utilsconfig "github.com/Printi/db-dump-file-anonymizer/src/utils/config"
)

const (
	CONFIG_FILE_ENV_VAR      = "DB_DUMP_ANONYMIZER_CONFIG_FILE"
	DEFAULT_CONFIG_FILE_NAME = "db-dump-anonymizer-config"
)

// ConfigFlagOverride represents a CLI flag whose value was set from the config file.
type ConfigFlagOverride struct {
	FlagName  string
	ConfigKey string
	Value     string
}

/*
initConfig loads the config file for the given command and applies it to every flag
the user did not set on the command line.

	Precedence of the config file itself: --config-file > $DB_DUMP_ANONYMIZER_CONFIG_FILE >
	~/db-dump-anonymizer-config.yaml. A missing default file is not an error.
	Unknown keys and sections are rejected before any value is applied.

	The returned overrides list the flags that took their value from the file.
*/
func initConfig(cmd *cobra.Command) ([]ConfigFlagOverride, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if os.Getenv(CONFIG_FILE_ENV_VAR) != "" {
		v.SetConfigFile(os.Getenv(CONFIG_FILE_ENV_VAR))
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(home)
		v.SetConfigName(DEFAULT_CONFIG_FILE_NAME)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	err := validateConfigFile(v)
	if err != nil {
		return nil, err
	}

	overrides, err := bindCobraFlagsToViper(cmd, v)
	if err != nil {
		return nil, fmt.Errorf("failed to bind cobra flags to viper: %w", err)
	}
	return overrides, nil
}

// validateConfigFile prints every unknown key or section and fails if there is any.
func validateConfigFile(v *viper.Viper) error {
	err := utilsconfig.ValidateConfigFile(v)
	if err == nil {
		return nil
	}
	var verr *utilsconfig.ConfigValidationError
	if !errors.As(err, &verr) {
		return err
	}
	if verr.InvalidGlobalKeys.Cardinality() > 0 {
		fmt.Fprintf(os.Stderr, "%s [%s]\n", color.RedString("Invalid global config keys:"),
			strings.Join(verr.InvalidGlobalKeys.ToSlice(), ", "))
	}
	for section, keys := range verr.InvalidSectionKeys {
		fmt.Fprintf(os.Stderr, "%s [%s]\n", color.RedString(fmt.Sprintf("Invalid keys in section '%s':", section)),
			strings.Join(keys.ToSlice(), ", "))
	}
	if verr.InvalidSections.Cardinality() > 0 {
		fmt.Fprintf(os.Stderr, "%s [%s]\n", color.RedString("Invalid sections:"),
			strings.Join(verr.InvalidSections.ToSlice(), ", "))
	}
	return fmt.Errorf("found invalid configurations in config file: %s", v.ConfigFileUsed())
}

/*
bindCobraFlagsToViper sets every flag of cmd that was not given on the command line
from the config file. The key "<command>.<flag>" wins over the global "<flag>".
*/
func bindCobraFlagsToViper(cmd *cobra.Command, v *viper.Viper) ([]ConfigFlagOverride, error) {
	var bindErr error
	var overrides []ConfigFlagOverride

	subCmdPath := strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name())
	subCmdPath = strings.TrimSpace(subCmdPath)
	configKeyPrefix := strings.ReplaceAll(subCmdPath, " ", "-")

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || f.Changed {
			return
		}
		var key string
		switch {
		case configKeyPrefix != "" && v.IsSet(configKeyPrefix+"."+f.Name):
			key = configKeyPrefix + "." + f.Name
		case v.IsSet(f.Name):
			key = f.Name
		default:
			return
		}
		val := v.GetString(key)
		err := cmd.Flags().Set(f.Name, val)
		if err != nil {
			bindErr = fmt.Errorf("config key %q: %w", key, err)
			return
		}
		overrides = append(overrides, ConfigFlagOverride{
			FlagName:  f.Name,
			ConfigKey: key,
			Value:     val,
		})
	})
	return overrides, bindErr
}
