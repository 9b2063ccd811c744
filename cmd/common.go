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
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Printi/db-dump-file-anonymizer/src/config"
	"github.com/Printi/db-dump-file-anonymizer/src/errs"
	"github.com/Printi/db-dump-file-anonymizer/src/modspec"
	"github.com/Printi/db-dump-file-anonymizer/src/utils"
)

var (
	specFile   string
	specInline string
	locale     string
)

func registerSpecFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&specFile, "spec-file", "",
		"path to the JSON modification spec")
	cmd.Flags().StringVar(&specInline, "spec", "",
		"the JSON modification spec given inline")
	cmd.MarkFlagsMutuallyExclusive("spec-file", "spec")
}

func registerLocaleFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&locale, "locale", "en_US",
		"locale of the generated values (supported: en, en_US)")
}

// loadModificationSpec reads the modification spec from --spec-file or --spec; exactly one must be set.
func loadModificationSpec() (*modspec.Spec, error) {
	var spec *modspec.Spec
	var err error
	switch {
	case specFile != "" && specInline != "":
		return nil, errs.NewConfigError(errs.CONFIG_SOURCE_RUN_CONFIG, "spec",
			fmt.Errorf("only one of --spec-file and --spec can be given"))
	case specFile != "":
		path, err := utils.AbsPath(specFile)
		if err != nil {
			return nil, err
		}
		spec, err = modspec.LoadFile(path)
		if err != nil {
			return nil, err
		}
	case specInline != "":
		spec, err = modspec.Parse([]byte(specInline))
		if err != nil {
			return nil, err
		}
	default:
		return nil, errs.NewConfigError(errs.CONFIG_SOURCE_RUN_CONFIG, "spec",
			fmt.Errorf("one of --spec-file and --spec is required"))
	}
	log.Infof("modification spec: %d tables, %d columns", spec.Tables().Cardinality(), spec.NumColumns())
	if config.IsLogLevelDebugOrBelow() {
		log.Debugf("modification spec:\n%s", spec.Dump())
	}
	return spec, nil
}
