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
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/Printi/db-dump-file-anonymizer/src/anon"
	"github.com/Printi/db-dump-file-anonymizer/src/errs"
	"github.com/Printi/db-dump-file-anonymizer/src/modspec"
	"github.com/Printi/db-dump-file-anonymizer/src/rewriter"
	"github.com/Printi/db-dump-file-anonymizer/src/utils"
)

var validateSpecCmd = &cobra.Command{
	Use:   "validate-spec",
	Short: "Check a modification spec without reading any dump",
	Long: `Parses the modification spec, checks every table name, column position, format and
optional weight, and generates one sample value per column so bad format arguments
are reported before a long run.`,

	Run: func(cmd *cobra.Command, args []string) {
		spec, err := loadModificationSpec()
		if err != nil {
			utils.ErrExit("invalid modification spec: %w", err)
		}
		samples, err := sampleSpec(spec, locale)
		if err != nil {
			utils.ErrExit("invalid modification spec: %w", err)
		}
		fmt.Print(samples)
		fmt.Println(color.GreenString("Modification spec is valid."))
	},
}

func init() {
	rootCmd.AddCommand(validateSpecCmd)
	registerSpecFlags(validateSpecCmd)
	registerLocaleFlag(validateSpecCmd)
}

// sampleSpec builds every generator of spec and renders one value of each as a table.
func sampleSpec(spec *modspec.Spec, locale string) (string, error) {
	err := anon.ValidateLocale(locale)
	if err != nil {
		return "", errs.NewConfigError(errs.CONFIG_SOURCE_RUN_CONFIG, "locale", err)
	}
	faker, err := anon.NewFaker(anon.FakerConfig{Locale: locale})
	if err != nil {
		return "", err
	}

	uitable := uitable.New()
	uitable.MaxColWidth = 60
	headerfmt := color.New(color.FgGreen, color.Underline).SprintFunc()
	uitable.AddRow(headerfmt("TABLE"), headerfmt("COLUMN"), headerfmt("FORMAT"), headerfmt("OPTIONS"), headerfmt("SAMPLE"))

	tables := spec.Tables().ToSlice()
	sort.Strings(tables)
	for _, table := range tables {
		columns := spec.Table(table)
		positions := lo.Keys(columns)
		sort.Ints(positions)
		for _, pos := range positions {
			cs := columns[pos]
			gen, err := faker.NewGenerator(table, pos, cs.GeneratorOptions())
			if err != nil {
				return "", errs.NewConfigError(errs.CONFIG_SOURCE_MODIFICATION_SPEC,
					fmt.Sprintf("%s.%d.format", table, pos), err)
			}
			v, err := gen.Generate("", cs.Args)
			if err != nil {
				return "", errs.NewConfigError(errs.CONFIG_SOURCE_MODIFICATION_SPEC,
					fmt.Sprintf("%s.%d.args", table, pos), err)
			}
			uitable.AddRow(table, pos, cs.Format, columnOptions(cs), rewriter.Render(v, cs.Quote))
		}
	}
	return uitable.String() + "\n", nil
}

func columnOptions(cs *modspec.ColumnSpec) string {
	var opts []string
	if cs.Unique {
		opts = append(opts, "unique")
	}
	if cs.Optional {
		opts = append(opts, fmt.Sprintf("optional(%.2f, %s)", cs.OptionalWeight, rewriter.Render(cs.OptionalDefault, cs.Quote)))
	}
	if !cs.Quote {
		opts = append(opts, "unquoted")
	}
	return strings.Join(opts, " ")
}
