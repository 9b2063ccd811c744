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

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/Printi/db-dump-file-anonymizer/src/anon"
)

var listFormatsCmd = &cobra.Command{
	Use:   "list-formats",
	Short: "List the value formats a modification spec can use",

	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(renderFormats())
	},
}

func renderFormats() string {
	uitable := uitable.New()
	uitable.MaxColWidth = 70
	uitable.Wrap = true
	headerfmt := color.New(color.FgGreen, color.Underline).SprintFunc()
	uitable.AddRow(headerfmt("FORMAT"), headerfmt("ARGS"), headerfmt("DESCRIPTION"))
	for _, name := range anon.FormatNames() {
		format, _ := anon.LookupFormat(name)
		uitable.AddRow(format.Name, format.Args, format.Description)
	}
	return uitable.String()
}

func init() {
	rootCmd.AddCommand(listFormatsCmd)
}
