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
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/samber/lo"

	"github.com/Printi/db-dump-file-anonymizer/src/rewriter"
)

// printSummary goes to stderr: stdout may be carrying the anonymized dump.
func printSummary(stats *rewriter.Stats) {
	fmt.Fprint(os.Stderr, renderSummary(stats))
}

func renderSummary(stats *rewriter.Stats) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("\n%s %s read, %s written in %.1fs (seed %d)\n",
		color.GreenString("Anonymized dump:"),
		humanize.IBytes(uint64(stats.BytesIn)), humanize.IBytes(uint64(stats.BytesOut)),
		stats.ElapsedSeconds, stats.Seed))

	tables := lo.Keys(stats.Tables)
	sort.Strings(tables)
	if len(tables) > 0 {
		uitable := uitable.New()
		headerfmt := color.New(color.FgGreen, color.Underline).SprintFunc()
		uitable.AddRow(headerfmt("TABLE"), headerfmt("STATEMENTS"), headerfmt("ROWS"),
			headerfmt("ROWS REWRITTEN"), headerfmt("VALUES GENERATED"), headerfmt("NULLS KEPT"))
		for _, table := range tables {
			ts := stats.Tables[table]
			uitable.AddRow(table, humanize.Comma(ts.Statements), humanize.Comma(ts.Tuples),
				humanize.Comma(ts.TuplesRewritten), humanize.Comma(ts.ValuesGenerated), humanize.Comma(ts.NullsPreserved))
		}
		uitable.AddRow("", "", "", "", "", "")
		uitable.AddRow("TOTAL", humanize.Comma(stats.Statements), humanize.Comma(stats.Tuples),
			humanize.Comma(stats.TuplesRewritten), humanize.Comma(stats.ValuesGenerated), humanize.Comma(stats.NullsPreserved))
		sb.WriteString(uitable.String())
		sb.WriteString("\n")
	} else {
		sb.WriteString("No INSERT statements of the configured tables were found.\n")
	}
	if stats.DefaultsUsed > 0 {
		sb.WriteString(fmt.Sprintf("Optional columns used their default value %s times.\n", humanize.Comma(stats.DefaultsUsed)))
	}
	return sb.String()
}
