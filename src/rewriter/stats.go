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
package rewriter

type TableStats struct {
	Statements      int64 `json:"statements"`
	Tuples          int64 `json:"tuples"`
	TuplesRewritten int64 `json:"tuples_rewritten"`
	ValuesGenerated int64 `json:"values_generated"`
	NullsPreserved  int64 `json:"nulls_preserved"`
}

// Stats describes one anonymization run. Totals are the sums over Tables.
type Stats struct {
	TableStats
	BytesIn        int64                  `json:"bytes_in"`
	BytesOut       int64                  `json:"bytes_out"`
	Chunks         int64                  `json:"chunks"`
	DefaultsUsed   int64                  `json:"defaults_used"`
	Generators     int                    `json:"generators"`
	ElapsedSeconds float64                `json:"elapsed_seconds"`
	Seed           int64                  `json:"seed,omitempty"`
	Tables         map[string]*TableStats `json:"tables"`
}

func NewStats() *Stats {
	return &Stats{Tables: make(map[string]*TableStats)}
}

func (s *Stats) table(name string) *TableStats {
	ts, ok := s.Tables[name]
	if !ok {
		ts = &TableStats{}
		s.Tables[name] = ts
	}
	return ts
}

func (s *Stats) statementStarted(table string) {
	s.Statements++
	s.table(table).Statements++
}

func (s *Stats) tuple(table string) {
	s.Tuples++
	s.table(table).Tuples++
}

func (s *Stats) tupleRewritten(table string) {
	s.TuplesRewritten++
	s.table(table).TuplesRewritten++
}

func (s *Stats) valueGenerated(table string) {
	s.ValuesGenerated++
	s.table(table).ValuesGenerated++
}

func (s *Stats) nullPreserved(table string) {
	s.NullsPreserved++
	s.table(table).NullsPreserved++
}
