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
package modspec

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/davecgh/go-spew/spew"
	mapset "github.com/deckarep/golang-set/v2"
	goerrors "github.com/go-errors/errors"
	"github.com/goccy/go-json"
	"github.com/samber/lo"

	"github.com/Printi/db-dump-file-anonymizer/src/anon"
	"github.com/Printi/db-dump-file-anonymizer/src/errs"
)

const DEFAULT_OPTIONAL_WEIGHT = 0.5

// ColumnSpec is the anonymization rule for one column of one table.
type ColumnSpec struct {
	Quote           bool
	Format          string
	Args            []any
	Unique          bool
	Optional        bool
	OptionalWeight  float64
	OptionalDefault any
}

func (c *ColumnSpec) GeneratorOptions() anon.GeneratorOptions {
	return anon.GeneratorOptions{
		Format:          c.Format,
		Unique:          c.Unique,
		Optional:        c.Optional,
		OptionalWeight:  c.OptionalWeight,
		OptionalDefault: c.OptionalDefault,
	}
}

/*
Spec is the validated modification spec: table name -> 1-based column position -> rule.
JSON form:

	{
	  "users": {
	    "2": {"format": "email", "unique": true},
	    "5": {"format": "number", "args": [1, 99], "quote": false,
	          "optional": true, "optional_weight": 0.8, "optional_default": null}
	  }
	}

quote defaults to true and optional_weight to 0.5.
*/
type Spec struct {
	tables map[string]map[int]*ColumnSpec
}

type jsonColumnSpec struct {
	Quote           *bool           `json:"quote"`
	Format          string          `json:"format"`
	Args            json.RawMessage `json:"args"`
	Unique          bool            `json:"unique"`
	Optional        bool            `json:"optional"`
	OptionalWeight  *float64        `json:"optional_weight"`
	OptionalDefault any             `json:"optional_default"`
}

type jsonSpec map[string]map[string]*jsonColumnSpec

func LoadFile(path string) (*Spec, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.NewConfigError(errs.CONFIG_SOURCE_MODIFICATION_SPEC, "",
			fmt.Errorf("read spec file: %w", err))
	}
	return Parse(bs)
}

func Parse(bs []byte) (*Spec, error) {
	if len(bytes.TrimSpace(bs)) == 0 {
		return nil, errs.NewConfigError(errs.CONFIG_SOURCE_MODIFICATION_SPEC, "", goerrors.Errorf("spec is empty"))
	}
	var raw jsonSpec
	dec := json.NewDecoder(bytes.NewReader(bs))
	dec.DisallowUnknownFields()
	err := dec.Decode(&raw)
	if err != nil {
		return nil, errs.NewConfigError(errs.CONFIG_SOURCE_MODIFICATION_SPEC, "",
			fmt.Errorf("parse spec json: %w", err))
	}
	return build(raw)
}

func build(raw jsonSpec) (*Spec, error) {
	spec := &Spec{tables: make(map[string]map[int]*ColumnSpec, len(raw))}
	tableNames := lo.Keys(raw)
	sort.Strings(tableNames)
	for _, table := range tableNames {
		err := validateTableName(table)
		if err != nil {
			return nil, errs.NewConfigError(errs.CONFIG_SOURCE_MODIFICATION_SPEC, table, err)
		}
		columns := make(map[int]*ColumnSpec, len(raw[table]))
		keys := lo.Keys(raw[table])
		sort.Strings(keys)
		for _, key := range keys {
			field := table + "." + key
			column, err := parseColumnPosition(key)
			if err != nil {
				return nil, errs.NewConfigError(errs.CONFIG_SOURCE_MODIFICATION_SPEC, field, err)
			}
			if _, dup := columns[column]; dup {
				return nil, errs.NewConfigError(errs.CONFIG_SOURCE_MODIFICATION_SPEC, field,
					goerrors.Errorf("column %d is specified more than once", column))
			}
			cs, err := buildColumnSpec(field, raw[table][key])
			if err != nil {
				return nil, err
			}
			columns[column] = cs
		}
		spec.tables[table] = columns
	}
	return spec, nil
}

func buildColumnSpec(field string, raw *jsonColumnSpec) (*ColumnSpec, error) {
	if raw == nil {
		return nil, errs.NewConfigError(errs.CONFIG_SOURCE_MODIFICATION_SPEC, field,
			goerrors.Errorf("column spec must be an object"))
	}
	cs := &ColumnSpec{
		Quote:           true,
		Format:          raw.Format,
		Unique:          raw.Unique,
		Optional:        raw.Optional,
		OptionalWeight:  DEFAULT_OPTIONAL_WEIGHT,
		OptionalDefault: raw.OptionalDefault,
	}
	if raw.Quote != nil {
		cs.Quote = *raw.Quote
	}
	if raw.OptionalWeight != nil {
		cs.OptionalWeight = *raw.OptionalWeight
	}
	args, err := parseArgs(raw.Args)
	if err != nil {
		return nil, errs.NewConfigError(errs.CONFIG_SOURCE_MODIFICATION_SPEC, field+".args", err)
	}
	cs.Args = args
	err = validateColumnSpec(field, cs)
	if err != nil {
		return nil, err
	}
	return cs, nil
}

func parseArgs(raw json.RawMessage) ([]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '[' {
		return nil, goerrors.Errorf("args must be a list, got %s", trimmed)
	}
	var args []any
	err := json.Unmarshal(trimmed, &args)
	if err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}
	return args, nil
}

func (s *Spec) Tables() mapset.Set[string] {
	return mapset.NewThreadUnsafeSet(lo.Keys(s.tables)...)
}

// Table returns the column rules of table, or nil if the table is not targeted.
func (s *Spec) Table(table string) map[int]*ColumnSpec {
	return s.tables[table]
}

func (s *Spec) Column(table string, column int) (*ColumnSpec, bool) {
	cs, ok := s.tables[table][column]
	return cs, ok
}

func (s *Spec) NumColumns() int {
	n := 0
	for _, columns := range s.tables {
		n += len(columns)
	}
	return n
}

func (s *Spec) Dump() string {
	return spew.Sdump(s.tables)
}
