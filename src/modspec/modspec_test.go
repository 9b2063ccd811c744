//go:build unit

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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Printi/db-dump-file-anonymizer/src/errs"
	"github.com/Printi/db-dump-file-anonymizer/src/tokenizer"
)

func TestParseDefaults(t *testing.T) {
	spec, err := Parse([]byte(`{"users": {"2": {"format": "email"}}}`))
	require.NoError(t, err)

	cs, ok := spec.Column("users", 2)
	require.True(t, ok)
	assert.True(t, cs.Quote)
	assert.Equal(t, "email", cs.Format)
	assert.Nil(t, cs.Args)
	assert.False(t, cs.Unique)
	assert.False(t, cs.Optional)
	assert.Equal(t, DEFAULT_OPTIONAL_WEIGHT, cs.OptionalWeight)
	assert.Nil(t, cs.OptionalDefault)

	_, ok = spec.Column("users", 1)
	assert.False(t, ok)
	assert.True(t, spec.Tables().Contains("users"))
	assert.Equal(t, 1, spec.NumColumns())
	assert.Nil(t, spec.Table("orders"))
}

func TestParseAllFields(t *testing.T) {
	spec, err := Parse([]byte(`{
		"users": {
			"5": {"quote": false, "format": "number", "args": [1, "99"], "unique": true,
			      "optional": true, "optional_weight": 0.8, "optional_default": 0}
		},
		"we` + "`" + `ird": {}
	}`))
	require.NoError(t, err)
	cs, ok := spec.Column("users", 5)
	require.True(t, ok)
	assert.False(t, cs.Quote)
	assert.Equal(t, []any{float64(1), "99"}, cs.Args)
	assert.True(t, cs.Unique)
	assert.True(t, cs.Optional)
	assert.Equal(t, 0.8, cs.OptionalWeight)
	assert.Equal(t, float64(0), cs.OptionalDefault)
	assert.True(t, spec.Tables().Contains("we`ird"))

	opts := cs.GeneratorOptions()
	assert.Equal(t, "number", opts.Format)
	assert.Equal(t, 0.8, opts.OptionalWeight)
	assert.Contains(t, spec.Dump(), "number")
}

func TestInvalidSpecs(t *testing.T) {
	cases := map[string]string{
		"empty":               ``,
		"not json":            `{"users": `,
		"not an object":       `[1, 2]`,
		"table with dot":      `{"db.users": {"1": {"format": "name"}}}`,
		"table with slash":    `{"a/b": {"1": {"format": "name"}}}`,
		"empty table":         `{"": {"1": {"format": "name"}}}`,
		"column zero":         `{"users": {"0": {"format": "name"}}}`,
		"negative column":     `{"users": {"-1": {"format": "name"}}}`,
		"column not int":      `{"users": {"a": {"format": "name"}}}`,
		"duplicate column":    `{"users": {"1": {"format": "name"}, "01": {"format": "name"}}}`,
		"missing format":      `{"users": {"1": {}}}`,
		"unknown format":      `{"users": {"1": {"format": "no_such_thing"}}}`,
		"args not a list":     `{"users": {"1": {"format": "name", "args": "x"}}}`,
		"weight above one":    `{"users": {"1": {"format": "name", "optional_weight": 1.5}}}`,
		"weight below zero":   `{"users": {"1": {"format": "name", "optional_weight": -0.1}}}`,
		"unknown field":       `{"users": {"1": {"format": "name", "quoted": true}}}`,
		"quote not bool":      `{"users": {"1": {"format": "name", "quote": "yes"}}}`,
		"object default":      `{"users": {"1": {"format": "name", "optional_default": {"a": 1}}}}`,
		"column spec null":    `{"users": {"1": null}}`,
		"unique with default": `{"foo": {"1": {"format": "name", "unique": true, "optional": true, "optional_weight": 0, "optional_default": "anon"}}}`,
		"table name too long": `{"` + longName() + `": {"1": {"format": "name"}}}`,
	}
	for name, js := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(js))
			require.Error(t, err)
			assert.True(t, errs.IsConfigError(err), "got %v", err)
		})
	}
}

func longName() string {
	return strings.Repeat("t", tokenizer.MAX_TABLE_NAME_LENGTH+1)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"foo": {"1": {"quote": false, "format": "passthrough", "args": ["2"]}}}`), 0644))
	spec, err := LoadFile(path)
	require.NoError(t, err)
	cs, ok := spec.Column("foo", 1)
	require.True(t, ok)
	assert.Equal(t, []any{"2"}, cs.Args)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errs.IsConfigError(err))
}

func TestUniqueOptionalNullDefault(t *testing.T) {
	spec, err := Parse([]byte(`{"foo": {"1": {"format": "name", "unique": true, "optional": true, "optional_weight": 0.5, "optional_default": null}}}`))
	require.NoError(t, err)
	cs, ok := spec.Column("foo", 1)
	require.True(t, ok)
	assert.True(t, cs.Unique)
	assert.Nil(t, cs.OptionalDefault)

	// a default that is never chosen still counts: it is a spec mistake
	_, err = Parse([]byte(`{"foo": {"1": {"format": "name", "unique": true, "optional": true, "optional_weight": 1, "optional_default": 0}}}`))
	assert.True(t, errs.IsConfigError(err), "got %v", err)
}
