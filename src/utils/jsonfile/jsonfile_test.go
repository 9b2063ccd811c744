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
package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonFile(t *testing.T) {
	type Stats struct {
		Tuples  int64            `json:"tuples"`
		ByTable map[string]int64 `json:"by_table"`
	}
	jf := NewJsonFile[Stats](filepath.Join(t.TempDir(), "stats.json"))

	stats, err := jf.Read()
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, stats)

	err = jf.Create(&Stats{Tuples: 3, ByTable: map[string]int64{"foo": 3}})
	require.NoError(t, err)
	stats, err = jf.Read()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Tuples)
	assert.Equal(t, int64(3), stats.ByTable["foo"])

	err = jf.Create(&Stats{Tuples: 5})
	require.NoError(t, err)
	stats, err = jf.Read()
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Tuples)
	assert.Nil(t, stats.ByTable)

	entries, err := os.ReadDir(filepath.Dir(jf.FilePath))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	require.NoError(t, jf.Delete())
	_, err = jf.Read()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUnmarshalEmpty(t *testing.T) {
	_, err := Unmarshal[map[string]any](nil, "--spec")
	assert.ErrorContains(t, err, "--spec is empty")
}
