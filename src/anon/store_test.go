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
package anon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqliteUniqueStore(t *testing.T) {
	dir := t.TempDir()
	stores, err := NewSqliteUniqueStores(dir)
	require.NoError(t, err)
	defer stores.Close()

	factory := stores.Factory()
	s1, err := factory("foo", 1)
	require.NoError(t, err)
	s2, err := factory("foo", 2)
	require.NoError(t, err)

	added, err := s1.Add("a")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s1.Add("a")
	require.NoError(t, err)
	assert.False(t, added)

	// history is per column
	added, err = s2.Add("a")
	require.NoError(t, err)
	assert.True(t, added)

	assert.Equal(t, 1, s1.Len())
	assert.Equal(t, 1, s2.Len())
}

func TestSqliteUniqueStoreStartsFresh(t *testing.T) {
	dir := t.TempDir()
	stores, err := NewSqliteUniqueStores(dir)
	require.NoError(t, err)
	s, err := stores.Factory()("foo", 1)
	require.NoError(t, err)
	_, err = s.Add("a")
	require.NoError(t, err)
	require.NoError(t, stores.Close())

	stores, err = NewSqliteUniqueStores(dir)
	require.NoError(t, err)
	defer stores.Close()
	s, err = stores.Factory()("foo", 1)
	require.NoError(t, err)
	added, err := s.Add("a")
	require.NoError(t, err)
	assert.True(t, added)
}

func TestUniqueGeneratorWithSqliteStore(t *testing.T) {
	stores, err := NewSqliteUniqueStores(t.TempDir())
	require.NoError(t, err)
	defer stores.Close()

	f, err := NewFaker(FakerConfig{Seed: 11, UniqueStore: stores.Factory()})
	require.NoError(t, err)
	gen, err := f.NewGenerator("foo", 1, GeneratorOptions{Format: "number", Unique: true})
	require.NoError(t, err)

	seen := map[any]bool{}
	for i := 0; i < 100; i++ {
		v, err := gen.Generate("", []any{float64(0), float64(150)})
		require.NoError(t, err)
		assert.False(t, seen[v])
		seen[v] = true
	}
}

func TestMemoryUniqueStore(t *testing.T) {
	s, err := NewMemoryUniqueStore("foo", 1)
	require.NoError(t, err)
	added, _ := s.Add("x")
	assert.True(t, added)
	added, _ = s.Add("x")
	assert.False(t, added)
	assert.Equal(t, 1, s.Len())
}
