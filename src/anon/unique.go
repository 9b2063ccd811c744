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
	mapset "github.com/deckarep/golang-set/v2"
	log "github.com/sirupsen/logrus"

	"github.com/Printi/db-dump-file-anonymizer/src/errs"
)

const DEFAULT_UNIQUE_MAX_ATTEMPTS = 1000

// UniqueStore remembers every value emitted for one (table, column) pair.
// Memory use grows with the number of distinct values seen; there is no eviction
// because forgetting a value would allow it to be emitted again.
type UniqueStore interface {
	// Add records value and reports whether it had not been recorded before.
	Add(value string) (bool, error)
	Len() int
}

type UniqueStoreFactory func(table string, column int) (UniqueStore, error)

type MemoryUniqueStore struct {
	seen mapset.Set[string]
}

func NewMemoryUniqueStore(table string, column int) (UniqueStore, error) {
	return &MemoryUniqueStore{seen: mapset.NewThreadUnsafeSet[string]()}, nil
}

func (s *MemoryUniqueStore) Add(value string) (bool, error) {
	return s.seen.Add(value), nil
}

func (s *MemoryUniqueStore) Len() int {
	return s.seen.Cardinality()
}

// UniqueGenerator retries the wrapped generator until it yields a value not seen
// before in this run, giving up after maxAttempts.
type UniqueGenerator struct {
	inner       Generator
	store       UniqueStore
	maxAttempts int
	table       string
	column      int
}

func NewUniqueGenerator(inner Generator, store UniqueStore, maxAttempts int, table string, column int) *UniqueGenerator {
	return &UniqueGenerator{
		inner:       inner,
		store:       store,
		maxAttempts: maxAttempts,
		table:       table,
		column:      column,
	}
}

func (g *UniqueGenerator) Generate(original string, args []any) (any, error) {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		value, err := g.inner.Generate(original, args)
		if err != nil {
			return nil, err
		}
		// NULL is not a value, it never collides
		if value == nil {
			return nil, nil
		}
		added, err := g.store.Add(ValueToString(value))
		if err != nil {
			return nil, err
		}
		if added {
			if attempt > 1 {
				log.Debugf("unique value for %s.%d found after %d attempts", g.table, g.column, attempt)
			}
			return value, nil
		}
	}
	return nil, errs.NewGeneratorExhaustedError(g.table, g.column, g.maxAttempts)
}
