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
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	goerrors "github.com/go-errors/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const DEFAULT_LOCALE = "en_US"

var SupportedLocales = []string{"en", DEFAULT_LOCALE}

// Generator produces one replacement value per call. original is the source value
// with its quotes and escapes removed. A nil value means SQL NULL.
type Generator interface {
	Generate(original string, args []any) (any, error)
}

type GeneratorFunc func(original string, args []any) (any, error)

func (f GeneratorFunc) Generate(original string, args []any) (any, error) {
	return f(original, args)
}

// GeneratorOptions describes the generator for one (table, column) pair.
type GeneratorOptions struct {
	Format          string
	Unique          bool
	Optional        bool
	OptionalWeight  float64
	OptionalDefault any
}

/*
Faker is the value generation capability shared by every generator of a run.
All randomness (fake values, uuids, optional decisions) comes from sources seeded
with the same seed, so a run with a fixed seed is reproducible.
*/
type Faker struct {
	locale      string
	seed        int64
	fake        *gofakeit.Faker
	rng         *rand.Rand
	hasher      *HashRegistry
	uniqueStore UniqueStoreFactory
	maxAttempts int
}

type FakerConfig struct {
	Locale string
	// 0 picks a random seed, which is logged so the run can be reproduced.
	Seed              int64
	HashSalt          string
	UniqueMaxAttempts int
	UniqueStore       UniqueStoreFactory
}

func NewFaker(cfg FakerConfig) (*Faker, error) {
	locale := cfg.Locale
	if locale == "" {
		locale = DEFAULT_LOCALE
	}
	err := ValidateLocale(locale)
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	salt := cfg.HashSalt
	if salt == "" {
		salt, err = GenerateSalt(SALT_SIZE)
		if err != nil {
			return nil, fmt.Errorf("generate hash salt: %w", err)
		}
	}
	maxAttempts := cfg.UniqueMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DEFAULT_UNIQUE_MAX_ATTEMPTS
	}
	uniqueStore := cfg.UniqueStore
	if uniqueStore == nil {
		uniqueStore = NewMemoryUniqueStore
	}
	log.Infof("value generator: locale=%s seed=%d unique-max-attempts=%d", locale, seed, maxAttempts)
	return &Faker{
		locale:      locale,
		seed:        seed,
		fake:        gofakeit.New(seed),
		rng:         rand.New(rand.NewSource(seed)),
		hasher:      NewHashRegistry(salt),
		uniqueStore: uniqueStore,
		maxAttempts: maxAttempts,
	}, nil
}

func ValidateLocale(locale string) error {
	if !lo.Contains(SupportedLocales, locale) {
		return goerrors.Errorf("unsupported locale %q. Supported locales = %v", locale, SupportedLocales)
	}
	return nil
}

func (f *Faker) Seed() int64 {
	return f.seed
}

func (f *Faker) Locale() string {
	return f.locale
}

// NewGenerator builds the generator for one (table, column) pair. Unique wraps the
// format directly and optional wraps the result. A unique column may only default
// to NULL, which never collides.
func (f *Faker) NewGenerator(table string, column int, opts GeneratorOptions) (Generator, error) {
	format, ok := LookupFormat(opts.Format)
	if !ok {
		return nil, goerrors.Errorf("unknown format %q", opts.Format)
	}
	if opts.Unique && opts.Optional && opts.OptionalDefault != nil {
		return nil, goerrors.Errorf("%s.%d: unique column with non-null optional_default %v", table, column, opts.OptionalDefault)
	}
	var gen Generator = GeneratorFunc(func(original string, args []any) (any, error) {
		return format.Fn(f, original, args)
	})
	if opts.Unique {
		store, err := f.uniqueStore(table, column)
		if err != nil {
			return nil, fmt.Errorf("create unique value store for %s.%d: %w", table, column, err)
		}
		gen = NewUniqueGenerator(gen, store, f.maxAttempts, table, column)
	}
	if opts.Optional {
		gen = NewOptionalGenerator(gen, opts.OptionalWeight, opts.OptionalDefault, f.rng)
	}
	log.Infof("created generator for %s.%d: format=%s unique=%t optional=%t",
		table, column, opts.Format, opts.Unique, opts.Optional)
	return gen, nil
}
