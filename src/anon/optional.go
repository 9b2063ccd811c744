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
	"math/rand"
)

// OptionalGenerator returns the wrapped generator's value with probability weight
// and defaultValue otherwise. Weight 1 never yields the default, weight 0 always does.
type OptionalGenerator struct {
	inner        Generator
	weight       float64
	defaultValue any
	rng          *rand.Rand
	defaultsUsed int64
}

func NewOptionalGenerator(inner Generator, weight float64, defaultValue any, rng *rand.Rand) *OptionalGenerator {
	return &OptionalGenerator{
		inner:        inner,
		weight:       weight,
		defaultValue: defaultValue,
		rng:          rng,
	}
}

func (g *OptionalGenerator) Generate(original string, args []any) (any, error) {
	// Float64 is in [0,1): weight 1 always generates, weight 0 never does
	if g.rng.Float64() < g.weight {
		return g.inner.Generate(original, args)
	}
	g.defaultsUsed++
	return g.defaultValue, nil
}

func (g *OptionalGenerator) DefaultsUsed() int64 {
	return g.defaultsUsed
}
