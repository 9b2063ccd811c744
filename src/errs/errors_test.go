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
package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorMessage(t *testing.T) {
	err := NewUnexpectedTokenError(42, "after tuple", "',' or ';'", []byte("x"))
	assert.Equal(t, `unexpected token at offset 42 (after tuple): expected ',' or ';', got "x"`, err.Error())

	err = NewUnexpectedEndOfInputError(7, "value", "number, string, or NULL")
	assert.Equal(t, "unexpected end of input at offset 7 (value): expected number, string, or NULL", err.Error())
}

func TestErrorKindsThroughWrapping(t *testing.T) {
	parseErr := fmt.Errorf("tokenize %q: %w", "dump.sql", NewUnexpectedEndOfInputError(1, "", ""))
	assert.True(t, IsParseError(parseErr))
	assert.True(t, IsParseErrorOfKind(parseErr, UnexpectedEndOfInput))
	assert.False(t, IsParseErrorOfKind(parseErr, UnexpectedToken))
	assert.False(t, IsConfigError(parseErr))

	inner := errors.New("must be >= 1")
	configErr := fmt.Errorf("load: %w", NewConfigError(CONFIG_SOURCE_MODIFICATION_SPEC, "foo.0", inner))
	assert.True(t, IsConfigError(configErr))
	assert.ErrorIs(t, configErr, inner)
	assert.False(t, IsParseError(configErr))
	assert.Equal(t, "load: invalid modification spec: foo.0: must be >= 1", configErr.Error())

	exhausted := NewGeneratorExhaustedError("users", 3, 1000)
	assert.True(t, IsGeneratorExhaustedError(fmt.Errorf("x: %w", exhausted)))
}
