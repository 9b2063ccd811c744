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
)

const (
	// sources of configuration errors
	CONFIG_SOURCE_MODIFICATION_SPEC = "modification spec"
	CONFIG_SOURCE_RUN_CONFIG        = "run config"
	CONFIG_SOURCE_STREAM            = "stream"
)

// ConfigError is returned for problems detected before any input is parsed:
// an invalid modification spec, bad buffer sizes, or unusable streams.
type ConfigError struct {
	Source string
	Field  string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s: %s", e.Source, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s: %s", e.Source, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func NewConfigError(source, field string, err error) *ConfigError {
	return &ConfigError{
		Source: source,
		Field:  field,
		Err:    err,
	}
}

func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// GeneratorExhaustedError is returned when a unique column cannot produce
// another value that has not already been emitted in this run.
type GeneratorExhaustedError struct {
	Table    string
	Column   int
	Attempts int
}

func (e *GeneratorExhaustedError) Error() string {
	return fmt.Sprintf("unique generator for table %q column %d exhausted after %d attempts",
		e.Table, e.Column, e.Attempts)
}

func NewGeneratorExhaustedError(table string, column int, attempts int) *GeneratorExhaustedError {
	return &GeneratorExhaustedError{
		Table:    table,
		Column:   column,
		Attempts: attempts,
	}
}

func IsGeneratorExhaustedError(err error) bool {
	var ge *GeneratorExhaustedError
	return errors.As(err, &ge)
}
