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
	"strings"
)

type ParseErrorKind int

const (
	UnexpectedToken ParseErrorKind = iota
	UnexpectedEndOfInput
)

var parseErrorKindNames = map[ParseErrorKind]string{
	UnexpectedToken:      "unexpected token",
	UnexpectedEndOfInput: "unexpected end of input",
}

func (k ParseErrorKind) String() string {
	return parseErrorKindNames[k]
}

// ParseError is raised when the dump bytes do not match the grammar at the cursor.
// Offset is the absolute byte offset in the input stream.
type ParseError struct {
	Kind     ParseErrorKind
	Offset   int64
	Context  string
	Expected string
	Actual   string
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s at offset %d", e.Kind, e.Offset))
	if e.Context != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", e.Context))
	}
	if e.Expected != "" {
		sb.WriteString(fmt.Sprintf(": expected %s", e.Expected))
	}
	if e.Kind == UnexpectedToken {
		sb.WriteString(fmt.Sprintf(", got %q", e.Actual))
	}
	return sb.String()
}

func NewUnexpectedTokenError(offset int64, context, expected string, actual []byte) *ParseError {
	return &ParseError{
		Kind:     UnexpectedToken,
		Offset:   offset,
		Context:  context,
		Expected: expected,
		Actual:   string(actual),
	}
}

func NewUnexpectedEndOfInputError(offset int64, context, expected string) *ParseError {
	return &ParseError{
		Kind:     UnexpectedEndOfInput,
		Offset:   offset,
		Context:  context,
		Expected: expected,
	}
}

func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsParseErrorOfKind reports whether err wraps a ParseError of the given kind.
func IsParseErrorOfKind(err error, kind ParseErrorKind) bool {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Kind == kind
}
