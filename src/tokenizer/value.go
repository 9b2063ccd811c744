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
package tokenizer

import (
	"fmt"

	"github.com/Printi/db-dump-file-anonymizer/src/datafile"
	"github.com/Printi/db-dump-file-anonymizer/src/errs"
)

const EXPECTED_VALUE = "number, string, or NULL"

var numberChars = datafile.NewCharSet("0123456789.eE-")

// parseValue reads one literal at the cursor. Numbers are not validated beyond
// their character class; a malformed number surfaces as an error on the byte after it.
func (t *Tokenizer) parseValue() (Value, error) {
	b, err := t.r.PeekExact(1, "value", EXPECTED_VALUE)
	if err != nil {
		return Value{}, err
	}
	c := b[0]
	switch {
	case isDigit(c) || c == '-':
		raw, err := t.r.ConsumeWhile(numberChars, 1, "number")
		if err != nil {
			return Value{}, err
		}
		return Value{Type: NUMBER, Raw: clone(raw)}, nil
	case c == '\'' || c == '"':
		return t.parseString(c)
	}

	b, err = t.r.Peek(4)
	if err != nil {
		return Value{}, err
	}
	if len(b) == 4 && datafile.EqualFold(b, "NULL") {
		return Value{Type: NULL, Raw: clone(t.r.Skip(4))}, nil
	}
	return Value{}, errs.NewUnexpectedTokenError(t.r.Offset(), "value", EXPECTED_VALUE, b)
}

// parseString reads a quoted literal. A backslash escapes exactly one following
// byte, so \' \" and \\ never close the string.
func (t *Tokenizer) parseString(delim byte) (Value, error) {
	start := t.r.Offset()
	raw := clone(t.r.Skip(1))
	escaped := false
	body, hitEnd, err := t.r.ConsumeFunc(func(c byte) bool {
		if escaped {
			escaped = false
			return true
		}
		if c == '\\' {
			escaped = true
			return true
		}
		return c != delim
	})
	if err != nil {
		return Value{}, err
	}
	raw = append(raw, body...)
	if hitEnd {
		return Value{}, errs.NewUnexpectedEndOfInputError(t.r.Offset(),
			fmt.Sprintf("string literal starting at offset %d", start), fmt.Sprintf("closing %q", delim))
	}
	raw = append(raw, t.r.Skip(1)...)
	return Value{Type: STRING, Raw: raw}, nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
