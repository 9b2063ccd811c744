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
	"bytes"
	"fmt"
)

type TokenType int

const (
	CHUNK TokenType = iota
	INSERT_START
	INSERT_TUPLE
	TUPLE_SEPARATOR
	INSERT_END
)

var tokenTypeNames = map[TokenType]string{
	CHUNK:           "Chunk",
	INSERT_START:    "InsertStart",
	INSERT_TUPLE:    "InsertTuple",
	TUPLE_SEPARATOR: "TupleSeparator",
	INSERT_END:      "InsertEnd",
}

func (t TokenType) String() string {
	name, ok := tokenTypeNames[t]
	if !ok {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return name
}

// Token is one piece of the dump. Concatenating Raw() of every token yields the input.
type Token interface {
	Type() TokenType
	Raw() []byte
}

// Chunk is dump text outside any recognised INSERT statement.
type Chunk struct {
	raw []byte
}

func (c *Chunk) Type() TokenType { return CHUNK }
func (c *Chunk) Raw() []byte     { return c.raw }

// InsertStart covers "INSERT INTO `table` VALUES " including surrounding whitespace.
type InsertStart struct {
	raw   []byte
	Table string
}

func (s *InsertStart) Type() TokenType { return INSERT_START }
func (s *InsertStart) Raw() []byte     { return s.raw }

// InsertTuple is one parenthesised row. Values[i] is column i+1.
// Prefix and Suffix are the whitespace outside the parentheses, which are part of Raw.
type InsertTuple struct {
	raw    []byte
	Values []Value
	Prefix []byte
	Suffix []byte
}

func (t *InsertTuple) Type() TokenType { return INSERT_TUPLE }
func (t *InsertTuple) Raw() []byte     { return t.raw }

type TupleSeparator struct {
	raw []byte
}

func (s *TupleSeparator) Type() TokenType { return TUPLE_SEPARATOR }
func (s *TupleSeparator) Raw() []byte     { return s.raw }

type InsertEnd struct {
	raw []byte
}

func (e *InsertEnd) Type() TokenType { return INSERT_END }
func (e *InsertEnd) Raw() []byte     { return e.raw }

type ValueType int

const (
	NUMBER ValueType = iota
	STRING
	NULL
)

func (v ValueType) String() string {
	switch v {
	case NUMBER:
		return "Number"
	case STRING:
		return "String"
	case NULL:
		return "Null"
	}
	return fmt.Sprintf("ValueType(%d)", int(v))
}

// Value holds the verbatim source bytes of a literal, quotes and escapes included.
// Nothing is ever decoded so untouched values are copied exactly.
type Value struct {
	Type ValueType
	Raw  []byte
}

func (v Value) IsNull() bool {
	return v.Type == NULL
}

// Text is the literal's content: a string without its delimiters and with escapes
// resolved, a number as written, "" for NULL.
func (v Value) Text() string {
	switch v.Type {
	case NULL:
		return ""
	case STRING:
		if len(v.Raw) < 2 {
			return ""
		}
		return unescape(v.Raw[1 : len(v.Raw)-1])
	}
	return string(v.Raw)
}

var escapes = map[byte]byte{
	'0': 0,
	'b': '\b',
	'n': '\n',
	'r': '\r',
	't': '\t',
	'Z': 0x1a,
}

func unescape(body []byte) string {
	if !bytes.ContainsRune(body, '\\') {
		return string(body)
	}
	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) {
			i++
			c = body[i]
			if e, ok := escapes[c]; ok {
				c = e
			}
		}
		out = append(out, c)
	}
	return string(out)
}

func (v Value) String() string {
	return fmt.Sprintf("%s(%s)", v.Type, v.Raw)
}

func NewChunk(raw []byte) *Chunk {
	return &Chunk{raw: raw}
}

func NewInsertStart(raw []byte, table string) *InsertStart {
	return &InsertStart{raw: raw, Table: table}
}

// NewInsertTuple builds a tuple token whose raw text is the canonical
// "(v1,v2,...)" form wrapped in prefix and suffix.
func NewInsertTuple(prefix []byte, values []Value, suffix []byte) *InsertTuple {
	raw := append([]byte{}, prefix...)
	raw = append(raw, '(')
	for i, v := range values {
		if i > 0 {
			raw = append(raw, ',')
		}
		raw = append(raw, v.Raw...)
	}
	raw = append(raw, ')')
	raw = append(raw, suffix...)
	return &InsertTuple{raw: raw, Values: values, Prefix: prefix, Suffix: suffix}
}

func NewTupleSeparator(raw []byte) *TupleSeparator {
	return &TupleSeparator{raw: raw}
}

func NewInsertEnd(raw []byte) *InsertEnd {
	return &InsertEnd{raw: raw}
}
