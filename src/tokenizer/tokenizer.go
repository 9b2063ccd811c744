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
	"io"
	"regexp"

	mapset "github.com/deckarep/golang-set/v2"
	log "github.com/sirupsen/logrus"

	"github.com/Printi/db-dump-file-anonymizer/src/datafile"
	"github.com/Printi/db-dump-file-anonymizer/src/errs"
)

const (
	MAX_TABLE_NAME_LENGTH = 128
	// Lookahead used to recognise an INSERT header. Holds the longest header with a
	// fully escaped table name plus room for whitespace between the keywords.
	SCAN_WINDOW = 4*MAX_TABLE_NAME_LENGTH + 512
)

const whitespaceChars = " \t\r\n\f\v"

var whitespace = datafile.NewCharSet(whitespaceChars)

// RE2's \s lacks \v; this class agrees with whitespace.
const reWS = `[\t\n\v\f\r ]`

// Matches "INSERT INTO `foo` VALUES ", any keyword case, backticks doubled inside the name.
var reInsertStart = regexp.MustCompile("^(?i)" + reWS + "*INSERT" + reWS + "+INTO" + reWS +
	"*`((?:[^`]|``)*)`" + reWS + "*VALUES" + reWS + "*")

type mode int

const (
	scanMode mode = iota
	insertMode
)

type insertState int

const (
	expectTuple insertState = iota
	expectSeparatorOrEnd
)

/*
Tokenizer turns a dump stream into a lazy sequence of Tokens.

In scan mode it copies the input through as Chunks, one line at a time, and checks
each statement start for an INSERT into one of the configured tables. Once such a
header is found it switches to insert mode and emits the statement tuple by tuple
until the terminating ';', then returns to scan mode.

The sequence is forward-only: Next pulls from the underlying Reader on demand and
the stream is never rewound.
*/
type Tokenizer struct {
	r      *datafile.Reader
	tables mapset.Set[string]

	mode        mode
	insertState insertState
	// INSERT headers are only recognised at the start of a statement: beginning of
	// input, after a chunk ending in a newline, or after a statement terminator.
	atStatementStart bool
	table            string
	err              error
}

func New(r *datafile.Reader, tables mapset.Set[string]) *Tokenizer {
	return &Tokenizer{
		r:                r,
		tables:           tables,
		mode:             scanMode,
		atStatementStart: true,
	}
}

// Next returns the next token, io.EOF once the input is exhausted, or a parse error.
// After an error every further call returns the same error.
func (t *Tokenizer) Next() (Token, error) {
	if t.err != nil {
		return nil, t.err
	}
	var tok Token
	var err error
	switch t.mode {
	case scanMode:
		tok, err = t.scan()
	case insertMode:
		tok, err = t.nextInInsert()
	}
	if err != nil {
		t.err = err
		return nil, err
	}
	return tok, nil
}

func (t *Tokenizer) scan() (Token, error) {
	if t.atStatementStart {
		start, err := t.matchInsertStart()
		if err != nil {
			return nil, err
		}
		if start != nil {
			t.mode = insertMode
			t.insertState = expectTuple
			t.table = start.Table
			return start, nil
		}
	}

	window, err := t.r.Peek(t.r.ReadBufferSize())
	if err != nil {
		return nil, err
	}
	if len(window) == 0 {
		return nil, io.EOF
	}
	n := len(window)
	idx := bytes.IndexByte(window, '\n')
	if idx >= 0 {
		n = idx + 1
	}
	t.atStatementStart = idx >= 0
	return &Chunk{raw: clone(t.r.Skip(n))}, nil
}

func (t *Tokenizer) matchInsertStart() (*InsertStart, error) {
	window, err := t.r.Peek(SCAN_WINDOW)
	if err != nil {
		return nil, err
	}
	if !mayStartInsert(window) {
		return nil, nil
	}
	m := reInsertStart.FindSubmatchIndex(window)
	if m == nil {
		return nil, nil
	}
	table := decodeIdentifier(window[m[2]:m[3]])
	if !t.tables.Contains(table) {
		log.Debugf("skipping INSERT into unconfigured table %q at offset %d", table, t.r.Offset())
		return nil, nil
	}
	log.Debugf("INSERT into %q at offset %d", table, t.r.Offset())
	return &InsertStart{raw: clone(t.r.Skip(m[1])), Table: table}, nil
}

// mayStartInsert is a cheap check that the first non-space byte is an 'i'.
func mayStartInsert(window []byte) bool {
	for _, c := range window {
		if whitespace.Contains(c) {
			continue
		}
		return c == 'i' || c == 'I'
	}
	return false
}

func decodeIdentifier(quoted []byte) string {
	return string(bytes.ReplaceAll(quoted, []byte("``"), []byte("`")))
}

func (t *Tokenizer) nextInInsert() (Token, error) {
	switch t.insertState {
	case expectTuple:
		tuple, err := t.parseTuple()
		if err != nil {
			return nil, err
		}
		t.insertState = expectSeparatorOrEnd
		return tuple, nil
	default:
		next, err := t.r.PeekExact(1, "after tuple", "',' or ';'")
		if err != nil {
			return nil, err
		}
		switch next[0] {
		case ',':
			raw := clone(t.r.Skip(1))
			raw, err = t.appendWhitespace(raw)
			if err != nil {
				return nil, err
			}
			t.insertState = expectTuple
			return &TupleSeparator{raw: raw}, nil
		case ';':
			raw := clone(t.r.Skip(1))
			raw, err = t.appendWhitespace(raw)
			if err != nil {
				return nil, err
			}
			t.mode = scanMode
			t.atStatementStart = true
			t.table = ""
			return &InsertEnd{raw: raw}, nil
		default:
			return nil, errs.NewUnexpectedTokenError(t.r.Offset(), "after tuple", "',' or ';'", next)
		}
	}
}

func (t *Tokenizer) appendWhitespace(raw []byte) ([]byte, error) {
	ws, err := t.r.ConsumeWhile(whitespace, 0, "whitespace")
	if err != nil {
		return nil, err
	}
	return append(raw, ws...), nil
}

func (t *Tokenizer) parseTuple() (*InsertTuple, error) {
	tuple := &InsertTuple{}
	raw, err := t.appendWhitespace(nil)
	if err != nil {
		return nil, err
	}
	tuple.Prefix = clone(raw)

	open, err := t.r.Consume("(", false, fmt.Sprintf("tuple start in INSERT into %q", t.table))
	if err != nil {
		return nil, err
	}
	raw = append(raw, open...)

	for {
		raw, err = t.appendWhitespace(raw)
		if err != nil {
			return nil, err
		}
		value, err := t.parseValue()
		if err != nil {
			return nil, err
		}
		raw = append(raw, value.Raw...)
		tuple.Values = append(tuple.Values, value)

		raw, err = t.appendWhitespace(raw)
		if err != nil {
			return nil, err
		}
		next, err := t.r.PeekExact(1, "in tuple", "',' or ')'")
		if err != nil {
			return nil, err
		}
		if next[0] == ',' {
			raw = append(raw, t.r.Skip(1)...)
			continue
		}
		if next[0] == ')' {
			raw = append(raw, t.r.Skip(1)...)
			break
		}
		return nil, errs.NewUnexpectedTokenError(t.r.Offset(), "in tuple", "',' or ')'", next)
	}

	suffixStart := len(raw)
	raw, err = t.appendWhitespace(raw)
	if err != nil {
		return nil, err
	}
	tuple.raw = raw
	tuple.Suffix = raw[suffixStart:]
	return tuple, nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
