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
package tokenizer

import (
	"errors"
	"io"
	"strings"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Printi/db-dump-file-anonymizer/src/datafile"
	"github.com/Printi/db-dump-file-anonymizer/src/errs"
)

func tokenize(t *testing.T, input string, readBufferSize int, tables ...string) ([]Token, error) {
	tok := New(datafile.NewReader(strings.NewReader(input), readBufferSize), mapset.NewSet(tables...))
	var tokens []Token
	for {
		token, err := tok.Next()
		if errors.Is(err, io.EOF) {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, token)
	}
}

func concat(tokens []Token) string {
	var sb strings.Builder
	for _, token := range tokens {
		sb.Write(token.Raw())
	}
	return sb.String()
}

func types(tokens []Token) []TokenType {
	var out []TokenType
	for _, token := range tokens {
		out = append(out, token.Type())
	}
	return out
}

func TestInsertStatementTokens(t *testing.T) {
	input := "INSERT INTO `foo` VALUES (1,'a'),(2,NULL);\n"
	tokens, err := tokenize(t, input, 1024, "foo")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{INSERT_START, INSERT_TUPLE, TUPLE_SEPARATOR, INSERT_TUPLE, INSERT_END}, types(tokens))
	assert.Equal(t, input, concat(tokens))

	start := tokens[0].(*InsertStart)
	assert.Equal(t, "foo", start.Table)
	assert.Equal(t, "INSERT INTO `foo` VALUES ", string(start.Raw()))

	first := tokens[1].(*InsertTuple)
	require.Len(t, first.Values, 2)
	assert.Equal(t, NUMBER, first.Values[0].Type)
	assert.Equal(t, "1", string(first.Values[0].Raw))
	assert.Equal(t, STRING, first.Values[1].Type)
	assert.Equal(t, "'a'", string(first.Values[1].Raw))

	second := tokens[3].(*InsertTuple)
	assert.True(t, second.Values[1].IsNull())
	assert.Equal(t, ";\n", string(tokens[4].Raw()))
}

func TestUnconfiguredTableIsChunk(t *testing.T) {
	input := "INSERT INTO `bar` VALUES (1);\nINSERT INTO `foo` VALUES (2);\n"
	tokens, err := tokenize(t, input, 1024, "foo")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{CHUNK, INSERT_START, INSERT_TUPLE, INSERT_END}, types(tokens))
	assert.Equal(t, "INSERT INTO `bar` VALUES (1);\n", string(tokens[0].Raw()))
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	input := "iNsErT\n\tInTo`foo`vAlUeS(1);"
	tokens, err := tokenize(t, input, 1024, "foo")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{INSERT_START, INSERT_TUPLE, INSERT_END}, types(tokens))
	assert.Equal(t, "iNsErT\n\tInTo`foo`vAlUeS", string(tokens[0].Raw()))
}

func TestVerticalTabBetweenKeywords(t *testing.T) {
	input := "\vINSERT\vINTO\v`foo`\vVALUES\v(1);\n"
	tokens, err := tokenize(t, input, 1024, "foo")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{INSERT_START, INSERT_TUPLE, INSERT_END}, types(tokens))
	assert.Equal(t, input, concat(tokens))
}

func TestTableNameMatchIsExact(t *testing.T) {
	tokens, err := tokenize(t, "INSERT INTO `Foo` VALUES (1);\n", 1024, "foo")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{CHUNK}, types(tokens))
}

func TestEscapedBacktickInTableName(t *testing.T) {
	tokens, err := tokenize(t, "INSERT INTO `a``b` VALUES (1);\n", 1024, "a`b")
	require.NoError(t, err)
	require.Equal(t, INSERT_START, tokens[0].Type())
	assert.Equal(t, "a`b", tokens[0].(*InsertStart).Table)
}

func TestStringEscapes(t *testing.T) {
	input := `INSERT INTO ` + "`foo`" + ` VALUES ('it\'s','a\\','say "hi"',"d\"q",'x,y)');`
	tokens, err := tokenize(t, input, 1024, "foo")
	require.NoError(t, err)
	tuple := tokens[1].(*InsertTuple)
	require.Len(t, tuple.Values, 5)
	assert.Equal(t, `'it\'s'`, string(tuple.Values[0].Raw))
	assert.Equal(t, `'a\\'`, string(tuple.Values[1].Raw))
	assert.Equal(t, `"d\"q"`, string(tuple.Values[3].Raw))
	assert.Equal(t, `'x,y)'`, string(tuple.Values[4].Raw))

	assert.Equal(t, "it's", tuple.Values[0].Text())
	assert.Equal(t, `a\`, tuple.Values[1].Text())
	assert.Equal(t, `say "hi"`, tuple.Values[2].Text())
	assert.Equal(t, `d"q`, tuple.Values[3].Text())
}

func TestNumberCharacterClass(t *testing.T) {
	tokens, err := tokenize(t, "INSERT INTO `foo` VALUES (-1.5e-3,0,42);", 1024, "foo")
	require.NoError(t, err)
	tuple := tokens[1].(*InsertTuple)
	assert.Equal(t, "-1.5e-3", tuple.Values[0].Text())
	assert.Equal(t, "42", tuple.Values[2].Text())

	_, err = tokenize(t, "INSERT INTO `foo` VALUES (1.a);", 1024, "foo")
	require.Error(t, err)
	var pe *errs.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, errs.UnexpectedToken, pe.Kind)
	assert.Equal(t, "in tuple", pe.Context)
	assert.Equal(t, "a", pe.Actual)
}

func TestInsertOnlyAtStatementStart(t *testing.T) {
	input := "SELECT 1; INSERT INTO `foo` VALUES (1);\n"
	tokens, err := tokenize(t, input, 1024, "foo")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{CHUNK}, types(tokens))

	// a statement following a terminator on the same line is recognised
	input = "INSERT INTO `foo` VALUES (1); INSERT INTO `foo` VALUES (2);"
	tokens, err = tokenize(t, input, 1024, "foo")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{INSERT_START, INSERT_TUPLE, INSERT_END, INSERT_START, INSERT_TUPLE, INSERT_END}, types(tokens))
}

func TestChunksAreLines(t *testing.T) {
	input := "line one\nline two\nno newline"
	tokens, err := tokenize(t, input, 1024)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "line one\n", string(tokens[0].Raw()))
	assert.Equal(t, "no newline", string(tokens[2].Raw()))

	// without a newline in the window, the window is the chunk
	tokens, err = tokenize(t, "abcdefgh", 3)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "abc", string(tokens[0].Raw()))
	assert.Equal(t, "gh", string(tokens[2].Raw()))
}

func TestReconstructionForAllBufferSizes(t *testing.T) {
	input := "-- header\n" +
		"INSERT INTO `foo` VALUES (1,'a\\'b',NULL) ,\n (2, \"x\" , -3.0e1);\n" +
		"insert into `bar` values (1);\n" +
		"INSERT INTO `foo` VALUES\n(3,'\n multi line\n');  \n" +
		"trailing text without newline"
	expected, err := tokenize(t, input, 4096, "foo")
	require.NoError(t, err)
	require.Equal(t, input, concat(expected))

	for size := 1; size <= 40; size++ {
		tokens, err := tokenize(t, input, size, "foo")
		require.NoError(t, err, "read buffer size %d", size)
		assert.Equal(t, input, concat(tokens), "read buffer size %d", size)

		var insertTokens []string
		for _, token := range tokens {
			if token.Type() != CHUNK {
				insertTokens = append(insertTokens, string(token.Raw()))
			}
		}
		var expectedInsertTokens []string
		for _, token := range expected {
			if token.Type() != CHUNK {
				expectedInsertTokens = append(expectedInsertTokens, string(token.Raw()))
			}
		}
		assert.Equal(t, expectedInsertTokens, insertTokens, "read buffer size %d", size)
	}
}

func TestTuplePrefixAndSuffix(t *testing.T) {
	tokens, err := tokenize(t, "INSERT INTO `foo` VALUES (1)  ,\n  (2) ;", 1024, "foo")
	require.NoError(t, err)
	first := tokens[1].(*InsertTuple)
	assert.Empty(t, first.Prefix)
	assert.Equal(t, "  ", string(first.Suffix))
	assert.Equal(t, ",\n  ", string(tokens[2].Raw()))
	second := tokens[3].(*InsertTuple)
	assert.Equal(t, " ", string(second.Suffix))
}

func TestMalformedInput(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		kind    errs.ParseErrorKind
		context string
	}{
		{"missing terminator", "INSERT INTO `foo` VALUES (1)", errs.UnexpectedEndOfInput, "after tuple"},
		{"unterminated string", "INSERT INTO `foo` VALUES ('abc", errs.UnexpectedEndOfInput, "string literal starting at offset 26"},
		{"missing comma", "INSERT INTO `foo` VALUES (1 1);", errs.UnexpectedToken, "in tuple"},
		{"unparseable value", "INSERT INTO `foo` VALUES (a);", errs.UnexpectedToken, "value"},
		{"bad separator", "INSERT INTO `foo` VALUES (1) x", errs.UnexpectedToken, "after tuple"},
		{"no tuple", "INSERT INTO `foo` VALUES ;", errs.UnexpectedToken, "tuple start in INSERT into \"foo\""},
		{"truncated tuple", "INSERT INTO `foo` VALUES (1,", errs.UnexpectedEndOfInput, "value"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := tokenize(t, c.input, 3, "foo")
			require.Error(t, err)
			var pe *errs.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, c.kind, pe.Kind)
			assert.Equal(t, c.context, pe.Context)
		})
	}
}

func TestErrorIsSticky(t *testing.T) {
	tok := New(datafile.NewReader(strings.NewReader("INSERT INTO `foo` VALUES (a);"), 16), mapset.NewSet("foo"))
	_, err := tok.Next()
	require.NoError(t, err)
	_, err1 := tok.Next()
	require.Error(t, err1)
	_, err2 := tok.Next()
	assert.Equal(t, err1, err2)
}

func TestNewInsertTuple(t *testing.T) {
	tuple := NewInsertTuple([]byte(" "), []Value{{Type: NUMBER, Raw: []byte("1")}, {Type: NULL, Raw: []byte("NULL")}}, []byte("\n"))
	assert.Equal(t, " (1,NULL)\n", string(tuple.Raw()))
	assert.Equal(t, "InsertTuple", tuple.Type().String())
}
