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
package datafile

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Printi/db-dump-file-anonymizer/src/errs"
)

func TestPeekDoesNotConsume(t *testing.T) {
	for _, size := range []int{1, 2, 4, 1024} {
		r := NewReader(strings.NewReader("hello world"), size)
		b, err := r.Peek(5)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(b))
		b, err = r.Peek(100)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(b))
		assert.Equal(t, int64(0), r.Offset())
	}
}

func TestPeekExactShortStream(t *testing.T) {
	r := NewReader(strings.NewReader("ab"), 1)
	_, err := r.PeekExact(3, "after tuple", "',' or ';'")
	require.Error(t, err)
	assert.True(t, errs.IsParseErrorOfKind(err, errs.UnexpectedEndOfInput))
	assert.Contains(t, err.Error(), "after tuple")
}

func TestConsume(t *testing.T) {
	r := NewReader(strings.NewReader("InSeRt into"), 3)

	_, err := r.Consume("INSERT", false, "keyword")
	require.Error(t, err)
	assert.True(t, errs.IsParseErrorOfKind(err, errs.UnexpectedToken))
	assert.Equal(t, int64(0), r.Offset())

	b, err := r.Consume("INSERT", true, "keyword")
	require.NoError(t, err)
	assert.Equal(t, "InSeRt", string(b))
	assert.Equal(t, int64(6), r.Offset())

	_, err = r.Consume(" into the", false, "keyword")
	require.Error(t, err)
	assert.True(t, errs.IsParseErrorOfKind(err, errs.UnexpectedEndOfInput))
}

func TestConsumeWhile(t *testing.T) {
	digits := NewCharSet("0123456789")
	r := NewReader(strings.NewReader("12345abc"), 2)

	b, err := r.ConsumeWhile(digits, 1, "number")
	require.NoError(t, err)
	assert.Equal(t, "12345", string(b))

	b, err = r.ConsumeWhile(digits, 0, "number")
	require.NoError(t, err)
	assert.Empty(t, b)

	_, err = r.ConsumeWhile(digits, 1, "number")
	require.Error(t, err)
	var pe *errs.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, int64(5), pe.Offset)
	assert.Equal(t, "a", pe.Actual)
}

func TestConsumeFuncHitsEnd(t *testing.T) {
	r := NewReader(strings.NewReader("abc"), 1)
	b, hitEnd, err := r.ConsumeFunc(func(c byte) bool { return true })
	require.NoError(t, err)
	assert.True(t, hitEnd)
	assert.Equal(t, "abc", string(b))

	atEnd, err := r.AtEnd()
	require.NoError(t, err)
	assert.True(t, atEnd)
}

func TestAtEnd(t *testing.T) {
	r := NewReader(strings.NewReader("x"), 1)
	atEnd, err := r.AtEnd()
	require.NoError(t, err)
	assert.False(t, atEnd)
	r.Skip(1)
	atEnd, err = r.AtEnd()
	require.NoError(t, err)
	assert.True(t, atEnd)
}

func TestReaderOneByteReads(t *testing.T) {
	r := NewReader(iotest.OneByteReader(strings.NewReader("INSERT INTO")), 64)
	b, err := r.Peek(11)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO", string(b))
}

func TestReaderPropagatesReadErrors(t *testing.T) {
	r := NewReader(iotest.ErrReader(io.ErrUnexpectedEOF), 4)
	_, err := r.Peek(1)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	_, err = r.AtEnd()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
