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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Printi/db-dump-file-anonymizer/src/errs"
)

type countingWriter struct {
	bytes.Buffer
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

func TestBufferedSinkFlushesPastThreshold(t *testing.T) {
	var w countingWriter
	b := NewBufferedSink(&w, 4)

	_, err := b.Write([]byte("abcd"))
	require.NoError(t, err)
	assert.Equal(t, 0, w.writes)
	assert.Equal(t, 4, b.Pending())

	_, err = b.WriteString("e")
	require.NoError(t, err)
	assert.Equal(t, 1, w.writes)
	assert.Equal(t, "abcde", w.String())
	assert.Equal(t, 0, b.Pending())

	_, err = b.WriteString("fg")
	require.NoError(t, err)
	require.NoError(t, b.Flush())
	assert.Equal(t, "abcdefg", w.String())
	assert.Equal(t, int64(7), b.Written())
}

func TestFileSourceIsSeekable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.sql")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0644))

	src, err := OpenSource(path)
	require.NoError(t, err)
	defer src.Close()
	assert.True(t, src.Seekable)
	assert.Equal(t, int64(10), src.Size)
	assert.Equal(t, int64(11), ReservationSize(src, 1000))
}

func TestStreamSourceIsNotSeekable(t *testing.T) {
	src := NewSource("pipe", strings.NewReader("abc"))
	assert.False(t, src.Seekable)
	assert.Equal(t, int64(1000), ReservationSize(src, 1000))
}

func TestOpenSourceErrors(t *testing.T) {
	_, err := OpenSource("")
	assert.True(t, errs.IsConfigError(err))

	_, err = OpenSource(t.TempDir())
	assert.True(t, errs.IsConfigError(err))

	_, err = OpenSource(filepath.Join(t.TempDir(), "missing.sql"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSinkReserveAndTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.sql")
	sink, err := CreateSink(path)
	require.NoError(t, err)
	assert.True(t, sink.Seekable)

	require.NoError(t, sink.Reserve(1024))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1024), info.Size())

	_, err = sink.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, sink.Truncate(5))
	require.NoError(t, sink.Close())

	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(bs))
}

func TestWriterSinkIgnoresReservation(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink("buffer", &buf)
	assert.False(t, sink.Seekable)
	require.NoError(t, sink.Reserve(1024))
	_, err := sink.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, sink.Truncate(0))
	assert.Equal(t, "x", buf.String())
}

func TestCreateSinkWithoutPath(t *testing.T) {
	_, err := CreateSink("")
	assert.True(t, errs.IsConfigError(err))
}
