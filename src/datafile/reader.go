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
	"fmt"
	"io"

	"github.com/Printi/db-dump-file-anonymizer/src/errs"
)

const DEFAULT_READ_BUFFER_SIZE = 1024 * 1024

// CharSet is a byte membership table used by ConsumeWhile.
type CharSet [256]bool

func NewCharSet(chars string) *CharSet {
	cs := &CharSet{}
	for i := 0; i < len(chars); i++ {
		cs[chars[i]] = true
	}
	return cs
}

func (cs *CharSet) Contains(b byte) bool {
	return cs[b]
}

/*
Reader is a forward-only cursor over a byte stream with bounded lookahead.

Bytes are pulled from the underlying stream in chunks of readBufferSize and kept in
an internal buffer until consumed. The buffer only grows when a caller asks to look
further ahead than what is buffered, so memory stays bounded by the read buffer size
plus the longest single lookahead/consume.

Slices returned by Peek and the Consume* methods alias the internal buffer and are
only valid until the next call on the Reader. Callers that keep them must copy.
*/
type Reader struct {
	r              io.Reader
	buf            []byte
	start          int   // buf[start:] is unconsumed
	offset         int64 // absolute offset of buf[start]
	readBufferSize int
	eof            bool
	err            error
}

func NewReader(r io.Reader, readBufferSize int) *Reader {
	if readBufferSize <= 0 {
		readBufferSize = DEFAULT_READ_BUFFER_SIZE
	}
	return &Reader{
		r:              r,
		readBufferSize: readBufferSize,
	}
}

// Offset returns the absolute offset of the next unconsumed byte.
func (r *Reader) Offset() int64 {
	return r.offset
}

func (r *Reader) ReadBufferSize() int {
	return r.readBufferSize
}

func (r *Reader) buffered() []byte {
	return r.buf[r.start:]
}

// fill reads from the stream until at least n bytes are buffered or the stream is exhausted.
func (r *Reader) fill(n int) error {
	for len(r.buf)-r.start < n && !r.eof {
		if r.err != nil {
			return r.err
		}
		if r.start > 0 {
			// drop consumed bytes before growing
			m := copy(r.buf, r.buf[r.start:])
			r.buf = r.buf[:m]
			r.start = 0
		}
		if cap(r.buf)-len(r.buf) < r.readBufferSize {
			newBuf := make([]byte, len(r.buf), 2*cap(r.buf)+r.readBufferSize)
			copy(newBuf, r.buf)
			r.buf = newBuf
		}
		m, err := r.r.Read(r.buf[len(r.buf) : len(r.buf)+r.readBufferSize])
		r.buf = r.buf[:len(r.buf)+m]
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			r.err = fmt.Errorf("read input at offset %d: %w", r.offset+int64(len(r.buf)-r.start), err)
			return r.err
		}
	}
	return nil
}

// Peek returns up to n bytes without consuming them. Fewer than n bytes are
// returned only when the stream is exhausted.
func (r *Reader) Peek(n int) ([]byte, error) {
	err := r.fill(n)
	if err != nil {
		return nil, err
	}
	b := r.buffered()
	if len(b) > n {
		b = b[:n]
	}
	return b, nil
}

// PeekExact is Peek for callers that need exactly n bytes; a short stream is an
// UnexpectedEndOfInput error described by context and expected.
func (r *Reader) PeekExact(n int, context, expected string) ([]byte, error) {
	b, err := r.Peek(n)
	if err != nil {
		return nil, err
	}
	if len(b) < n {
		return nil, errs.NewUnexpectedEndOfInputError(r.offset+int64(len(b)), context, expected)
	}
	return b, nil
}

// Skip consumes n bytes that the caller has already peeked.
func (r *Reader) Skip(n int) []byte {
	b := r.buf[r.start : r.start+n]
	r.start += n
	r.offset += int64(n)
	return b
}

// Consume matches s at the cursor, optionally ignoring ASCII case, and consumes it.
func (r *Reader) Consume(s string, foldCase bool, context string) ([]byte, error) {
	b, err := r.Peek(len(s))
	if err != nil {
		return nil, err
	}
	if len(b) < len(s) {
		return nil, errs.NewUnexpectedEndOfInputError(r.offset+int64(len(b)), context, fmt.Sprintf("%q", s))
	}
	if !equalBytes(b, s, foldCase) {
		return nil, errs.NewUnexpectedTokenError(r.offset, context, fmt.Sprintf("%q", s), b)
	}
	return r.Skip(len(s)), nil
}

// ConsumeWhile consumes the maximal run of bytes contained in set.
func (r *Reader) ConsumeWhile(set *CharSet, minCount int, context string) ([]byte, error) {
	b, _, err := r.ConsumeFunc(set.Contains)
	if err != nil {
		return nil, err
	}
	if len(b) < minCount {
		actual, _ := r.Peek(1)
		return nil, errs.NewUnexpectedTokenError(r.offset, context,
			fmt.Sprintf("at least %d matching bytes, found %d", minCount, len(b)), actual)
	}
	return b, nil
}

// ConsumeFunc consumes bytes for as long as accept returns true. accept sees every
// byte exactly once, in order, so it may carry state between calls. The returned
// bool is true when consumption stopped because the stream ended.
func (r *Reader) ConsumeFunc(accept func(b byte) bool) ([]byte, bool, error) {
	i := 0
	for {
		for r.start+i < len(r.buf) {
			if !accept(r.buf[r.start+i]) {
				return r.Skip(i), false, nil
			}
			i++
		}
		if r.eof {
			return r.Skip(i), true, nil
		}
		err := r.fill(i + 1)
		if err != nil {
			return nil, false, err
		}
	}
}

// AtEnd reports whether the buffer is empty and the stream is exhausted.
func (r *Reader) AtEnd() (bool, error) {
	err := r.fill(1)
	if err != nil {
		return false, err
	}
	return len(r.buffered()) == 0, nil
}

func equalBytes(b []byte, s string, foldCase bool) bool {
	if len(b) != len(s) {
		return false
	}
	for i := 0; i < len(b); i++ {
		if b[i] == s[i] {
			continue
		}
		if !foldCase || lower(b[i]) != lower(s[i]) {
			return false
		}
	}
	return true
}

// EqualFold compares b with s ignoring ASCII case.
func EqualFold(b []byte, s string) bool {
	return equalBytes(b, s, true)
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
