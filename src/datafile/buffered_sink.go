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
)

const DEFAULT_WRITE_BUFFER_SIZE = 8 * 1024 * 1024

// BufferedSink accumulates output in memory and hands it to the underlying
// writer once more than threshold bytes are pending.
type BufferedSink struct {
	w         io.Writer
	buf       []byte
	threshold int
	written   int64
}

func NewBufferedSink(w io.Writer, writeBufferSize int) *BufferedSink {
	if writeBufferSize <= 0 {
		writeBufferSize = DEFAULT_WRITE_BUFFER_SIZE
	}
	return &BufferedSink{
		w:         w,
		buf:       make([]byte, 0, min(writeBufferSize, DEFAULT_WRITE_BUFFER_SIZE)+1),
		threshold: writeBufferSize,
	}
}

func (b *BufferedSink) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	b.written += int64(len(p))
	if len(b.buf) > b.threshold {
		err := b.Flush()
		if err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func (b *BufferedSink) WriteString(s string) (int, error) {
	b.buf = append(b.buf, s...)
	b.written += int64(len(s))
	if len(b.buf) > b.threshold {
		err := b.Flush()
		if err != nil {
			return 0, err
		}
	}
	return len(s), nil
}

// Flush writes everything pending to the underlying writer.
func (b *BufferedSink) Flush() error {
	if len(b.buf) == 0 {
		return nil
	}
	_, err := b.w.Write(b.buf)
	if err != nil {
		return fmt.Errorf("flush %d bytes of output: %w", len(b.buf), err)
	}
	b.buf = b.buf[:0]
	return nil
}

// Written is the total number of bytes accepted so far, flushed or not.
func (b *BufferedSink) Written() int64 {
	return b.written
}

func (b *BufferedSink) Pending() int {
	return len(b.buf)
}
