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
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/Printi/db-dump-file-anonymizer/src/errs"
)

const RESERVATION_FACTOR = 1.1

// Sink is an opened output stream. Seekable sinks (regular files) support size
// reservation and final truncation; everything else is written strictly sequentially.
type Sink struct {
	Path     string
	Seekable bool
	w        io.Writer
	file     *os.File
}

func CreateSink(path string) (*Sink, error) {
	switch path {
	case "":
		return nil, errs.NewConfigError(errs.CONFIG_SOURCE_STREAM, "output", fmt.Errorf("no output path given"))
	case STDIO_PATH:
		// stdout may be a file opened for append by the shell, never truncate it
		return &Sink{Path: path, w: os.Stdout}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("create output %q: %w", path, err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat output %q: %w", path, err)
	}
	sink := &Sink{Path: path, w: file}
	if info.Mode().IsRegular() {
		sink.Seekable = true
		sink.file = file
	}
	log.Infof("opened output %q: seekable=%t", path, sink.Seekable)
	return sink, nil
}

// NewSink wraps an arbitrary writer. Such sinks are never treated as seekable.
func NewSink(name string, w io.Writer) *Sink {
	return &Sink{Path: name, w: w}
}

func (s *Sink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// ReservationSize is the size a seekable sink is pre-extended to before writing.
func ReservationSize(src *Source, fixedReservation int64) int64 {
	if src != nil && src.Seekable && src.Size >= 0 {
		return int64(float64(src.Size) * RESERVATION_FACTOR)
	}
	return fixedReservation
}

// Reserve pre-extends the sink so the filesystem can allocate space up front.
// It is a no-op for non-seekable sinks.
func (s *Sink) Reserve(size int64) error {
	if !s.Seekable || size <= 0 {
		return nil
	}
	log.Infof("reserving %d bytes for output %q", size, s.Path)
	err := s.file.Truncate(size)
	if err != nil {
		return fmt.Errorf("reserve %d bytes for %q: %w", size, s.Path, err)
	}
	return nil
}

// Truncate cuts a seekable sink to its final size once all data is written.
func (s *Sink) Truncate(size int64) error {
	if !s.Seekable {
		return nil
	}
	err := s.file.Truncate(size)
	if err != nil {
		return fmt.Errorf("truncate %q to %d bytes: %w", s.Path, size, err)
	}
	return nil
}

func (s *Sink) Close() error {
	if s.file == nil {
		if c, ok := s.w.(io.Closer); ok && s.Path != STDIO_PATH {
			return c.Close()
		}
		return nil
	}
	return s.file.Close()
}
