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
	"github.com/Printi/db-dump-file-anonymizer/src/readcloser"
)

const STDIO_PATH = "-"

// Source is an opened input stream with a known size (-1 when unknown) and seekability.
// Only regular local files are seekable; stdin, pipes and object-store streams are not.
type Source struct {
	Path     string
	Size     int64
	Seekable bool
	rc       io.ReadCloser
}

func OpenSource(path string) (*Source, error) {
	switch {
	case path == "":
		return nil, errs.NewConfigError(errs.CONFIG_SOURCE_STREAM, "input", fmt.Errorf("no input path given"))
	case path == STDIO_PATH:
		log.Infof("reading dump from stdin")
		return newFileSource(path, os.Stdin)
	case readcloser.IsObjectURL(path):
		rc, size, err := readcloser.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input %q: %w", path, err)
		}
		log.Infof("reading dump from object %q (size=%d)", path, size)
		return &Source{Path: path, Size: size, Seekable: false, rc: rc}, nil
	default:
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input %q: %w", path, err)
		}
		return newFileSource(path, file)
	}
}

func newFileSource(path string, file *os.File) (*Source, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat input %q: %w", path, err)
	}
	if info.IsDir() {
		file.Close()
		return nil, errs.NewConfigError(errs.CONFIG_SOURCE_STREAM, "input", fmt.Errorf("%q is a directory", path))
	}
	src := &Source{Path: path, Size: -1, rc: file}
	if info.Mode().IsRegular() {
		src.Size = info.Size()
		src.Seekable = true
	}
	log.Infof("opened input %q: size=%d seekable=%t", path, src.Size, src.Seekable)
	return src, nil
}

// NewSource wraps an arbitrary stream. Such sources are never treated as seekable.
func NewSource(name string, r io.Reader) *Source {
	rc, ok := r.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(r)
	}
	return &Source{Path: name, Size: -1, rc: rc}
}

func (s *Source) Read(p []byte) (int, error) {
	return s.rc.Read(p)
}

func (s *Source) Close() error {
	if s.Path == STDIO_PATH {
		return nil
	}
	return s.rc.Close()
}
