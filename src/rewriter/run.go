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
package rewriter

import (
	"errors"
	"fmt"
	"io"
	"time"

	goerrors "github.com/go-errors/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Printi/db-dump-file-anonymizer/src/datafile"
	"github.com/Printi/db-dump-file-anonymizer/src/errs"
	"github.com/Printi/db-dump-file-anonymizer/src/modspec"
	"github.com/Printi/db-dump-file-anonymizer/src/pbreporter"
	"github.com/Printi/db-dump-file-anonymizer/src/tokenizer"
)

const DEFAULT_RESERVE_SIZE = 1024 * 1024 * 1024

type Options struct {
	ReadBufferSize  int
	WriteBufferSize int
	// Bytes to pre-allocate on a seekable output when the input size is unknown.
	ReserveSize int64
	// nil disables progress reporting
	Progress pbreporter.ProgressReporter
}

func DefaultOptions() Options {
	return Options{
		ReadBufferSize:  datafile.DEFAULT_READ_BUFFER_SIZE,
		WriteBufferSize: datafile.DEFAULT_WRITE_BUFFER_SIZE,
		ReserveSize:     DEFAULT_RESERVE_SIZE,
	}
}

func (o Options) Validate() error {
	if o.ReadBufferSize < 1 {
		return errs.NewConfigError(errs.CONFIG_SOURCE_RUN_CONFIG, "read buffer size",
			goerrors.Errorf("must be at least 1 byte, got %d", o.ReadBufferSize))
	}
	if o.WriteBufferSize < 1 {
		return errs.NewConfigError(errs.CONFIG_SOURCE_RUN_CONFIG, "write buffer size",
			goerrors.Errorf("must be at least 1 byte, got %d", o.WriteBufferSize))
	}
	if o.ReserveSize < 0 {
		return errs.NewConfigError(errs.CONFIG_SOURCE_RUN_CONFIG, "reserve size",
			goerrors.Errorf("must not be negative, got %d", o.ReserveSize))
	}
	return nil
}

/*
Run anonymizes src into sink in a single forward pass.

A seekable sink is grown up front (1.1x a seekable input's size, otherwise
opts.ReserveSize) and cut to the exact output size at the end. On error the sink
may hold partial output; the caller decides what to do with it.
*/
func Run(src *datafile.Source, sink *datafile.Sink, spec *modspec.Spec, factory GeneratorFactory, opts Options) (_ *Stats, err error) {
	if opts.Progress != nil {
		defer func() {
			if err != nil {
				opts.Progress.Abort()
			}
		}()
	}
	err = opts.Validate()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	log.Infof("anonymizing %q into %q: read buffer %d, write buffer %d",
		src.Path, sink.Path, opts.ReadBufferSize, opts.WriteBufferSize)

	err = sink.Reserve(datafile.ReservationSize(src, opts.ReserveSize))
	if err != nil {
		return nil, err
	}

	var in io.Reader = src
	if opts.Progress != nil {
		in = opts.Progress.WrapReader(src)
	}
	reader := datafile.NewReader(in, opts.ReadBufferSize)
	tok := tokenizer.New(reader, spec.Tables())
	out := datafile.NewBufferedSink(sink, opts.WriteBufferSize)
	engine := NewEngine(spec, factory, out)

	for {
		token, err := tok.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tokenize %q: %w", src.Path, err)
		}
		err = engine.Process(token)
		if err != nil {
			return nil, err
		}
	}
	err = out.Flush()
	if err != nil {
		return nil, err
	}
	err = sink.Truncate(out.Written())
	if err != nil {
		return nil, err
	}
	if opts.Progress != nil {
		opts.Progress.Complete()
	}
	logGenerators(engine)

	stats := engine.Stats()
	stats.BytesIn = reader.Offset()
	stats.BytesOut = out.Written()
	stats.ElapsedSeconds = time.Since(start).Seconds()
	log.Infof("anonymized %d bytes into %d bytes: %d statements, %d tuples, %d values generated",
		stats.BytesIn, stats.BytesOut, stats.Statements, stats.Tuples, stats.ValuesGenerated)
	return stats, nil
}
