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
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Printi/db-dump-file-anonymizer/src/anon"
	"github.com/Printi/db-dump-file-anonymizer/src/errs"
	"github.com/Printi/db-dump-file-anonymizer/src/modspec"
	"github.com/Printi/db-dump-file-anonymizer/src/tokenizer"
)

// GeneratorFactory creates the value generator for one (table, column) pair.
type GeneratorFactory interface {
	NewGenerator(table string, column int, opts anon.GeneratorOptions) (anon.Generator, error)
}

type generatorKey struct {
	table  string
	column int
}

type defaultCounter interface {
	DefaultsUsed() int64
}

/*
Engine writes each token it is given to out, substituting the values of targeted
columns. Generators are created the first time their column is seen and live for
the whole run, which is what makes unique columns unique across statements.
*/
type Engine struct {
	spec    *modspec.Spec
	factory GeneratorFactory
	out     io.Writer

	generators map[generatorKey]anon.Generator

	// rules of the table of the statement being rewritten; nil outside a statement
	table   string
	columns map[int]*modspec.ColumnSpec

	offset int64
	stats  *Stats
	buf    []byte
}

func NewEngine(spec *modspec.Spec, factory GeneratorFactory, out io.Writer) *Engine {
	return &Engine{
		spec:       spec,
		factory:    factory,
		out:        out,
		generators: make(map[generatorKey]anon.Generator),
		stats:      NewStats(),
	}
}

func (e *Engine) Process(tok tokenizer.Token) error {
	var err error
	switch t := tok.(type) {
	case *tokenizer.Chunk:
		e.stats.Chunks++
		err = e.write(t.Raw())
	case *tokenizer.TupleSeparator:
		err = e.write(t.Raw())
	case *tokenizer.InsertStart:
		e.table = t.Table
		e.columns = e.spec.Table(t.Table)
		e.stats.statementStarted(t.Table)
		err = e.write(t.Raw())
	case *tokenizer.InsertTuple:
		err = e.rewriteTuple(t)
	case *tokenizer.InsertEnd:
		e.table = ""
		e.columns = nil
		err = e.write(t.Raw())
	default:
		var raw []byte
		if tok != nil {
			raw = tok.Raw()
		}
		return errs.NewUnexpectedTokenError(e.offset, "rewrite", "a known token", raw)
	}
	if err != nil {
		return err
	}
	e.offset += int64(len(tok.Raw()))
	return nil
}

func (e *Engine) write(p []byte) error {
	_, err := e.out.Write(p)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (e *Engine) targets(tuple *tokenizer.InsertTuple) bool {
	for column := range e.columns {
		if column <= len(tuple.Values) {
			return true
		}
	}
	return false
}

// rewriteTuple copies an untouched tuple byte for byte. A tuple with at least one
// targeted column is re-serialised as "(v1,v2,...)" between its original
// surrounding whitespace.
func (e *Engine) rewriteTuple(tuple *tokenizer.InsertTuple) error {
	if e.table == "" {
		return errs.NewUnexpectedTokenError(e.offset, "rewrite", "InsertStart before tuple", tuple.Raw())
	}
	e.stats.tuple(e.table)
	if !e.targets(tuple) {
		return e.write(tuple.Raw())
	}
	e.stats.tupleRewritten(e.table)

	buf := append(e.buf[:0], tuple.Prefix...)
	buf = append(buf, '(')
	for i, value := range tuple.Values {
		if i > 0 {
			buf = append(buf, ',')
		}
		column := i + 1
		cs, ok := e.columns[column]
		if !ok {
			buf = append(buf, value.Raw...)
			continue
		}
		replacement, err := e.replacement(column, cs, value)
		if err != nil {
			return err
		}
		buf = append(buf, replacement...)
	}
	buf = append(buf, ')')
	buf = append(buf, tuple.Suffix...)
	e.buf = buf
	return e.write(buf)
}

func (e *Engine) replacement(column int, cs *modspec.ColumnSpec, value tokenizer.Value) (string, error) {
	if value.IsNull() {
		e.stats.nullPreserved(e.table)
		return "NULL", nil
	}
	gen, err := e.generator(column, cs)
	if err != nil {
		return "", err
	}
	generated, err := gen.Generate(value.Text(), cs.Args)
	if err != nil {
		return "", fmt.Errorf("generate value for %s.%d at offset %d: %w", e.table, column, e.offset, err)
	}
	e.stats.valueGenerated(e.table)
	return Render(generated, cs.Quote), nil
}

func (e *Engine) generator(column int, cs *modspec.ColumnSpec) (anon.Generator, error) {
	key := generatorKey{table: e.table, column: column}
	gen, ok := e.generators[key]
	if ok {
		return gen, nil
	}
	gen, err := e.factory.NewGenerator(e.table, column, cs.GeneratorOptions())
	if err != nil {
		return nil, fmt.Errorf("create generator for %s.%d: %w", e.table, column, err)
	}
	e.generators[key] = gen
	return gen, nil
}

// Stats returns the counters collected so far.
func (e *Engine) Stats() *Stats {
	e.stats.DefaultsUsed = 0
	for _, gen := range e.generators {
		if dc, ok := gen.(defaultCounter); ok {
			e.stats.DefaultsUsed += dc.DefaultsUsed()
		}
	}
	e.stats.Generators = len(e.generators)
	return e.stats
}

// Render formats a generated value as SQL text. nil is NULL. Quoted values are
// wrapped in single quotes with backslash and single quote escaped by a backslash.
func Render(v any, quote bool) string {
	if v == nil {
		return "NULL"
	}
	s := anon.ValueToString(v)
	if !quote {
		return s
	}
	return "'" + quoteEscaper.Replace(s) + "'"
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func logGenerators(e *Engine) {
	for key := range e.generators {
		log.Debugf("generator used for %s.%d", key.table, key.column)
	}
}
