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
package pbreporter

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledReporterPassesReaderThrough(t *testing.T) {
	pbr := NewProgressReporter("dump.sql", 10, true)
	r := strings.NewReader("0123456789")
	assert.Same(t, r, pbr.WrapReader(r))
	pbr.Complete()
}

func TestEnabledReporterReadsAllBytes(t *testing.T) {
	var out bytes.Buffer
	pbr := newEnablePBReporter(&out, "dump.sql", -1)
	data, err := io.ReadAll(pbr.WrapReader(strings.NewReader("INSERT INTO `foo` VALUES (1);\n")))
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `foo` VALUES (1);\n", string(data))
	pbr.Complete()
}

func TestEnabledReporterAbortStopsRendering(t *testing.T) {
	var out bytes.Buffer
	pbr := newEnablePBReporter(&out, "dump.sql", 100)
	_, err := io.CopyN(io.Discard, pbr.WrapReader(strings.NewReader(strings.Repeat("x", 100))), 40)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		pbr.Abort()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Abort did not return")
	}
	NewProgressReporter("dump.sql", 10, true).Abort()
}
