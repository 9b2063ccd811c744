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
package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

// AssertEqualDump fails with a line diff when two dumps differ. Dumps are
// compared line by line so a single changed tuple shows up as one diff hunk.
func AssertEqualDump(t *testing.T, expected, actual string) {
	t.Helper()
	diff := cmp.Diff(strings.SplitAfter(expected, "\n"), strings.SplitAfter(actual, "\n"))
	if diff != "" {
		t.Errorf("dump mismatch (-expected +actual):\n%s", colorDiff(diff))
	}
}

func colorDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case strings.HasPrefix(trimmed, "-"):
			lines[i] = color.RedString("%s", line)
		case strings.HasPrefix(trimmed, "+"):
			lines[i] = color.GreenString("%s", line)
		}
	}
	return strings.Join(lines, "\n")
}

// WriteTempFile writes content to name inside a per-test directory and returns its path.
func WriteTempFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func ReadFile(t *testing.T, path string) string {
	t.Helper()
	bs, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(bs)
}
