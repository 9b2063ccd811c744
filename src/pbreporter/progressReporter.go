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
	"io"
	"os"

	"golang.org/x/term"
)

// ProgressReporter tracks how many input bytes have been consumed.
type ProgressReporter interface {
	// WrapReader returns a reader that advances the progress as it is read.
	WrapReader(r io.Reader) io.Reader
	// Complete marks the run as finished and waits for the display to settle.
	Complete()
	// Abort stops the display where it is, so an error message is not drawn over.
	Abort()
}

// NewProgressReporter returns a byte progress bar on stderr, or a no-op reporter
// when disablePb is set or stderr is not a terminal. totalBytes < 0 means unknown.
func NewProgressReporter(name string, totalBytes int64, disablePb bool) ProgressReporter {
	if disablePb || !term.IsTerminal(int(os.Stderr.Fd())) {
		return newDisablePBReporter()
	}
	return newEnablePBReporter(os.Stderr, name, totalBytes)
}
