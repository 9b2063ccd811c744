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
package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"

	"github.com/Printi/db-dump-file-anonymizer/src/errs"
)

var (
	// ErrExitErr holds the last error passed to ErrExit
	ErrExitErr error

	// stdout may be carrying the anonymized dump, so every message goes here
	messageOut io.Writer = os.Stderr

	exitHook = atexit.Exit
)

// SetExitHook replaces the termination behaviour of ErrExit. nil restores atexit.Exit.
func SetExitHook(h func(code int)) {
	if h == nil {
		exitHook = atexit.Exit
	} else {
		exitHook = h
	}
}

// SetMessageOutput redirects ErrExit and PrintAndLog. nil restores stderr.
func SetMessageOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	messageOut = w
}

func errorHint(err error) string {
	switch {
	case errs.IsParseError(err):
		return "the dump does not have the expected INSERT syntax at that offset; the output holds a partial dump"
	case errs.IsGeneratorExhaustedError(err):
		return "use a format with more distinct values, raise --unique-max-attempts, or drop 'unique' for that column"
	case errs.IsConfigError(err):
		return "nothing was written"
	}
	return ""
}

// ErrExit prints the error with a hint for its kind, logs it and terminates with status 1.
func ErrExit(format string, args ...interface{}) {
	ErrExitErr = fmt.Errorf(format, args...)

	msg := strings.TrimSuffix(ErrExitErr.Error(), "\n")
	fmt.Fprintln(messageOut, color.RedString("ERROR: ")+msg)
	if hint := errorHint(ErrExitErr); hint != "" {
		fmt.Fprintln(messageOut, color.YellowString("HINT: ")+hint)
	}
	log.Errorf("%s", msg)

	exitHook(1)
}

func PrintAndLog(formatString string, args ...interface{}) {
	log.Infof(formatString, args...)
	if !strings.HasSuffix(formatString, "\n") {
		formatString = formatString + "\n"
	}
	fmt.Fprintf(messageOut, formatString, args...)
}
