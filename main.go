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
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/tebeka/atexit"

	"github.com/Printi/db-dump-file-anonymizer/cmd"
	"github.com/Printi/db-dump-file-anonymizer/src/utils"
)

func main() {
	go exitOnSignal()
	cmd.Execute()
	// release the output lock and close the unique value store
	atexit.Exit(0)
}

// exitOnSignal runs the cleanups on SIGINT/SIGTERM and exits with 128+signal.
// A partially written output file is left as is; the lock goes away.
func exitOnSignal() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := (<-sigs).(syscall.Signal)
	utils.PrintAndLog("interrupted by %s, output is incomplete", sig)
	atexit.Exit(128 + int(sig))
}
