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
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Printi/db-dump-file-anonymizer/src/config"
)

const LOG_FILE_NAME = "db-dump-anonymizer.log"

type MyFormatter struct{}

var levelList = []string{
	"PANIC",
	"FATAL",
	"ERROR",
	"WARN",
	"INFO",
	"DEBUG",
	"TRACE",
}

func (mf *MyFormatter) Format(entry *log.Entry) ([]byte, error) {
	level := levelList[int(entry.Level)]
	fileName := "?"
	line := 0
	if entry.Caller != nil {
		fileName = filepath.Base(entry.Caller.File)
		line = entry.Caller.Line
	}
	// Example log line:
	// 2022-03-23 12:16:42 INFO main.go:27 Logging initialised.
	msg := fmt.Sprintf("%s %s %s:%d %s\n",
		entry.Time.Format("2006-01-02 15:04:05"), level,
		fileName, line, entry.Message)
	return []byte(msg), nil
}

/*
InitLogging sends logs to <logDir>/db-dump-anonymizer.log, rotated by lumberjack, or
to stderr when no log dir is given. stdout is never used: it may carry the dump.
*/
func InitLogging(logDir string, disableLogging bool, cmdName string) {
	if disableLogging {
		log.SetOutput(io.Discard)
		return
	}
	log.SetLevel(config.Level)
	log.SetReportCaller(true)
	log.SetFormatter(&MyFormatter{})

	if logDir == "" {
		log.SetOutput(os.Stderr)
	} else {
		// lumberjack creates the directory and the file when missing
		log.SetOutput(&lumberjack.Logger{
			Filename:   filepath.Join(logDir, LOG_FILE_NAME),
			MaxSize:    200, // 200 MB log size before rotation
			MaxBackups: 10,  // Allow upto 10 logs at once before deleting oldest logs.
		})
	}
	log.Infof("Logging initialised for %q.", cmdName)
	log.Infof("Args: %v", redactSecretsFromArgs(os.Args))
	log.Infof("\n%s", getVersionInfo())
}

var secretFlags = []string{"--hash-salt"}

func redactSecretsFromArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out); i++ {
		for _, flag := range secretFlags {
			switch {
			case out[i] == flag && i+1 < len(out):
				out[i+1] = "XXX"
			case len(out[i]) > len(flag) && out[i][:len(flag)+1] == flag+"=":
				out[i] = flag + "=XXX"
			}
		}
	}
	return out
}

func redactValue(flagName, value string) string {
	if lo.Contains(secretFlags, "--"+flagName) {
		return "XXX"
	}
	return value
}
