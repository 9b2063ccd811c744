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
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	goerrors "github.com/go-errors/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/Printi/db-dump-file-anonymizer/src/errs"
)

const DEFAULT_LOG_LEVEL = "info"

var (
	// LogLevel is bound to --log-level; ValidateLogLevel normalizes it and sets Level.
	LogLevel = DEFAULT_LOG_LEVEL
	Level    = log.InfoLevel
)

func ValidateLogLevel() error {
	lvl, err := log.ParseLevel(strings.TrimSpace(LogLevel))
	if err != nil {
		names := lo.Map(log.AllLevels, func(l log.Level, _ int) string { return l.String() })
		return goerrors.Errorf("invalid log level %q, valid levels are %s", LogLevel, strings.Join(names, ", "))
	}
	LogLevel, Level = lvl.String(), lvl
	return nil
}

func IsLogLevelDebugOrBelow() bool {
	return Level >= log.DebugLevel
}

// ParseByteSize parses sizes like "4096", "64KiB" or "1MB". Values below min are rejected.
func ParseByteSize(name string, value string, min int64) (int64, error) {
	n, err := humanize.ParseBytes(strings.TrimSpace(value))
	if err != nil {
		return 0, errs.NewConfigError(errs.CONFIG_SOURCE_RUN_CONFIG, name,
			fmt.Errorf("invalid size %q: %w", value, err))
	}
	if n > math.MaxInt64 || int64(n) < min {
		return 0, errs.NewConfigError(errs.CONFIG_SOURCE_RUN_CONFIG, name,
			goerrors.Errorf("size %q must be at least %d bytes", value, min))
	}
	return int64(n), nil
}

// ParseBufferSize is ParseByteSize for in-memory buffers, which must hold at least one byte.
func ParseBufferSize(name string, value string) (int, error) {
	n, err := ParseByteSize(name, value, 1)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt32 {
		return 0, errs.NewConfigError(errs.CONFIG_SOURCE_RUN_CONFIG, name,
			goerrors.Errorf("size %s is larger than %s", humanize.IBytes(uint64(n)), humanize.IBytes(math.MaxInt32)))
	}
	return int(n), nil
}
