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
	"runtime/debug"
	"strings"
)

const (
	DB_DUMP_ANONYMIZER_VERSION = "1.0.0"

	// Replaced by git archive through export-subst.
	GIT_COMMIT_HASH = "$Format:%H$"
)

type BuildInfo struct {
	Version    string
	Commit     string
	CommitTime string
	GoVersion  string
}

// GetBuildInfo prefers the export-subst commit and falls back to the vcs
// settings the go toolchain stamps into module builds.
func GetBuildInfo() BuildInfo {
	bi := BuildInfo{Version: DB_DUMP_ANONYMIZER_VERSION}
	if len(GIT_COMMIT_HASH) == 40 {
		bi.Commit = GIT_COMMIT_HASH
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return bi
	}
	bi.GoVersion = info.GoVersion
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if bi.Commit == "" {
				bi.Commit = setting.Value
			}
		case "vcs.time":
			bi.CommitTime = setting.Value
		}
	}
	return bi
}

func (bi BuildInfo) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "VERSION=%s\n", bi.Version)
	for _, kv := range [][2]string{
		{"GIT_COMMIT_HASH", bi.Commit},
		{"LAST_COMMIT_DATE", bi.CommitTime},
		{"GO_VERSION", bi.GoVersion},
	} {
		if kv[1] != "" {
			fmt.Fprintf(&sb, "%s=%s\n", kv[0], kv[1])
		}
	}
	return sb.String()
}
