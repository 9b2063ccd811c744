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
package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readConfig(t *testing.T, yaml string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	return v
}

func TestValidConfigFile(t *testing.T) {
	v := readConfig(t, `
log-level: debug
log-dir: /tmp/logs
anonymize:
  input: dump.sql
  output: anon.sql
  spec-file: spec.json
  read-buffer-size: 64KiB
  seed: 42
validate-spec:
  locale: en
`)
	assert.NoError(t, ValidateConfigFile(v))
}

func TestInvalidConfigFile(t *testing.T) {
	v := readConfig(t, `
export-dir: /tmp
anonymize:
  input: dump.sql
  parallel-jobs: 4
source:
  db-host: localhost
`)
	err := ValidateConfigFile(v)
	require.Error(t, err)
	var ve *ConfigValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.InvalidGlobalKeys.Contains("export-dir"))
	assert.True(t, ve.InvalidSectionKeys["anonymize"].Contains("parallel-jobs"))
	assert.True(t, ve.InvalidSections.Contains("source"))
	assert.Contains(t, err.Error(), "Invalid keys in section 'anonymize': [parallel-jobs]")
}
