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
package gcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitObjectPath(t *testing.T) {
	bucket, key, err := splitObjectPath("gs://dumps/2024/01/prod.sql")
	require.NoError(t, err)
	assert.Equal(t, "dumps", bucket)
	assert.Equal(t, "2024/01/prod.sql", key)

	assert.NoError(t, ValidateObjectURL("gs://dumps/prod.sql"))
	assert.Error(t, ValidateObjectURL("gs://dumps"))
	assert.Error(t, ValidateObjectURL("gs://dumps/"))
	assert.Error(t, ValidateObjectURL("gs:///prod.sql"))
}
