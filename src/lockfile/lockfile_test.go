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
package lockfile

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockUnlock(t *testing.T) {
	output := filepath.Join(t.TempDir(), "anon.sql")
	l, err := NewLockfile(output)
	require.NoError(t, err)
	assert.Equal(t, output+LOCKFILE_SUFFIX, l.Path())

	require.NoError(t, l.Lock())
	pid, err := l.GetHolderPID()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	require.NoError(t, l.Unlock())
	_, err = os.Stat(l.Path())
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, l.Unlock())
}

func TestLockHeldByLiveProcess(t *testing.T) {
	output := filepath.Join(t.TempDir(), "anon.sql")
	holder := os.Getppid()
	require.NoError(t, os.WriteFile(output+LOCKFILE_SUFFIX, []byte(strconv.Itoa(holder)+"\n"), 0644))

	l, err := NewLockfile(output)
	require.NoError(t, err)
	err = l.Lock()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pid "+strconv.Itoa(holder))
}
