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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nightlyone/lockfile"
	log "github.com/sirupsen/logrus"
)

const LOCKFILE_SUFFIX = ".lck"

// Lockfile guards an output file against concurrent runs writing to it.
type Lockfile struct {
	fpath    string
	lockfile lockfile.Lockfile
	locked   bool
}

// NewLockfile returns the lock for output, stored next to it as "<output>.lck".
func NewLockfile(output string) (*Lockfile, error) {
	fpath, err := filepath.Abs(output + LOCKFILE_SUFFIX)
	if err != nil {
		return nil, fmt.Errorf("resolve lockfile path for %q: %w", output, err)
	}
	return &Lockfile{fpath: fpath}, nil
}

func (l *Lockfile) Path() string {
	return l.fpath
}

// GetHolderPID returns the PID recorded in the lockfile.
func (l *Lockfile) GetHolderPID() (int, error) {
	bytes, err := os.ReadFile(l.fpath)
	if err != nil {
		return -1, fmt.Errorf("failed to read lockfile %q: %w", l.fpath, err)
	}
	pid, err := strconv.Atoi(strings.Trim(string(bytes), " \n"))
	if err != nil {
		return -1, fmt.Errorf("failed to parse PID from lockfile %q: %w", l.fpath, err)
	}
	return pid, nil
}

// Lock takes the lock or fails if another live process holds it. Stale locks left
// by dead processes are taken over.
func (l *Lockfile) Lock() error {
	var err error
	l.lockfile, err = lockfile.New(l.fpath)
	if err != nil {
		return fmt.Errorf("failed to create lockfile %q: %w", l.fpath, err)
	}

	err = l.lockfile.TryLock()
	switch {
	case err == nil:
		l.locked = true
		log.Infof("acquired lock %q", l.fpath)
		return nil
	case errors.Is(err, lockfile.ErrBusy):
		pid, _ := l.GetHolderPID()
		return fmt.Errorf("another db-dump-anonymizer (pid %d) is writing %q", pid,
			strings.TrimSuffix(l.fpath, LOCKFILE_SUFFIX))
	default:
		return fmt.Errorf("unable to lock %q: %w", l.fpath, err)
	}
}

func (l *Lockfile) Unlock() error {
	if !l.locked {
		return nil
	}
	err := l.lockfile.Unlock()
	if err != nil {
		return fmt.Errorf("unable to unlock %q: %w", l.fpath, err)
	}
	l.locked = false
	return nil
}
