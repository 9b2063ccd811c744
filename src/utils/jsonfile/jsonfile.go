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
package jsonfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// JsonFile holds one JSON document of type T. Writes go through a temp file
// in the same directory and a rename, so readers never see a half-written file.
type JsonFile[T any] struct {
	FilePath string
	mu       sync.Mutex
}

func NewJsonFile[T any](filePath string) *JsonFile[T] {
	return &JsonFile[T]{FilePath: filePath}
}

func (j *JsonFile[T]) Create(obj *T) error {
	bs, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", j.FilePath, err)
	}
	bs = append(bs, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()
	tmp, err := os.CreateTemp(filepath.Dir(j.FilePath), "."+filepath.Base(j.FilePath)+".*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", j.FilePath, err)
	}
	_, err = tmp.Write(bs)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0644)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), j.FilePath)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", j.FilePath, err)
	}
	return nil
}

func (j *JsonFile[T]) Read() (*T, error) {
	j.mu.Lock()
	bs, err := os.ReadFile(j.FilePath)
	j.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", j.FilePath, err)
	}
	return Unmarshal[T](bs, j.FilePath)
}

func (j *JsonFile[T]) Delete() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return os.Remove(j.FilePath)
}

// Unmarshal decodes bs into a new T; source names the origin of bs in errors.
func Unmarshal[T any](bs []byte, source string) (*T, error) {
	if len(bs) == 0 {
		return nil, fmt.Errorf("%s is empty", source)
	}
	obj := new(T)
	if err := json.Unmarshal(bs, obj); err != nil {
		return nil, fmt.Errorf("decode json from %s: %w", source, err)
	}
	return obj, nil
}
