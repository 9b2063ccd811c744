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
package anon

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

const (
	HASH_LENGTH = 16 // hex chars
	SALT_SIZE   = 16 // bytes
)

// HashRegistry maps a value to a salted, truncated sha256 token. The same value
// always maps to the same token within a run, so relationships between columns
// that share values survive anonymization.
type HashRegistry struct {
	/*
		Without a salt, common values (admin, test, 0) hash to the same token in
		every dump and can be reversed with a lookup table. The salt is per run
		unless --hash-salt pins it.
	*/
	salt string

	// ~100 bytes per entry, bounded by the number of distinct hashed values
	cache map[string]string
	mu    sync.RWMutex
}

func NewHashRegistry(salt string) *HashRegistry {
	return &HashRegistry{
		salt:  salt,
		cache: make(map[string]string),
	}
}

func (r *HashRegistry) GetHash(prefix string, value string) string {
	key := prefix + "\x00" + value
	r.mu.RLock()
	token, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return token
	}

	h := sha256.New()
	h.Write([]byte(r.salt + value))
	token = prefix + hex.EncodeToString(h.Sum(nil))[:HASH_LENGTH]

	r.mu.Lock()
	r.cache[key] = token
	r.mu.Unlock()
	return token
}

func GenerateSalt(size int) (string, error) {
	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
