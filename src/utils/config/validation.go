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
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spf13/viper"
)

// ConfigValidationError lists every unknown key found in a config file.
type ConfigValidationError struct {
	InvalidGlobalKeys  mapset.Set[string]
	InvalidSectionKeys map[string]mapset.Set[string]
	InvalidSections    mapset.Set[string]
}

func sorted(s mapset.Set[string]) []string {
	out := s.ToSlice()
	sort.Strings(out)
	return out
}

func (e *ConfigValidationError) Error() string {
	var sb strings.Builder

	sb.WriteString("\nConfig file validation failed:\n")

	if e.InvalidGlobalKeys.Cardinality() > 0 {
		sb.WriteString(fmt.Sprintf("Invalid global config keys: [%s]\n", strings.Join(sorted(e.InvalidGlobalKeys), ", ")))
	}

	sections := make([]string, 0, len(e.InvalidSectionKeys))
	for section := range e.InvalidSectionKeys {
		sections = append(sections, section)
	}
	sort.Strings(sections)
	for _, section := range sections {
		sb.WriteString(fmt.Sprintf("Invalid keys in section '%s': [%s]\n", section,
			strings.Join(sorted(e.InvalidSectionKeys[section]), ", ")))
	}

	if e.InvalidSections.Cardinality() > 0 {
		sb.WriteString(fmt.Sprintf("Invalid sections: [%s]\n", strings.Join(sorted(e.InvalidSections), ", ")))
	}

	return sb.String()
}

// Allowed global config keys
var AllowedGlobalConfigKeys = mapset.NewThreadUnsafeSet[string](
	"log-level", "log-dir",
)

// Allowed anonymize config keys
var allowedAnonymizeConfigKeys = mapset.NewThreadUnsafeSet[string](
	"log-level",
	"input", "output", "spec-file", "spec",
	"read-buffer-size", "write-buffer-size", "reserve-size",
	"locale", "seed", "hash-salt", "unique-max-attempts", "unique-store-dir",
	"stats-file", "disable-pb", "quiet",
)

// Allowed validate spec config keys
var allowedValidateSpecConfigKeys = mapset.NewThreadUnsafeSet[string](
	"log-level",
	"spec-file", "spec", "locale",
)

// Sections are named after the command they configure
var AllowedConfigSections = map[string]mapset.Set[string]{
	"anonymize":     allowedAnonymizeConfigKeys,
	"validate-spec": allowedValidateSpecConfigKeys,
}

func ValidateConfigFile(v *viper.Viper) error {
	invalidGlobalKeys := mapset.NewThreadUnsafeSet[string]()
	invalidSectionKeys := make(map[string]mapset.Set[string])
	invalidSections := mapset.NewThreadUnsafeSet[string]()

	for _, key := range v.AllKeys() {
		parts := strings.Split(key, ".")
		if len(parts) == 1 {
			if !AllowedGlobalConfigKeys.Contains(key) {
				invalidGlobalKeys.Add(key)
			}
			continue
		}
		// "a.b.c" -> section: "a", nestedKey: "b.c"
		section := parts[0]
		nestedKey := strings.Join(parts[1:], ".")

		allowedKeys, ok := AllowedConfigSections[section]
		if !ok {
			invalidSections.Add(section)
			continue
		}
		if !allowedKeys.Contains(nestedKey) {
			if _, exists := invalidSectionKeys[section]; !exists {
				invalidSectionKeys[section] = mapset.NewThreadUnsafeSet[string]()
			}
			invalidSectionKeys[section].Add(nestedKey)
		}
	}

	if invalidGlobalKeys.Cardinality() > 0 || len(invalidSectionKeys) > 0 || invalidSections.Cardinality() > 0 {
		return &ConfigValidationError{
			InvalidGlobalKeys:  invalidGlobalKeys,
			InvalidSectionKeys: invalidSectionKeys,
			InvalidSections:    invalidSections,
		}
	}
	return nil
}
