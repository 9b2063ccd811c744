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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Positional args come straight from the decoded spec JSON: numbers arrive as
// float64 (or json.Number), strings as string.

func argString(args []any, i int, def string) (string, error) {
	if i >= len(args) || args[i] == nil {
		return def, nil
	}
	switch v := args[i].(type) {
	case string:
		return v, nil
	default:
		return ValueToString(v), nil
	}
}

func argInt(args []any, i int, def int) (int, error) {
	if i >= len(args) || args[i] == nil {
		return def, nil
	}
	switch v := args[i].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("argument %d: %v is not an integer", i+1, v)
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("argument %d: %w", i+1, err)
		}
		return int(n), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("argument %d: %q is not an integer", i+1, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("argument %d: unsupported type %T", i+1, v)
	}
}

func argFloat(args []any, i int, def float64) (float64, error) {
	if i >= len(args) || args[i] == nil {
		return def, nil
	}
	switch v := args[i].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("argument %d: %w", i+1, err)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("argument %d: %q is not a number", i+1, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("argument %d: unsupported type %T", i+1, v)
	}
}
