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
package httpclient

import (
	"os"
	"time"
)

const (
	// sent as "Authorization: Bearer <token>" when set
	BEARER_TOKEN_ENV_VAR = "DB_DUMP_ANONYMIZER_HTTP_BEARER_TOKEN"
)

type Config struct {
	Headers map[string]string

	// Wait for the response headers of one attempt. The body has no deadline.
	ResponseHeaderTimeout time.Duration
	TLSHandshakeTimeout   time.Duration

	// Backoff is exponential between RetryWaitMin and RetryWaitMax.
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

func DefaultConfig() Config {
	cfg := Config{Headers: map[string]string{}}
	cfg.fillDefaults()
	if token := os.Getenv(BEARER_TOKEN_ENV_VAR); token != "" {
		cfg.Headers["Authorization"] = "Bearer " + token
	}
	return cfg
}

func (cfg *Config) fillDefaults() {
	setIfZero(&cfg.ResponseHeaderTimeout, time.Minute)
	setIfZero(&cfg.TLSHandshakeTimeout, 10*time.Second)
	setIfZero(&cfg.MaxRetries, 5)
	setIfZero(&cfg.RetryWaitMin, time.Second)
	setIfZero(&cfg.RetryWaitMax, 30*time.Second)
}

func setIfZero[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
