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
	"context"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	log "github.com/sirupsen/logrus"
)

const (
	HTTP_URL_PREFIX  = "http://"
	HTTPS_URL_PREFIX = "https://"

	// bytes of an error response body quoted in the error message
	ERROR_BODY_LIMIT = 512
)

// Client downloads dumps over HTTP(S). Connection errors, 5xx and 429 responses
// are retried with exponential backoff until the response headers arrive; the
// body itself is streamed once.
type Client struct {
	retryClient *retryablehttp.Client
	headers     map[string]string
}

func IsHTTPURL(path string) bool {
	return strings.HasPrefix(path, HTTP_URL_PREFIX) || strings.HasPrefix(path, HTTPS_URL_PREFIX)
}

// NewClient creates a new HTTP client with retry capabilities
func NewClient(config Config) *Client {
	config.fillDefaults()

	httpClient := &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			ResponseHeaderTimeout: config.ResponseHeaderTimeout,
			TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		},
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = httpClient
	retryClient.RetryMax = config.MaxRetries
	retryClient.RetryWaitMin = config.RetryWaitMin
	retryClient.RetryWaitMax = config.RetryWaitMax

	// Disable default logging from retryablehttp (added our own)
	retryClient.Logger = nil
	retryClient.CheckRetry = customRetryPolicy
	retryClient.RequestLogHook = requestLogHook

	return &Client{
		retryClient: retryClient,
		headers:     config.Headers,
	}
}

/*
Open starts a GET of url and returns the response body with its size (-1 when the
server sends no Content-Length). Non-2xx responses are errors. The caller closes
the body.
*/
func (c *Client) Open(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	safeURL := redactURL(url)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request for %s: %w", safeURL, err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.retryClient.Do(req)
	if err != nil {
		// the retry client's error quotes the full url
		log.Warnf("download %s gave up after %s: %v", safeURL, time.Since(start), err)
		return nil, 0, fmt.Errorf("download %s: giving up after %d attempts", safeURL, c.retryClient.RetryMax+1)
	}
	if resp.StatusCode/100 != 2 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, ERROR_BODY_LIMIT))
		return nil, 0, fmt.Errorf("download %s: %s: %s", safeURL, resp.Status, strings.TrimSpace(string(body)))
	}
	log.Infof("download %s: %s, content-length=%d, first byte after %s",
		safeURL, resp.Status, resp.ContentLength, time.Since(start))
	return resp.Body, resp.ContentLength, nil
}

// redactURL drops the query and userinfo; presigned urls carry credentials there.
func redactURL(raw string) string {
	u, err := neturl.Parse(raw)
	if err != nil {
		return "<unparsable url>"
	}
	u.User = nil
	if u.RawQuery != "" {
		u.RawQuery = "REDACTED"
	}
	return u.String()
}

func customRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	retry, checkErr := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	if !retry {
		return false, checkErr
	}
	switch {
	case err != nil:
		log.Debugf("download will be retried: %v", err)
	case resp != nil:
		log.Debugf("download will be retried: %s", resp.Status)
	}
	return true, checkErr
}

func requestLogHook(_ retryablehttp.Logger, req *http.Request, attemptNum int) {
	if attemptNum > 0 {
		log.Infof("download %s: attempt %d", redactURL(req.URL.String()), attemptNum+1)
	}
}
