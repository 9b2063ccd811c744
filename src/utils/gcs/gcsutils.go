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
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"

	"cloud.google.com/go/storage"
	log "github.com/sirupsen/logrus"
)

var (
	client     *storage.Client
	clientErr  error
	clientOnce sync.Once
)

// getClient uses Application Default Credentials.
func getClient(ctx context.Context) (*storage.Client, error) {
	clientOnce.Do(func() {
		client, clientErr = storage.NewClient(ctx)
		if clientErr != nil {
			clientErr = fmt.Errorf("create gcs client: %w", clientErr)
		}
	})
	return client, clientErr
}

func ValidateObjectURL(objectURL string) error {
	_, _, err := splitObjectPath(objectURL)
	return err
}

// gs://<bucket>/<object>
func splitObjectPath(objectURL string) (string, string, error) {
	u, err := url.Parse(objectURL)
	if err != nil {
		return "", "", fmt.Errorf("parse gcs url %q: %w", objectURL, err)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("missing bucket in gcs url %q", objectURL)
	}
	if len(u.Path) <= 1 {
		return "", "", fmt.Errorf("missing object in gcs url %q", objectURL)
	}
	return u.Host, u.Path[1:], nil
}

// Open streams the object. A gzip-encoded object is decompressed on the fly, so
// its size is reported as unknown (-1).
func Open(ctx context.Context, objectURL string) (io.ReadCloser, int64, error) {
	bucket, object, err := splitObjectPath(objectURL)
	if err != nil {
		return nil, 0, err
	}
	c, err := getClient(ctx)
	if err != nil {
		return nil, 0, err
	}
	r, err := c.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("open reader for %q: %w", objectURL, err)
	}
	size := r.Attrs.Size
	if r.Attrs.ContentEncoding == "gzip" {
		size = -1
	}
	log.Infof("streaming gcs object %q (%d bytes)", objectURL, size)
	return r, size, nil
}
