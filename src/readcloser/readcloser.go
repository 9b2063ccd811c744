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
package readcloser

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Printi/db-dump-file-anonymizer/src/utils/az"
	"github.com/Printi/db-dump-file-anonymizer/src/utils/gcs"
	"github.com/Printi/db-dump-file-anonymizer/src/utils/httpclient"
	"github.com/Printi/db-dump-file-anonymizer/src/utils/s3"
)

const (
	S3_URL_PREFIX    = "s3://"
	GCS_URL_PREFIX   = "gs://"
	AZURE_BLOB_HOST  = ".blob.core.windows.net"
	AZURE_URL_PREFIX = "https://"
)

// IsObjectURL reports whether path names an object in a supported object store
// or an HTTP(S) download rather than a local file.
func IsObjectURL(path string) bool {
	return strings.HasPrefix(path, S3_URL_PREFIX) ||
		strings.HasPrefix(path, GCS_URL_PREFIX) ||
		httpclient.IsHTTPURL(path)
}

func isAzureBlobURL(path string) bool {
	return strings.HasPrefix(path, AZURE_URL_PREFIX) && strings.Contains(path, AZURE_BLOB_HOST)
}

// Open returns a streaming reader for the object and its size in bytes (-1 if unknown).
func Open(objectURL string) (io.ReadCloser, int64, error) {
	ctx := context.Background()
	switch {
	case strings.HasPrefix(objectURL, S3_URL_PREFIX):
		return s3.Open(ctx, objectURL)
	case strings.HasPrefix(objectURL, GCS_URL_PREFIX):
		return gcs.Open(ctx, objectURL)
	case isAzureBlobURL(objectURL):
		return az.Open(ctx, objectURL)
	case httpclient.IsHTTPURL(objectURL):
		return httpclient.NewClient(httpclient.DefaultConfig()).Open(ctx, objectURL)
	default:
		return nil, 0, fmt.Errorf("unsupported object URL %q", objectURL)
	}
}
