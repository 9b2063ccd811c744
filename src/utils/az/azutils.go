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
package az

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	log "github.com/sirupsen/logrus"
)

// retries of a broken download stream, each resuming at the last byte read
const DOWNLOAD_MAX_RETRIES = 10

var (
	clientsMu sync.Mutex
	// one client per storage account
	clients = map[string]*azblob.Client{}
)

func getClient(serviceURL string) (*azblob.Client, error) {
	clientsMu.Lock()
	defer clientsMu.Unlock()
	if c, ok := clients[serviceURL]; ok {
		return c, nil
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("create azure default credential: %w", err)
	}
	c, err := azblob.NewClient(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create azure blob client for %q: %w", serviceURL, err)
	}
	clients[serviceURL] = c
	return c, nil
}

// ValidateObjectURL checks for https://<account>.blob.core.windows.net/<container>/<blob>.
func ValidateObjectURL(objectURL string) error {
	_, _, _, err := splitObjectPath(objectURL)
	return err
}

func splitObjectPath(objectURL string) (string, string, string, error) {
	u, err := url.Parse(objectURL)
	if err != nil {
		return "", "", "", fmt.Errorf("parse azure blob url %q: %w", objectURL, err)
	}
	if u.Host == "" {
		return "", "", "", fmt.Errorf("missing account in azure blob url %q", objectURL)
	}
	if !strings.Contains(u.Host, ".blob.") {
		return "", "", "", fmt.Errorf("%q is not a blob service host in azure blob url %q", u.Host, objectURL)
	}
	container, blobName, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if container == "" {
		return "", "", "", fmt.Errorf("missing container in azure blob url %q", objectURL)
	}
	if blobName == "" {
		return "", "", "", fmt.Errorf("missing blob name in azure blob url %q", objectURL)
	}
	return u.Host, container, blobName, nil
}

// Open streams the blob through a retry reader so a long download survives
// dropped connections.
func Open(ctx context.Context, objectURL string) (io.ReadCloser, int64, error) {
	host, container, blobName, err := splitObjectPath(objectURL)
	if err != nil {
		return nil, 0, err
	}
	c, err := getClient("https://" + host)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.DownloadStream(ctx, container, blobName, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("download %q: %w", objectURL, err)
	}
	size := int64(-1)
	if resp.ContentLength != nil {
		size = *resp.ContentLength
	}
	log.Infof("streaming azure blob %q (%d bytes)", objectURL, size)
	return resp.NewRetryReader(ctx, &azblob.RetryReaderOptions{MaxRetries: DOWNLOAD_MAX_RETRIES}), size, nil
}
