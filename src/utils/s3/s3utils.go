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
package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	log "github.com/sirupsen/logrus"
	"gocloud.dev/blob"
	"gocloud.dev/blob/s3blob"
)

var (
	client     *s3.Client
	clientErr  error
	clientOnce sync.Once
)

// getClient builds the client from the default AWS credential chain (env, shared config, IMDS).
func getClient(ctx context.Context) (*s3.Client, error) {
	clientOnce.Do(func() {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			clientErr = fmt.Errorf("load aws config: %w", err)
			return
		}
		client = s3.NewFromConfig(cfg)
	})
	return client, clientErr
}

func ValidateObjectURL(objectURL string) error {
	_, _, err := splitObjectPath(objectURL)
	return err
}

// s3://<bucket>/<key>
func splitObjectPath(objectURL string) (string, string, error) {
	u, err := url.Parse(objectURL)
	if err != nil {
		return "", "", fmt.Errorf("parse s3 url %q: %w", objectURL, err)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("missing bucket in s3 url %q", objectURL)
	}
	if len(u.Path) <= 1 {
		return "", "", fmt.Errorf("missing key in s3 url %q", objectURL)
	}
	return u.Host, u.Path[1:], nil
}

// bucketReader closes the bucket together with the object stream.
type bucketReader struct {
	*blob.Reader
	bucket *blob.Bucket
}

func (r *bucketReader) Close() error {
	err := r.Reader.Close()
	if cerr := r.bucket.Close(); err == nil {
		err = cerr
	}
	return err
}

/*
Open looks the object up with HeadObject, so a missing object or a permission
problem is reported before any output is written, then streams it through a
gocloud bucket reader. The returned size is the object's content length.
*/
func Open(ctx context.Context, objectURL string) (io.ReadCloser, int64, error) {
	bucketName, key, err := splitObjectPath(objectURL)
	if err != nil {
		return nil, 0, err
	}
	c, err := getClient(ctx)
	if err != nil {
		return nil, 0, err
	}
	head, err := c.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("head object %q: %w", objectURL, err)
	}

	bucket, err := s3blob.OpenBucketV2(ctx, c, bucketName, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("open bucket %q: %w", bucketName, err)
	}
	r, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		bucket.Close()
		return nil, 0, fmt.Errorf("open reader for %q: %w", objectURL, err)
	}
	log.Infof("streaming s3 object %q (%d bytes)", objectURL, head.ContentLength)
	return &bucketReader{Reader: r, bucket: bucket}, head.ContentLength, nil
}
