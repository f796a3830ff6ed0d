// Package storage abstracts the object store behind a narrow interface so the
// pipeline can run against S3 in production and an in-memory fake in tests.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog/log"
)

// ObjectStore is the view of an object storage service the pipeline needs:
// fetch full object bytes, write full object bytes. Put fully replaces any
// existing object at the key.
type ObjectStore interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) error
}

// Options tune the underlying S3 client for non-AWS deployments.
type Options struct {
	// Endpoint overrides the service endpoint (localstack, minio).
	// Empty means the default AWS endpoint.
	Endpoint string

	// UsePathStyle forces path-style addressing, which most
	// S3-compatible servers require.
	UsePathStyle bool
}

// S3Store implements ObjectStore on the AWS SDK v2 S3 client.
type S3Store struct {
	client *s3.Client
}

var _ ObjectStore = (*S3Store)(nil)

// New creates an S3Store from a resolved AWS config.
func New(cfg aws.Config, opts Options) *S3Store {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})
	return &S3Store{client: client}
}

// Get fetches the complete object body.
func (s *S3Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classify("get", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object body s3://%s/%s: %w", bucket, key, err)
	}

	log.Debug().Str("bucket", bucket).Str("key", key).Int("bytes", len(data)).Msg("Object downloaded")
	return data, nil
}

// Put writes the object, fully replacing any existing content at the key.
func (s *S3Store) Put(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return classify("put", bucket, key, err)
	}

	log.Debug().Str("bucket", bucket).Str("key", key).Int("bytes", len(body)).Msg("Object uploaded")
	return nil
}

// classify maps SDK errors onto the package sentinels, preserving the HTTP
// status when the service answered.
func classify(op, bucket, key string, err error) error {
	reqErr := &RequestError{Op: op, Bucket: bucket, Key: key, Err: err}

	var statusErr interface{ HTTPStatusCode() int }
	if errors.As(err, &statusErr) {
		reqErr.StatusCode = statusErr.HTTPStatusCode()
	}

	var noKey *types.NoSuchKey
	var noBucket *types.NoSuchBucket
	if errors.As(err, &noKey) || errors.As(err, &noBucket) || reqErr.StatusCode == http.StatusNotFound {
		reqErr.Err = fmt.Errorf("%w: %v", ErrObjectNotFound, err)
		return reqErr
	}

	var apiErr smithy.APIError
	if (errors.As(err, &apiErr) && apiErr.ErrorCode() == "AccessDenied") || reqErr.StatusCode == http.StatusForbidden {
		reqErr.Err = fmt.Errorf("%w: %v", ErrAccessDenied, err)
		return reqErr
	}

	return reqErr
}
