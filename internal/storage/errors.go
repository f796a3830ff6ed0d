package storage

import (
	"errors"
	"fmt"
)

// Sentinel classifications for storage failures. The S3 implementation wraps
// service responses into these so callers can branch with errors.Is without
// importing SDK types.
var (
	// ErrObjectNotFound means the bucket or key does not exist.
	ErrObjectNotFound = errors.New("object not found")

	// ErrAccessDenied means the caller may not read or write the object.
	ErrAccessDenied = errors.New("access denied")
)

// RequestError reports a failed storage call, carrying the HTTP status when
// the service answered with one.
type RequestError struct {
	Op         string // "get" or "put"
	Bucket     string
	Key        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("s3 %s s3://%s/%s: status %d: %v", e.Op, e.Bucket, e.Key, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("s3 %s s3://%s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }
