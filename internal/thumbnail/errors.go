package thumbnail

import "fmt"

// ConfigError reports missing or malformed runtime configuration. It is
// raised before any storage call is made.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("configuration: %v", e.Err) }
func (e *ConfigError) Unwrap() error { return e.Err }

// EventError reports a notification payload the handler cannot process.
type EventError struct {
	Reason string
}

func (e *EventError) Error() string { return fmt.Sprintf("invalid event: %s", e.Reason) }

// FetchError reports a failure reading the source object. The storage
// sentinels (storage.ErrObjectNotFound, storage.ErrAccessDenied) stay
// matchable through Unwrap.
type FetchError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch s3://%s/%s: %v", e.Bucket, e.Key, e.Err)
}
func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError reports bytes that could not be interpreted as an image.
type DecodeError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode s3://%s/%s: %v", e.Bucket, e.Key, e.Err)
}
func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports an image that could not be serialized as JPEG.
type EncodeError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode thumbnail for s3://%s/%s: %v", e.Bucket, e.Key, e.Err)
}
func (e *EncodeError) Unwrap() error { return e.Err }

// UploadError reports a destination write that did not succeed. It keeps the
// source coordinates so a failed invocation can be traced back to the object
// that triggered it.
type UploadError struct {
	SourceBucket string
	SourceKey    string
	Bucket       string
	Key          string
	StatusCode   int // 0 when the service never answered
	Err          error
}

func (e *UploadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upload thumbnail for s3://%s/%s to s3://%s/%s: status %d: %v",
			e.SourceBucket, e.SourceKey, e.Bucket, e.Key, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upload thumbnail for s3://%s/%s to s3://%s/%s: %v",
		e.SourceBucket, e.SourceKey, e.Bucket, e.Key, e.Err)
}
func (e *UploadError) Unwrap() error { return e.Err }
