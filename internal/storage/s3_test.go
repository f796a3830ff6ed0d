package storage

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// statusError mimics the SDK's transport errors, which expose the HTTP
// status of the failed call.
type statusError struct {
	code int
	err  error
}

func (e *statusError) Error() string       { return fmt.Sprintf("http response error StatusCode: %d", e.code) }
func (e *statusError) HTTPStatusCode() int { return e.code }
func (e *statusError) Unwrap() error       { return e.err }

func TestNew_Options(t *testing.T) {
	store := New(aws.Config{Region: "us-east-1"}, Options{
		Endpoint:     "http://localhost:4566",
		UsePathStyle: true,
	})

	opts := store.client.Options()
	if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://localhost:4566" {
		t.Errorf("BaseEndpoint not applied, got %v", opts.BaseEndpoint)
	}
	if !opts.UsePathStyle {
		t.Error("UsePathStyle not applied")
	}
}

func TestNew_DefaultEndpoint(t *testing.T) {
	store := New(aws.Config{Region: "us-east-1"}, Options{})

	opts := store.client.Options()
	if opts.BaseEndpoint != nil {
		t.Errorf("expected no BaseEndpoint override, got %q", *opts.BaseEndpoint)
	}
	if opts.UsePathStyle {
		t.Error("expected virtual-host addressing by default")
	}
}

func TestClassify_NoSuchKey(t *testing.T) {
	err := classify("get", "src", "missing.jpg", &types.NoSuchKey{})

	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("NoSuchKey not classified as ErrObjectNotFound: %v", err)
	}
	if errors.Is(err, ErrAccessDenied) {
		t.Errorf("NoSuchKey wrongly classified as ErrAccessDenied: %v", err)
	}
}

func TestClassify_NoSuchBucket(t *testing.T) {
	err := classify("get", "nope", "img.jpg", &types.NoSuchBucket{})

	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("NoSuchBucket not classified as ErrObjectNotFound: %v", err)
	}
}

func TestClassify_AccessDenied(t *testing.T) {
	err := classify("get", "locked", "img.jpg", &smithy.GenericAPIError{
		Code:    "AccessDenied",
		Message: "Access Denied",
	})

	if !errors.Is(err, ErrAccessDenied) {
		t.Errorf("AccessDenied not classified as ErrAccessDenied: %v", err)
	}
}

func TestClassify_StatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"404 maps to not found", http.StatusNotFound, ErrObjectNotFound},
		{"403 maps to access denied", http.StatusForbidden, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cause := &statusError{code: tt.status, err: errors.New("request failed")}
			err := classify("get", "src", "img.jpg", cause)

			if !errors.Is(err, tt.want) {
				t.Errorf("status %d not classified as %v: %v", tt.status, tt.want, err)
			}

			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("classify did not return a *RequestError: %v", err)
			}
			if reqErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", reqErr.StatusCode, tt.status)
			}
		})
	}
}

func TestClassify_Unrecognized(t *testing.T) {
	cause := errors.New("connection reset")
	err := classify("put", "dst", "img_thumbnail.jpg", cause)

	if errors.Is(err, ErrObjectNotFound) || errors.Is(err, ErrAccessDenied) {
		t.Errorf("generic error should not match a sentinel: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("original cause lost from chain: %v", err)
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("classify did not return a *RequestError: %v", err)
	}
	if reqErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 when no response was received", reqErr.StatusCode)
	}
}

func TestRequestError_Message(t *testing.T) {
	err := &RequestError{
		Op:         "put",
		Bucket:     "dst",
		Key:        "img_thumbnail.jpg",
		StatusCode: 500,
		Err:        errors.New("internal error"),
	}

	got := err.Error()
	for _, want := range []string{"put", "s3://dst/img_thumbnail.jpg", "status 500"} {
		if !strings.Contains(got, want) {
			t.Errorf("error %q missing %q", got, want)
		}
	}
}
