// Package thumbnail implements the S3-event-driven thumbnail pipeline:
// fetch the newly created object, shrink it to fit inside a fixed bounding
// box, encode the result as JPEG, and upload it to the destination bucket
// under a derived key.
package thumbnail

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/chinmayto/terraform-aws-s3-event-lambda-image-thumbnail-generator/internal/config"
	"github.com/chinmayto/terraform-aws-s3-event-lambda-image-thumbnail-generator/internal/imaging"
	"github.com/chinmayto/terraform-aws-s3-event-lambda-image-thumbnail-generator/internal/metrics"
	"github.com/chinmayto/terraform-aws-s3-event-lambda-image-thumbnail-generator/internal/storage"
)

// MaxDimension is the bounding box for generated thumbnails: neither output
// dimension exceeds it, and smaller images keep their original size.
const MaxDimension = 500

// contentTypeJPEG is set on every upload; the pipeline always encodes JPEG.
const contentTypeJPEG = "image/jpeg"

// Handler runs the thumbnail pipeline for S3 object-created notifications.
// Construct it with New and hand Handle to lambda.Start; tests inject an
// in-memory ObjectStore in place of the S3 client.
type Handler struct {
	store storage.ObjectStore
}

// New creates a Handler backed by the given object store.
func New(store storage.ObjectStore) *Handler {
	return &Handler{store: store}
}

// Handle processes one S3 notification. On success the original event is
// returned unchanged so the invoker can correlate it with the trigger; the
// destination key is only observable through logs and metrics. Every failure
// aborts the invocation with no cleanup or retry, leaving redelivery to the
// triggering infrastructure.
func (h *Handler) Handle(ctx context.Context, event events.S3Event) (events.S3Event, error) {
	start := time.Now()
	logger := log.With().Str("requestId", requestID(ctx)).Logger()

	logger.Info().Interface("event", event).Msg("Notification received")

	if len(event.Records) == 0 {
		return event, &EventError{Reason: "no records in notification"}
	}
	if n := len(event.Records); n > 1 {
		// Bucket notifications carry one record in practice; if a batch
		// ever shows up, only the first record is processed.
		logger.Warn().Int("records", n).Msg("Multiple records in notification, processing the first only")
	}

	record := event.Records[0]
	sourceBucket := record.S3.Bucket.Name
	sourceKey := record.S3.Object.URLDecodedKey
	if sourceKey == "" {
		sourceKey = record.S3.Object.Key
	}

	cfg, err := config.Load()
	if err != nil {
		return event, &ConfigError{Err: err}
	}

	destKey := DestinationKey(sourceKey)
	logger = logger.With().
		Str("sourceBucket", sourceBucket).
		Str("sourceKey", sourceKey).
		Str("destBucket", cfg.DestBucket).
		Str("destKey", destKey).
		Logger()

	logger.Info().Msg("Generating thumbnail")

	data, err := h.store.Get(ctx, sourceBucket, sourceKey)
	if err != nil {
		return event, &FetchError{Bucket: sourceBucket, Key: sourceKey, Err: err}
	}

	if meta, ok := imaging.ProbeMeta(data); ok {
		logger.Debug().
			Str("cameraMake", meta.CameraMake).
			Str("cameraModel", meta.CameraModel).
			Time("taken", meta.Taken).
			Msg("Source EXIF metadata")
	} else {
		logger.Debug().Msg("No usable EXIF metadata, continuing without it")
	}

	img, format, err := imaging.Decode(data)
	if err != nil {
		return event, &DecodeError{Bucket: sourceBucket, Key: sourceKey, Err: err}
	}

	srcBounds := img.Bounds()
	logger.Info().
		Str("format", format).
		Int("width", srcBounds.Dx()).
		Int("height", srcBounds.Dy()).
		Int("bytes", len(data)).
		Msg("Source image decoded")

	thumb := imaging.Fit(img, MaxDimension)

	encoded, err := imaging.EncodeJPEG(thumb)
	if err != nil {
		return event, &EncodeError{Bucket: sourceBucket, Key: sourceKey, Err: err}
	}

	thumbBounds := thumb.Bounds()
	logger.Info().
		Int("width", thumbBounds.Dx()).
		Int("height", thumbBounds.Dy()).
		Int("bytes", len(encoded)).
		Msg("Thumbnail encoded")

	if err := h.store.Put(ctx, cfg.DestBucket, destKey, encoded, contentTypeJPEG); err != nil {
		upErr := &UploadError{
			SourceBucket: sourceBucket,
			SourceKey:    sourceKey,
			Bucket:       cfg.DestBucket,
			Key:          destKey,
			Err:          err,
		}
		var reqErr *storage.RequestError
		if errors.As(err, &reqErr) {
			upErr.StatusCode = reqErr.StatusCode
		}
		return event, upErr
	}

	logger.Info().Dur("duration", time.Since(start)).Msg("Thumbnail uploaded")

	metrics.New("ThumbnailGenerator").
		Dimension("Operation", "thumbnail").
		Metric("DurationMs", float64(time.Since(start).Milliseconds()), metrics.UnitMilliseconds).
		Metric("SourceBytes", float64(len(data)), metrics.UnitBytes).
		Metric("ThumbnailBytes", float64(len(encoded)), metrics.UnitBytes).
		Count("ThumbnailsCreated").
		Property("sourceKey", sourceKey).
		Property("destKey", destKey).
		Property("thumbnailWidth", thumbBounds.Dx()).
		Property("thumbnailHeight", thumbBounds.Dy()).
		Flush()

	return event, nil
}

// requestID returns the Lambda request ID for this invocation, or a
// generated ID when running outside the Lambda runtime.
func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}
