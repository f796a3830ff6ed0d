// Package main provides the Lambda entry point for S3-triggered thumbnail
// generation.
//
// The function is subscribed to ObjectCreated notifications on the source
// bucket, one invocation per uploaded object. It fetches the object, scales
// it to fit within a 500x500 bounding box without upscaling, and writes the
// JPEG thumbnail to the bucket named by DEST_BUCKET.
//
// Memory: 128 MB
// Timeout: 30 seconds
package main

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/rs/zerolog/log"

	"github.com/chinmayto/terraform-aws-s3-event-lambda-image-thumbnail-generator/internal/config"
	"github.com/chinmayto/terraform-aws-s3-event-lambda-image-thumbnail-generator/internal/logging"
	"github.com/chinmayto/terraform-aws-s3-event-lambda-image-thumbnail-generator/internal/storage"
	"github.com/chinmayto/terraform-aws-s3-event-lambda-image-thumbnail-generator/internal/thumbnail"
)

// Handler initialized at cold start.
var handler *thumbnail.Handler

var coldStart = true

func init() {
	initStart := time.Now()
	logging.Init()

	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load AWS config")
	}
	log.Debug().Str("region", cfg.Region).Msg("AWS config loaded")

	clientCfg, err := config.LoadClient()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load S3 client config")
	}

	store := storage.New(cfg, storage.Options{
		Endpoint:     clientCfg.Endpoint,
		UsePathStyle: clientCfg.UsePathStyle,
	})
	handler = thumbnail.New(store)

	// Emit consolidated cold-start log for troubleshooting.
	logging.NewStartupLogger("thumbnail-lambda").
		InitDuration(time.Since(initStart)).
		S3Bucket("destBucket", logging.EnvOrDefault("DEST_BUCKET", "(unset)")). // Validated per invocation.
		Feature("pathStyleAddressing", clientCfg.UsePathStyle).
		Config("maxDimension", strconv.Itoa(thumbnail.MaxDimension)).
		Config("endpoint", logging.EnvOrDefault("AWS_ENDPOINT", "(default)")).
		Log()
}

func handle(ctx context.Context, event events.S3Event) (events.S3Event, error) {
	if coldStart {
		coldStart = false
		log.Info().Str("function", "thumbnail-lambda").Msg("Cold start — first invocation")
	}
	return handler.Handle(ctx, event)
}

func main() {
	lambda.Start(handle)
}
