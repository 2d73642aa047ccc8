package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const snapshotContentType = "application/x-ndjson"

// S3Destination keeps a single bucket object holding the latest update
// history snapshot. Every export overwrites the same key, so the object is
// always the full history as of the last run.
type S3Destination struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Destination builds the destination on the ambient AWS credential
// chain. A non-empty endpoint enables path-style addressing so self-hosted
// stores like MinIO work.
func NewS3Destination(ctx context.Context, bucket, key, region, endpoint string) (*S3Destination, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Destination{client: client, bucket: bucket, key: key}, nil
}

// Write replaces the snapshot object with the given JSONL payload.
func (d *S3Destination) Write(ctx context.Context, snapshot []byte) error {
	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(d.key),
		Body:        bytes.NewReader(snapshot),
		ContentType: aws.String(snapshotContentType),
	})
	if err != nil {
		return fmt.Errorf("put history snapshot: %w", err)
	}
	return nil
}
