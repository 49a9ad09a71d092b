package iconstore

import (
	"context"
	"fmt"
	"image"
	"strings"

	"prize_wheel/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string
}

// S3 reads icons from object storage. References are s3://bucket/key or a bare
// key in the configured bucket.
type S3 struct {
	client *s3.Client
	bucket string
}

func NewS3(ctx context.Context, c S3Config) (*S3, error) {
	if c.Bucket == "" {
		return nil, fmt.Errorf("s3 icon bucket is empty")
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(c.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})
	if c.Endpoint != "" {
		logger.L().Info("using custom s3 endpoint", zap.String("endpoint", c.Endpoint))
	}

	return &S3{client: client, bucket: c.Bucket}, nil
}

func (s *S3) Icon(ctx context.Context, ref string) (image.Image, error) {
	bucket, key := s.locate(ref)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get icon s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()
	return decode(ref, out.Body)
}

func (s *S3) locate(ref string) (string, string) {
	rest, ok := strings.CutPrefix(ref, "s3://")
	if !ok {
		return s.bucket, strings.TrimPrefix(ref, "/")
	}
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" {
		return s.bucket, rest
	}
	return bucket, key
}
