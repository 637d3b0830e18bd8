package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/papergraph/papergraph/internal/util"
)

// S3Store keeps the cache as a single object in an S3-compatible bucket,
// so multiple build hosts can share one extraction cache.
type S3Store struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3StoreParams configures an S3Store. Endpoint may point at any
// S3-compatible service (MinIO, for example).
type NewS3StoreParams struct {
	Bucket    string
	Key       string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3Store creates an S3-backed store with static credentials and
// path-style addressing.
func NewS3Store(ctx context.Context, params NewS3StoreParams) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(params.Region),
		config.WithBaseEndpoint(params.Endpoint),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			params.AccessKey,
			params.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return &S3Store{
		client: client,
		bucket: params.Bucket,
		key:    params.Key,
	}, nil
}

// NewS3StoreFromEnv builds an S3Store from the AWS_* environment variables.
func NewS3StoreFromEnv(ctx context.Context) (*S3Store, error) {
	return NewS3Store(ctx, NewS3StoreParams{
		Bucket:    util.GetEnv("AWS_BUCKET"),
		Key:       util.GetEnvString("CACHE_S3_KEY", "paper_cache.json"),
		Endpoint:  util.GetEnv("AWS_ENDPOINT"),
		Region:    util.GetEnv("AWS_REGION"),
		AccessKey: util.GetEnv("AWS_ACCESS_KEY"),
		SecretKey: util.GetEnv("AWS_SECRET_KEY"),
	})
}

func (s *S3Store) Load(ctx context.Context) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cache from S3: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read cache contents: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *S3Store) Save(ctx context.Context, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload cache to S3: %w", err)
	}
	return nil
}
