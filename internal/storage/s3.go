// Package storage provides the object-storage gateway for event and
// profile images.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/gatherly/gatherly-api/internal/config"
	"github.com/gatherly/gatherly-api/internal/pkg/imagekit"
)

// S3Store wraps the AWS SDK v2 S3 client for image blobs keyed by
// generated names.
type S3Store struct {
	api    *s3.Client
	bucket string
}

func NewS3Store(conf *config.S3Config) (*S3Store, error) {
	if conf.AccessKey == "" || conf.SecretKey == "" {
		return nil, errors.New("s3 access key and secret key are required")
	}

	ctx := context.Background()
	cfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(conf.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKey, conf.SecretKey, "")),
		awsconfig.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	)
	if err != nil {
		return nil, fmt.Errorf("awsconfig.LoadDefaultConfig -> %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		api:    client,
		bucket: conf.Bucket,
	}, nil
}

// PutBase64 decodes a base64 image payload, stores it under a generated
// key and returns the key.
func (s *S3Store) PutBase64(ctx context.Context, payload string) (string, error) {
	key, err := imagekit.NewKey(payload)
	if err != nil {
		return "", err
	}

	data, err := imagekit.Decode(payload)
	if err != nil {
		return "", err
	}

	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: aws.String(imagekit.ContentType(key)),
	})
	if err != nil {
		return "", fmt.Errorf("s.api.PutObject -> %w", err)
	}

	return key, nil
}

// Get returns the object body and content type for a key. The caller
// closes the reader.
func (s *S3Store) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, "", fmt.Errorf("s.api.GetObject -> %w", err)
	}

	contentType := imagekit.ContentType(key)
	if out.ContentType != nil {
		contentType = *out.ContentType
	}

	return out.Body, contentType, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("s.api.DeleteObject -> %w", err)
	}

	return nil
}
