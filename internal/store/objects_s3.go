// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-chat-core/internal/config"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3ObjectStorage is the [ObjectStorage] implementation over an
// S3-compatible bucket. Custom endpoints (MinIO, fake servers) are supported
// through config.Objects.Endpoint and UsePathStyle.
type s3ObjectStorage struct {
	client *s3.Client
	bucket string
	logger *logger.Logger
}

// NewObjectStorage builds an S3 client for cfg.Bucket. Static credentials are
// used when an access key is configured, otherwise the default AWS chain.
func NewObjectStorage(ctx context.Context, cfg config.Objects, log *logger.Logger) (ObjectStorage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("object storage bucket cannot be empty")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewObjectStorage").Msg("error loading aws config")
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	log.Info().Str("func", "NewObjectStorage").Str("bucket", cfg.Bucket).Msg("object storage client created")

	return &s3ObjectStorage{
		client: client,
		bucket: cfg.Bucket,
		logger: log,
	}, nil
}

func (s *s3ObjectStorage) Get(ctx context.Context, name string) (io.ReadCloser, models.StoredObject, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, models.StoredObject{}, ErrObjectNotFound
		}
		return nil, models.StoredObject{}, fmt.Errorf("get object %q: %w", name, err)
	}

	obj := models.StoredObject{
		Bucket:      s.bucket,
		Name:        name,
		ContentType: aws.ToString(out.ContentType),
		Size:        aws.ToInt64(out.ContentLength),
		CreatedAt:   aws.ToTime(out.LastModified),
	}

	return out.Body, obj, nil
}

func (s *s3ObjectStorage) Put(ctx context.Context, name, contentType string, body io.ReadSeeker) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		ContentType: aws.String(contentType),
		Body:        body,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3ObjectStorage.Put").Str("object", name).Msg("error uploading object")
		return fmt.Errorf("put object %q: %w", name, err)
	}

	return nil
}

// List returns every object whose name starts with prefix. S3 does not keep
// a creation time so LastModified is reported instead; objects in the bucket
// are written once and never modified.
func (s *s3ObjectStorage) List(ctx context.Context, prefix string) ([]models.StoredObject, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	objects := make([]models.StoredObject, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects %q: %w", prefix, err)
		}

		for _, o := range page.Contents {
			name := aws.ToString(o.Key)
			if strings.HasSuffix(name, "/") {
				continue
			}
			objects = append(objects, models.StoredObject{
				Bucket:    s.bucket,
				Name:      name,
				Size:      aws.ToInt64(o.Size),
				CreatedAt: aws.ToTime(o.LastModified),
			})
		}
	}

	return objects, nil
}

// Delete removes name. A missing object is not an error.
func (s *s3ObjectStorage) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil && !isNoSuchKey(err) {
		return fmt.Errorf("delete object %q: %w", name, err)
	}

	return nil
}

func isNoSuchKey(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noSuchKey) || errors.As(err, &notFound)
}
