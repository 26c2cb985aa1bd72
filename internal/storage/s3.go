package storage

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3 struct {
	Client *s3.Client
	Bucket string
}

type S3Config struct {
	Region string
	Bucket string
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}
	return &S3{
		Client: s3.NewFromConfig(awsCfg),
		Bucket: cfg.Bucket,
	}, nil
}

func (s *S3) Upload(ctx context.Context, key string, r io.Reader, opts UploadOptions) (string, error) {
	ifNoneMatch := "*"
	input := &s3.PutObjectInput{
		Bucket:      &s.Bucket,
		Key:         &key,
		Body:        r,
		IfNoneMatch: &ifNoneMatch,
	}
	if opts.ContentType != "" {
		input.ContentType = &opts.ContentType
	}
	if opts.CacheControl != "" {
		input.CacheControl = &opts.CacheControl
	}

	_, err := s.Client.PutObject(ctx, input)
	if err != nil {
		if strings.Contains(err.Error(), "PreconditionFailed") {
			return "", ErrKeyExists
		}
		return "", err
	}
	return key, nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.Bucket,
		Key:    &key,
	})
	return err
}
