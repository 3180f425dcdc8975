package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/kiranshivaraju/reportaudit/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioKV stores each slot as a JSON object in an S3-compatible bucket.
type MinioKV struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinioKV connects to the endpoint and makes sure the bucket exists.
func NewMinioKV(ctx context.Context, cfg config.MinioConfig) (*MinioKV, error) {
	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &MinioKV{client: cli, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (m *MinioKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, ObjectName(m.prefix, key), minio.GetObjectOptions{})
	if err != nil {
		return nil, false, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (m *MinioKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := m.client.PutObject(ctx, m.bucket, ObjectName(m.prefix, key),
		bytes.NewReader(value), int64(len(value)),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}

func (m *MinioKV) Delete(ctx context.Context, key string) error {
	return m.client.RemoveObject(ctx, m.bucket, ObjectName(m.prefix, key), minio.RemoveObjectOptions{})
}

func (m *MinioKV) Ping(ctx context.Context) error {
	_, err := m.client.BucketExists(ctx, m.bucket)
	return err
}

func (m *MinioKV) Close() error { return nil }
