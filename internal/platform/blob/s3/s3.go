// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package s3 implements [blob.Repository] against any S3-compatible object
// store (Cloudflare R2, MinIO, AWS S3) using the minio client.
package s3

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/kisanmanch/kisanmanch/internal/platform/blob"
)

var _ blob.Repository = (*Repository)(nil)

// Repository is the minio-backed asset store.
type Repository struct {
	client        *minio.Client
	bucketName    string
	basePublicURL string
	logger        *slog.Logger
}

// Config holds the connection settings for the object store.
type Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Bucket          string
	// BasePublicURL is the CDN or bucket origin prefixed to object keys to
	// build client-facing URLs.
	BasePublicURL string
}

// New constructs a minio client and verifies the bucket exists.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Repository, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("blob: failed to create client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("blob: failed to reach object store: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("blob: bucket %q does not exist", cfg.Bucket)
	}

	logger.Info("object_store_connected",
		slog.String("endpoint", cfg.Endpoint),
		slog.String("bucket", cfg.Bucket),
	)

	return &Repository{
		client:        client,
		bucketName:    cfg.Bucket,
		basePublicURL: strings.TrimSuffix(cfg.BasePublicURL, "/"),
		logger:        logger,
	}, nil
}

// Upload stores the file under key and returns its durable reference.
func (repository *Repository) Upload(ctx context.Context, key string, file *blob.File) (*blob.Data, error) {
	info, err := repository.client.PutObject(ctx, repository.bucketName, key, file.Body, file.Size, minio.PutObjectOptions{
		ContentType: file.ContentType,
	})
	if err != nil {
		// Keep the message generic: clients must not learn where assets live.
		return nil, fmt.Errorf("blob: failed to store object: %w", err)
	}

	return &blob.Data{
		Key:         key,
		PublicURL:   repository.basePublicURL + "/" + key,
		ContentType: file.ContentType,
		Size:        info.Size,
	}, nil
}

// Delete removes the object at key. A missing object is treated as success.
func (repository *Repository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	if err := repository.client.RemoveObject(ctx, repository.bucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("blob: failed to delete object: %w", err)
	}

	return nil
}

// Get streams the object at key.
func (repository *Repository) Get(ctx context.Context, key string) (io.ReadCloser, *blob.Data, error) {
	object, err := repository.client.GetObject(ctx, repository.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("blob: failed to get object at %q: %w", key, err)
	}

	stat, err := object.Stat()
	if err != nil {
		_ = object.Close()
		return nil, nil, fmt.Errorf("blob: failed to stat object at %q: %w", key, err)
	}

	return object, &blob.Data{
		Key:         key,
		PublicURL:   repository.basePublicURL + "/" + key,
		ContentType: stat.ContentType,
		Size:        stat.Size,
	}, nil
}
