// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package blob defines the contract for the external asset-storage collaborator.

Uploaded files (scheme documents, gallery photos, video thumbnails) are never
written to the application database; they are pushed to an S3-compatible object
store and only the durable reference (public URL + object key) is persisted
alongside the content record.

Flow:

  - Upload happens BEFORE any database mutation, so a failed upload aborts the
    whole operation and never leaves a record pointing at a missing asset.
  - Delete is best-effort cleanup; content removal never fails because the
    object store was unreachable.
*/
package blob

import (
	"context"
	"io"
)

// File is an incoming upload extracted from a multipart request.
type File struct {
	// Filename is the client-supplied name, used only to derive the object key.
	Filename string
	// ContentType is the declared MIME type of the payload.
	ContentType string
	// Size is the payload length in bytes.
	Size int64
	// Body streams the file content.
	Body io.Reader
}

// Data describes a stored object after a successful upload.
type Data struct {
	// Key is the internal object address inside the bucket.
	Key string
	// PublicURL is the durable, client-facing reference.
	PublicURL string
	// ContentType echoes the stored MIME type.
	ContentType string
	// Size is the stored length in bytes.
	Size int64
}

// Repository is the storage collaborator interface.
//
// # Implementations
//
// The production implementation lives in blob/s3 (minio against any
// S3-compatible endpoint). Tests use in-memory fakes.
type Repository interface {
	// Upload stores the file under the given object key and returns its
	// durable reference.
	Upload(ctx context.Context, key string, file *File) (*Data, error)

	// Delete removes the object at key. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// Get streams the object at key. Most consumers should use the public URL;
	// this exists for small private payloads only.
	Get(ctx context.Context, key string) (io.ReadCloser, *Data, error)
}
