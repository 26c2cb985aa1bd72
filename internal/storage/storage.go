package storage

import (
	"context"
	"errors"
	"io"
)

// UploadOptions mirrors the options accepted by the object store for a
// single upload. Overwrites are always rejected; keys are expected to be
// unique per ObjectKey.
type UploadOptions struct {
	ContentType  string
	CacheControl string
}

// Storage is the object-storage capability surface: put a blob under a
// caller-chosen key and delete a stored key. Upload returns the stored
// path, which equals the key on success.
type Storage interface {
	Upload(ctx context.Context, key string, r io.Reader, opts UploadOptions) (string, error)
	Delete(ctx context.Context, key string) error
}

// ErrKeyExists is returned when an upload targets a key that already holds
// an object.
var ErrKeyExists = errors.New("storage key already exists")
