package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// Local stores objects on the local filesystem under BaseDir, keyed by the
// storage key's relative path. Useful for development without a bucket.
type Local struct {
	BaseDir string
}

func NewLocal(baseDir string) *Local {
	return &Local{BaseDir: baseDir}
}

func (l *Local) Upload(ctx context.Context, key string, r io.Reader, opts UploadOptions) (string, error) {
	_ = ctx

	dstPath := filepath.Join(l.BaseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return "", err
	}

	f, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", ErrKeyExists
		}
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return key, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	_ = ctx
	return os.Remove(filepath.Join(l.BaseDir, filepath.FromSlash(key)))
}
