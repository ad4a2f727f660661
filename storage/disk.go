package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"startup-registration/common"
)

// DiskStore keeps blobs as files below Root, one file per key.
type DiskStore struct {
	Root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{Root: root}
}

func (d *DiskStore) path(key string) (string, error) {
	cleaned, err := CleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(d.Root, filepath.FromSlash(cleaned)), nil
}

func (d *DiskStore) Save(ctx context.Context, key, _ string, r io.Reader, _ int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := d.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), os.ModePerm); err != nil {
		return fmt.Errorf("%w: create upload directory: %w", common.ErrPersistence, err)
	}

	dst, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("%w: create file: %w", common.ErrPersistence, err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(p)
		return fmt.Errorf("%w: write file: %w", common.ErrPersistence, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("%w: close file: %w", common.ErrPersistence, err)
	}
	return nil
}

func (d *DiskStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := d.path(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrNotFound, err)
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: blob %s", common.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open file: %w", common.ErrPersistence, err)
	}
	if st, err := f.Stat(); err == nil && st.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: blob %s", common.ErrNotFound, key)
	}
	return f, nil
}
