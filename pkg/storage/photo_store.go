package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/darthcode66/Snap-Self/pkg/config"
)

// PhotoStore accepts file bytes for a destination key and returns a retrieval URL.
type PhotoStore interface {
	Put(ctx context.Context, key string, r io.Reader) (string, error)
	Remove(ctx context.Context, key string) error
}

// PlaceholderStore discards the bytes and hands back a deterministic placeholder URL.
type PlaceholderStore struct {
	prefix string
}

// NewPlaceholderStore builds a placeholder store rooted at prefix.
func NewPlaceholderStore(prefix string) *PlaceholderStore {
	return &PlaceholderStore{prefix: strings.TrimRight(prefix, "/")}
}

// Put drains the reader and returns prefix/key.
func (s *PlaceholderStore) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", fmt.Errorf("drain upload: %w", err)
	}
	return joinURL(s.prefix, key), nil
}

// Remove is a no-op.
func (s *PlaceholderStore) Remove(context.Context, string) error { return nil }

// LocalPhotoStore writes photos to disk and serves them from a public path.
type LocalPhotoStore struct {
	files      *LocalStorage
	publicPath string
}

// NewLocalPhotoStore wraps a LocalStorage with its public URL path.
func NewLocalPhotoStore(files *LocalStorage, publicPath string) *LocalPhotoStore {
	return &LocalPhotoStore{files: files, publicPath: strings.TrimRight(publicPath, "/")}
}

// Put stores the bytes under key.
func (s *LocalPhotoStore) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := s.files.SaveStream(key, r); err != nil {
		return "", err
	}
	return joinURL(s.publicPath, key), nil
}

// Remove deletes a previously stored key.
func (s *LocalPhotoStore) Remove(_ context.Context, key string) error {
	return s.files.Delete(key)
}

// NewPhotoStore selects the store configured by cfg.Driver.
func NewPhotoStore(cfg config.StorageConfig) (PhotoStore, error) {
	switch cfg.Driver {
	case "", config.StorageDriverPlaceholder:
		return NewPlaceholderStore(cfg.PlaceholderPrefix), nil
	case config.StorageDriverLocal:
		files, err := NewLocalStorage(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return NewLocalPhotoStore(files, cfg.PublicPath), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func joinURL(prefix, key string) string {
	return prefix + "/" + strings.TrimLeft(key, "/")
}
