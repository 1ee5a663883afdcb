// Package disk provides a Store backed by a single file on the local
// filesystem.
package disk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/meshview/loader/store"
)

const (
	blobFileName   = "model.bin"
	defaultDirPerm = 0o700
)

// zstd frame magic, used to recognize compressed payloads on read so the
// compression option can be toggled between sessions.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Store implements store.Store using one file under a directory, with
// temp-file writes renamed into place so a blob is never partially visible.
type Store struct {
	dir      string
	dirPerm  os.FileMode
	compress bool
}

// Option configures a disk store.
type Option func(*Store)

// WithCompression enables zstd compression of the stored blob.
func WithCompression(enabled bool) Option {
	return func(s *Store) {
		s.compress = enabled
	}
}

// WithDirPerm sets the permissions used when creating the store directory.
func WithDirPerm(mode os.FileMode) Option {
	return func(s *Store) {
		s.dirPerm = mode
	}
}

// Open creates (on first use) the store directory and returns a Store
// rooted there. Failures are reported as [store.ErrUnavailable].
func Open(dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty store dir", store.ErrUnavailable)
	}
	s := &Store{
		dir:     dir,
		dirPerm: defaultDirPerm,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := os.MkdirAll(dir, s.dirPerm); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return s, nil
}

// Get returns the stored blob, or ok=false if nothing has been stored yet.
func (s *Store) Get(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("%w: %v", store.ErrRead, err)
	}
	data, err := os.ReadFile(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", store.ErrRead, err)
	}
	if bytes.HasPrefix(data, zstdMagic) {
		data, err = decompress(data)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", store.ErrRead, err)
		}
	}
	return data, true, nil
}

// Put persists blob, replacing any prior value.
func (s *Store) Put(ctx context.Context, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}
	payload := blob
	if s.compress {
		var err error
		payload, err = compress(blob)
		if err != nil {
			return fmt.Errorf("%w: %v", store.ErrWrite, err)
		}
	}

	tmp, err := os.CreateTemp(s.dir, "model-*")
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}
	if err := os.Rename(tmpPath, s.path()); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}
	return nil
}

// Clear removes the stored blob file.
func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}
	return nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *Store) Close() error { return nil }

func (s *Store) path() string {
	return filepath.Join(s.dir, blobFileName)
}

func compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	out := enc.EncodeAll(data, nil)
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}

var (
	_ store.Store   = (*Store)(nil)
	_ store.Clearer = (*Store)(nil)
)
