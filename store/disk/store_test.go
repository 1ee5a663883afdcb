package disk

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestGetEmpty(t *testing.T) {
	t.Parallel()

	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	_, ok, err := s.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Fatal("Get() ok = true, want false")
	}
}

func TestPutGetRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	blob := []byte("model-bytes")
	if err := s.Put(context.Background(), blob); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := s.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if !bytes.Equal(got, blob) {
		t.Fatalf("Get() blob = %q, want %q", got, blob)
	}

	if _, err := os.Stat(filepath.Join(dir, blobFileName)); err != nil {
		t.Fatalf("expected blob file: %v", err)
	}
}

func TestPutReplacesPriorBlob(t *testing.T) {
	t.Parallel()

	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	ctx := context.Background()

	if err := s.Put(ctx, []byte("blob-a")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Put(ctx, []byte("blob-b")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := s.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v, %v", got, ok, err)
	}
	if !bytes.Equal(got, []byte("blob-b")) {
		t.Fatalf("Get() blob = %q, want %q", got, "blob-b")
	}
}

func TestCompressedRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := Open(dir, WithCompression(true))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	ctx := context.Background()

	blob := bytes.Repeat([]byte("vertex-data "), 512)
	if err := s.Put(ctx, blob); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, blobFileName))
	if err != nil {
		t.Fatalf("reading blob file: %v", err)
	}
	if !bytes.HasPrefix(raw, zstdMagic) {
		t.Fatal("expected zstd frame on disk")
	}
	if len(raw) >= len(blob) {
		t.Fatalf("compressed size %d not smaller than %d", len(raw), len(blob))
	}

	got, ok, err := s.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("Get() = ok=%v, err=%v", ok, err)
	}
	if !bytes.Equal(got, blob) {
		t.Fatal("compressed roundtrip mismatch")
	}
}

func TestUncompressedReadAfterToggle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	plain, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	ctx := context.Background()

	blob := []byte("stored without compression")
	if err := plain.Put(ctx, blob); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	compressed, err := Open(dir, WithCompression(true))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	got, ok, err := compressed.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("Get() = ok=%v, err=%v", ok, err)
	}
	if !bytes.Equal(got, blob) {
		t.Fatalf("Get() blob = %q, want %q", got, blob)
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	ctx := context.Background()

	if err := s.Put(ctx, []byte("blob")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, err := s.Get(ctx); err != nil || ok {
		t.Fatalf("Get() after Clear = ok=%v, err=%v", ok, err)
	}

	// Clearing an already-empty store is fine.
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() on empty store error = %v", err)
	}
}

func TestOpenRejectsEmptyDir(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected error")
	}
}
