package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshview/loader/store"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestGetEmpty(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	blob, ok, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, blob)
}

func TestPutGetRoundtrip(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	blob := []byte{0x67, 0x6C, 0x54, 0x46, 0x00, 0x01}

	require.NoError(t, s.Put(context.Background(), blob))

	got, ok, err := s.Get(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, blob, got)
}

func TestPutReplacesPriorBlob(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, []byte("blob-a")))
	require.NoError(t, s.Put(ctx, []byte("blob-b")))

	got, ok, err := s.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("blob-b"), got, "only the last blob survives")
}

func TestBlobPersistsAcrossSessions(t *testing.T) {
	t.Parallel()

	s, path := openTestStore(t)
	ctx := context.Background()
	blob := []byte("persisted-model")

	require.NoError(t, s.Put(ctx, blob))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, blob, got)
}

func TestClear(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, []byte("blob")))
	require.NoError(t, s.Clear(ctx))

	_, ok, err := s.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := Open("")
	require.ErrorIs(t, err, store.ErrUnavailable)
}

func TestOpenRejectsNewerSchema(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "model.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.db.Exec("PRAGMA user_version = 99;")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(path)
	require.ErrorIs(t, err, store.ErrUnavailable)
}

func TestOpenCorruptFileReportsUnavailable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "model.db")
	require.NoError(t, os.WriteFile(path, []byte("not a sqlite database at all"), 0o600))

	_, err := Open(path)
	require.ErrorIs(t, err, store.ErrUnavailable)
}

func TestCustomKey(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "model.db")
	s, err := Open(path, WithKey("preview"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, []byte("blob")))

	got, ok, err := s.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("blob"), got)
}
