package filestore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fooddelivery/internal/adapters/out/filestore"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func newStore(t *testing.T) *filestore.LocalStore {
	t.Helper()
	store, err := filestore.NewLocalStore(filepath.Join(t.TempDir(), "uploads", "orders"))
	require.NoError(t, err)
	return store
}

func TestLocalStore_StoreOpenDelete(t *testing.T) {
	ctx := t.Context()
	store := newStore(t)

	ref, err := store.Store(ctx, "receipt.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".png"))
	assert.Equal(t, filepath.Base(ref), ref)

	f, err := store.Open(ref)
	require.NoError(t, err)
	data, err := os.ReadFile(f.Name())
	require.NoError(t, f.Close())
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(ctx, ref))
	_, err = store.Open(ref)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	assert.NoError(t, store.Delete(ctx, ref), "second delete is a no-op")
}

func TestLocalStore_ReferencesAreUnique(t *testing.T) {
	ctx := t.Context()
	store := newStore(t)

	first, err := store.Store(ctx, "proof.pdf", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Store(ctx, "proof.pdf", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalStore_FailedCopyLeavesNothing(t *testing.T) {
	store := newStore(t)

	_, err := store.Store(t.Context(), "proof.jpg", failingReader{})
	require.Error(t, err)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStore_RejectsEscapingReferences(t *testing.T) {
	store := newStore(t)

	for _, ref := range []string{"", "..", "../etc/passwd", "a/b.png"} {
		assert.ErrorIs(t, store.Delete(t.Context(), ref), errs.ErrValueIsInvalid, ref)
	}
}

func TestLocalStore_CancelledContext(t *testing.T) {
	store := newStore(t)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := store.Store(ctx, "proof.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewLocalStore_RequiresDir(t *testing.T) {
	_, err := filestore.NewLocalStore("  ")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
