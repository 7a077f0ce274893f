package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/internal/shared/storage/object"
)

func TestPutOpenDelete(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	obj, err := store.Put(ctx, "user-1", "Jane_Doe.docx", "application/octet-stream", strings.NewReader("docx-bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), obj.Size)
	assert.True(t, strings.HasSuffix(obj.Key, "_Jane_Doe.docx"))

	rc, err := store.Open(ctx, obj.Key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "docx-bytes", string(data))

	require.NoError(t, store.Delete(ctx, obj.Key))
	_, err = store.Open(ctx, obj.Key)
	assert.ErrorIs(t, err, object.ErrNotFound)
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Open(context.Background(), "../etc/passwd")
	assert.Error(t, err)
}

func TestPutKeepsTraversalNamesInsideRoot(t *testing.T) {
	root := t.TempDir()
	store := New(root)

	obj, err := store.Put(context.Background(), "user-1", "../../Sr.._x.docx", "", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotContains(t, obj.Key, "..")
	assert.True(t, strings.HasSuffix(obj.Key, "_Sr._x.docx"), obj.Key)

	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(obj.Key)))
	assert.NoError(t, err)
}
