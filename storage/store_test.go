package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSaveAndDelete(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	ref, err := store.Save("lecture.mp4", strings.NewReader("video-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".mp4"))

	data, err := os.ReadFile(filepath.Join(store.Root, ref))
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(data))

	require.NoError(t, store.Delete(ref))
	_, err = os.Stat(filepath.Join(store.Root, ref))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStoreUniqueRefs(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	first, err := store.Save("cover.png", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Save("cover.png", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalStoreDeleteMissingIsNoop(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	assert.NoError(t, store.Delete("never-existed.png"))
	assert.NoError(t, store.Delete(""))
}

func TestFileURL(t *testing.T) {
	assert.Equal(t, "/uploads/abc.png", FileURL("abc.png"))
	assert.Equal(t, "", FileURL(""))
}
