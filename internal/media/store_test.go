package media_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Astemirdum/ebook-service/internal/media"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStore_SaveRemove(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	store, err := media.NewStore(root, zap.NewNop())
	require.NoError(t, err)

	rel, err := store.Save("books", "cover.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join("books", "cover.png"), rel)

	data, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Remove(rel))
	require.NoFileExists(t, filepath.Join(root, rel))
}

func TestStore_SaveStripsDirectories(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	store, err := media.NewStore(root, zap.NewNop())
	require.NoError(t, err)

	// only the base name of an uploaded filename is kept
	rel, err := store.Save("pdfs", "../../etc/book.pdf", strings.NewReader("pdf"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join("pdfs", "book.pdf"), rel)
}

func TestStore_RemoveMissingIsNoError(t *testing.T) {
	t.Parallel()
	store, err := media.NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, store.Remove(filepath.Join("books", "never-existed.png")))
	require.NoError(t, store.Remove(""))
}

func TestStore_RemoveRejectsEscapingPath(t *testing.T) {
	t.Parallel()
	store, err := media.NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	require.Error(t, store.Remove("../outside.txt"))
}
