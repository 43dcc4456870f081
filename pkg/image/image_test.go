package image_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pseudofs/pkg/image"
)

func TestCreateSizesFileExactly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.dat")

	img, err := image.Create(path, 2048)
	require.NoError(t, err)
	defer img.Close()

	st, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int64(2048), st.Size())

	_, err = img.WriteAt([]byte("hello"), 0)
	require.NoError(t, err)

	buf := make([]byte, 5)
	_, err = img.ReadAt(buf, 0)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf))
}

func TestOpenExistingRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.dat")

	img, err := image.Create(path, 1024)
	require.NoError(t, err)
	_, err = img.WriteAt([]byte("zos"), 100)
	require.NoError(t, err)
	require.NoError(t, img.Sync())
	require.NoError(t, img.Close())

	require.True(t, image.Exists(path))

	reopened, err := image.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	buf := make([]byte, 3)
	_, err = reopened.ReadAt(buf, 100)
	require.NoError(t, err)
	require.Equal(t, "zos", string(buf))
}

func TestExistsFalseForMissingFile(t *testing.T) {
	require.False(t, image.Exists(filepath.Join(t.TempDir(), "missing.dat")))
}
