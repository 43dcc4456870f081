package directory_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pseudofs/internal/bitmap"
	"pseudofs/internal/directory"
	"pseudofs/pkg/image"
	"pseudofs/pkg/types"
)

func newFixture(t *testing.T) (types.BlockDevice, *types.Superblock, *bitmap.Bitmap) {
	t.Helper()
	img, err := image.Create(t.TempDir()+"/disk.dat", 1<<20)
	require.NoError(t, err)
	t.Cleanup(func() { img.Close() })

	sb := types.NewSuperblock(1<<20, 100)
	bm := bitmap.NewAllFree(img, int64(sb.BitmapStart), sb.ClusterCount)
	return img, sb, bm
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	dev, sb, bm := newFixture(t)

	n := types.Inode{ID: 0, ParentID: 0, IsDir: true}
	for i := range n.Direct {
		n.Direct[i] = types.NullPointer
	}
	n, err := directory.Reserve(n, bm.Allocate, bm.Free)
	require.NoError(t, err)

	entries := directory.NewRoot(0)
	n, err = directory.Write(dev, sb, n, entries)
	require.NoError(t, err)
	assert.Equal(t, directory.SizeFor(2), n.Size)

	got, err := directory.Read(dev, sb, n)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ".", got[0].NameString())
	assert.Equal(t, "..", got[1].NameString())
}

func TestWriteRejectsDuplicateNames(t *testing.T) {
	dev, sb, bm := newFixture(t)

	n := types.Inode{ID: 0, ParentID: 0, IsDir: true}
	for i := range n.Direct {
		n.Direct[i] = types.NullPointer
	}

	n, err := directory.Reserve(n, bm.Allocate, bm.Free)
	require.NoError(t, err)

	entries := append(directory.NewRoot(0), types.NewDirEntry(5, "."))
	_, err = directory.Write(dev, sb, n, entries)
	assert.Error(t, err)
}

func TestWriteRejectsTooManyEntries(t *testing.T) {
	dev, sb, bm := newFixture(t)

	n := types.Inode{ID: 0, ParentID: 0, IsDir: true}
	for i := range n.Direct {
		n.Direct[i] = types.NullPointer
	}

	n, err := directory.Reserve(n, bm.Allocate, bm.Free)
	require.NoError(t, err)

	entries := make([]types.DirEntry, directory.MaxEntries+1)
	for i := range entries {
		entries[i] = types.NewDirEntry(int32(i), "n")
	}
	_, err = directory.Write(dev, sb, n, entries)
	assert.Error(t, err)
}

func TestFindAndWithout(t *testing.T) {
	entries := []types.DirEntry{
		types.NewDirEntry(0, "."),
		types.NewDirEntry(0, ".."),
		types.NewDirEntry(3, "note"),
	}

	e, ok := directory.Find(entries, "note")
	require.True(t, ok)
	assert.Equal(t, int32(3), e.InodeID)

	rest := directory.Without(entries, "note")
	assert.Len(t, rest, 2)
	_, ok = directory.Find(rest, "note")
	assert.False(t, ok)
}

func TestWriteSpansMultiplePreReservedClusters(t *testing.T) {
	dev, sb, bm := newFixture(t)

	n := types.Inode{ID: 0, ParentID: 0, IsDir: true}
	for i := range n.Direct {
		n.Direct[i] = types.NullPointer
	}
	n, err := directory.Reserve(n, bm.Allocate, bm.Free)
	require.NoError(t, err)
	for i := 0; i < types.NumDirect; i++ {
		assert.NotEqual(t, types.NullPointer, n.Direct[i])
	}

	entriesPerCluster := int(sb.ClusterSize) / types.DirEntrySize
	entries := directory.NewRoot(0)
	for i := 0; i < entriesPerCluster+5; i++ {
		entries = append(entries, types.NewDirEntry(int32(i+10), fmt.Sprintf("f%d", i)))
	}

	n, err = directory.Write(dev, sb, n, entries)
	require.NoError(t, err)

	got, err := directory.Read(dev, sb, n)
	require.NoError(t, err)
	assert.Len(t, got, len(entries))
}

func TestReserveRollsBackOnExhaustion(t *testing.T) {
	dev, _, _ := newFixture(t)
	bm2 := bitmap.NewAllFree(dev, 0, int32(types.NumDirect-1))

	n := types.Inode{ID: 0, ParentID: 0, IsDir: true}
	for i := range n.Direct {
		n.Direct[i] = types.NullPointer
	}
	_, err := directory.Reserve(n, bm2.Allocate, bm2.Free)
	require.Error(t, err)
	assert.Equal(t, types.NumDirect-1, bm2.FreeCount())
}
