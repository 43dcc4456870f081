package inodetable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pseudofs/internal/inodetable"
	"pseudofs/pkg/image"
	"pseudofs/pkg/types"
)

func newDevice(t *testing.T) *image.Image {
	t.Helper()
	img, err := image.Create(t.TempDir()+"/disk.dat", 1<<20)
	require.NoError(t, err)
	t.Cleanup(func() { img.Close() })
	return img
}

func TestAllocateFirstFitSkipsUsed(t *testing.T) {
	dev := newDevice(t)
	tbl := inodetable.NewAllFree(dev, 0)

	id := tbl.Allocate()
	assert.Equal(t, int32(0), id)

	id2 := tbl.Allocate()
	assert.Equal(t, int32(1), id2)
}

func TestFreeResetsAllFields(t *testing.T) {
	dev := newDevice(t)
	tbl := inodetable.NewAllFree(dev, 0)

	id := tbl.Allocate()
	n := tbl.Get(id)
	n.IsDir = true
	n.ParentID = 0
	n.Size = 42
	n.Direct[0] = 7
	tbl.Set(n)

	tbl.Free(id)
	freed := tbl.Get(id)
	assert.True(t, freed.IsFree)
	assert.False(t, freed.IsDir)
	assert.Equal(t, int32(0), freed.Size)
	assert.Equal(t, int32(types.NullPointer), freed.ParentID)
	for _, d := range freed.Direct {
		assert.Equal(t, int32(types.NullPointer), d)
	}
}

func TestPersistAndLoadRoundTrip(t *testing.T) {
	dev := newDevice(t)
	tbl := inodetable.NewAllFree(dev, 0)

	id := tbl.Allocate()
	n := tbl.Get(id)
	n.IsDir = true
	n.ParentID = 0
	n.Size = 24
	tbl.Set(n)
	require.NoError(t, tbl.Persist())

	reloaded, err := inodetable.Load(dev, 0)
	require.NoError(t, err)
	got := reloaded.Get(id)
	assert.True(t, got.IsDir)
	assert.Equal(t, int32(24), got.Size)
}

func TestAllocateExhaustedReturnsNullPointer(t *testing.T) {
	dev := newDevice(t)
	tbl := inodetable.NewAllFree(dev, 0)

	for i := 0; i < int(types.InodesCount); i++ {
		assert.NotEqual(t, int32(types.NullPointer), tbl.Allocate())
	}
	assert.Equal(t, int32(types.NullPointer), tbl.Allocate())
}
