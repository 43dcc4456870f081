package bitmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pseudofs/internal/bitmap"
	"pseudofs/pkg/image"
)

func newDevice(t *testing.T) *image.Image {
	t.Helper()
	img, err := image.Create(t.TempDir()+"/disk.dat", 4096)
	require.NoError(t, err)
	t.Cleanup(func() { img.Close() })
	return img
}

func TestAllocateFirstFit(t *testing.T) {
	dev := newDevice(t)
	b := bitmap.NewAllFree(dev, 0, 4)

	i := b.Allocate()
	assert.Equal(t, int32(0), i)
	i = b.Allocate()
	assert.Equal(t, int32(1), i)
}

func TestAllocateExhaustedReturnsNullPointer(t *testing.T) {
	dev := newDevice(t)
	b := bitmap.NewAllFree(dev, 0, 2)

	b.Allocate()
	b.Allocate()
	assert.Equal(t, int32(-1), b.Allocate())
}

func TestFreeMakesClusterAllocatableAgain(t *testing.T) {
	dev := newDevice(t)
	b := bitmap.NewAllFree(dev, 0, 2)

	b.Allocate()
	b.Free(0)
	assert.Equal(t, int32(0), b.Allocate())
}

func TestCountAvailableShortCircuits(t *testing.T) {
	dev := newDevice(t)
	b := bitmap.NewAllFree(dev, 0, 10)

	assert.True(t, b.CountAvailable(10))
	assert.False(t, b.CountAvailable(11))
}

func TestAllocateNFailsWithoutDrawingAny(t *testing.T) {
	dev := newDevice(t)
	b := bitmap.NewAllFree(dev, 0, 3)

	got := b.AllocateN(5)
	assert.Nil(t, got)
	assert.Equal(t, 3, b.FreeCount())
}

func TestPersistAndLoadRoundTrip(t *testing.T) {
	dev := newDevice(t)
	b := bitmap.NewAllFree(dev, 0, 8)
	b.Allocate()
	b.Allocate()
	require.NoError(t, b.Persist())

	reloaded, err := bitmap.Load(dev, 0, 8)
	require.NoError(t, err)
	assert.Equal(t, 6, reloaded.FreeCount())
}
