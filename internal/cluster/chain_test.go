package cluster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pseudofs/internal/bitmap"
	"pseudofs/internal/cluster"
	"pseudofs/pkg/image"
	"pseudofs/pkg/types"
)

func newFixture(t *testing.T, clusterCount int32) (types.BlockDevice, *types.Superblock, *bitmap.Bitmap) {
	t.Helper()
	img, err := image.Create(t.TempDir()+"/disk.dat", 1<<24)
	require.NoError(t, err)
	t.Cleanup(func() { img.Close() })

	sb := types.NewSuperblock(1<<24, clusterCount)
	bm := bitmap.NewAllFree(img, int64(sb.BitmapStart), clusterCount)
	return img, sb, bm
}

func writeAndRead(t *testing.T, size int32) []int32 {
	t.Helper()
	needed := cluster.ForSize(size)
	dev, sb, bm := newFixture(t, int32(needed)+int32(types.PointersPerCluster)+4)

	n := types.Inode{ID: 7}
	for i := range n.Direct {
		n.Direct[i] = types.NullPointer
	}
	n.Size = size

	drawn := bm.AllocateN(needed)
	require.NotNil(t, drawn)

	n, reserved, err := cluster.WriteChain(dev, sb, bm, n, drawn)
	require.NoError(t, err)

	got, err := cluster.ReadChain(dev, sb, n)
	require.NoError(t, err)
	assert.Equal(t, drawn, got)

	assert.Equal(t, cluster.IndirectOverhead(n), len(reserved))
	return reserved
}

func TestForSizeRounding(t *testing.T) {
	assert.Equal(t, 0, cluster.ForSize(0))
	assert.Equal(t, 1, cluster.ForSize(1))
	assert.Equal(t, 1, cluster.ForSize(types.ClusterSize))
	assert.Equal(t, 2, cluster.ForSize(types.ClusterSize+1))
}

func TestWriteReadDirectOnly(t *testing.T) {
	writeAndRead(t, int32(types.NumDirect)*types.ClusterSize)
}

func TestWriteReadSingleIndirect(t *testing.T) {
	size := int32(types.NumDirect+10) * types.ClusterSize
	reserved := writeAndRead(t, size)
	assert.Len(t, reserved, 1)
}

func TestWriteReadDoubleIndirect(t *testing.T) {
	size := int32(types.NumDirect+types.PointersPerCluster+10) * types.ClusterSize
	reserved := writeAndRead(t, size)
	assert.Len(t, reserved, 3)
}

func TestWriteChainRejectsOversizedChain(t *testing.T) {
	dev, sb, bm := newFixture(t, 4)
	n := types.Inode{ID: 1}
	clusters := make([]int32, types.MaxClustersForFile+1)
	_, _, err := cluster.WriteChain(dev, sb, bm, n, clusters)
	assert.Error(t, err)
}

func TestWriteChainRollsBackOnExhaustion(t *testing.T) {
	needed := types.NumDirect + 10
	dev, sb, bm := newFixture(t, int32(needed))

	n := types.Inode{ID: 2}
	for i := range n.Direct {
		n.Direct[i] = types.NullPointer
	}
	drawn := bm.AllocateN(needed)
	require.NotNil(t, drawn)

	before := bm.FreeCount()
	_, _, err := cluster.WriteChain(dev, sb, bm, n, drawn)
	assert.Error(t, err)
	assert.Equal(t, before, bm.FreeCount())
}

func TestReleaseAllFreesDataAndIndirectBlocks(t *testing.T) {
	size := int32(types.NumDirect+types.PointersPerCluster+5) * types.ClusterSize
	needed := cluster.ForSize(size)
	dev, sb, bm := newFixture(t, int32(needed)+int32(types.PointersPerCluster)+4)

	n := types.Inode{ID: 3}
	for i := range n.Direct {
		n.Direct[i] = types.NullPointer
	}
	n.Size = size
	drawn := bm.AllocateN(needed)
	require.NotNil(t, drawn)

	n, _, err := cluster.WriteChain(dev, sb, bm, n, drawn)
	require.NoError(t, err)

	total := bm.FreeCount()
	require.NoError(t, cluster.ReleaseAll(dev, sb, bm, n))
	assert.Greater(t, bm.FreeCount(), total)
}
