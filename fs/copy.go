package fs

import (
	"fmt"
	"io"

	"pseudofs/internal/cluster"
	"pseudofs/pkg/types"
)

// writeContentFromReader allocates exactly enough clusters for size bytes
// read from r, writes them cluster-by-cluster (zero-padding the last
// cluster's trailing bytes), and returns the data cluster list. It does
// not attach the chain to an inode — callers pass the result to
// cluster.WriteChain. It leaks no clusters on failure: it checks
// availability before drawing, and frees any drawn cluster if a read
// or write fails partway through.
func (f *FileSystem) writeContentFromReader(size int64, r io.Reader) ([]int32, error) {
	count := cluster.ForSize(int32(size))
	if count == 0 {
		return nil, nil
	}
	if !f.bitmap.CountAvailable(count) {
		return nil, fmt.Errorf("fs: writecontent: not enough free clusters for %d bytes", size)
	}
	clusters := f.bitmap.AllocateN(count)
	if clusters == nil {
		return nil, fmt.Errorf("fs: writecontent: allocation failed for %d bytes", size)
	}

	remaining := size
	buf := make([]byte, f.sb.ClusterSize)
	for _, c := range clusters {
		want := int64(f.sb.ClusterSize)
		if remaining < want {
			want = remaining
		}
		for i := range buf {
			buf[i] = 0
		}
		if _, err := io.ReadFull(r, buf[:want]); err != nil {
			f.bitmap.FreeAll(clusters)
			return nil, fmt.Errorf("fs: writecontent: read source: %w", err)
		}
		if _, err := f.device.WriteAt(buf, f.sb.DataOffset(c)); err != nil {
			f.bitmap.FreeAll(clusters)
			return nil, fmt.Errorf("fs: writecontent: write cluster %d: %w", c, err)
		}
		remaining -= want
	}
	return clusters, nil
}

// attachContent writes size bytes from r into newly allocated clusters and
// attaches them to n's direct/indirect pointers via the cluster chain
// codec, rolling back every drawn cluster (data and indirect pointer
// blocks alike) if any step fails.
func (f *FileSystem) attachContent(n types.Inode, size int64, r io.Reader) (types.Inode, error) {
	dataClusters, err := f.writeContentFromReader(size, r)
	if err != nil {
		return n, err
	}
	n.Size = int32(size)
	n, _, err = cluster.WriteChain(f.device, f.sb, f.bitmap, n, dataClusters)
	if err != nil {
		f.bitmap.FreeAll(dataClusters)
		return n, err
	}
	return n, nil
}
