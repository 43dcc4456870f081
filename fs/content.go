package fs

import (
	"fmt"

	"pseudofs/internal/cluster"
	"pseudofs/pkg/types"
)

// readContent reads inode n's full byte payload by walking its cluster
// chain, truncating the last cluster to n's exact trailing byte count.
// Used by both file content and symlink target-path payloads, since a
// symlink's payload is written as an ordinary cluster chain.
func readContent(device types.BlockDevice, sb *types.Superblock, n types.Inode) ([]byte, error) {
	if n.Size == 0 {
		return nil, nil
	}
	clusters, err := cluster.ReadChain(device, sb, n)
	if err != nil {
		return nil, fmt.Errorf("fs: readcontent: inode %d: %w", n.ID, err)
	}

	out := make([]byte, 0, n.Size)
	remaining := int64(n.Size)
	for _, c := range clusters {
		want := int64(sb.ClusterSize)
		if remaining < want {
			want = remaining
		}
		buf := make([]byte, want)
		if _, err := device.ReadAt(buf, sb.DataOffset(c)); err != nil {
			return nil, fmt.Errorf("fs: readcontent: inode %d: read cluster %d: %w", n.ID, c, err)
		}
		out = append(out, buf...)
		remaining -= want
		if remaining <= 0 {
			break
		}
	}
	return out, nil
}

// resolveSymlink follows n's link chain (n must be a symlink) repeatedly,
// one hop at a time, until it reaches a non-symlink inode. maxHops bounds
// against a cyclic chain.
func (f *FileSystem) resolveSymlink(n types.Inode) (types.Inode, error) {
	const maxHops = 32
	for hops := 0; n.IsSymlink; hops++ {
		if hops >= maxHops {
			return n, fmt.Errorf("fs: resolvesymlink: inode %d: too many hops, likely a cycle", n.ID)
		}
		targetPath, err := readContent(f.device, f.sb, n)
		if err != nil {
			return n, err
		}
		id, err := f.resolve(string(targetPath))
		if err != nil {
			return n, err
		}
		if id == types.NullPointer {
			return n, fmt.Errorf("fs: resolvesymlink: inode %d: target %q not found", n.ID, targetPath)
		}
		n = f.loadInode(id)
	}
	return n, nil
}
