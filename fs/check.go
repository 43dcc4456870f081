package fs

import (
	"fmt"

	"pseudofs/internal/cluster"
	"pseudofs/pkg/types"
)

// Check validates the live image against its structural invariants —
// no claimed cluster is double-allocated, every directory entry points
// at a live inode whose ParentID agrees, names within a directory are
// unique, no inode's size exceeds the geometry maximum for its pointer
// layout, and the bitmap's free count, claimed-cluster count, and
// indirect-pointer-block reservation sum to the total cluster count —
// and reports the first violation found, or "OK". It is read-only: it
// never repairs an image.
func (f *FileSystem) Check() (string, error) {
	inodes := f.inodes.All()

	usedClusters := make(map[int32]int32) // cluster index -> owning inode id
	reservation := 0

	for _, n := range inodes {
		if n.IsFree {
			continue
		}

		// Invariant 6: size within geometry.
		maxSize := int64(types.MaxClustersForFile) * int64(f.sb.ClusterSize)
		if int64(n.Size) > maxSize {
			return "", fmt.Errorf("fs: check: inode %d: size %d exceeds geometry limit %d", n.ID, n.Size, maxSize)
		}

		// Invariant 1: every cluster reachable via this inode's chain is
		// not double-claimed by another inode (and therefore not free,
		// since Allocate never hands out the same index twice).
		// Directories hold all NumDirect reserved clusters regardless of
		// how many their current size needs.
		var clusters []int32
		if n.IsDir {
			for _, c := range n.Direct {
				if c != types.NullPointer {
					clusters = append(clusters, c)
				}
			}
		} else {
			var err error
			clusters, err = cluster.ReadChain(f.device, f.sb, n)
			if err != nil {
				return "", fmt.Errorf("fs: check: inode %d: read chain: %w", n.ID, err)
			}
		}
		for _, c := range clusters {
			if owner, claimed := usedClusters[c]; claimed {
				return fmt.Sprintf("INCONSISTENT: cluster %d claimed by inodes %d and %d", c, owner, n.ID), nil
			}
			usedClusters[c] = n.ID
		}
		reservation += cluster.IndirectOverhead(n)

		if n.IsDir {
			entries, err := f.readDir(n)
			if err != nil {
				return "", fmt.Errorf("fs: check: inode %d: read directory: %w", n.ID, err)
			}

			// Invariant 4: name uniqueness.
			seen := make(map[string]struct{}, len(entries))
			for _, e := range entries {
				name := e.NameString()
				if _, dup := seen[name]; dup {
					return fmt.Sprintf("INCONSISTENT: directory %d has duplicate name %q", n.ID, name), nil
				}
				seen[name] = struct{}{}
			}

			// Invariant 3: every entry (except . and ..) names a non-free
			// inode whose parent is this directory.
			for _, e := range entries {
				name := e.NameString()
				if name == "." || name == ".." {
					continue
				}
				child := f.loadInode(e.InodeID)
				if child.IsFree {
					return fmt.Sprintf("INCONSISTENT: directory %d entry %q points at free inode %d", n.ID, name, e.InodeID), nil
				}
				if child.ParentID != n.ID {
					return fmt.Sprintf("INCONSISTENT: directory %d entry %q has child %d with parent %d", n.ID, name, e.InodeID, child.ParentID), nil
				}
			}
		}
	}

	// Invariant 7: free count + claimed data clusters + indirect overhead
	// accounts for every cluster.
	claimed := len(usedClusters)
	total := int(f.sb.ClusterCount)
	free := f.bitmap.FreeCount()
	if free+claimed+reservation != total {
		return fmt.Sprintf("INCONSISTENT: free=%d + claimed=%d + reserved=%d != total=%d", free, claimed, reservation, total), nil
	}

	return types.StatusOK, nil
}
