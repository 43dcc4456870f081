package fs

import (
	"fmt"

	"pseudofs/internal/cluster"
	"pseudofs/pkg/types"
)

// InfoResult is the structured dump Info returns: the common inode fields
// for every kind, plus the resolved cluster list for files. Directories
// and symlinks report the common fields too, with an empty cluster list.
type InfoResult struct {
	InodeID  int32
	ParentID int32
	Kind     string
	Size     int32
	Clusters []int32
}

func kindString(k types.Kind) string {
	switch k {
	case types.KindDirectory:
		return "directory"
	case types.KindFile:
		return "file"
	case types.KindSymlink:
		return "symlink"
	default:
		return "free"
	}
}

// Info dumps inode fields for path. The cluster list is populated only
// for files; directories are capped to their direct-pointer clusters and
// symlinks' payload clusters are small enough not to need the diagnostic.
func Info(f *FileSystem, path string) (InfoResult, error) {
	id, err := f.resolve(path)
	if err != nil {
		f.logf("info: resolve %q: %v", path, err)
		return InfoResult{}, err
	}
	if id == types.NullPointer {
		f.statusf(types.StatusPathNotFound)
		return InfoResult{}, types.NewError("info", types.StatusPathNotFound)
	}

	n := f.loadInode(id)
	result := InfoResult{
		InodeID:  n.ID,
		ParentID: n.ParentID,
		Kind:     kindString(n.Kind()),
		Size:     n.Size,
	}
	if n.Kind() == types.KindFile {
		clusters, err := cluster.ReadChain(f.device, f.sb, n)
		if err != nil {
			f.logf("info: %v", err)
			return InfoResult{}, fmt.Errorf("fs: info: %w", err)
		}
		result.Clusters = clusters
	}

	f.statusf(types.StatusOK)
	return result, nil
}
