package fs

import (
	"fmt"

	"pseudofs/internal/cluster"
	"pseudofs/internal/directory"
	"pseudofs/pkg/types"
)

// Rm removes the non-directory (file or symlink) at path. A symlink is
// removed by id; the inode it points at is left untouched.
func Rm(f *FileSystem, path string) error {
	targetID, err := f.resolve(path)
	if err != nil {
		f.logf("rm: resolve %q: %v", path, err)
		return err
	}
	if targetID == types.NullPointer {
		f.statusf(types.StatusFileNotFound)
		return types.NewError("rm", types.StatusFileNotFound)
	}

	target := f.loadInode(targetID)
	if target.IsDir {
		f.statusf(types.StatusTargetNotFile)
		return types.NewError("rm", types.StatusTargetNotFile)
	}

	parent := f.loadInode(target.ParentID)
	entries, err := f.readDir(parent)
	if err != nil {
		return fmt.Errorf("fs: rm: read parent directory: %w", err)
	}
	name, ok := nameInParent(entries, targetID)
	if !ok {
		return fmt.Errorf("fs: rm: inode %d not found in parent %d", targetID, target.ParentID)
	}
	entries = directory.Without(entries, name)
	parent, err = f.writeDir(parent, entries)
	if err != nil {
		return fmt.Errorf("fs: rm: update parent directory: %w", err)
	}
	f.inodes.Set(parent)

	if err := cluster.ReleaseAll(f.device, f.sb, f.bitmap, target); err != nil {
		return fmt.Errorf("fs: rm: release clusters: %w", err)
	}
	freed := types.FreeInode(targetID)
	f.inodes.Set(freed)

	if err := f.persistMeta(); err != nil {
		return fmt.Errorf("fs: rm: persist: %w", err)
	}
	f.statusf(types.StatusOK)
	return nil
}
