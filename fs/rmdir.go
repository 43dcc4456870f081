package fs

import (
	"fmt"

	"pseudofs/internal/directory"
	"pseudofs/pkg/types"
)

// emptyDirSize is the size of a directory holding only "." and "..".
var emptyDirSize = directory.SizeFor(2)

// Rmdir removes the empty, non-root, non-current directory at path.
func Rmdir(f *FileSystem, path string) error {
	targetID, err := f.resolve(path)
	if err != nil {
		f.logf("rmdir: resolve %q: %v", path, err)
		return err
	}
	if targetID == types.NullPointer {
		f.statusf(types.StatusPathNotFound)
		return types.NewError("rmdir", types.StatusPathNotFound)
	}

	target := f.loadInode(targetID)
	if !target.IsDir {
		f.statusf(types.StatusTargetNotDirectory)
		return types.NewError("rmdir", types.StatusTargetNotDirectory)
	}
	if targetID == types.RootInodeID {
		f.statusf(types.StatusCannotRemoveRoot)
		return types.NewError("rmdir", types.StatusCannotRemoveRoot)
	}
	if targetID == f.currentID {
		f.statusf(types.StatusCannotRemoveCurrent)
		return types.NewError("rmdir", types.StatusCannotRemoveCurrent)
	}
	if target.Size != emptyDirSize {
		f.statusf(types.StatusNotEmpty)
		return types.NewError("rmdir", types.StatusNotEmpty)
	}

	parent := f.loadInode(target.ParentID)
	entries, err := f.readDir(parent)
	if err != nil {
		return fmt.Errorf("fs: rmdir: read parent directory: %w", err)
	}
	name, ok := nameInParent(entries, targetID)
	if !ok {
		return fmt.Errorf("fs: rmdir: inode %d not found in parent %d", targetID, target.ParentID)
	}
	entries = directory.Without(entries, name)
	parent, err = f.writeDir(parent, entries)
	if err != nil {
		return fmt.Errorf("fs: rmdir: update parent directory: %w", err)
	}
	f.inodes.Set(parent)

	directory.Release(target, f.bitmap.Free)
	freed := types.FreeInode(targetID)
	f.inodes.Set(freed)

	if err := f.persistMeta(); err != nil {
		return fmt.Errorf("fs: rmdir: persist: %w", err)
	}
	f.statusf(types.StatusOK)
	return nil
}

// nameInParent finds the name an entry list uses for a given child inode
// id, skipping "." and ".." (used to find the name a directory is known by
// in its parent before detaching it).
func nameInParent(entries []types.DirEntry, id int32) (string, bool) {
	for _, e := range entries {
		name := e.NameString()
		if name == "." || name == ".." {
			continue
		}
		if e.InodeID == id {
			return name, true
		}
	}
	return "", false
}
