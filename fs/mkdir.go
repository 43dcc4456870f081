package fs

import (
	"fmt"

	"pseudofs/internal/directory"
	"pseudofs/pkg/types"
)

// Mkdir creates a new, empty directory at path.
func Mkdir(f *FileSystem, path string) error {
	parentPath, name := splitParent(path)
	if name == "" {
		f.statusf(types.StatusPathNotFound)
		return types.NewError("mkdir", types.StatusPathNotFound)
	}

	parentID := f.currentID
	if parentPath != "" {
		id, err := f.resolve(parentPath)
		if err != nil {
			f.logf("mkdir: resolve parent %q: %v", parentPath, err)
			return err
		}
		if id == types.NullPointer {
			f.statusf(types.StatusPathNotFound)
			return types.NewError("mkdir", types.StatusPathNotFound)
		}
		parentID = id
	}

	parent := f.loadInode(parentID)
	if !parent.IsDir {
		f.statusf(types.StatusTargetNotDirectory)
		return types.NewError("mkdir", types.StatusTargetNotDirectory)
	}

	entries, err := f.readDir(parent)
	if err != nil {
		return fmt.Errorf("fs: mkdir: read parent directory: %w", err)
	}
	name = types.NormalizeName(name)
	if _, exists := directory.Find(entries, name); exists {
		f.statusf(types.StatusExists)
		return types.NewError("mkdir", types.StatusExists)
	}

	newID := f.inodes.Allocate()
	if newID == types.NullPointer {
		f.logf("mkdir: no free inode")
		return fmt.Errorf("fs: mkdir: no free inode")
	}

	n := f.loadInode(newID)
	n.IsDir = true
	n.ParentID = parentID
	n, err = directory.Reserve(n, f.bitmap.Allocate, f.bitmap.Free)
	if err != nil {
		f.inodes.Free(newID)
		f.logf("mkdir: %v", err)
		return fmt.Errorf("fs: mkdir: %w", err)
	}
	n, err = f.writeDir(n, directory.NewEntries(newID, parentID))
	if err != nil {
		return fmt.Errorf("fs: mkdir: write new directory: %w", err)
	}
	f.inodes.Set(n)

	entries = append(entries, types.NewDirEntry(newID, name))
	parent, err = f.writeDir(parent, entries)
	if err != nil {
		return fmt.Errorf("fs: mkdir: add entry to parent: %w", err)
	}
	f.inodes.Set(parent)

	if err := f.persistMeta(); err != nil {
		return fmt.Errorf("fs: mkdir: persist: %w", err)
	}
	f.statusf(types.StatusOK)
	return nil
}
