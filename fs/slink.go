package fs

import (
	"bytes"
	"fmt"
	"strings"

	"pseudofs/internal/directory"
	"pseudofs/pkg/types"
)

// Slink creates a symlink at linkName pointing at targetPath. The target
// must resolve to an existing, non-directory inode; the link's payload is
// the target's absolute path as produced by reverse resolution, with its
// trailing "/" stripped.
func Slink(f *FileSystem, targetPath, linkName string) error {
	targetID, err := f.resolve(targetPath)
	if err != nil {
		f.logf("slink: resolve %q: %v", targetPath, err)
		return err
	}
	if targetID == types.NullPointer {
		f.statusf(types.StatusFileNotFound)
		return types.NewError("slink", types.StatusFileNotFound)
	}
	target := f.loadInode(targetID)
	if target.IsDir {
		f.statusf(types.StatusTargetNotFile)
		return types.NewError("slink", types.StatusTargetNotFile)
	}

	absPath, err := f.resolver.ToPath(targetID)
	if err != nil {
		f.logf("slink: reverse-resolve %d: %v", targetID, err)
		return err
	}
	absPath = strings.TrimSuffix(absPath, "/")

	parentPath, name := splitParent(linkName)
	parentID := f.currentID
	if parentPath != "" {
		id, rerr := f.resolve(parentPath)
		if rerr != nil {
			f.logf("slink: resolve parent %q: %v", parentPath, rerr)
			return rerr
		}
		if id == types.NullPointer {
			f.statusf(types.StatusPathNotFound)
			return types.NewError("slink", types.StatusPathNotFound)
		}
		parentID = id
	}

	parent := f.loadInode(parentID)
	if !parent.IsDir {
		f.statusf(types.StatusTargetNotDirectory)
		return types.NewError("slink", types.StatusTargetNotDirectory)
	}

	entries, err := f.readDir(parent)
	if err != nil {
		return fmt.Errorf("fs: slink: read parent directory: %w", err)
	}
	name = types.NormalizeName(name)
	if _, exists := directory.Find(entries, name); exists {
		f.statusf(types.StatusExists)
		return types.NewError("slink", types.StatusExists)
	}

	newID := f.inodes.Allocate()
	if newID == types.NullPointer {
		f.logf("slink: no free inode")
		return fmt.Errorf("fs: slink: no free inode")
	}

	n := f.loadInode(newID)
	n.IsDir = false
	n.IsSymlink = true
	n.ParentID = parentID
	n, err = f.attachContent(n, int64(len(absPath)), bytes.NewReader([]byte(absPath)))
	if err != nil {
		f.inodes.Free(newID)
		f.logf("slink: %v", err)
		return fmt.Errorf("fs: slink: %w", err)
	}
	f.inodes.Set(n)

	entries = append(entries, types.NewDirEntry(newID, name))
	parent, err = f.writeDir(parent, entries)
	if err != nil {
		return fmt.Errorf("fs: slink: add entry to parent: %w", err)
	}
	f.inodes.Set(parent)

	if err := f.persistMeta(); err != nil {
		return fmt.Errorf("fs: slink: persist: %w", err)
	}
	f.statusf(types.StatusOK)
	return nil
}
