package fs

import (
	"fmt"

	"pseudofs/internal/directory"
	"pseudofs/pkg/types"
)

// Mv moves/renames the file (or symlink) at srcPath to destPath, resolving
// the destination name/directory via the shared destination rule. The
// source's inode id is preserved. Directories cannot be moved.
func Mv(f *FileSystem, srcPath, destPath string) error {
	srcID, err := f.resolve(srcPath)
	if err != nil {
		f.logf("mv: resolve %q: %v", srcPath, err)
		return err
	}
	if srcID == types.NullPointer {
		f.statusf(types.StatusFileNotFound)
		return types.NewError("mv", types.StatusFileNotFound)
	}

	src := f.loadInode(srcID)
	if src.IsDir {
		f.statusf(types.StatusCannotMoveDirectory)
		return types.NewError("mv", types.StatusCannotMoveDirectory)
	}

	destDirID, destName, err := f.destination(srcPath, destPath)
	if err != nil {
		f.logf("mv: resolve destination %q: %v", destPath, err)
		return err
	}
	destDir := f.loadInode(destDirID)
	if !destDir.IsDir {
		f.statusf(types.StatusTargetNotDirectory)
		return types.NewError("mv", types.StatusTargetNotDirectory)
	}

	destEntries, err := f.readDir(destDir)
	if err != nil {
		return fmt.Errorf("fs: mv: read destination directory: %w", err)
	}
	if _, exists := directory.Find(destEntries, destName); exists {
		f.statusf(types.StatusExists)
		return types.NewError("mv", types.StatusExists)
	}

	oldParent := f.loadInode(src.ParentID)
	oldEntries, err := f.readDir(oldParent)
	if err != nil {
		return fmt.Errorf("fs: mv: read source directory: %w", err)
	}
	oldName, ok := nameInParent(oldEntries, srcID)
	if !ok {
		return fmt.Errorf("fs: mv: inode %d not found in parent %d", srcID, src.ParentID)
	}
	oldEntries = directory.Without(oldEntries, oldName)

	// Source and destination may be the same directory (an in-place
	// rename): keep the two entry lists consistent by deriving
	// destEntries from the post-removal oldEntries rather than the
	// earlier, now-stale, read.
	if destDirID == src.ParentID {
		destEntries = oldEntries
	}

	oldParent, err = f.writeDir(oldParent, oldEntries)
	if err != nil {
		return fmt.Errorf("fs: mv: update source directory: %w", err)
	}
	f.inodes.Set(oldParent)

	src.ParentID = destDirID
	f.inodes.Set(src)

	destEntries = append(destEntries, types.NewDirEntry(srcID, destName))
	destDir, err = f.writeDir(destDir, destEntries)
	if err != nil {
		return fmt.Errorf("fs: mv: add entry to destination: %w", err)
	}
	f.inodes.Set(destDir)

	if err := f.persistMeta(); err != nil {
		return fmt.Errorf("fs: mv: persist: %w", err)
	}
	f.statusf(types.StatusOK)
	return nil
}
