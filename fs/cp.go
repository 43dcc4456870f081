package fs

import (
	"bytes"
	"fmt"

	"pseudofs/internal/directory"
	"pseudofs/pkg/types"
)

// Cp copies the file (or symlink) at srcPath to destPath, resolving the
// destination name/directory via the shared destination rule. The
// is-symlink flag is preserved on the copy.
func Cp(f *FileSystem, srcPath, destPath string) error {
	srcID, err := f.resolve(srcPath)
	if err != nil {
		f.logf("cp: resolve %q: %v", srcPath, err)
		return err
	}
	if srcID == types.NullPointer {
		f.statusf(types.StatusFileNotFound)
		return types.NewError("cp", types.StatusFileNotFound)
	}

	src := f.loadInode(srcID)
	if src.IsDir {
		f.statusf(types.StatusCannotCopyDirectory)
		return types.NewError("cp", types.StatusCannotCopyDirectory)
	}

	destDirID, destName, err := f.destination(srcPath, destPath)
	if err != nil {
		f.logf("cp: resolve destination %q: %v", destPath, err)
		return err
	}
	destDir := f.loadInode(destDirID)
	if !destDir.IsDir {
		f.statusf(types.StatusTargetNotDirectory)
		return types.NewError("cp", types.StatusTargetNotDirectory)
	}

	destEntries, err := f.readDir(destDir)
	if err != nil {
		return fmt.Errorf("fs: cp: read destination directory: %w", err)
	}
	if _, exists := directory.Find(destEntries, destName); exists {
		f.statusf(types.StatusExists)
		return types.NewError("cp", types.StatusExists)
	}

	content, err := readContent(f.device, f.sb, src)
	if err != nil {
		f.logf("cp: %v", err)
		return err
	}

	newID := f.inodes.Allocate()
	if newID == types.NullPointer {
		f.logf("cp: no free inode")
		return fmt.Errorf("fs: cp: no free inode")
	}

	n := f.loadInode(newID)
	n.IsDir = false
	n.IsSymlink = src.IsSymlink
	n.ParentID = destDirID
	n, err = f.attachContent(n, int64(src.Size), bytes.NewReader(content))
	if err != nil {
		f.inodes.Free(newID)
		f.logf("cp: %v", err)
		return fmt.Errorf("fs: cp: %w", err)
	}
	f.inodes.Set(n)

	destEntries = append(destEntries, types.NewDirEntry(newID, destName))
	destDir, err = f.writeDir(destDir, destEntries)
	if err != nil {
		return fmt.Errorf("fs: cp: add entry to destination: %w", err)
	}
	f.inodes.Set(destDir)

	if err := f.persistMeta(); err != nil {
		return fmt.Errorf("fs: cp: persist: %w", err)
	}
	f.statusf(types.StatusOK)
	return nil
}
