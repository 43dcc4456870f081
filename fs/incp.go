package fs

import (
	"fmt"
	"os"

	"pseudofs/internal/directory"
	"pseudofs/pkg/types"
)

// Incp imports the host file at hostPath into the image. If destPath is
// empty, the file lands in the current directory under the host file's
// basename (the CLI's one-argument `incp h` form); otherwise destPath is
// resolved via the shared destination rule.
func Incp(f *FileSystem, hostPath, destPath string) error {
	hostFile, err := os.Open(cleanHostPath(hostPath))
	if err != nil {
		f.logf("incp: open host file %q: %v", hostPath, err)
		f.statusf(types.StatusFileNotFound)
		return types.WrapError("incp", types.StatusFileNotFound, err)
	}
	defer hostFile.Close()

	info, err := hostFile.Stat()
	if err != nil {
		f.logf("incp: stat host file %q: %v", hostPath, err)
		f.statusf(types.StatusFileNotFound)
		return types.WrapError("incp", types.StatusFileNotFound, err)
	}

	var destDirID int32
	var destName string
	if destPath == "" {
		destDirID = f.currentID
		destName = types.NormalizeName(sourceBaseName(hostPath))
	} else {
		destDirID, destName, err = f.destination(hostPath, destPath)
		if err != nil {
			f.logf("incp: resolve destination %q: %v", destPath, err)
			return err
		}
	}

	destDir := f.loadInode(destDirID)
	if !destDir.IsDir {
		f.statusf(types.StatusCannotIncpIntoFile)
		return types.NewError("incp", types.StatusCannotIncpIntoFile)
	}

	destEntries, err := f.readDir(destDir)
	if err != nil {
		return fmt.Errorf("fs: incp: read destination directory: %w", err)
	}
	if _, exists := directory.Find(destEntries, destName); exists {
		f.statusf(types.StatusExists)
		return types.NewError("incp", types.StatusExists)
	}

	newID := f.inodes.Allocate()
	if newID == types.NullPointer {
		f.logf("incp: no free inode")
		return fmt.Errorf("fs: incp: no free inode")
	}

	n := f.loadInode(newID)
	n.IsDir = false
	n.IsSymlink = false
	n.ParentID = destDirID
	n, err = f.attachContent(n, info.Size(), hostFile)
	if err != nil {
		f.inodes.Free(newID)
		f.logf("incp: %v", err)
		return fmt.Errorf("fs: incp: %w", err)
	}
	f.inodes.Set(n)

	destEntries = append(destEntries, types.NewDirEntry(newID, destName))
	destDir, err = f.writeDir(destDir, destEntries)
	if err != nil {
		return fmt.Errorf("fs: incp: add entry to destination: %w", err)
	}
	f.inodes.Set(destDir)

	if err := f.persistMeta(); err != nil {
		return fmt.Errorf("fs: incp: persist: %w", err)
	}
	f.statusf(types.StatusOK)
	return nil
}
