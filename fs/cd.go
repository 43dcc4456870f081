package fs

import (
	"pseudofs/pkg/types"
)

// Cd moves the current-directory pointer to path, if it resolves to a
// directory.
func Cd(f *FileSystem, path string) error {
	id, err := f.resolve(path)
	if err != nil {
		f.logf("cd: resolve %q: %v", path, err)
		return err
	}
	if id == types.NullPointer {
		f.statusf(types.StatusPathNotFound)
		return types.NewError("cd", types.StatusPathNotFound)
	}

	n := f.loadInode(id)
	if !n.IsDir {
		f.statusf(types.StatusTargetNotDirectory)
		return types.NewError("cd", types.StatusTargetNotDirectory)
	}

	f.currentID = id
	f.statusf(types.StatusOK)
	return nil
}
