package fs

import (
	"pseudofs/pkg/types"
)

// Cat returns the content of the file at path. If the target is a
// symlink, the link is followed (recursively, if the target is itself a
// symlink) before reading. It fails if the target is a directory.
func Cat(f *FileSystem, path string) ([]byte, error) {
	id, err := f.resolve(path)
	if err != nil {
		f.logf("cat: resolve %q: %v", path, err)
		return nil, err
	}
	if id == types.NullPointer {
		f.statusf(types.StatusFileNotFound)
		return nil, types.NewError("cat", types.StatusFileNotFound)
	}

	n := f.loadInode(id)
	if n.IsDir {
		f.statusf(types.StatusCannotPrintDirectory)
		return nil, types.NewError("cat", types.StatusCannotPrintDirectory)
	}
	if n.IsSymlink {
		n, err = f.resolveSymlink(n)
		if err != nil {
			f.logf("cat: %v", err)
			return nil, err
		}
	}

	content, err := readContent(f.device, f.sb, n)
	if err != nil {
		f.logf("cat: %v", err)
		return nil, err
	}
	f.statusf(types.StatusOK)
	return content, nil
}
