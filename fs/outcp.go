package fs

import (
	"os"

	"pseudofs/pkg/types"
)

// Outcp exports the file at path to the host file system at hostPath,
// truncating (or creating) the host file first. If the source is a
// symlink it is followed (recursively) to a real file before reading.
func Outcp(f *FileSystem, path, hostPath string) error {
	id, err := f.resolve(path)
	if err != nil {
		f.logf("outcp: resolve %q: %v", path, err)
		return err
	}
	if id == types.NullPointer {
		f.statusf(types.StatusFileNotFound)
		return types.NewError("outcp", types.StatusFileNotFound)
	}

	n := f.loadInode(id)
	if n.IsDir {
		f.statusf(types.StatusCannotPrintDirectory)
		return types.NewError("outcp", types.StatusCannotPrintDirectory)
	}
	if n.IsSymlink {
		n, err = f.resolveSymlink(n)
		if err != nil {
			f.logf("outcp: %v", err)
			return err
		}
	}

	content, err := readContent(f.device, f.sb, n)
	if err != nil {
		f.logf("outcp: %v", err)
		return err
	}

	hostFile, err := os.Create(cleanHostPath(hostPath))
	if err != nil {
		f.logf("outcp: create host file %q: %v", hostPath, err)
		f.statusf(types.StatusPathNotFound)
		return types.WrapError("outcp", types.StatusPathNotFound, err)
	}
	defer hostFile.Close()

	if _, err := hostFile.Write(content); err != nil {
		f.logf("outcp: write host file %q: %v", hostPath, err)
		f.statusf(types.StatusPathNotFound)
		return types.WrapError("outcp", types.StatusPathNotFound, err)
	}

	f.statusf(types.StatusOK)
	return nil
}
