package fs

import (
	"path/filepath"
	"strings"

	"pseudofs/pkg/types"
)

// splitParent splits path on its last "/": everything before becomes the
// parent path (or "" if path has no "/", meaning "the current directory"),
// and everything after becomes the last component.
func splitParent(path string) (parentPath, name string) {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return "", path
	}
	return path[:i+1], path[i+1:]
}

// sourceBaseName returns the final path component of source, e.g.
// "/doc/home/data.pdf" -> "data.pdf".
func sourceBaseName(source string) string {
	_, name := splitParent(source)
	return name
}

// destination resolves the shared cp/mv/incp destination rule:
//   - if destPath has no "/", the destination name is destPath itself,
//     and the destination directory is the current directory
//   - if destPath ends in "/", the destination name is source's basename
//   - if destPath resolves to an existing directory inode, the
//     destination name is source's basename (the recommended resolution
//     of the incp ambiguity: prefer directory interpretation)
//   - otherwise, the last "/"-delimited component of destPath is the
//     destination name, and everything before it is the destination dir
func (f *FileSystem) destination(source, destPath string) (destDirID int32, destName string, err error) {
	if !strings.Contains(destPath, "/") {
		return f.currentID, types.NormalizeName(destPath), nil
	}

	if strings.HasSuffix(destPath, "/") {
		dirID, rerr := f.resolve(destPath)
		if rerr != nil {
			return types.NullPointer, "", rerr
		}
		return dirID, types.NormalizeName(sourceBaseName(source)), nil
	}

	if id, rerr := f.resolve(destPath); rerr == nil && id != types.NullPointer {
		n := f.loadInode(id)
		if n.IsDir {
			return id, types.NormalizeName(sourceBaseName(source)), nil
		}
	}

	parentPath, name := splitParent(destPath)
	dirID, rerr := f.resolve(parentPath)
	if rerr != nil {
		return types.NullPointer, "", rerr
	}
	return dirID, types.NormalizeName(name), nil
}

// cleanHostPath is a thin wrapper over filepath.Clean used when importing
// from or exporting to the host file system, kept separate so intent at
// call sites is explicit.
func cleanHostPath(p string) string { return filepath.Clean(p) }
