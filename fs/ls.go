package fs

import (
	"fmt"

	"pseudofs/pkg/types"
)

// LsEntry is one line of a directory listing.
type LsEntry struct {
	Size     int32
	InodeID  int32
	ParentID int32
	IsDir    bool
	Name     string
	// LinkTarget is the symlink's stored absolute path, empty for
	// non-symlinks.
	LinkTarget string
}

// String renders an entry the way the CLI prints it: "<size> <id> <parent>
// [+|-] <name>", with " -> <target>" appended for symlinks.
func (e LsEntry) String() string {
	marker := "[-]"
	if e.IsDir {
		marker = "[+]"
	}
	s := fmt.Sprintf("%d %d %d %s %s", e.Size, e.InodeID, e.ParentID, marker, e.Name)
	if e.LinkTarget != "" {
		s += " -> " + e.LinkTarget
	}
	return s
}

// Ls lists the entries of path, or the current directory if path is empty.
// path must resolve to a directory.
func Ls(f *FileSystem, path string) ([]LsEntry, error) {
	dirID := f.currentID
	if path != "" {
		id, err := f.resolve(path)
		if err != nil {
			f.logf("ls: resolve %q: %v", path, err)
			return nil, err
		}
		if id == types.NullPointer {
			f.statusf(types.StatusPathNotFound)
			return nil, types.NewError("ls", types.StatusPathNotFound)
		}
		dirID = id
	}

	dir := f.loadInode(dirID)
	if !dir.IsDir {
		f.statusf(types.StatusTargetNotDirectory)
		return nil, types.NewError("ls", types.StatusTargetNotDirectory)
	}

	entries, err := f.readDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fs: ls: read directory: %w", err)
	}

	out := make([]LsEntry, 0, len(entries))
	for _, e := range entries {
		child := f.loadInode(e.InodeID)
		le := LsEntry{
			Size:     child.Size,
			InodeID:  child.ID,
			ParentID: child.ParentID,
			IsDir:    child.IsDir,
			Name:     e.NameString(),
		}
		if child.IsSymlink {
			target, err := readContent(f.device, f.sb, child)
			if err != nil {
				f.logf("ls: read symlink target for %q: %v", le.Name, err)
				return nil, err
			}
			le.LinkTarget = string(target)
		}
		out = append(out, le)
	}
	f.statusf(types.StatusOK)
	return out, nil
}
