// Package pathresolver implements forward resolution (a path string to an
// inode id) and reverse resolution (an inode id to its absolute path
// string), including "." / ".." / "/" handling, by walking flat
// directory-entry lookups one path component at a time.
package pathresolver

import (
	"fmt"
	"strings"

	"pseudofs/internal/directory"
	"pseudofs/pkg/types"
)

// InodeLoader loads an inode by id, abstracting over the inode table so
// this package doesn't need to import it directly.
type InodeLoader func(id int32) types.Inode

// DirReader reads a directory inode's entries.
type DirReader func(n types.Inode) ([]types.DirEntry, error)

// Resolver resolves paths against a live file system's current inode.
type Resolver struct {
	device     types.BlockDevice
	sb         *types.Superblock
	loadInode  InodeLoader
	readDir    DirReader
}

// New builds a Resolver over the given accessors.
func New(device types.BlockDevice, sb *types.Superblock, loadInode InodeLoader, readDir DirReader) *Resolver {
	return &Resolver{device: device, sb: sb, loadInode: loadInode, readDir: readDir}
}

// Resolve walks path starting from currentID (used for relative paths) to
// the inode id it names. It returns types.NullPointer if any component is
// missing.
//
// Rules: "/" -> root; "" -> failure; "." or "./" -> current; ".." or
// "../" -> current's parent. Otherwise split on "/", discarding empty
// tokens, starting at root if the path is absolute else at current; every
// non-final token must resolve to a directory.
func (r *Resolver) Resolve(path string, currentID int32) (int32, error) {
	if path == "" {
		return types.NullPointer, fmt.Errorf("pathresolver: resolve: empty path")
	}
	if path == "/" {
		return types.RootInodeID, nil
	}
	if path == "." || path == "./" {
		return currentID, nil
	}
	if path == ".." || path == "../" {
		cur := r.loadInode(currentID)
		return cur.ParentID, nil
	}

	start := currentID
	if strings.HasPrefix(path, "/") {
		start = types.RootInodeID
	}

	tokens := splitTokens(path)
	if len(tokens) == 0 {
		return types.NullPointer, fmt.Errorf("pathresolver: resolve: empty path")
	}

	cur := start
	for i, tok := range tokens {
		last := i == len(tokens)-1
		next, ok, err := r.lookupIn(cur, tok)
		if err != nil {
			return types.NullPointer, err
		}
		if !ok {
			return types.NullPointer, nil
		}
		if !last {
			n := r.loadInode(next)
			if !n.IsDir {
				return types.NullPointer, nil
			}
		}
		cur = next
	}
	return cur, nil
}

func (r *Resolver) lookupIn(dirID int32, name string) (int32, bool, error) {
	dirInode := r.loadInode(dirID)
	entries, err := r.readDir(dirInode)
	if err != nil {
		return types.NullPointer, false, err
	}
	e, ok := directory.Find(entries, types.NormalizeName(name))
	if !ok {
		return types.NullPointer, false, nil
	}
	return e.InodeID, true, nil
}

// ToPath reverse-resolves an inode id to its absolute path. It walks up
// via ParentID until an inode whose parent equals itself (root is its
// own parent), scanning each parent's entries for the name mapping to
// the child. Every component, including the final one, is followed by
// "/"; root is "/" itself. Callers that want a file-style path without
// the trailing separator (e.g. a symlink's stored target) trim it
// themselves.
func (r *Resolver) ToPath(id int32) (string, error) {
	if id == types.RootInodeID {
		return "/", nil
	}

	var parts []string
	cur := id
	for {
		n := r.loadInode(cur)
		if n.ParentID == cur {
			break
		}
		parentInode := r.loadInode(n.ParentID)
		entries, err := r.readDir(parentInode)
		if err != nil {
			return "", err
		}
		name, ok := nameOf(entries, cur)
		if !ok {
			return "", fmt.Errorf("pathresolver: topath: inode %d not found in parent %d", cur, n.ParentID)
		}
		parts = append(parts, name)
		cur = n.ParentID
		if cur == types.RootInodeID {
			break
		}
	}

	// parts were collected child-to-root; reverse for root-to-child order.
	var b strings.Builder
	b.WriteByte('/')
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(parts[i])
		b.WriteByte('/')
	}
	return b.String(), nil
}

func nameOf(entries []types.DirEntry, id int32) (string, bool) {
	for _, e := range entries {
		name := e.NameString()
		if name == "." || name == ".." {
			continue
		}
		if e.InodeID == id {
			return name, true
		}
	}
	return "", false
}

// splitTokens splits a path on "/" and discards empty tokens.
func splitTokens(path string) []string {
	raw := strings.Split(path, "/")
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
