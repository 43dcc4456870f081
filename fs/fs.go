// Package fs composes the block device, bitmap, inode table, cluster
// chain codec, directory codec, and path resolver into the public file
// system operation surface: format, mkdir, rmdir, rm, cd, ls, cat, cp, mv,
// incp, outcp, slink, info, pwd. A lower-level reader/device is wrapped
// behind one cohesive operation object, the FileSystem below.
package fs

import (
	"fmt"
	"io"

	"pseudofs/internal/bitmap"
	"pseudofs/internal/directory"
	"pseudofs/internal/inodetable"
	"pseudofs/internal/pathresolver"
	"pseudofs/pkg/image"
	"pseudofs/pkg/types"
)

// FileSystem is a single mounted image and the session state (current
// directory) associated with it. It is not safe for concurrent use from
// more than one goroutine: the model is single-threaded and synchronous.
type FileSystem struct {
	path   string
	device types.BlockDevice
	sb     *types.Superblock
	bitmap *bitmap.Bitmap
	inodes *inodetable.Table

	currentID int32
	resolver  *pathresolver.Resolver

	// Log and Status are the two injected write-only sinks: Log receives
	// internal diagnostics, Status receives the bit-exact user-facing
	// strings from pkg/types' Status* constants.
	Log    io.Writer
	Status io.Writer
}

// Close releases the backing file handle. It is safe to call multiple
// times and guarantees release on every exit path.
func (f *FileSystem) Close() error {
	if f.device == nil {
		return nil
	}
	err := f.device.Close()
	f.device = nil
	return err
}

func (f *FileSystem) logf(format string, args ...interface{}) {
	if f.Log != nil {
		fmt.Fprintf(f.Log, format+"\n", args...)
	}
}

func (f *FileSystem) statusf(status string) {
	if f.Status != nil {
		fmt.Fprintln(f.Status, status)
	}
}

func (f *FileSystem) loadInode(id int32) types.Inode { return f.inodes.Get(id) }

func (f *FileSystem) readDir(n types.Inode) ([]types.DirEntry, error) {
	return directory.Read(f.device, f.sb, n)
}

func (f *FileSystem) writeDir(n types.Inode, entries []types.DirEntry) (types.Inode, error) {
	return directory.Write(f.device, f.sb, n, entries)
}

// persistMeta flushes the bitmap and the inode table, guaranteeing both
// are durable before a mutating operation returns success.
func (f *FileSystem) persistMeta() error {
	if err := f.bitmap.Persist(); err != nil {
		return err
	}
	return f.inodes.Persist()
}

// resolve walks path from the current directory (or root, if absolute) to
// an inode id, returning types.NullPointer if not found.
func (f *FileSystem) resolve(path string) (int32, error) {
	return f.resolver.Resolve(path, f.currentID)
}

// Pwd returns the absolute path of the current directory.
func (f *FileSystem) Pwd() (string, error) {
	return f.resolver.ToPath(f.currentID)
}

// openImage is shared by Format and Mount to (re)create the *Image backing
// store.
func openImage(path string, create bool, size int64) (*image.Image, error) {
	if create {
		return image.Create(path, size)
	}
	return image.Open(path)
}
