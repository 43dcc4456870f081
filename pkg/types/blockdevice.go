package types

import "io"

// BlockDevice is the minimal positioned read/write contract the rest of
// the file system is built on. It is satisfied by pkg/image.Image (an
// *os.File-backed implementation, which the tests use as well),
// decoupling the on-disk codec from how bytes actually get persisted.
type BlockDevice interface {
	io.Closer

	// ReadAt reads len(p) bytes starting at offset off.
	ReadAt(p []byte, off int64) (int, error)

	// WriteAt writes p starting at offset off.
	WriteAt(p []byte, off int64) (int, error)

	// Truncate resizes the backing store to exactly size bytes.
	Truncate(size int64) error

	// Sync flushes any buffered writes to the backing store.
	Sync() error
}
