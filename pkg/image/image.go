// Package image implements the on-disk backing store: a single host file
// that acts as a raw block device for the file system above it. It is
// the concrete types.BlockDevice used outside of tests: a thin *os.File
// wrapper behind the BlockDevice interface.
package image

import "os"

// Image is a types.BlockDevice backed by a single host file held open for
// the lifetime of the session.
type Image struct {
	file *os.File
}

// Create creates (or truncates) the backing file at path and sizes it
// to exactly size bytes.
func Create(path string, size int64) (*Image, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(size); err != nil {
		f.Close()
		return nil, err
	}
	return &Image{file: f}, nil
}

// Open opens an existing backing file for read/write, for mounting.
func Open(path string) (*Image, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0666)
	if err != nil {
		return nil, err
	}
	return &Image{file: f}, nil
}

// Exists reports whether path already names a file, for the mount-or-format
// decision in fs.Mount.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (img *Image) ReadAt(p []byte, off int64) (int, error)  { return img.file.ReadAt(p, off) }
func (img *Image) WriteAt(p []byte, off int64) (int, error) { return img.file.WriteAt(p, off) }
func (img *Image) Truncate(size int64) error                { return img.file.Truncate(size) }
func (img *Image) Sync() error                              { return img.file.Sync() }
func (img *Image) Close() error                             { return img.file.Close() }
