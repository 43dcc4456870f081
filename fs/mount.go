package fs

import (
	"fmt"
	"io"

	"pseudofs/internal/bitmap"
	"pseudofs/internal/inodetable"
	"pseudofs/internal/pathresolver"
	"pseudofs/pkg/image"
	"pseudofs/pkg/types"
)

// Mount opens an existing image at path, or formats a fresh one at
// types.DefaultDiskSize if no file exists there yet. The current
// directory starts at root.
func Mount(path string, logw, statusw io.Writer) (*FileSystem, error) {
	if !image.Exists(path) {
		return Format(path, types.DefaultDiskSize, logw, statusw)
	}

	device, err := image.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fs: mount: open backing file: %w", err)
	}

	buf := make([]byte, types.SuperblockSize)
	if _, err := device.ReadAt(buf, 0); err != nil {
		device.Close()
		return nil, fmt.Errorf("fs: mount: read superblock: %w", err)
	}
	sb, err := types.DecodeSuperblock(buf)
	if err != nil {
		device.Close()
		return nil, fmt.Errorf("fs: mount: decode superblock: %w", err)
	}

	bm, err := bitmap.Load(device, int64(sb.BitmapStart), sb.ClusterCount)
	if err != nil {
		device.Close()
		return nil, fmt.Errorf("fs: mount: load bitmap: %w", err)
	}
	tbl, err := inodetable.Load(device, int64(sb.InodeStart))
	if err != nil {
		device.Close()
		return nil, fmt.Errorf("fs: mount: load inode table: %w", err)
	}

	fsys := &FileSystem{
		path:      path,
		device:    device,
		sb:        sb,
		bitmap:    bm,
		inodes:    tbl,
		currentID: types.RootInodeID,
		Log:       logw,
		Status:    statusw,
	}
	fsys.resolver = pathresolver.New(device, sb, fsys.loadInode, fsys.readDir)
	return fsys, nil
}
