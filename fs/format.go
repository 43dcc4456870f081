package fs

import (
	"fmt"
	"io"

	"pseudofs/internal/bitmap"
	"pseudofs/internal/directory"
	"pseudofs/internal/inodetable"
	"pseudofs/internal/pathresolver"
	"pseudofs/pkg/types"
)

// MinDiskSize is the smallest size a format request can specify: enough
// room for the superblock and the inode table, with zero data clusters.
const MinDiskSize = types.SuperblockSize + types.InodesCount*types.InodeSize

// Format initializes a brand-new image at path with the given size,
// destroying any prior state. It prints the "FORMATTING DISK (<N>B)"
// status line on success via Status.
func Format(path string, size int64, logw, statusw io.Writer) (*FileSystem, error) {
	if size < MinDiskSize {
		return nil, fmt.Errorf("fs: format: size %d below minimum %d", size, MinDiskSize)
	}

	clusterCount := int32((size - types.SuperblockSize - types.InodesCount*types.InodeSize) / (1 + types.ClusterSize))

	device, err := openImage(path, true, size)
	if err != nil {
		return nil, fmt.Errorf("fs: format: create backing file: %w", err)
	}

	sb := types.NewSuperblock(int32(size), clusterCount)
	bm := bitmap.NewAllFree(device, int64(sb.BitmapStart), clusterCount)
	tbl := inodetable.NewAllFree(device, int64(sb.InodeStart))

	root := tbl.Get(types.RootInodeID)
	root.IsFree = false
	root.IsDir = true
	root.ParentID = types.RootInodeID
	tbl.Set(root)

	// Root reserves all NumDirect direct clusters even though its initial
	// "." / ".." payload only needs one, matching every other directory,
	// which reserves its full NumDirect clusters at creation (see
	// fs.Mkdir).
	root = tbl.Get(types.RootInodeID)
	root, err = directory.Reserve(root, bm.Allocate, bm.Free)
	if err != nil {
		device.Close()
		return nil, fmt.Errorf("fs: format: reserve root clusters: %w", err)
	}
	root, err = directory.Write(device, sb, root, directory.NewRoot(types.RootInodeID))
	if err != nil {
		device.Close()
		return nil, fmt.Errorf("fs: format: write root directory: %w", err)
	}
	tbl.Set(root)

	if _, err := device.WriteAt(sb.Encode(), 0); err != nil {
		device.Close()
		return nil, fmt.Errorf("fs: format: write superblock: %w", err)
	}
	if err := bm.Persist(); err != nil {
		device.Close()
		return nil, fmt.Errorf("fs: format: persist bitmap: %w", err)
	}
	if err := tbl.Persist(); err != nil {
		device.Close()
		return nil, fmt.Errorf("fs: format: persist inode table: %w", err)
	}
	if err := device.Sync(); err != nil {
		device.Close()
		return nil, fmt.Errorf("fs: format: sync: %w", err)
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
	fsys.statusf(types.StatusFormatting(size))
	return fsys, nil
}
