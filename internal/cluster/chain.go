// Package cluster implements the direct/single-indirect/double-indirect
// cluster chain codec that translates a file or directory's byte size
// into the list of clusters holding its content, and back. This is the
// heaviest piece of on-disk logic in the repository: wrong accounting
// here silently corrupts the image.
package cluster

import (
	"fmt"

	"pseudofs/internal/bitmap"
	"pseudofs/pkg/types"
)

// P is the number of pointers that fit in one indirect cluster.
const P = types.PointersPerCluster

// ForSize returns the number of clusters a file or directory of the given
// byte size occupies: 0 for size 0, otherwise ceil(size/ClusterSize).
func ForSize(size int32) int {
	if size <= 0 {
		return 0
	}
	return int((size + types.ClusterSize - 1) / types.ClusterSize)
}

// ReadChain gathers the full ordered list of data clusters belonging to
// inode n, by walking direct pointers then, if needed, the single and
// double indirect blocks.
func ReadChain(device types.BlockDevice, sb *types.Superblock, n types.Inode) ([]int32, error) {
	count := ForSize(n.Size)
	if count == 0 {
		return nil, nil
	}
	clusters := make([]int32, 0, count)

	for i := 0; i < types.NumDirect && len(clusters) < count; i++ {
		if n.Direct[i] == types.NullPointer {
			break
		}
		clusters = append(clusters, n.Direct[i])
	}
	if len(clusters) >= count {
		return clusters, nil
	}

	if n.Indirect[0] == types.NullPointer {
		return nil, fmt.Errorf("cluster: readchain: inode %d needs indirect[0] but has none", n.ID)
	}
	ptrs, err := readPointerBlock(device, sb, n.Indirect[0])
	if err != nil {
		return nil, err
	}
	for _, p := range ptrs {
		if len(clusters) >= count {
			break
		}
		if p == types.NullPointer {
			break
		}
		clusters = append(clusters, p)
	}
	if len(clusters) >= count {
		return clusters, nil
	}

	if n.Indirect[1] == types.NullPointer {
		return nil, fmt.Errorf("cluster: readchain: inode %d needs indirect[1] but has none", n.ID)
	}
	middle, err := readPointerBlock(device, sb, n.Indirect[1])
	if err != nil {
		return nil, err
	}
	for _, mid := range middle {
		if len(clusters) >= count {
			break
		}
		if mid == types.NullPointer {
			break
		}
		leaf, err := readPointerBlock(device, sb, mid)
		if err != nil {
			return nil, err
		}
		for _, p := range leaf {
			if len(clusters) >= count {
				break
			}
			if p == types.NullPointer {
				break
			}
			clusters = append(clusters, p)
		}
	}
	return clusters, nil
}

func readPointerBlock(device types.BlockDevice, sb *types.Superblock, cluster int32) ([]int32, error) {
	buf := make([]byte, sb.ClusterSize)
	if _, err := device.ReadAt(buf, sb.DataOffset(cluster)); err != nil {
		return nil, err
	}
	ptrs := make([]int32, P)
	for i := 0; i < P; i++ {
		ptrs[i] = int32(buf[i*4]) | int32(buf[i*4+1])<<8 | int32(buf[i*4+2])<<16 | int32(buf[i*4+3])<<24
	}
	return ptrs, nil
}

func writePointerBlock(device types.BlockDevice, sb *types.Superblock, cluster int32, ptrs []int32) error {
	buf := make([]byte, sb.ClusterSize)
	for i, p := range ptrs {
		buf[i*4] = byte(p)
		buf[i*4+1] = byte(p >> 8)
		buf[i*4+2] = byte(p >> 16)
		buf[i*4+3] = byte(p >> 24)
	}
	_, err := device.WriteAt(buf, sb.DataOffset(cluster))
	return err
}

// paddedPointers returns ptrs padded with types.NullPointer out to P
// entries, for writing a full pointer block.
func paddedPointers(ptrs []int32) []int32 {
	out := make([]int32, P)
	for i := range out {
		out[i] = types.NullPointer
	}
	copy(out, ptrs)
	return out
}

// WriteChain attaches clusters (already allocated by the caller) to inode
// n's direct/indirect pointers, allocating and writing any indirect
// pointer blocks required along the way. It returns the updated inode and
// the list of *additional* clusters consumed for indirect pointer blocks
// (the caller must account for these against the bitmap and free them
// together with the data clusters on removal).
//
// It fails if the chain would need more than types.MaxClustersForFile
// clusters, or if allocating the required indirect pointer-block
// clusters fails the free-cluster check.
func WriteChain(device types.BlockDevice, sb *types.Superblock, bm *bitmap.Bitmap, n types.Inode, clusters []int32) (types.Inode, []int32, error) {
	if len(clusters) > types.MaxClustersForFile {
		return n, nil, fmt.Errorf("cluster: writechain: %d clusters exceeds geometry limit %d", len(clusters), types.MaxClustersForFile)
	}

	for i := range n.Direct {
		n.Direct[i] = types.NullPointer
	}
	for i := range n.Indirect {
		n.Indirect[i] = types.NullPointer
	}

	var reserved []int32
	remaining := clusters

	directN := len(remaining)
	if directN > types.NumDirect {
		directN = types.NumDirect
	}
	for i := 0; i < directN; i++ {
		n.Direct[i] = remaining[i]
	}
	remaining = remaining[directN:]
	if len(remaining) == 0 {
		return n, reserved, nil
	}

	indirectBlock := bm.Allocate()
	if indirectBlock == types.NullPointer {
		bm.FreeAll(reserved)
		return n, nil, fmt.Errorf("cluster: writechain: no free cluster for indirect[0]")
	}
	reserved = append(reserved, indirectBlock)
	n.Indirect[0] = indirectBlock

	singleN := len(remaining)
	if singleN > P {
		singleN = P
	}
	if err := writePointerBlock(device, sb, indirectBlock, paddedPointers(remaining[:singleN])); err != nil {
		bm.FreeAll(reserved)
		return n, nil, fmt.Errorf("cluster: writechain: write indirect[0]: %w", err)
	}
	remaining = remaining[singleN:]
	if len(remaining) == 0 {
		return n, reserved, nil
	}

	m := (len(remaining) + P - 1) / P
	if m > P {
		bm.FreeAll(reserved)
		return n, nil, fmt.Errorf("cluster: writechain: file needs %d double-indirect middle blocks, geometry allows %d", m, P)
	}

	need := bm.AllocateN(m + 1)
	if need == nil {
		bm.FreeAll(reserved)
		return n, nil, fmt.Errorf("cluster: writechain: need %d free clusters for double indirection, not available", m+1)
	}
	reserved = append(reserved, need...)
	doubleBlock := need[0]
	middleBlocks := need[1:]
	n.Indirect[1] = doubleBlock

	middlePtrs := make([]int32, len(middleBlocks))
	copy(middlePtrs, middleBlocks)
	if err := writePointerBlock(device, sb, doubleBlock, paddedPointers(middlePtrs)); err != nil {
		bm.FreeAll(reserved)
		return n, nil, fmt.Errorf("cluster: writechain: write indirect[1]: %w", err)
	}

	for i, mid := range middleBlocks {
		start := i * P
		end := start + P
		if end > len(remaining) {
			end = len(remaining)
		}
		if err := writePointerBlock(device, sb, mid, paddedPointers(remaining[start:end])); err != nil {
			bm.FreeAll(reserved)
			return n, nil, fmt.Errorf("cluster: writechain: write middle block: %w", err)
		}
	}

	return n, reserved, nil
}

// IndirectOverhead reports how many clusters inode n's chain spends on
// indirect pointer blocks (as opposed to data), derived from n.Size alone
// the same way WriteChain derives it from a cluster count. Used by
// consistency checking without having to read the pointer blocks
// themselves.
func IndirectOverhead(n types.Inode) int {
	count := ForSize(n.Size)
	if count <= types.NumDirect {
		return 0
	}
	remaining := count - types.NumDirect
	if remaining <= P {
		return 1
	}
	remaining -= P
	m := (remaining + P - 1) / P
	return 2 + m
}

// ReleaseAll returns every cluster belonging to inode n — its data
// clusters plus any indirect pointer-block clusters — to the bitmap. Used
// by rm; rmdir releases a directory's clusters via directory.Release.
func ReleaseAll(device types.BlockDevice, sb *types.Superblock, bm *bitmap.Bitmap, n types.Inode) error {
	count := ForSize(n.Size)
	released := 0

	for i := 0; i < types.NumDirect && released < count; i++ {
		if n.Direct[i] == types.NullPointer {
			break
		}
		bm.Free(n.Direct[i])
		released++
	}
	if released >= count {
		return nil
	}

	if n.Indirect[0] != types.NullPointer {
		ptrs, err := readPointerBlock(device, sb, n.Indirect[0])
		if err != nil {
			return err
		}
		for _, p := range ptrs {
			if released >= count || p == types.NullPointer {
				break
			}
			bm.Free(p)
			released++
		}
		bm.Free(n.Indirect[0])
	}
	if released >= count {
		return nil
	}

	if n.Indirect[1] != types.NullPointer {
		middle, err := readPointerBlock(device, sb, n.Indirect[1])
		if err != nil {
			return err
		}
		for _, mid := range middle {
			if mid == types.NullPointer {
				break
			}
			leaf, err := readPointerBlock(device, sb, mid)
			if err != nil {
				return err
			}
			for _, p := range leaf {
				if released >= count || p == types.NullPointer {
					break
				}
				bm.Free(p)
				released++
			}
			bm.Free(mid)
		}
		bm.Free(n.Indirect[1])
	}
	return nil
}
