// Package directory implements the directory payload codec: encoding a
// directory's entry list into its (direct-only) clusters and decoding
// it back, enforcing "." / ".." and name uniqueness. Directory content
// is a flat list of fixed-size entries rather than a tree structure,
// capped to what fits in the direct pointer clusters.
package directory

import (
	"fmt"

	"pseudofs/pkg/types"
)

// sizeTWidth is the width, in bytes, of the count prefix at the head of
// a directory's first cluster: a fixed 8-byte u64, documented as an
// image-format decision in DESIGN.md.
const sizeTWidth = 8

// MaxEntries is the largest number of entries a directory can hold while
// staying within types.NumDirect direct clusters, computed exactly for
// the configured geometry.
const MaxEntries = (types.NumDirect*types.ClusterSize - sizeTWidth) / types.DirEntrySize

// SizeFor returns the on-disk byte size of a directory holding n entries:
// the count prefix plus n fixed-size entries.
func SizeFor(n int) int32 {
	return int32(sizeTWidth + n*types.DirEntrySize)
}

// Read decodes inode n's payload into its ordered list of entries. It
// requires the directory to fit within the direct-pointer clusters;
// directories needing indirection are not supported.
func Read(device types.BlockDevice, sb *types.Superblock, n types.Inode) ([]types.DirEntry, error) {
	clusterCount := int((n.Size + sb.ClusterSize - 1) / sb.ClusterSize)
	if n.Size == 0 {
		clusterCount = 0
	}
	if clusterCount > types.NumDirect {
		return nil, fmt.Errorf("directory: read: inode %d needs %d clusters, exceeds %d direct pointers", n.ID, clusterCount, types.NumDirect)
	}
	if clusterCount == 0 {
		return nil, fmt.Errorf("directory: read: inode %d has no content", n.ID)
	}

	raw := make([]byte, 0, clusterCount*int(sb.ClusterSize))
	for i := 0; i < clusterCount; i++ {
		if n.Direct[i] == types.NullPointer {
			return nil, fmt.Errorf("directory: read: inode %d missing direct[%d]", n.ID, i)
		}
		buf := make([]byte, sb.ClusterSize)
		if _, err := device.ReadAt(buf, sb.DataOffset(n.Direct[i])); err != nil {
			return nil, err
		}
		raw = append(raw, buf...)
	}

	count := decodeCount(raw[:sizeTWidth])
	entries := make([]types.DirEntry, 0, count)
	pos := sizeTWidth
	for i := int64(0); i < count; i++ {
		if pos+types.DirEntrySize > len(raw) {
			return nil, fmt.Errorf("directory: read: inode %d truncated entry list", n.ID)
		}
		e, err := types.DecodeDirEntry(raw[pos : pos+types.DirEntrySize])
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
		pos += types.DirEntrySize
	}
	return entries, nil
}

// Write re-encodes entries into inode n's direct clusters. Every
// directory inode has all types.NumDirect direct clusters allocated from
// the moment it is created (mkdir/format pre-reserve them, see
// fs.Mkdir) precisely because directories are capped to direct-pointer
// clusters — so growing or shrinking a directory's entry list never needs
// to allocate or free a cluster, only to use more or fewer of the
// already-reserved ones. Write therefore takes no allocator: it fails if
// entries would need more than types.NumDirect clusters, if n is missing
// a direct pointer it needs (an internal invariant breach — every
// directory inode must have all NumDirect slots populated), if entries
// does not start with "." and "..", or if a name collision is found —
// callers are expected to have already checked uniqueness, but Write
// re-validates as a final invariant guard.
func Write(device types.BlockDevice, sb *types.Superblock, n types.Inode, entries []types.DirEntry) (types.Inode, error) {
	if len(entries) > MaxEntries {
		return n, fmt.Errorf("directory: write: %d entries exceeds max %d for direct-pointer-only directories", len(entries), MaxEntries)
	}
	if len(entries) < 2 || entries[0].NameString() != "." || entries[1].NameString() != ".." {
		return n, fmt.Errorf("directory: write: inode %d: entry list must start with \".\" and \"..\"", n.ID)
	}
	if err := checkUnique(entries); err != nil {
		return n, err
	}

	n.Size = SizeFor(len(entries))
	needed := int((n.Size + sb.ClusterSize - 1) / sb.ClusterSize)
	if n.Size == 0 {
		needed = 0
	}
	for i := 0; i < needed; i++ {
		if n.Direct[i] == types.NullPointer {
			return n, fmt.Errorf("directory: write: inode %d missing pre-reserved direct[%d]", n.ID, i)
		}
	}

	raw := make([]byte, needed*int(sb.ClusterSize))
	encodeCount(raw[:sizeTWidth], int64(len(entries)))
	pos := sizeTWidth
	for _, e := range entries {
		copy(raw[pos:pos+types.DirEntrySize], e.Encode())
		pos += types.DirEntrySize
	}

	for i := 0; i < needed; i++ {
		start := i * int(sb.ClusterSize)
		end := start + int(sb.ClusterSize)
		if _, err := device.WriteAt(raw[start:end], sb.DataOffset(n.Direct[i])); err != nil {
			return n, err
		}
	}
	return n, nil
}

// Reserve allocates all types.NumDirect direct clusters for a brand-new
// directory inode, via allocate, before its first Write. It fails,
// without leaking any already-drawn cluster, if the bitmap cannot supply
// all of them.
func Reserve(n types.Inode, allocate func() int32, free func(int32)) (types.Inode, error) {
	var drawn []int32
	for i := 0; i < types.NumDirect; i++ {
		c := allocate()
		if c == types.NullPointer {
			for _, d := range drawn {
				free(d)
			}
			return n, fmt.Errorf("directory: reserve: not enough free clusters for inode %d", n.ID)
		}
		drawn = append(drawn, c)
		n.Direct[i] = c
	}
	return n, nil
}

// Release frees all types.NumDirect direct clusters reserved for a
// directory inode being removed (rmdir), regardless of how many the
// directory's current entry count actually uses — see Write's doc comment
// for why every directory always holds all NumDirect clusters.
func Release(n types.Inode, free func(int32)) {
	for i := 0; i < types.NumDirect; i++ {
		if n.Direct[i] != types.NullPointer {
			free(n.Direct[i])
		}
	}
}

// NewRoot builds the initial entry list for the root directory, whose "."
// and ".." both point at selfID (the root's own convention). Non-root
// directories use NewEntries.
func NewRoot(selfID int32) []types.DirEntry {
	return []types.DirEntry{
		types.NewDirEntry(selfID, "."),
		types.NewDirEntry(selfID, ".."),
	}
}

// NewEntries builds the initial "." / ".." pair for a non-root directory.
func NewEntries(selfID, parentID int32) []types.DirEntry {
	return []types.DirEntry{
		types.NewDirEntry(selfID, "."),
		types.NewDirEntry(parentID, ".."),
	}
}

// Find returns the entry named name, or false if no entry has that exact
// name.
func Find(entries []types.DirEntry, name string) (types.DirEntry, bool) {
	for _, e := range entries {
		if e.NameString() == name {
			return e, true
		}
	}
	return types.DirEntry{}, false
}

// Without returns entries with the one named name removed.
func Without(entries []types.DirEntry, name string) []types.DirEntry {
	out := make([]types.DirEntry, 0, len(entries))
	for _, e := range entries {
		if e.NameString() != name {
			out = append(out, e)
		}
	}
	return out
}

func checkUnique(entries []types.DirEntry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		name := e.NameString()
		if _, dup := seen[name]; dup {
			return fmt.Errorf("directory: write: duplicate name %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func decodeCount(b []byte) int64 {
	var v int64
	for i := 0; i < sizeTWidth; i++ {
		v |= int64(b[i]) << (8 * i)
	}
	return v
}

func encodeCount(b []byte, v int64) {
	for i := 0; i < sizeTWidth; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
