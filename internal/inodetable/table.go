// Package inodetable implements the fixed array of types.InodesCount
// inodes: load/persist, first-fit allocation, and the reset-to-free
// sequence rm/rmdir use when releasing an inode. It is a flat array
// rather than a tree-indexed object map, matching the fixed-size inode
// table of the on-disk image format.
package inodetable

import (
	"pseudofs/pkg/types"
)

// Table holds every inode in memory for the session, indexed by id.
type Table struct {
	device  types.BlockDevice
	offset  int64
	inodes  []types.Inode
}

// Load reads the full inode table from the device.
func Load(device types.BlockDevice, offset int64) (*Table, error) {
	t := &Table{device: device, offset: offset, inodes: make([]types.Inode, types.InodesCount)}
	buf := make([]byte, types.InodesCount*types.InodeSize)
	if _, err := device.ReadAt(buf, offset); err != nil {
		return nil, err
	}
	for i := 0; i < types.InodesCount; i++ {
		n, err := types.DecodeInode(buf[i*types.InodeSize : (i+1)*types.InodeSize])
		if err != nil {
			return nil, err
		}
		t.inodes[i] = n
	}
	return t, nil
}

// NewAllFree builds a table of types.InodesCount free inodes, ids 0..N-1,
// for a freshly formatted image. Callers must call Persist to write it
// out (after setting up the root inode — see fs.Format).
func NewAllFree(device types.BlockDevice, offset int64) *Table {
	t := &Table{device: device, offset: offset, inodes: make([]types.Inode, types.InodesCount)}
	for i := range t.inodes {
		t.inodes[i] = types.FreeInode(int32(i))
	}
	return t
}

// Persist flushes the entire table to the image.
func (t *Table) Persist() error {
	buf := make([]byte, 0, types.InodesCount*types.InodeSize)
	for i := range t.inodes {
		buf = append(buf, t.inodes[i].Encode()...)
	}
	_, err := t.device.WriteAt(buf, t.offset)
	return err
}

// PersistOne flushes only inode id's record, without rewriting the whole
// table. The fs operations persist through Persist instead.
func (t *Table) PersistOne(id int32) error {
	n := t.inodes[id]
	_, err := t.device.WriteAt(n.Encode(), t.offset+int64(id)*int64(types.InodeSize))
	return err
}

// Get returns the inode with the given id.
func (t *Table) Get(id int32) types.Inode { return t.inodes[id] }

// Set overwrites the inode with the given id. Callers are responsible for
// persisting (Persist or PersistOne).
func (t *Table) Set(n types.Inode) { t.inodes[n.ID] = n }

// Allocate finds the first free inode, marks it used (but otherwise
// zeroed — callers fill in Kind/ParentID/etc.), and returns its id. It
// returns types.NullPointer if none is free.
func (t *Table) Allocate() int32 {
	for i := range t.inodes {
		if t.inodes[i].IsFree {
			t.inodes[i].IsFree = false
			return int32(i)
		}
	}
	return types.NullPointer
}

// Free resets inode id to the free state: all pointers null, size 0,
// parent null.
func (t *Table) Free(id int32) {
	t.inodes[id] = types.FreeInode(id)
}

// Len returns the number of inode slots in the table.
func (t *Table) Len() int32 { return int32(len(t.inodes)) }

// All returns a copy of every inode slot, used by consistency checks that
// need to scan the whole table rather than a single id.
func (t *Table) All() []types.Inode {
	out := make([]types.Inode, len(t.inodes))
	copy(out, t.inodes)
	return out
}
