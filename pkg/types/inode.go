package types

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Kind tags what an inode currently represents. It decodes from the
// is-directory/is-symlink flag pair on load: a tagged variant over one
// shared metadata struct rather than a type per kind.
type Kind uint8

const (
	KindFree Kind = iota
	KindDirectory
	KindFile
	KindSymlink
)

// Inode is the fixed-size metadata record for a directory, file, or
// symlink. Its index in the inode table is its own id.
type Inode struct {
	ID       int32
	ParentID int32
	IsFree   bool
	IsDir    bool
	IsSymlink bool
	Size     int32
	Direct   [NumDirect]int32
	Indirect [NumIndirect]int32
}

// InodeSize is the number of bytes an Inode occupies in the inode table.
const InodeSize = 4 + 4 + 1 + 1 + 1 + 4 + NumDirect*4 + NumIndirect*4

// Kind reports the tagged variant this inode currently represents.
func (n *Inode) Kind() Kind {
	switch {
	case n.IsFree:
		return KindFree
	case n.IsDir:
		return KindDirectory
	case n.IsSymlink:
		return KindSymlink
	default:
		return KindFile
	}
}

// FreeInode returns a zeroed, free inode with the given id — the state
// every table slot starts in at format time, and the state rm/rmdir resets
// a slot to.
func FreeInode(id int32) Inode {
	n := Inode{ID: id, ParentID: NullPointer, IsFree: true}
	for i := range n.Direct {
		n.Direct[i] = NullPointer
	}
	for i := range n.Indirect {
		n.Indirect[i] = NullPointer
	}
	return n
}

// Encode serializes the inode into its fixed on-disk layout.
func (n *Inode) Encode() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, n.ID)
	binary.Write(buf, binary.LittleEndian, n.ParentID)
	buf.WriteByte(boolByte(n.IsFree))
	buf.WriteByte(boolByte(n.IsDir))
	buf.WriteByte(boolByte(n.IsSymlink))
	binary.Write(buf, binary.LittleEndian, n.Size)
	for _, d := range n.Direct {
		binary.Write(buf, binary.LittleEndian, d)
	}
	for _, d := range n.Indirect {
		binary.Write(buf, binary.LittleEndian, d)
	}
	return buf.Bytes()
}

// DecodeInode parses an Inode out of the first InodeSize bytes of data.
func DecodeInode(data []byte) (Inode, error) {
	var n Inode
	if len(data) < InodeSize {
		return n, fmt.Errorf("types: inode: need %d bytes, got %d", InodeSize, len(data))
	}
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, &n.ID); err != nil {
		return n, err
	}
	if err := binary.Read(r, binary.LittleEndian, &n.ParentID); err != nil {
		return n, err
	}
	flags := make([]byte, 3)
	if _, err := r.Read(flags); err != nil {
		return n, err
	}
	n.IsFree = flags[0] != 0
	n.IsDir = flags[1] != 0
	n.IsSymlink = flags[2] != 0
	if err := binary.Read(r, binary.LittleEndian, &n.Size); err != nil {
		return n, err
	}
	for i := range n.Direct {
		if err := binary.Read(r, binary.LittleEndian, &n.Direct[i]); err != nil {
			return n, err
		}
	}
	for i := range n.Indirect {
		if err := binary.Read(r, binary.LittleEndian, &n.Indirect[i]); err != nil {
			return n, err
		}
	}
	return n, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
