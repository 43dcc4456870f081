package types

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// DirEntry maps a name to the inode id it refers to. Fixed 16 bytes:
// a 4-byte id plus a 12-byte zero-padded name.
type DirEntry struct {
	InodeID int32
	Name    [FileNameLen]byte
}

// DirEntrySize is the fixed on-disk size of a DirEntry.
const DirEntrySize = 4 + FileNameLen

// NewDirEntry builds a DirEntry, normalizing name to FileNameLen bytes per
// NormalizeName.
func NewDirEntry(id int32, name string) DirEntry {
	e := DirEntry{InodeID: id}
	copy(e.Name[:], NormalizeName(name))
	return e
}

// NameString returns the entry's name with trailing NUL padding stripped.
func (e DirEntry) NameString() string {
	i := bytes.IndexByte(e.Name[:], 0)
	if i < 0 {
		i = len(e.Name)
	}
	return string(e.Name[:i])
}

// Encode serializes the entry into its fixed on-disk layout.
func (e DirEntry) Encode() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, e.InodeID)
	buf.Write(e.Name[:])
	return buf.Bytes()
}

// DecodeDirEntry parses a DirEntry out of the first DirEntrySize bytes of
// data.
func DecodeDirEntry(data []byte) (DirEntry, error) {
	var e DirEntry
	if len(data) < DirEntrySize {
		return e, fmt.Errorf("types: direntry: need %d bytes, got %d", DirEntrySize, len(data))
	}
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, &e.InodeID); err != nil {
		return e, err
	}
	if _, err := r.Read(e.Name[:]); err != nil {
		return e, err
	}
	return e, nil
}

// NormalizeName enforces the FILE_NAME_LEN-1 visible-byte limit. When a
// name exceeds 11 visible bytes, the leading bytes are trimmed so the
// trailing 11 bytes (plus the NUL terminator) survive, preserved here
// for image compatibility and exposed as its own function so tests can
// assert it directly.
func NormalizeName(name string) string {
	const maxVisible = FileNameLen - 1
	if len(name) > maxVisible {
		name = name[len(name)-maxVisible:]
	}
	return name
}
