package types

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// Superblock is the fixed record written at offset 0 of every image. Its
// layout, once formatted, never changes except across a reformat.
type Superblock struct {
	Signature     [SignatureLen]byte
	VolumeDesc    [VolumeDescLen]byte
	DiskSize      int32
	ClusterSize   int32
	ClusterCount  int32
	BitmapStart   int32
	InodeStart    int32
	DataStart     int32

	// VolumeID is a supplemental field (not part of the original byte
	// layout's required fields) identifying this image, in the spirit of
	// APFS/ext2's volume UUIDs. It is appended after the required fields
	// so existing offset arithmetic for the fields above is unaffected.
	VolumeID uuid.UUID
}

// SuperblockSize is the number of bytes a Superblock occupies on disk.
const SuperblockSize = SignatureLen + VolumeDescLen + 6*4 + 16

// NewSuperblock builds the in-memory superblock for a freshly formatted
// image of the given size, with clusterCount already computed by the
// caller (see fs.Format).
func NewSuperblock(diskSize, clusterCount int32) *Superblock {
	sb := &Superblock{
		DiskSize:     diskSize,
		ClusterSize:  ClusterSize,
		ClusterCount: clusterCount,
		VolumeID:     uuid.New(),
	}
	copy(sb.Signature[:], Signature)
	copy(sb.VolumeDesc[:], VolumeDesc)
	sb.BitmapStart = SuperblockSize
	sb.InodeStart = sb.BitmapStart + clusterCount
	sb.DataStart = sb.InodeStart + InodesCount*InodeSize
	return sb
}

// Encode serializes the superblock into its fixed on-disk layout.
func (sb *Superblock) Encode() []byte {
	buf := new(bytes.Buffer)
	buf.Write(sb.Signature[:])
	buf.Write(sb.VolumeDesc[:])
	binary.Write(buf, binary.LittleEndian, sb.DiskSize)
	binary.Write(buf, binary.LittleEndian, sb.ClusterSize)
	binary.Write(buf, binary.LittleEndian, sb.ClusterCount)
	binary.Write(buf, binary.LittleEndian, sb.BitmapStart)
	binary.Write(buf, binary.LittleEndian, sb.InodeStart)
	binary.Write(buf, binary.LittleEndian, sb.DataStart)
	volumeIDBytes, _ := sb.VolumeID.MarshalBinary()
	buf.Write(volumeIDBytes)
	return buf.Bytes()
}

// DecodeSuperblock parses a Superblock out of the first SuperblockSize
// bytes of data.
func DecodeSuperblock(data []byte) (*Superblock, error) {
	if len(data) < SuperblockSize {
		return nil, fmt.Errorf("types: superblock: need %d bytes, got %d", SuperblockSize, len(data))
	}
	sb := &Superblock{}
	r := bytes.NewReader(data)
	if _, err := r.Read(sb.Signature[:]); err != nil {
		return nil, fmt.Errorf("types: superblock: read signature: %w", err)
	}
	if _, err := r.Read(sb.VolumeDesc[:]); err != nil {
		return nil, fmt.Errorf("types: superblock: read volume desc: %w", err)
	}
	fields := []*int32{&sb.DiskSize, &sb.ClusterSize, &sb.ClusterCount, &sb.BitmapStart, &sb.InodeStart, &sb.DataStart}
	for _, f := range fields {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return nil, fmt.Errorf("types: superblock: read field: %w", err)
		}
	}
	idBytes := make([]byte, 16)
	if _, err := r.Read(idBytes); err == nil {
		if id, uerr := uuid.FromBytes(idBytes); uerr == nil {
			sb.VolumeID = id
		}
	}
	return sb, nil
}

// DataOffset returns the byte offset of cluster i within the image.
func (sb *Superblock) DataOffset(i int32) int64 {
	return int64(sb.DataStart) + int64(i)*int64(sb.ClusterSize)
}
