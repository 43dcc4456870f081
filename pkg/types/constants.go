// Package types holds the fixed, on-disk data structures shared by every
// layer of the file system: the superblock, the inode record, the
// directory entry, and the small set of compile-time geometry constants
// that govern how they are laid out on the backing image.
package types

import "strconv"

// Compile-time geometry. These must be identical between the process that
// formats an image and every process that later mounts it — they are never
// read from the image itself (there is no versioning field for them).
const (
	SignatureLen   = 9
	VolumeDescLen  = 251
	FileNameLen    = 12 // 11 visible bytes + NUL terminator
	NumDirect      = 5
	NumIndirect    = 2
	ClusterSize    = 1000
	InodesCount    = 100
	DefaultDiskSize = 50_000_000

	// NullPointer is the sentinel stored in any pointer field (direct,
	// indirect, parent) that does not reference a real cluster or inode.
	NullPointer = -1

	// RootInodeID is the fixed id of the root directory's inode. It is
	// also used as the terminator for reverse path resolution: an inode
	// whose parent id equals its own id is the root.
	RootInodeID = 0
)

// Signature and VolumeDesc are stamped into every freshly formatted image.
// These exact values are part of the on-disk contract and must not be
// changed to keep images compatible across implementations.
const (
	Signature  = "silhavyj"
	VolumeDesc = "ZOS project - A Simple File System Emulator"
)

// Pointers per indirect cluster: ClusterSize bytes / 4-byte int32 pointers.
const PointersPerCluster = ClusterSize / 4

// MaxClustersForFile is the largest cluster count representable by the
// direct + single-indirect + double-indirect scheme: 5 direct, P via
// indirect[0], and P*P via indirect[1].
const MaxClustersForFile = NumDirect + PointersPerCluster + PointersPerCluster*PointersPerCluster

// Bit-exact user-status strings. The CLI prints these verbatim; tests
// match them literally, so they must never be reformatted or have
// their punctuation changed.
const (
	StatusOK                      = "OK"
	StatusFileNotFound            = "FILE NOT FOUND"
	StatusPathNotFound            = "PATH NOT FOUND"
	StatusExists                  = "EXISTS"
	StatusCannotMoveDirectory     = "CANNOT MOVE A DIRECTORY"
	StatusCannotCopyDirectory     = "CANNOT COPY A DIRECTORY"
	StatusTargetNotDirectory      = "TARGET IS NOT A DIRECTORY"
	StatusTargetNotFile           = "TARGET IS NOT A FILE"
	StatusNotEmpty                = "NOT EMPTY"
	StatusCannotRemoveRoot        = "CANNOT REMOVE ROOT DIRECTORY"
	StatusCannotRemoveCurrent     = "CANNOT REMOVE CURRENT DIRECTORY"
	StatusCannotIncpIntoFile      = "CANNOT IN-COPY INTO A FILE"
	StatusCannotPrintDirectory    = "CANNOT PRINT OUT DIRECTORY"
	StatusCannotCreateFile        = "CANNOT CREATE FILE"
	StatusInvalidCommand          = "INVALID COMMAND"
	StatusUnknownCommand          = "UNKNOWN COMMAND"
)

// StatusFormatting formats the "FORMATTING DISK (<N>B)" status line.
func StatusFormatting(size int64) string {
	return "FORMATTING DISK (" + strconv.FormatInt(size, 10) + "B)"
}
