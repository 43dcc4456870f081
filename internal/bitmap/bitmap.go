// Package bitmap implements the cluster allocation bitmap: one byte per
// cluster, loaded into memory for the lifetime of the session and
// flushed back to the image after every mutation, as a small struct
// wrapping the block device plus an in-memory decoded form.
package bitmap

import (
	"pseudofs/pkg/types"
)

// Bitmap tracks, per cluster, whether it is free. true means FREE,
// preserved for on-disk image compatibility.
type Bitmap struct {
	device types.BlockDevice
	offset int64
	free   []bool
}

// Load reads an existing bitmap of n clusters from the device at offset.
func Load(device types.BlockDevice, offset int64, n int32) (*Bitmap, error) {
	buf := make([]byte, n)
	if _, err := device.ReadAt(buf, offset); err != nil {
		return nil, err
	}
	b := &Bitmap{device: device, offset: offset, free: make([]bool, n)}
	for i, v := range buf {
		b.free[i] = v != 0
	}
	return b, nil
}

// NewAllFree builds a bitmap of n clusters, all marked free, for a freshly
// formatted image. Callers must call Persist to write it out.
func NewAllFree(device types.BlockDevice, offset int64, n int32) *Bitmap {
	free := make([]bool, n)
	for i := range free {
		free[i] = true
	}
	return &Bitmap{device: device, offset: offset, free: free}
}

// Persist flushes the entire bitmap to the image.
func (b *Bitmap) Persist() error {
	buf := make([]byte, len(b.free))
	for i, f := range b.free {
		if f {
			buf[i] = 1
		}
	}
	_, err := b.device.WriteAt(buf, b.offset)
	return err
}

// Allocate finds the first free cluster, marks it used, and returns its
// index. It returns types.NullPointer if none is free. Callers that need
// several clusters must call CountAvailable first and must not interleave
// Allocate with unrelated allocations in between.
func (b *Bitmap) Allocate() int32 {
	for i, f := range b.free {
		if f {
			b.free[i] = false
			return int32(i)
		}
	}
	return types.NullPointer
}

// AllocateN draws n clusters one-by-one via Allocate, after first checking
// CountAvailable(n). It returns nil if fewer than n are free — the check
// happens before any cluster is drawn, so a failed AllocateN never leaks
// clusters. Multi-step operations that allocate indirect pointer blocks
// across several calls (see the cluster chain writer) must still roll
// back their own partial allocations on failure.
func (b *Bitmap) AllocateN(n int) []int32 {
	if !b.CountAvailable(n) {
		return nil
	}
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		out[i] = b.Allocate()
	}
	return out
}

// Free marks cluster i as free again.
func (b *Bitmap) Free(i int32) {
	if i >= 0 && int(i) < len(b.free) {
		b.free[i] = true
	}
}

// FreeAll marks every cluster in indices as free again.
func (b *Bitmap) FreeAll(indices []int32) {
	for _, i := range indices {
		b.Free(i)
	}
}

// CountAvailable reports whether at least n clusters are currently free,
// short-circuiting the scan once it finds n.
func (b *Bitmap) CountAvailable(n int) bool {
	count := 0
	for _, f := range b.free {
		if f {
			count++
			if count >= n {
				return true
			}
		}
	}
	return n <= 0
}

// FreeCount returns the total number of free clusters.
func (b *Bitmap) FreeCount() int {
	count := 0
	for _, f := range b.free {
		if f {
			count++
		}
	}
	return count
}

// Len returns the number of clusters the bitmap tracks.
func (b *Bitmap) Len() int32 { return int32(len(b.free)) }
