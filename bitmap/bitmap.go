// Package bitmap implements the shared, immutable, bit-packed boolean buffer
// underlying both the values and the validity of nullable columnar arrays.
//
// A Bitmap is an (offset, length) window into a reference-counted byte buffer
// using Arrow's LSB-first bit layout. Cloning, slicing and splitting are O(1)
// and never copy bytes; mutation is only reachable through the explicit
// clone-on-write boundary (IntoMut / MakeMut).
package bitmap

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/bitutil"

	"github.com/hattajr/polars/internal/metrics"
)

// Bitmap is an immutable view of length bits starting at a bit offset into a
// shared backing buffer.
//
// A Bitmap handle may be read concurrently through clones; a single handle is
// not safe for concurrent use because the unset-bit count is cached lazily.
type Bitmap struct {
	storage *storage
	offset  int
	length  int
	// unsetBits caches the number of zero bits in the window; -1 means the
	// count has not been taken yet.
	unsetBits int
}

// New returns an empty Bitmap.
func New() *Bitmap {
	return &Bitmap{storage: newStorage(nil, "empty"), unsetBits: 0}
}

// NewZeroed returns an all-zero Bitmap of the given length.
func NewZeroed(length int) *Bitmap {
	buf := make([]byte, bitutil.BytesForBits(int64(length)))
	return &Bitmap{storage: newStorage(buf, "zeroed"), length: length, unsetBits: length}
}

// FromBools builds a Bitmap from a slice of booleans.
func FromBools(vals []bool) *Bitmap {
	buf := make([]byte, bitutil.BytesForBits(int64(len(vals))))
	unset := 0
	for i, v := range vals {
		if v {
			bitutil.SetBit(buf, i)
		} else {
			unset++
		}
	}
	return &Bitmap{storage: newStorage(buf, "bools"), length: len(vals), unsetBits: unset}
}

// FromBytes wraps an existing LSB-first byte buffer as a Bitmap of length
// bits. The Bitmap takes ownership of buf; the caller must not mutate it
// afterwards. Panics if buf cannot hold length bits.
func FromBytes(buf []byte, length int) *Bitmap {
	if int64(len(buf))*8 < int64(length) {
		panic(fmt.Sprintf("bitmap: buffer of %d bytes cannot hold %d bits", len(buf), length))
	}
	return &Bitmap{storage: newStorage(buf, "bytes"), length: length, unsetBits: -1}
}

// Len returns the number of bits in the view.
func (b *Bitmap) Len() int {
	return b.length
}

// IsEmpty reports whether the view has zero length.
func (b *Bitmap) IsEmpty() bool {
	return b.length == 0
}

// GetBit returns the bit at position i.
// Panics if i >= Len().
func (b *Bitmap) GetBit(i int) bool {
	if i >= b.length {
		panic(fmt.Sprintf("bitmap: index %d out of range for length %d", i, b.length))
	}
	return b.GetBitUnchecked(i)
}

// GetBitUnchecked returns the bit at position i without the explicit bounds
// check. The caller must guarantee i < Len(); results past the window are
// meaningless.
func (b *Bitmap) GetBitUnchecked(i int) bool {
	return bitutil.BitIsSet(b.storage.buf, b.offset+i)
}

// Clone returns a new handle onto the same backing buffer. O(1).
func (b *Bitmap) Clone() *Bitmap {
	b.storage.retain()
	return &Bitmap{storage: b.storage, offset: b.offset, length: b.length, unsetBits: b.unsetBits}
}

// Slice narrows this view in place to length bits starting at offset,
// relative to the current window. O(1), no bytes move.
// Panics if offset+length > Len().
func (b *Bitmap) Slice(offset, length int) {
	if offset+length > b.length {
		panic(fmt.Sprintf("bitmap: slice [%d, %d) out of range for length %d", offset, offset+length, b.length))
	}
	b.SliceUnchecked(offset, length)
}

// SliceUnchecked narrows this view in place without the bounds check.
// The caller must guarantee offset+length <= Len().
func (b *Bitmap) SliceUnchecked(offset, length int) {
	b.unsetBits = b.slicedCache(length)
	b.offset += offset
	b.length = length
}

// Sliced returns a new O(1) view of length bits starting at offset, sharing
// the same backing buffer. Panics if offset+length > Len().
func (b *Bitmap) Sliced(offset, length int) *Bitmap {
	out := b.Clone()
	out.Slice(offset, length)
	return out
}

// SlicedUnchecked is Sliced without the bounds check.
func (b *Bitmap) SlicedUnchecked(offset, length int) *Bitmap {
	out := b.Clone()
	out.SliceUnchecked(offset, length)
	return out
}

// slicedCache derives the unset-bit cache for a sub-window of newLength bits.
// Counts that cannot be carried over degrade to unknown.
func (b *Bitmap) slicedCache(newLength int) int {
	switch {
	case b.unsetBits == 0:
		return 0
	case b.unsetBits == b.length:
		return newLength
	case newLength == b.length:
		return b.unsetBits
	default:
		return -1
	}
}

// SplitAt returns two zero-copy views covering [0, offset) and [offset, Len()).
// Panics if offset > Len().
func (b *Bitmap) SplitAt(offset int) (*Bitmap, *Bitmap) {
	if offset > b.length {
		panic(fmt.Sprintf("bitmap: split offset %d out of range for length %d", offset, b.length))
	}
	return b.SplitAtUnchecked(offset)
}

// SplitAtUnchecked is SplitAt without the bounds check.
func (b *Bitmap) SplitAtUnchecked(offset int) (*Bitmap, *Bitmap) {
	return b.SlicedUnchecked(0, offset), b.SlicedUnchecked(offset, b.length-offset)
}

// UnsetBits returns the number of zero bits in the view. The count is cached:
// the first call after a cache miss costs O(n), subsequent calls are O(1).
func (b *Bitmap) UnsetBits() int {
	if b.unsetBits < 0 {
		b.unsetBits = b.length - bitutil.CountSetBits(b.storage.buf, b.offset, b.length)
	}
	return b.unsetBits
}

// SetBits returns the number of one bits in the view.
func (b *Bitmap) SetBits() int {
	return b.length - b.UnsetBits()
}

// Iter returns a cursor over the bits of the view.
func (b *Bitmap) Iter() *Iter {
	return &Iter{buf: b.storage.buf, offset: b.offset, length: b.length}
}

// IntoMut consumes this handle and attempts to reclaim its buffer for
// mutation without copying. Exactly one return value is non-nil: when the
// backing buffer is uniquely owned and the view starts at bit zero, the
// MutableBitmap reuses the buffer; otherwise the original Bitmap is handed
// back unchanged and the caller must use MakeMut or Clone explicitly.
func (b *Bitmap) IntoMut() (*MutableBitmap, *Bitmap) {
	if b.offset == 0 && b.storage.unique() {
		metrics.BitmapZeroCopyReclaimsTotal.Inc()
		return &MutableBitmap{buf: b.storage.buf, length: b.length}, nil
	}
	return nil, b
}

// MakeMut consumes this handle and unconditionally returns a mutable buffer:
// the same storage when uniquely owned, otherwise one full copy of the
// window. This is the clone-on-write boundary.
func (b *Bitmap) MakeMut() *MutableBitmap {
	if m, _ := b.IntoMut(); m != nil {
		return m
	}
	metrics.BitmapCOWCopiesTotal.Inc()
	buf := make([]byte, bitutil.BytesForBits(int64(b.length)))
	if b.offset%8 == 0 {
		copy(buf, b.storage.buf[b.offset/8:])
	} else {
		for i := 0; i < b.length; i++ {
			if b.GetBitUnchecked(i) {
				bitutil.SetBit(buf, i)
			}
		}
	}
	return &MutableBitmap{buf: buf, length: b.length}
}
