package bitmap

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/bitutil"
)

// MutableBitmap is an exclusively owned, growable bit buffer. It is the
// append-side counterpart of Bitmap and freezes into one at O(1) cost.
type MutableBitmap struct {
	buf    []byte
	length int
}

// NewMutable returns an empty MutableBitmap.
func NewMutable() *MutableBitmap {
	return &MutableBitmap{}
}

// NewMutableWithCapacity returns an empty MutableBitmap with room for
// capacity bits before the next allocation.
func NewMutableWithCapacity(capacity int) *MutableBitmap {
	return &MutableBitmap{buf: make([]byte, 0, bitutil.BytesForBits(int64(capacity)))}
}

// Len returns the number of bits pushed so far.
func (m *MutableBitmap) Len() int {
	return m.length
}

// Get returns the bit at position i.
// Panics if i >= Len().
func (m *MutableBitmap) Get(i int) bool {
	if i >= m.length {
		panic(fmt.Sprintf("bitmap: index %d out of range for length %d", i, m.length))
	}
	return bitutil.BitIsSet(m.buf, i)
}

// Set writes the bit at position i.
// Panics if i >= Len().
func (m *MutableBitmap) Set(i int, v bool) {
	if i >= m.length {
		panic(fmt.Sprintf("bitmap: index %d out of range for length %d", i, m.length))
	}
	bitutil.SetBitTo(m.buf, i, v)
}

// Push appends one bit.
func (m *MutableBitmap) Push(v bool) {
	if m.length == len(m.buf)*8 {
		m.buf = append(m.buf, 0)
	}
	bitutil.SetBitTo(m.buf, m.length, v)
	m.length++
}

// ExtendConstant appends n copies of v.
func (m *MutableBitmap) ExtendConstant(n int, v bool) {
	m.Reserve(n)
	for i := 0; i < n; i++ {
		m.Push(v)
	}
}

// Reserve ensures room for additional more bits before the next allocation.
func (m *MutableBitmap) Reserve(additional int) {
	need := int(bitutil.BytesForBits(int64(m.length + additional)))
	if need <= cap(m.buf) {
		return
	}
	grown := make([]byte, len(m.buf), need)
	copy(grown, m.buf)
	m.buf = grown
}

// Freeze consumes the MutableBitmap and returns an immutable Bitmap over the
// same buffer. O(1); no bytes move. The MutableBitmap must not be used
// afterwards.
func (m *MutableBitmap) Freeze() *Bitmap {
	b := &Bitmap{storage: newStorage(m.buf, "freeze"), length: m.length, unsetBits: -1}
	m.buf = nil
	m.length = 0
	return b
}

// FreezeCounted is Freeze with an eagerly supplied unset-bit count, for
// builders that tracked nulls while appending.
func (m *MutableBitmap) FreezeCounted(unsetBits int) *Bitmap {
	b := m.Freeze()
	b.unsetBits = unsetBits
	return b
}
