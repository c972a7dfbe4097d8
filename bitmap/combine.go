package bitmap

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/bitutil"
)

// CombineValiditiesAnd combines two optional validity masks with bitwise AND.
// A nil mask means "all valid", so AND with nil yields a clone of the other
// operand; both nil yields nil. Non-nil operands must have equal length.
func CombineValiditiesAnd(a, b *Bitmap) *Bitmap {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		return b.Clone()
	case b == nil:
		return a.Clone()
	default:
		return binaryOp(a, b, func(x, y byte) byte { return x & y }, "and")
	}
}

// CombineValiditiesOr combines two optional validity masks with bitwise OR.
// A nil mask means "all valid", and OR with an all-valid mask is all valid,
// so the result is nil unless both operands are present.
func CombineValiditiesOr(a, b *Bitmap) *Bitmap {
	if a == nil || b == nil {
		return nil
	}
	return binaryOp(a, b, func(x, y byte) byte { return x | y }, "or")
}

// binaryOp applies op bit-wise over two equal-length bitmaps. Byte-aligned
// views take the byte-at-a-time path; anything else falls back to per-bit.
func binaryOp(a, b *Bitmap, op func(x, y byte) byte, name string) *Bitmap {
	if a.length != b.length {
		panic(fmt.Sprintf("bitmap: %s of mismatched lengths %d and %d", name, a.length, b.length))
	}
	buf := make([]byte, bitutil.BytesForBits(int64(a.length)))
	if a.offset%8 == 0 && b.offset%8 == 0 {
		ab := a.storage.buf[a.offset/8:]
		bb := b.storage.buf[b.offset/8:]
		for i := range buf {
			buf[i] = op(ab[i], bb[i])
		}
	} else {
		for i := 0; i < a.length; i++ {
			one := byte(0)
			if a.GetBitUnchecked(i) {
				one = 1
			}
			other := byte(0)
			if b.GetBitUnchecked(i) {
				other = 1
			}
			if op(one, other)&1 != 0 {
				bitutil.SetBit(buf, i)
			}
		}
	}
	return &Bitmap{storage: newStorage(buf, name), length: a.length, unsetBits: -1}
}
