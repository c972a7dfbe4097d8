package bitmap

import "github.com/apache/arrow-go/v18/arrow/bitutil"

// Iter is a cursor over the bits of a Bitmap window. It borrows the backing
// buffer of the Bitmap it came from and is valid for as long as that Bitmap
// is; restart by calling Iter again on the source.
type Iter struct {
	buf    []byte
	offset int
	length int
	pos    int
}

// Next returns the next bit and whether one remained.
func (it *Iter) Next() (bool, bool) {
	if it.pos >= it.length {
		return false, false
	}
	v := bitutil.BitIsSet(it.buf, it.offset+it.pos)
	it.pos++
	return v, true
}

// Remaining returns the number of bits not yet produced.
func (it *Iter) Remaining() int {
	return it.length - it.pos
}
