// Package array implements nullable columnar arrays over bit-packed shared
// storage: the immutable BooleanArray, its growable MutableBooleanArray
// counterpart and the null-aware iterators tying them together.
package array

import (
	"github.com/hattajr/polars/bitmap"
	"github.com/hattajr/polars/datatypes"
)

// Array is the capability set shared by every concrete column kind. Generic
// column-processing code operates through it without knowing the underlying
// representation.
type Array interface {
	// Len returns the number of slots in the array.
	Len() int
	// DataType returns the array's logical type tag.
	DataType() datatypes.DataType
	// Validity returns the validity mask, or nil when every slot is non-null.
	Validity() *bitmap.Bitmap
	// NullCount returns the number of null slots.
	NullCount() int
	// Slice narrows the array in place to the given window. O(1).
	Slice(offset, length int)
	// SliceUnchecked is Slice without the bounds check.
	SliceUnchecked(offset, length int)
	// WithValidity returns a clone of the array with its validity replaced.
	WithValidity(validity *bitmap.Bitmap) Array
}

// NullBool is an optional boolean: Valid reports whether Bool carries a
// value. The zero value is null. It mirrors database/sql.NullBool.
type NullBool struct {
	Bool  bool
	Valid bool
}
