package array

import (
	"fmt"

	"github.com/hattajr/polars/bitmap"
	"github.com/hattajr/polars/datatypes"
	"github.com/hattajr/polars/errors"
)

// BooleanArray is an immutable nullable sequence of booleans: a values bitmap
// paired with an optional validity bitmap of the same length. A nil validity
// means every slot is non-null. The bit stored at a null slot carries no
// meaning.
//
// The struct itself is O(1) in size; all data lives in shared, refcounted
// bitmap storage, so cloning, slicing and splitting never copy bytes.
type BooleanArray struct {
	dtype    datatypes.DataType
	values   *bitmap.Bitmap
	validity *bitmap.Bitmap
}

var _ Array = (*BooleanArray)(nil)

// TryNew validates and constructs a BooleanArray. It fails with a compute
// error when validity is present with a length different from values, or when
// dtype's physical type is not boolean.
func TryNew(dtype datatypes.DataType, values *bitmap.Bitmap, validity *bitmap.Bitmap) (*BooleanArray, error) {
	if validity != nil && validity.Len() != values.Len() {
		return nil, errors.NewComputeError("array.TryNew", "validity mask length must match the number of values")
	}
	if dtype.Physical() != datatypes.PhysicalBoolean {
		return nil, errors.Newf(errors.KindCompute, "array.TryNew",
			"BooleanArray requires a data type with a boolean physical type, got %s", dtype)
	}
	return &BooleanArray{dtype: dtype, values: values, validity: validity}, nil
}

// New is TryNew for callers that have already established the invariants by
// construction; it panics on the same conditions TryNew reports.
func New(dtype datatypes.DataType, values *bitmap.Bitmap, validity *bitmap.Bitmap) *BooleanArray {
	a, err := TryNew(dtype, values, validity)
	if err != nil {
		panic(err)
	}
	return a
}

// NewEmpty returns a zero-length BooleanArray.
func NewEmpty(dtype datatypes.DataType) *BooleanArray {
	return New(dtype, bitmap.New(), nil)
}

// NewNull returns a BooleanArray of the given length whose every slot is
// null. The values and validity bitmaps share one zeroed buffer.
func NewNull(dtype datatypes.DataType, length int) *BooleanArray {
	zeroed := bitmap.NewZeroed(length)
	return New(dtype, zeroed.Clone(), zeroed)
}

// FromBools builds an all-valid BooleanArray from a slice of booleans.
func FromBools(vals []bool) *BooleanArray {
	return New(datatypes.Boolean, bitmap.FromBools(vals), nil)
}

// FromNullBools builds a BooleanArray from a slice of optional booleans.
func FromNullBools(vals []NullBool) *BooleanArray {
	return FromNullables(vals).Freeze()
}

// FromInnerUnchecked constructs a BooleanArray from its parts without
// validation, the inverse of IntoInner. The caller must uphold every
// invariant TryNew checks; interop code uses this after parsing buffers it
// has already validated.
func FromInnerUnchecked(dtype datatypes.DataType, values *bitmap.Bitmap, validity *bitmap.Bitmap) *BooleanArray {
	return &BooleanArray{dtype: dtype, values: values, validity: validity}
}

// Len returns the number of slots.
func (a *BooleanArray) Len() int {
	return a.values.Len()
}

// DataType returns the logical type tag.
func (a *BooleanArray) DataType() datatypes.DataType {
	return a.dtype
}

// Values returns the values bitmap. Bits at null slots are undetermined.
func (a *BooleanArray) Values() *bitmap.Bitmap {
	return a.values
}

// Validity returns the validity bitmap, or nil when all slots are non-null.
func (a *BooleanArray) Validity() *bitmap.Bitmap {
	return a.validity
}

// NullCount returns the number of null slots.
func (a *BooleanArray) NullCount() int {
	if a.validity == nil {
		return 0
	}
	return a.validity.UnsetBits()
}

// IsNull reports whether slot i is null.
// Panics if i >= Len().
func (a *BooleanArray) IsNull(i int) bool {
	if i >= a.values.Len() {
		panic(fmt.Sprintf("array: index %d out of range for length %d", i, a.values.Len()))
	}
	return a.validity != nil && !a.validity.GetBitUnchecked(i)
}

// Value returns the raw value at slot i, ignoring nullness.
// Panics if i >= Len().
func (a *BooleanArray) Value(i int) bool {
	return a.values.GetBit(i)
}

// ValueUnchecked is Value without the bounds check. The caller must
// guarantee i < Len().
func (a *BooleanArray) ValueUnchecked(i int) bool {
	return a.values.GetBitUnchecked(i)
}

// Get returns the value at slot i, null-aware: the result is invalid when
// the slot is null. Panics if i >= Len().
func (a *BooleanArray) Get(i int) NullBool {
	if a.IsNull(i) {
		return NullBool{}
	}
	return NullBool{Bool: a.ValueUnchecked(i), Valid: true}
}

// Clone returns a new handle onto the same storage. O(1).
func (a *BooleanArray) Clone() *BooleanArray {
	out := &BooleanArray{dtype: a.dtype, values: a.values.Clone()}
	if a.validity != nil {
		out.validity = a.validity.Clone()
	}
	return out
}

// Slice narrows the array in place to length slots starting at offset. O(1).
// If the narrowed validity mask has no unset bit left it is collapsed to nil,
// keeping "nil validity means all valid" canonical.
// Panics if offset+length > Len().
func (a *BooleanArray) Slice(offset, length int) {
	if offset+length > a.values.Len() {
		panic(fmt.Sprintf("array: slice [%d, %d) out of range for length %d", offset, offset+length, a.values.Len()))
	}
	a.SliceUnchecked(offset, length)
}

// SliceUnchecked is Slice without the bounds check. The caller must
// guarantee offset+length <= Len().
func (a *BooleanArray) SliceUnchecked(offset, length int) {
	if a.validity != nil {
		a.validity.SliceUnchecked(offset, length)
		if a.validity.UnsetBits() == 0 {
			a.validity = nil
		}
	}
	a.values.SliceUnchecked(offset, length)
}

// Sliced returns a new O(1) view of the given window, leaving the receiver
// untouched. Panics if offset+length > Len().
func (a *BooleanArray) Sliced(offset, length int) *BooleanArray {
	out := a.Clone()
	out.Slice(offset, length)
	return out
}

// SlicedUnchecked is Sliced without the bounds check. The caller must
// guarantee offset+length <= Len().
func (a *BooleanArray) SlicedUnchecked(offset, length int) *BooleanArray {
	out := a.Clone()
	out.SliceUnchecked(offset, length)
	return out
}

// SplitAt returns two zero-copy arrays covering [0, offset) and
// [offset, Len()). Panics if offset > Len().
func (a *BooleanArray) SplitAt(offset int) (*BooleanArray, *BooleanArray) {
	if offset > a.values.Len() {
		panic(fmt.Sprintf("array: split offset %d out of range for length %d", offset, a.values.Len()))
	}
	return a.SplitAtUnchecked(offset)
}

// SplitAtUnchecked is SplitAt without the bounds check.
func (a *BooleanArray) SplitAtUnchecked(offset int) (*BooleanArray, *BooleanArray) {
	lhsValues, rhsValues := a.values.SplitAtUnchecked(offset)
	var lhsValidity, rhsValidity *bitmap.Bitmap
	if a.validity != nil {
		lhsValidity, rhsValidity = a.validity.SplitAtUnchecked(offset)
	}
	lhs := &BooleanArray{dtype: a.dtype, values: lhsValues, validity: lhsValidity}
	rhs := &BooleanArray{dtype: a.dtype, values: rhsValues, validity: rhsValidity}
	return lhs, rhs
}

// WithValues returns a clone of the array with its values bitmap replaced.
// Panics if values.Len() != Len().
func (a *BooleanArray) WithValues(values *bitmap.Bitmap) *BooleanArray {
	out := a.Clone()
	out.SetValues(values)
	return out
}

// SetValues replaces the values bitmap in place.
// Panics if values.Len() != Len().
func (a *BooleanArray) SetValues(values *bitmap.Bitmap) {
	if values.Len() != a.values.Len() {
		panic(fmt.Sprintf("array: replacement values length %d does not match array length %d", values.Len(), a.values.Len()))
	}
	a.values = values
}

// SetValidity replaces the validity bitmap in place; nil marks every slot
// non-null. Panics if a non-nil validity's length differs from Len().
func (a *BooleanArray) SetValidity(validity *bitmap.Bitmap) {
	if validity != nil && validity.Len() != a.values.Len() {
		panic(fmt.Sprintf("array: validity length %d does not match array length %d", validity.Len(), a.values.Len()))
	}
	a.validity = validity
}

// WithValidity returns a clone of the array with its validity replaced,
// boxed behind the Array interface for type-erased callers.
// Panics if a non-nil validity's length differs from Len().
func (a *BooleanArray) WithValidity(validity *bitmap.Bitmap) Array {
	out := a.Clone()
	out.SetValidity(validity)
	return out
}

// ApplyValuesMut applies f to the values bitmap under the clone-on-write
// discipline: f runs directly on the backing buffer when it is exclusively
// owned, otherwise on a full copy. Sharing changes only the cost, never the
// result. Panics if f changes the bitmap's length.
func (a *BooleanArray) ApplyValuesMut(f func(*bitmap.MutableBitmap)) {
	length := a.values.Len()
	m := a.values.MakeMut()
	f(m)
	if m.Len() != length {
		panic(fmt.Sprintf("array: values transform changed length from %d to %d", length, m.Len()))
	}
	a.values = m.Freeze()
}

// TrueAndValid returns a bitmap with bit i set iff the value at i is true
// and the slot is non-null. Absent validity degenerates to the values bitmap.
func (a *BooleanArray) TrueAndValid() *bitmap.Bitmap {
	if a.validity == nil {
		return a.values.Clone()
	}
	return bitmap.CombineValiditiesAnd(a.values, a.validity)
}

// TrueOrValid returns a bitmap with bit i set iff the value at i is true or
// the slot is non-null; at a null slot the result carries the stored value
// bit. Absent validity degenerates to the values bitmap.
func (a *BooleanArray) TrueOrValid() *bitmap.Bitmap {
	if a.validity == nil {
		return a.values.Clone()
	}
	return bitmap.CombineValiditiesOr(a.values, a.validity)
}

// IntoMut consumes the array and attempts to reclaim exclusive ownership of
// both bitmaps, handing back a builder without copying. Exactly one return
// value is non-nil. Validity ownership is tested first, then values; if
// either buffer is shared the original array is returned unchanged and no
// copy is made.
func (a *BooleanArray) IntoMut() (*MutableBooleanArray, *BooleanArray) {
	if a.validity != nil {
		mutValidity, immValidity := a.validity.IntoMut()
		if mutValidity == nil {
			a.validity = immValidity
			return nil, a
		}
		mutValues, immValues := a.values.IntoMut()
		if mutValues == nil {
			a.values = immValues
			a.validity = mutValidity.Freeze()
			return nil, a
		}
		m, err := TryNewMutable(a.dtype, mutValues, mutValidity)
		if err != nil {
			panic(err)
		}
		return m, nil
	}
	mutValues, immValues := a.values.IntoMut()
	if mutValues == nil {
		a.values = immValues
		return nil, a
	}
	m, err := TryNewMutable(a.dtype, mutValues, nil)
	if err != nil {
		panic(err)
	}
	return m, nil
}

// IntoInner consumes the array and returns its parts.
func (a *BooleanArray) IntoInner() (datatypes.DataType, *bitmap.Bitmap, *bitmap.Bitmap) {
	return a.dtype, a.values, a.validity
}
