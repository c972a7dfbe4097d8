package array

import (
	"fmt"

	"github.com/hattajr/polars/bitmap"
	"github.com/hattajr/polars/datatypes"
	"github.com/hattajr/polars/errors"
	"github.com/hattajr/polars/internal/metrics"
)

// MutableBooleanArray accumulates a nullable boolean column incrementally
// and freezes into an immutable BooleanArray at O(1) cost. It is exclusively
// owned and append-only.
//
// The validity buffer is materialized lazily: until the first null is
// appended, "no nulls so far" is represented by its absence, mirroring the
// immutable array's nil-validity invariant.
type MutableBooleanArray struct {
	dtype    datatypes.DataType
	values   *bitmap.MutableBitmap
	validity *bitmap.MutableBitmap
}

// NewMutableBooleanArray returns an empty builder of logical type Boolean.
func NewMutableBooleanArray() *MutableBooleanArray {
	return &MutableBooleanArray{dtype: datatypes.Boolean, values: bitmap.NewMutable()}
}

// NewMutableBooleanArrayWithCapacity returns an empty builder with room for
// capacity slots before the next allocation.
func NewMutableBooleanArrayWithCapacity(capacity int) *MutableBooleanArray {
	return &MutableBooleanArray{dtype: datatypes.Boolean, values: bitmap.NewMutableWithCapacity(capacity)}
}

// TryNewMutable validates and constructs a builder from existing mutable
// buffers, under the same contract as TryNew.
func TryNewMutable(dtype datatypes.DataType, values *bitmap.MutableBitmap, validity *bitmap.MutableBitmap) (*MutableBooleanArray, error) {
	if validity != nil && validity.Len() != values.Len() {
		return nil, errors.NewComputeError("array.TryNewMutable", "validity mask length must match the number of values")
	}
	if dtype.Physical() != datatypes.PhysicalBoolean {
		return nil, errors.Newf(errors.KindCompute, "array.TryNewMutable",
			"MutableBooleanArray requires a data type with a boolean physical type, got %s", dtype)
	}
	return &MutableBooleanArray{dtype: dtype, values: values, validity: validity}, nil
}

// FromValues builds an all-valid builder from a slice of booleans.
func FromValues(vals []bool) *MutableBooleanArray {
	m := NewMutableBooleanArrayWithCapacity(len(vals))
	m.AppendValues(vals)
	return m
}

// FromNullables builds a builder from a slice of optional booleans.
func FromNullables(vals []NullBool) *MutableBooleanArray {
	m := NewMutableBooleanArrayWithCapacity(len(vals))
	for _, v := range vals {
		m.AppendNullable(v)
	}
	return m
}

// FromIter builds a builder from a trusted-length iterator: f is called for
// every i in [0, n) and buffers are sized for n up front.
func FromIter(n int, f func(i int) NullBool) *MutableBooleanArray {
	m := NewMutableBooleanArrayWithCapacity(n)
	for i := 0; i < n; i++ {
		m.AppendNullable(f(i))
	}
	return m
}

// TryFromIter builds a builder from a fallible trusted-length iterator. The
// first error aborts the whole construction and is returned; no partial
// builder is observable.
func TryFromIter(n int, f func(i int) (NullBool, error)) (*MutableBooleanArray, error) {
	m := NewMutableBooleanArrayWithCapacity(n)
	for i := 0; i < n; i++ {
		nb, err := f(i)
		if err != nil {
			return nil, err
		}
		m.AppendNullable(nb)
	}
	return m, nil
}

// Len returns the number of slots appended so far.
func (m *MutableBooleanArray) Len() int {
	return m.values.Len()
}

// DataType returns the logical type tag.
func (m *MutableBooleanArray) DataType() datatypes.DataType {
	return m.dtype
}

// Append appends a non-null value.
func (m *MutableBooleanArray) Append(v bool) {
	m.values.Push(v)
	if m.validity != nil {
		m.validity.Push(true)
	}
}

// AppendNull appends a null slot. The stored value bit is zero but carries
// no meaning.
func (m *MutableBooleanArray) AppendNull() {
	if m.validity == nil {
		m.initValidity()
	}
	m.values.Push(false)
	m.validity.Push(false)
}

// AppendNullable appends an optional value.
func (m *MutableBooleanArray) AppendNullable(nb NullBool) {
	if nb.Valid {
		m.Append(nb.Bool)
	} else {
		m.AppendNull()
	}
}

// AppendValues appends a run of non-null values.
func (m *MutableBooleanArray) AppendValues(vals []bool) {
	m.values.Reserve(len(vals))
	if m.validity != nil {
		m.validity.Reserve(len(vals))
	}
	for _, v := range vals {
		m.Append(v)
	}
}

// initValidity materializes the validity buffer, backfilling every slot
// appended so far as valid.
func (m *MutableBooleanArray) initValidity() {
	m.validity = bitmap.NewMutableWithCapacity(m.values.Len() + 1)
	m.validity.ExtendConstant(m.values.Len(), true)
}

// Get returns the slot at index i, null-aware.
// Panics if i >= Len().
func (m *MutableBooleanArray) Get(i int) NullBool {
	if i >= m.values.Len() {
		panic(fmt.Sprintf("array: index %d out of range for length %d", i, m.values.Len()))
	}
	if m.validity != nil && !m.validity.Get(i) {
		return NullBool{}
	}
	return NullBool{Bool: m.values.Get(i), Valid: true}
}

// Freeze consumes the builder and returns an immutable BooleanArray over the
// same buffers. O(1); no bytes move. The builder must not be used afterwards.
// A validity buffer that was never materialized stays absent.
func (m *MutableBooleanArray) Freeze() *BooleanArray {
	var validity *bitmap.Bitmap
	if m.validity != nil {
		validity = m.validity.Freeze()
	}
	a := New(m.dtype, m.values.Freeze(), validity)
	m.values = nil
	m.validity = nil
	metrics.ArraysFrozenTotal.Inc()
	return a
}
