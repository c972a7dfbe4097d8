package array

import "github.com/hattajr/polars/bitmap"

// ZipValidity lazily pairs a values cursor with an optional validity cursor,
// producing one NullBool per slot. It is a view scoped to the array it came
// from: it holds no data of its own and restarts by calling Iter again.
type ZipValidity struct {
	values   *bitmap.Iter
	validity *bitmap.Iter
}

// NewZipValidity pairs a values cursor with an optional validity cursor.
// A nil validity means every slot is valid.
func NewZipValidity(values, validity *bitmap.Iter) *ZipValidity {
	return &ZipValidity{values: values, validity: validity}
}

// Next returns the next slot and whether one remained.
func (z *ZipValidity) Next() (NullBool, bool) {
	v, ok := z.values.Next()
	if !ok {
		return NullBool{}, false
	}
	if z.validity != nil {
		if valid, _ := z.validity.Next(); !valid {
			return NullBool{}, true
		}
	}
	return NullBool{Bool: v, Valid: true}, true
}

// Remaining returns the number of slots not yet produced.
func (z *ZipValidity) Remaining() int {
	return z.values.Remaining()
}

// NonNullValues iterates the raw values of the non-null slots, in order.
// It yields exactly Len() - NullCount() items.
type NonNullValues struct {
	zip ZipValidity
}

// Next returns the next non-null value and whether one remained.
func (it *NonNullValues) Next() (bool, bool) {
	for {
		nb, ok := it.zip.Next()
		if !ok {
			return false, false
		}
		if nb.Valid {
			return nb.Bool, true
		}
	}
}

// Iter returns a lazy, restartable iterator over the optional values of the
// array, yielding exactly Len() items.
func (a *BooleanArray) Iter() *ZipValidity {
	var validity *bitmap.Iter
	if a.validity != nil {
		validity = a.validity.Iter()
	}
	return NewZipValidity(a.values.Iter(), validity)
}

// ValuesIter returns an iterator over the raw values, ignoring nullness.
func (a *BooleanArray) ValuesIter() *bitmap.Iter {
	return a.values.Iter()
}

// NonNullValuesIter returns an iterator over the values of the non-null
// slots only.
func (a *BooleanArray) NonNullValuesIter() *NonNullValues {
	return &NonNullValues{zip: *a.Iter()}
}
