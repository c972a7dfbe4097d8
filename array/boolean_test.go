package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hattajr/polars/bitmap"
	"github.com/hattajr/polars/datatypes"
	"github.com/hattajr/polars/errors"
)

func collect(a *BooleanArray) []NullBool {
	out := make([]NullBool, 0, a.Len())
	it := a.Iter()
	for {
		nb, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, nb)
	}
}

func collectBits(b *bitmap.Bitmap) []bool {
	out := make([]bool, 0, b.Len())
	it := b.Iter()
	for {
		v, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestTryNew(t *testing.T) {
	values := bitmap.FromBools([]bool{true, false, true})
	validity := bitmap.FromBools([]bool{true, true, false})

	a, err := TryNew(datatypes.Boolean, values, validity)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, datatypes.Boolean, a.DataType())
}

func TestTryNewValidityLengthMismatch(t *testing.T) {
	values := bitmap.FromBools([]bool{true, false, true})
	validity := bitmap.FromBools([]bool{true, true})

	_, err := TryNew(datatypes.Boolean, values, validity)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindCompute))
	assert.Contains(t, err.Error(), "validity mask length")
}

func TestTryNewWrongPhysicalType(t *testing.T) {
	values := bitmap.FromBools([]bool{true})

	for _, dtype := range []datatypes.DataType{datatypes.Int32, datatypes.Utf8, datatypes.Date} {
		_, err := TryNew(dtype, values.Clone(), nil)
		require.Error(t, err, "%s", dtype)
		assert.True(t, errors.IsKind(err, errors.KindCompute))
	}
}

func TestNewPanicsOnInvalid(t *testing.T) {
	values := bitmap.FromBools([]bool{true})

	assert.Panics(t, func() { New(datatypes.Int64, values, nil) })
}

func TestCanonicalExample(t *testing.T) {
	// [true, null, false]
	a := FromNullBools([]NullBool{
		{Bool: true, Valid: true},
		{},
		{Bool: false, Valid: true},
	})

	assert.Equal(t, []bool{true, false, false}, collectBits(a.Values()))
	require.NotNil(t, a.Validity())
	assert.Equal(t, []bool{true, false, true}, collectBits(a.Validity()))
	assert.Equal(t, []NullBool{
		{Bool: true, Valid: true},
		{},
		{Bool: false, Valid: true},
	}, collect(a))

	assert.Equal(t, NullBool{Bool: true, Valid: true}, a.Get(0))
	assert.Equal(t, NullBool{}, a.Get(1))
	assert.True(t, a.IsNull(1))
	assert.False(t, a.IsNull(2))
	assert.Equal(t, 1, a.NullCount())

	assert.Equal(t, []bool{true, false, false}, collectBits(a.TrueAndValid()))
	// values OR validity: the null slot degenerates to its stored bit.
	assert.Equal(t, []bool{true, false, true}, collectBits(a.TrueOrValid()))
}

func TestTrueCombinatorsAgainstTruthTable(t *testing.T) {
	a := FromNullBools([]NullBool{
		{Bool: true, Valid: true},
		{Bool: false, Valid: true},
		{},
		{Bool: true, Valid: true},
		{},
		{Bool: false, Valid: true},
	})

	and := a.TrueAndValid()
	or := a.TrueOrValid()
	for i := 0; i < a.Len(); i++ {
		value := a.Value(i)
		valid := !a.IsNull(i)
		assert.Equal(t, value && valid, and.GetBit(i), "and bit %d", i)
		assert.Equal(t, value || valid, or.GetBit(i), "or bit %d", i)
	}
}

func TestTrueCombinatorsWithoutValidity(t *testing.T) {
	a := FromBools([]bool{true, false, true})

	assert.Equal(t, []bool{true, false, true}, collectBits(a.TrueAndValid()))
	assert.Equal(t, []bool{true, false, true}, collectBits(a.TrueOrValid()))
}

func TestNewNull(t *testing.T) {
	a := NewNull(datatypes.Boolean, 3)

	assert.Equal(t, 3, a.Len())
	assert.Equal(t, []NullBool{{}, {}, {}}, collect(a))
	require.NotNil(t, a.Validity())
	assert.Equal(t, 3, a.Validity().UnsetBits())
	assert.Equal(t, 3, a.NullCount())
}

func TestNewEmpty(t *testing.T) {
	a := NewEmpty(datatypes.Boolean)

	assert.Equal(t, 0, a.Len())
	assert.Nil(t, a.Validity())
	assert.Empty(t, collect(a))
}

func TestValueOutOfRangePanics(t *testing.T) {
	a := FromBools([]bool{true})

	assert.Panics(t, func() { a.Value(1) })
	assert.Panics(t, func() { a.Get(1) })
	assert.Panics(t, func() { a.IsNull(1) })
}

func TestSliceIsContentPreserving(t *testing.T) {
	src := []NullBool{
		{Bool: true, Valid: true},
		{},
		{Bool: false, Valid: true},
		{Bool: true, Valid: true},
		{},
		{Bool: true, Valid: true},
	}
	a := FromNullBools(src)

	for offset := 0; offset <= len(src); offset++ {
		for length := 0; offset+length <= len(src); length++ {
			view := a.Sliced(offset, length)
			assert.Equal(t, src[offset:offset+length], collect(view), "window [%d, %d)", offset, offset+length)
		}
	}

	assert.Panics(t, func() { a.Sliced(4, 3) })
}

func TestSliceCollapsesValidity(t *testing.T) {
	// Nulls only in the first half; slicing past them must collapse the
	// validity mask to nil.
	a := FromNullBools([]NullBool{
		{},
		{Bool: true, Valid: true},
		{Bool: false, Valid: true},
		{Bool: true, Valid: true},
	})
	require.NotNil(t, a.Validity())

	view := a.Sliced(1, 3)
	assert.Nil(t, view.Validity())
	assert.Equal(t, 0, view.NullCount())
}

func TestApplyValuesMutKeepsValidity(t *testing.T) {
	// Only slicing collapses an all-valid mask; the clone-on-write transform
	// leaves it in place even when every bit is set.
	values := bitmap.FromBools([]bool{true, false})
	validity := bitmap.FromBools([]bool{true, true})
	a := New(datatypes.Boolean, values, validity)

	a.ApplyValuesMut(func(m *bitmap.MutableBitmap) {
		m.Set(1, true)
	})
	assert.NotNil(t, a.Validity())
	assert.Equal(t, []bool{true, true}, collectBits(a.Values()))
}

func TestApplyValuesMutSharedAndUniqueAgree(t *testing.T) {
	invert := func(m *bitmap.MutableBitmap) {
		for i := 0; i < m.Len(); i++ {
			m.Set(i, !m.Get(i))
		}
	}

	unique := FromBools([]bool{true, false, true})
	unique.ApplyValuesMut(invert)

	shared := FromBools([]bool{true, false, true})
	keeper := shared.Values().Clone()
	shared.ApplyValuesMut(invert)

	// Sharing changes only the cost, never the result.
	assert.Equal(t, collect(unique), collect(shared))
	// The other holder is untouched by the copy-based path.
	assert.Equal(t, []bool{true, false, true}, collectBits(keeper))
}

func TestApplyValuesMutLengthChangePanics(t *testing.T) {
	a := FromBools([]bool{true, false})

	assert.Panics(t, func() {
		a.ApplyValuesMut(func(m *bitmap.MutableBitmap) {
			m.Push(true)
		})
	})
}

func TestSplitAtComposition(t *testing.T) {
	src := []NullBool{
		{Bool: true, Valid: true},
		{},
		{Bool: false, Valid: true},
		{},
		{Bool: true, Valid: true},
	}
	a := FromNullBools(src)

	for k := 0; k <= len(src); k++ {
		lhs, rhs := a.SplitAt(k)
		joined := append(collect(lhs), collect(rhs)...)
		assert.Equal(t, src, joined, "split at %d", k)
	}

	assert.Panics(t, func() { a.SplitAt(len(src) + 1) })
}

func TestWithValues(t *testing.T) {
	a := FromBools([]bool{true, false, true})
	replacement := bitmap.FromBools([]bool{false, false, false})

	b := a.WithValues(replacement)
	assert.Equal(t, []bool{false, false, false}, collectBits(b.Values()))
	// The original is untouched.
	assert.Equal(t, []bool{true, false, true}, collectBits(a.Values()))

	assert.Panics(t, func() { a.WithValues(bitmap.FromBools([]bool{true})) })
}

func TestWithValidity(t *testing.T) {
	a := FromBools([]bool{true, false, true})

	boxed := a.WithValidity(bitmap.FromBools([]bool{true, false, true}))
	assert.Equal(t, 1, boxed.NullCount())
	assert.Equal(t, 0, a.NullCount())

	cleared := boxed.WithValidity(nil)
	assert.Nil(t, cleared.Validity())

	assert.Panics(t, func() { a.WithValidity(bitmap.FromBools([]bool{true})) })
}

func TestIntoMutUniquelyOwnedRoundTrips(t *testing.T) {
	src := []NullBool{
		{Bool: true, Valid: true},
		{},
		{Bool: false, Valid: true},
	}
	a := FromNullBools(src)

	m, imm := a.IntoMut()
	require.NotNil(t, m)
	assert.Nil(t, imm)

	frozen := m.Freeze()
	assert.Equal(t, src, collect(frozen))
}

func TestIntoMutSharedValuesReturnsOriginal(t *testing.T) {
	a := FromNullBools([]NullBool{
		{Bool: true, Valid: true},
		{},
	})
	before := collect(a)
	keeper := a.Values().Clone()

	m, imm := a.IntoMut()
	assert.Nil(t, m)
	require.NotNil(t, imm)
	assert.Equal(t, before, collect(imm))
	_ = keeper
}

func TestIntoMutSharedValidityReturnsOriginal(t *testing.T) {
	a := FromNullBools([]NullBool{
		{Bool: true, Valid: true},
		{},
	})
	before := collect(a)
	keeper := a.Validity().Clone()

	m, imm := a.IntoMut()
	assert.Nil(t, m)
	require.NotNil(t, imm)
	assert.Equal(t, before, collect(imm))
	_ = keeper
}

func TestIntoMutWithoutValidity(t *testing.T) {
	a := FromBools([]bool{true, false})

	m, imm := a.IntoMut()
	require.NotNil(t, m)
	assert.Nil(t, imm)

	frozen := m.Freeze()
	assert.Nil(t, frozen.Validity())
	assert.Equal(t, []bool{true, false}, collectBits(frozen.Values()))
}

func TestIntoInnerRoundTrips(t *testing.T) {
	values := bitmap.FromBools([]bool{true, false})
	validity := bitmap.FromBools([]bool{true, false})
	a := New(datatypes.Boolean, values, validity)

	dtype, vs, vd := a.IntoInner()
	assert.Equal(t, datatypes.Boolean, dtype)

	rebuilt := FromInnerUnchecked(dtype, vs, vd)
	assert.Equal(t, []NullBool{{Bool: true, Valid: true}, {}}, collect(rebuilt))
}

func TestArrayInterface(t *testing.T) {
	var a Array = FromNullBools([]NullBool{
		{Bool: true, Valid: true},
		{},
		{Bool: false, Valid: true},
	})

	assert.Equal(t, 3, a.Len())
	assert.Equal(t, datatypes.Boolean, a.DataType())
	assert.Equal(t, 1, a.NullCount())

	a.Slice(0, 2)
	assert.Equal(t, 2, a.Len())
}
