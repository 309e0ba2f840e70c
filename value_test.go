package dbor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_Kind(t *testing.T) {
	tests := map[string]struct {
		v    Value
		want Variant
	}{
		"None":       {None(), VariantNone},
		"Int64":      {Int64(-1), VariantInteger},
		"Uint64":     {Uint64(1), VariantInteger},
		"ByteString": {ByteString([]byte{1, 2}), VariantByteString},
		"Utf8String": {Utf8String("hi"), VariantUtf8String},
		"Sequence":   {Sequence(), VariantSequence},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Kind())
		})
	}
}

func TestValue_Zero(t *testing.T) {
	var v Value
	assert.True(t, v.IsNone())
	assert.Equal(t, None(), v)
}

func TestInt64_RoundTrip(t *testing.T) {
	tests := []int64{0, 1, -1, 23, -24, math.MaxInt64, math.MinInt64}
	for _, n := range tests {
		v := Int64(n)
		assert.Equal(t, n < 0, v.IsNegative())
		got, ok := v.Int64()
		require.True(t, ok)
		assert.Equal(t, n, got)
	}
}

func TestUint64_RoundTrip(t *testing.T) {
	tests := []uint64{0, 1, math.MaxInt64, math.MaxInt64 + 1, math.MaxUint64}
	for _, n := range tests {
		v := Uint64(n)
		assert.False(t, v.IsNegative())
		got, ok := v.Uint64()
		require.True(t, ok)
		assert.Equal(t, n, got)
	}
}

func TestValue_Int64_NotRepresentable(t *testing.T) {
	v := Uint64(math.MaxUint64)
	_, ok := v.Int64()
	assert.False(t, ok)

	_, ok = None().Int64()
	assert.False(t, ok)
}

func TestValue_Uint64_NotRepresentable(t *testing.T) {
	v := Int64(-1)
	_, ok := v.Uint64()
	assert.False(t, ok)

	_, ok = None().Uint64()
	assert.False(t, ok)
}

func TestByteString_CopiesInput(t *testing.T) {
	src := []byte{1, 2, 3}
	v := ByteString(src)
	src[0] = 0xff

	got, ok := v.Bytes()
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestUtf8StringBytes(t *testing.T) {
	v, err := Utf8StringBytes([]byte("héllo"))
	require.NoError(t, err)
	s, ok := v.Text()
	require.True(t, ok)
	assert.Equal(t, "héllo", s)

	_, err = Utf8StringBytes([]byte{0xff, 0xfe})
	var derr *Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, KindInvalidUtf8, derr.Kind)
}

func TestSequence_CopiesInput(t *testing.T) {
	children := []Value{Int64(1), Int64(2)}
	v := Sequence(children...)
	children[0] = Int64(99)

	got, ok := v.Children()
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.True(t, got[0].Equal(Int64(1)))
}

func TestValue_AccessorsWrongVariant(t *testing.T) {
	v := Int64(1)

	_, ok := v.Bytes()
	assert.False(t, ok)
	_, ok = v.Text()
	assert.False(t, ok)
	_, ok = v.Children()
	assert.False(t, ok)
}

func TestValue_Equal(t *testing.T) {
	tests := map[string]struct {
		a, b Value
		want bool
	}{
		"NoneEqual":           {None(), None(), true},
		"NoneVsInt":           {None(), Int64(0), false},
		"IntEqual":            {Int64(-5), Int64(-5), true},
		"IntVsUint":           {Int64(0), Uint64(0), true},
		"NegVsPosSameMag":     {Int64(-1), Uint64(0), false},
		"BytesEqual":          {ByteString([]byte{1, 2}), ByteString([]byte{1, 2}), true},
		"BytesDiffer":         {ByteString([]byte{1, 2}), ByteString([]byte{1, 3}), false},
		"BytesNilVsEmpty":     {ByteString(nil), ByteString([]byte{}), true},
		"TextEqual":           {Utf8String("a"), Utf8String("a"), true},
		"TextDiffer":          {Utf8String("a"), Utf8String("b"), false},
		"SeqEqual":            {Sequence(Int64(1), Int64(2)), Sequence(Int64(1), Int64(2)), true},
		"SeqOrderMatters":     {Sequence(Int64(1), Int64(2)), Sequence(Int64(2), Int64(1)), false},
		"SeqLengthDiffers":    {Sequence(Int64(1)), Sequence(Int64(1), Int64(2)), false},
		"SeqNested":           {Sequence(Sequence(Int64(1))), Sequence(Sequence(Int64(1))), true},
		"SeqEmptyVsEmpty":     {Sequence(), Sequence(), true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestValue_String(t *testing.T) {
	tests := map[string]struct {
		v    Value
		want string
	}{
		"None":       {None(), "None"},
		"Uint":       {Uint64(7), "Uint64(7)"},
		"NegInt":     {Int64(-1), "Int64(-1)"},
		"Bytes":      {ByteString([]byte{0x01, 0x02}), "ByteString(0102)"},
		"Text":       {Utf8String("hi"), `Utf8String("hi")`},
		"EmptySeq":   {Sequence(), "Sequence{}"},
		"FlatSeq":    {Sequence(Int64(1), Utf8String("A")), `Sequence{Uint64(1), Utf8String("A")}`},
		"NestedSeq":  {Sequence(Sequence(Int64(1))), "Sequence{Sequence{Uint64(1)}}"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
			assert.Equal(t, tt.want, tt.v.GoString())
		})
	}
}
