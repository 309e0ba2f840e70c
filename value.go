// Package dbor implements a codec for DBOR (Data Binary Object Representation)
// restricted to conformance level 2 of the DBOR 1.0.0 specification: None,
// signed/unsigned integers in the combined range [-2^63, 2^64-1], byte
// strings, UTF-8 strings, and nested sequences.
//
// The package exposes exactly two operations, [Encode] and [Decode], which
// are inverses of each other: for every [Value] in the supported domain,
// decoding the result of encoding it yields a structurally equal Value. See
// https://dbor.org for the format specification.
//
// Dictionary values, binary-rational values, and decimal-rational values
// (conformance level 3 and above) are out of scope. So is canonicalization
// beyond what the integer-token algorithm dictates, streaming/incremental
// decoding, zero-copy views, and schema validation.
package dbor

import (
	"bytes"
	"math"
	"unicode/utf8"
)

// Variant identifies which of the five level-2 DBOR value kinds a [Value]
// holds.
type Variant uint8

const (
	// VariantNone is the singleton DBOR None value.
	VariantNone Variant = iota
	// VariantInteger is a signed/unsigned integer in [-2^63, 2^64-1].
	VariantInteger
	// VariantByteString is an ordered sequence of octets.
	VariantByteString
	// VariantUtf8String is a well-formed UTF-8 octet sequence.
	VariantUtf8String
	// VariantSequence is an ordered sequence of Values.
	VariantSequence
)

func (k Variant) String() string {
	switch k {
	case VariantNone:
		return "None"
	case VariantInteger:
		return "Integer"
	case VariantByteString:
		return "ByteString"
	case VariantUtf8String:
		return "Utf8String"
	case VariantSequence:
		return "Sequence"
	default:
		return "Invalid"
	}
}

// Value is an immutable level-2 DBOR value. The zero Value is [None].
// Values are constructed with [None], [Int64], [Uint64], [ByteString],
// [Utf8String], [Utf8StringBytes], or [Sequence] and compared with
// [Value.Equal].
//
// A Sequence Value exclusively owns its children: constructors copy any
// caller-supplied slice, so mutating the slice passed to [ByteString] or
// [Sequence] after construction does not affect the Value.
type Value struct {
	variant Variant

	neg bool   // Integer: true if the value is negative
	mag uint64 // Integer: magnitude; v = -n-1 if neg, v = n otherwise

	text string  // Utf8String payload
	raw  []byte  // ByteString payload
	seq  []Value // Sequence children
}

// None returns the singleton DBOR None value.
func None() Value {
	return Value{variant: VariantNone}
}

// Int64 returns an Integer Value holding n. Every int64 is representable,
// since the combined domain [-2^63, 2^64-1] is a strict superset of int64's
// range.
func Int64(n int64) Value {
	if n < 0 {
		return Value{variant: VariantInteger, neg: true, mag: uint64(-(n + 1))}
	}
	return Value{variant: VariantInteger, neg: false, mag: uint64(n)}
}

// Uint64 returns an Integer Value holding n. Every uint64 is representable,
// covering the upper half of the combined domain beyond math.MaxInt64.
func Uint64(n uint64) Value {
	return Value{variant: VariantInteger, neg: false, mag: n}
}

// ByteString returns a ByteString Value with a copy of b's contents.
func ByteString(b []byte) Value {
	return Value{variant: VariantByteString, raw: append([]byte(nil), b...)}
}

// Utf8String returns a Utf8String Value holding s. Since Go strings are not
// guaranteed to be valid UTF-8, callers that built s from untrusted bytes
// should prefer [Utf8StringBytes].
func Utf8String(s string) Value {
	return Value{variant: VariantUtf8String, text: s}
}

// Utf8StringBytes returns a Utf8String Value holding the text in b, or a
// [KindInvalidUtf8] error if b is not well-formed UTF-8.
func Utf8StringBytes(b []byte) (Value, error) {
	if !utf8.Valid(b) {
		return Value{}, encodeErr(KindInvalidUtf8, "", nil)
	}
	return Value{variant: VariantUtf8String, text: string(b)}, nil
}

// Sequence returns a Sequence Value containing copies of children, in order.
func Sequence(children ...Value) Value {
	return Value{variant: VariantSequence, seq: append([]Value(nil), children...)}
}

// Kind reports which DBOR variant v holds.
func (v Value) Kind() Variant { return v.variant }

// IsNone reports whether v is the None value.
func (v Value) IsNone() bool { return v.variant == VariantNone }

// IsNegative reports whether v is an Integer holding a negative value. It is
// false for every non-Integer Value.
func (v Value) IsNegative() bool { return v.variant == VariantInteger && v.neg }

// Int64 reports the value of v as an int64 and whether it is representable
// as one. It is only representable if v is an Integer whose value fits
// [math.MinInt64, math.MaxInt64].
func (v Value) Int64() (n int64, ok bool) {
	if v.variant != VariantInteger {
		return 0, false
	}
	if v.neg {
		if v.mag > math.MaxInt64 {
			return 0, false
		}
		return -int64(v.mag) - 1, true
	}
	if v.mag > math.MaxInt64 {
		return 0, false
	}
	return int64(v.mag), true
}

// Uint64 reports the value of v as a uint64 and whether it is representable
// as one. It is only representable if v is a non-negative Integer.
func (v Value) Uint64() (n uint64, ok bool) {
	if v.variant != VariantInteger || v.neg {
		return 0, false
	}
	return v.mag, true
}

// Bytes reports the contents of v and whether v is a ByteString. The
// returned slice must not be mutated by the caller.
func (v Value) Bytes() (b []byte, ok bool) {
	if v.variant != VariantByteString {
		return nil, false
	}
	return v.raw, true
}

// Text reports the contents of v and whether v is a Utf8String.
func (v Value) Text() (s string, ok bool) {
	if v.variant != VariantUtf8String {
		return "", false
	}
	return v.text, true
}

// Children reports the elements of v and whether v is a Sequence. The
// returned slice must not be mutated by the caller.
func (v Value) Children() (children []Value, ok bool) {
	if v.variant != VariantSequence {
		return nil, false
	}
	return v.seq, true
}

// Equal reports whether v and o represent the same DBOR value, recursively
// comparing Sequence children in order.
func (v Value) Equal(o Value) bool {
	if v.variant != o.variant {
		return false
	}
	switch v.variant {
	case VariantNone:
		return true
	case VariantInteger:
		return v.neg == o.neg && v.mag == o.mag
	case VariantByteString:
		return bytes.Equal(v.raw, o.raw)
	case VariantUtf8String:
		return v.text == o.text
	case VariantSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
