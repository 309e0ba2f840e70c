// Package itoken implements DBOR's integer-token encoding: the variable-length,
// biased, little-endian size-class encoding shared by every typed header in
// the DBOR format (integers, and the length fields of byte strings, UTF-8
// strings, and sequences).
//
// A token encodes a 3-bit header class h together with a non-negative
// magnitude v as 1+k bytes, where k is in [0,8]. Magnitudes up to 23 use the
// direct form (k=0, the magnitude stored in the header byte itself);
// magnitudes from 24 upward use the extended form, where the header byte
// announces a tail width k and v-24 follows as a k-byte little-endian
// unsigned integer. See https://dbor.org for the DBOR 1.0.0 specification.
package itoken

import (
	"encoding/binary"
	"errors"
)

// ErrTruncated is returned by Decode when fewer bytes remain in the input than
// the header byte announces for the token's tail, and for an 8-byte tail whose
// magnitude (tail + 24) does not fit in a uint64.
var ErrTruncated = errors.New("itoken: truncated token")

// ErrNonCanonical is returned by Decode, when strictCanonical is requested,
// for a token whose tail width is larger than the minimum required to
// represent its magnitude.
var ErrNonCanonical = errors.New("itoken: non-canonical token width")

// directBias is the smallest magnitude that requires the extended form.
const directBias = 24

// MaxTailBytes is the largest tail width (k) the format allows, giving a
// magnitude domain of [0, 2^64-1+24].
const MaxTailBytes = 8

// Header returns the single header byte for class h (h must fit in 3 bits)
// and magnitude v, without any tail bytes. It is the caller's responsibility
// to know from the returned Size(v) whether tail bytes must also be written;
// Header alone is only the first of the 1+k bytes of the full token.
func Header(h uint8, v uint64) byte {
	p := directPayload(v)
	return h<<5 | p
}

// directPayload returns the 5-bit payload nibble for v: v itself if v fits the
// direct form, or 23+k (k being tailWidth(v)) otherwise.
func directPayload(v uint64) byte {
	if v <= 23 {
		return byte(v)
	}
	return byte(23 + tailWidth(v))
}

// tailWidth returns the number of little-endian tail bytes (k in [1,8])
// needed to represent w = v-24 for a magnitude v >= 24.
func tailWidth(v uint64) int {
	w := v - directBias
	k := 1
	for w>>(8*k) != 0 {
		k++
	}
	return k
}

// Size returns the total number of bytes (1+k) that Encode will produce for
// magnitude v.
func Size(v uint64) int {
	if v <= 23 {
		return 1
	}
	return 1 + tailWidth(v)
}

// Encode appends the token for header class h and magnitude v to dst and
// returns the extended slice. h must fit in the header's top 3 bits (i.e.
// h <= 7); callers within this module only ever use h in [0,4].
func Encode(dst []byte, h uint8, v uint64) []byte {
	dst = append(dst, Header(h, v))
	if v <= 23 {
		return dst
	}
	w := v - directBias
	k := tailWidth(v)
	var tail [8]byte
	binary.LittleEndian.PutUint64(tail[:], w)
	return append(dst, tail[:k]...)
}

// Decode reads one token from the front of p. It returns the header class h,
// the decoded magnitude v, the number of bytes consumed (1+k), and an error.
//
// If strictCanonical is true, Decode rejects tokens whose tail width is wider
// than the minimum necessary to represent v, returning ErrNonCanonical.
//
// Decode returns ErrTruncated if p is empty, or if the header byte announces
// a tail wider than len(p)-1, or if an 8-byte tail plus 24 exceeds 2^64-1.
func Decode(p []byte, strictCanonical bool) (h uint8, v uint64, n int, err error) {
	if len(p) == 0 {
		return 0, 0, 0, ErrTruncated
	}
	b := p[0]
	h = b >> 5
	payload := b & 0x1f
	if payload <= 23 {
		return h, uint64(payload), 1, nil
	}
	k := int(payload) - 23
	if len(p)-1 < k {
		return 0, 0, 0, ErrTruncated
	}
	var tail [8]byte
	copy(tail[:], p[1:1+k]) // tail[k:] stays zero, so Uint64 below only sees the k read bytes
	w := binary.LittleEndian.Uint64(tail[:])
	// v = w + 24 overflows uint64 for the top 24 values of an 8-byte w (w in
	// [2^64-24, 2^64-1]): those magnitudes are part of the format's declared
	// domain ([0, 2^64-1+24]) but have no uint64 representation, so they must
	// be rejected explicitly here rather than silently wrapped into a small,
	// wrong v - which would otherwise happen regardless of strictCanonical.
	if w > maxTailMagnitude-directBias {
		return 0, 0, 0, ErrTruncated
	}
	v = w + directBias
	if strictCanonical && k > minimalTailWidth(v) {
		return 0, 0, 0, ErrNonCanonical
	}
	return h, v, 1 + k, nil
}

// maxTailMagnitude is the largest value a uint64 can hold (2^64-1), named
// here so the overflow check above reads as a domain comparison rather than
// a bitwise trick.
const maxTailMagnitude = ^uint64(0)

// minimalTailWidth returns the smallest k for which v's extended-form
// encoding is well-defined, i.e. the k that Encode would itself choose.
func minimalTailWidth(v uint64) int {
	if v <= 23 {
		return 0
	}
	return tailWidth(v)
}
