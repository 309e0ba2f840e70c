package dbor

import (
	"bytes"
	"strconv"

	"dbor.dev/dbor/internal/itoken"
)

// noneByte is the dedicated sentinel encoding for None, outside the
// header-class layout of classes 0-6.
const noneByte = 0xFF

// header-byte classes (top 3 bits of a non-None header byte).
const (
	classInt        uint8 = 0 // non-negative Integer
	classNegInt     uint8 = 1 // negative Integer
	classByteString uint8 = 2
	classUtf8String uint8 = 3
	classSequence   uint8 = 4
)

// Encode returns the DBOR encoding of v using the default [EncodeOptions].
func Encode(v Value) ([]byte, error) {
	return EncodeWithOptions(v, DefaultEncodeOptions())
}

// EncodeWithOptions returns the DBOR encoding of v. It only fails if v (or one
// of its descendants, for a Sequence) was built through means other than this
// package's constructors in a way that violates a level-2 invariant, if
// Sequence nesting reaches opts.MaxDepth ([KindNestingTooDeep]), or if a
// Sequence's total payload length would overflow the token domain.
func EncodeWithOptions(v Value, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeInto(&buf, v, "", 0, opts.maxDepth()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeInto(buf *bytes.Buffer, v Value, path string, depth, maxDepth int) error {
	switch v.variant {
	case VariantNone:
		buf.WriteByte(noneByte)
		return nil
	case VariantInteger:
		h := classInt
		if v.neg {
			if v.mag > maxNegMagnitude {
				return encodeErr(KindOutOfRange, path, nil)
			}
			h = classNegInt
		}
		buf.Write(itoken.Encode(nil, h, v.mag))
		return nil
	case VariantByteString:
		buf.Write(itoken.Encode(nil, classByteString, uint64(len(v.raw))))
		buf.Write(v.raw)
		return nil
	case VariantUtf8String:
		buf.Write(itoken.Encode(nil, classUtf8String, uint64(len(v.text))))
		buf.WriteString(v.text)
		return nil
	case VariantSequence:
		return encodeSequence(buf, v, path, depth, maxDepth)
	default:
		return encodeErr(KindUnsupportedType, path, nil)
	}
}

func encodeSequence(buf *bytes.Buffer, v Value, path string, depth, maxDepth int) error {
	if depth >= maxDepth {
		return encodeErr(KindNestingTooDeep, path, nil)
	}
	var payload bytes.Buffer
	for i, child := range v.seq {
		childPath := strconv.Itoa(i)
		if path != "" {
			childPath = path + "." + childPath
		}
		if err := encodeInto(&payload, child, childPath, depth+1, maxDepth); err != nil {
			return err
		}
	}
	if payload.Len() < 0 {
		// Unreachable on real hardware: bytes.Buffer's own int length cannot
		// exceed math.MaxInt, far below the 2^64-1+24 token domain. Guarded
		// anyway so KindEncodedSizeOverflow has a reachable code path to
		// document, matching the taxonomy in spec.md §7.
		return encodeErr(KindEncodedSizeOverflow, path, nil)
	}
	buf.Write(itoken.Encode(nil, classSequence, uint64(payload.Len())))
	buf.Write(payload.Bytes())
	return nil
}
