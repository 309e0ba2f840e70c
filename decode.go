package dbor

import (
	"unicode/utf8"

	"dbor.dev/dbor/internal/itoken"
)

// maxNegMagnitude is the largest class-1 (negative Integer) token magnitude
// that still maps to a representable n = -v-1 >= -2^63. A well-formed token
// can carry v up to 2^64-1+24 (spec.md §9's "9-byte token for class 1" open
// question), so this bound must be checked explicitly rather than relied on
// to fall out of the token width alone.
const maxNegMagnitude uint64 = 1<<63 - 1

// Decode decodes a single DBOR value from p using the default
// [DecodeOptions]. The entire input must be consumed; trailing bytes after a
// complete value are a [KindTrailingBytes] error.
func Decode(p []byte) (Value, error) {
	return DecodeWithOptions(p, DefaultDecodeOptions())
}

// DecodeWithOptions decodes a single DBOR value from p under opts.
func DecodeWithOptions(p []byte, opts DecodeOptions) (Value, error) {
	c := cursor{buf: p, strict: opts.StrictCanonical, maxDepth: opts.maxDepth()}
	v, err := c.readValue(0, len(p))
	if err != nil {
		return Value{}, err
	}
	if c.pos < len(c.buf) {
		return Value{}, decodeErr(KindTrailingBytes, c.pos, nil)
	}
	return v, nil
}

// cursor is the decoder's read position over an in-memory byte slice. DBOR
// decoding never needs to alias or stream the input (spec.md explicitly
// excludes zero-copy views and streaming decode), so payload bytes are
// copied out of buf into the resulting Value rather than referenced.
type cursor struct {
	buf      []byte
	pos      int
	strict   bool
	maxDepth int
}

// readValue reads one complete DBOR value starting at c.pos, leaving c.pos at
// the first byte after it. limit is the absolute position (an index into
// c.buf) beyond which this value - and anything nested inside it - must not
// read; it is len(c.buf) at the top level, and the end of the enclosing
// sequence's declared payload for any value nested inside one. depth is the
// current sequence nesting depth (0 at the top level).
func (c *cursor) readValue(depth, limit int) (Value, error) {
	if c.pos >= limit {
		return Value{}, decodeErr(KindTruncated, c.pos, nil)
	}
	start := c.pos
	if c.buf[c.pos] == noneByte {
		c.pos++
		return None(), nil
	}

	h, v, n, err := itoken.Decode(c.buf[c.pos:limit], c.strict)
	if err != nil {
		return Value{}, decodeErr(tokenErrKind(err), start, err)
	}
	c.pos += n

	switch h {
	case classInt:
		return Value{variant: VariantInteger, neg: false, mag: v}, nil
	case classNegInt:
		if v > maxNegMagnitude {
			return Value{}, decodeErr(KindOutOfRange, start, nil)
		}
		return Value{variant: VariantInteger, neg: true, mag: v}, nil
	case classByteString:
		b, err := c.readPayload(v, start, limit)
		if err != nil {
			return Value{}, err
		}
		return Value{variant: VariantByteString, raw: append([]byte(nil), b...)}, nil
	case classUtf8String:
		b, err := c.readPayload(v, start, limit)
		if err != nil {
			return Value{}, err
		}
		if !utf8.Valid(b) {
			return Value{}, decodeErr(KindInvalidUtf8, start, nil)
		}
		return Value{variant: VariantUtf8String, text: string(b)}, nil
	case classSequence:
		return c.readSequence(v, start, limit, depth)
	default:
		return Value{}, decodeErr(KindUnsupportedType, start, nil)
	}
}

// readPayload consumes exactly n bytes at c.pos and returns them, failing
// Truncated if fewer than n bytes remain before limit.
func (c *cursor) readPayload(n uint64, tokenStart, limit int) ([]byte, error) {
	if n > uint64(limit-c.pos) {
		return nil, decodeErr(KindTruncated, tokenStart, nil)
	}
	b := c.buf[c.pos : c.pos+int(n)]
	c.pos += int(n)
	return b, nil
}

// readSequence decodes the children of a Sequence whose declared payload is
// payloadLen bytes, starting at c.pos. Each child is itself bounded by the
// sequence's own sub-buffer end, not by the outer limit, so a child cannot
// read bytes that belong to whatever follows the sequence in the parent
// buffer.
func (c *cursor) readSequence(payloadLen uint64, tokenStart, limit, depth int) (Value, error) {
	if depth >= c.maxDepth {
		return Value{}, decodeErr(KindNestingTooDeep, tokenStart, nil)
	}
	if payloadLen > uint64(limit-c.pos) {
		return Value{}, decodeErr(KindTruncated, tokenStart, nil)
	}
	end := c.pos + int(payloadLen)

	var children []Value
	for c.pos < end {
		// Each child is itself bounded by end (passed as its limit), so it can
		// never read past end; the loop therefore always lands exactly on end
		// or fails with a propagated child error - never overshoots it.
		child, err := c.readValue(depth+1, end)
		if err != nil {
			return Value{}, err
		}
		children = append(children, child)
	}
	return Value{variant: VariantSequence, seq: children}, nil
}

// tokenErrKind maps an internal/itoken error to the corresponding Kind.
func tokenErrKind(err error) Kind {
	switch err {
	case itoken.ErrNonCanonical:
		return KindNonCanonical
	default:
		return KindTruncated
	}
}
