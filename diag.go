package dbor

import (
	"strconv"
	"strings"
)

// String returns a diagnostic, human-readable rendering of v, e.g.
// `Sequence{Uint64(1), Utf8String("A"), ByteString(0102)}`. Non-negative
// integers render as Uint64(n) and negative ones as Int64(n), whichever
// constructor built them. This is intended
// for logging and test failure messages; it is not a parseable text format
// and Decode does not accept it.
func (v Value) String() string {
	var b strings.Builder
	v.writeTo(&b)
	return b.String()
}

// GoString implements fmt.GoStringer, returning the same rendering as
// [Value.String] for use with the `%#v` verb.
func (v Value) GoString() string {
	return v.String()
}

func (v Value) writeTo(b *strings.Builder) {
	switch v.variant {
	case VariantNone:
		b.WriteString("None")
	case VariantInteger:
		if v.neg {
			b.WriteString("Int64(")
			b.WriteString(strconv.FormatInt(-int64(v.mag)-1, 10))
		} else {
			b.WriteString("Uint64(")
			b.WriteString(strconv.FormatUint(v.mag, 10))
		}
		b.WriteByte(')')
	case VariantByteString:
		b.WriteString("ByteString(")
		for _, c := range v.raw {
			b.WriteString(hexDigits[c>>4 : c>>4+1])
			b.WriteString(hexDigits[c&0xf : c&0xf+1])
		}
		b.WriteByte(')')
	case VariantUtf8String:
		b.WriteString("Utf8String(")
		b.WriteString(strconv.Quote(v.text))
		b.WriteByte(')')
	case VariantSequence:
		b.WriteString("Sequence{")
		for i, child := range v.seq {
			if i > 0 {
				b.WriteString(", ")
			}
			child.writeTo(b)
		}
		b.WriteByte('}')
	default:
		b.WriteString("Invalid")
	}
}

const hexDigits = "0123456789abcdef"
