package dbor

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a decode or encode failure, matching the
// error taxonomy of the DBOR specification.
type Kind uint8

const (
	// KindTruncated indicates the input ended before a declared payload, token
	// tail, or sequence body was fully consumed. It is also reported for an
	// 8-byte token tail whose magnitude (tail + 24) does not fit in a uint64.
	KindTruncated Kind = iota + 1
	// KindTrailingBytes indicates bytes remain after the expected top-level
	// value, or after a sequence's declared payload.
	KindTrailingBytes
	// KindOutOfRange indicates an integer token decoded to a magnitude outside
	// the representable signed/unsigned combined range, or (encode-side) that a
	// caller-constructed Value carries an out-of-range magnitude.
	KindOutOfRange
	// KindInvalidUtf8 indicates a Utf8String's payload is not well-formed UTF-8.
	KindInvalidUtf8
	// KindUnsupportedType indicates a header class not defined at conformance
	// level 2 was encountered.
	KindUnsupportedType
	// KindNonCanonical indicates the encoding used a larger token form than
	// necessary for its value. Only reported when DecodeOptions.StrictCanonical
	// is true.
	KindNonCanonical
	// KindNestingTooDeep indicates sequence recursion exceeded the configured
	// depth limit.
	KindNestingTooDeep
	// KindEncodedSizeOverflow indicates a sequence's payload would exceed the
	// maximum representable length (2^64-1+24 bytes).
	KindEncodedSizeOverflow
)

func (k Kind) String() string {
	switch k {
	case KindTruncated:
		return "Truncated"
	case KindTrailingBytes:
		return "TrailingBytes"
	case KindOutOfRange:
		return "OutOfRange"
	case KindInvalidUtf8:
		return "InvalidUtf8"
	case KindUnsupportedType:
		return "UnsupportedType"
	case KindNonCanonical:
		return "NonCanonical"
	case KindNestingTooDeep:
		return "NestingTooDeep"
	case KindEncodedSizeOverflow:
		return "EncodedSizeOverflow"
	default:
		return "Unknown"
	}
}

// sentinel errors, one per Kind, so callers can use errors.Is(err, dbor.ErrTruncated)
// without depending on the concrete *Error type.
var (
	ErrTruncated           = errors.New("dbor: truncated")
	ErrTrailingBytes       = errors.New("dbor: trailing bytes")
	ErrOutOfRange          = errors.New("dbor: integer out of range")
	ErrInvalidUtf8         = errors.New("dbor: invalid utf-8")
	ErrUnsupportedType     = errors.New("dbor: unsupported header class")
	ErrNonCanonical        = errors.New("dbor: non-canonical token")
	ErrNestingTooDeep      = errors.New("dbor: nesting too deep")
	ErrEncodedSizeOverflow = errors.New("dbor: encoded size overflow")
)

func sentinelFor(k Kind) error {
	switch k {
	case KindTruncated:
		return ErrTruncated
	case KindTrailingBytes:
		return ErrTrailingBytes
	case KindOutOfRange:
		return ErrOutOfRange
	case KindInvalidUtf8:
		return ErrInvalidUtf8
	case KindUnsupportedType:
		return ErrUnsupportedType
	case KindNonCanonical:
		return ErrNonCanonical
	case KindNestingTooDeep:
		return ErrNestingTooDeep
	case KindEncodedSizeOverflow:
		return ErrEncodedSizeOverflow
	default:
		return errors.New("dbor: unknown error")
	}
}

// Error represents a failure to decode or encode a DBOR value. It carries
// enough context to locate the offending byte (decode) or child (encode)
// without needing to re-run the operation.
type Error struct {
	Kind Kind

	// Offset is the byte offset within the input at which the error was
	// detected. Only meaningful for decode errors; -1 for encode errors,
	// since offset 0 is itself a valid, meaningful decode location (the
	// very first byte of the input).
	Offset int

	// Path identifies, for encode errors, the position of the offending value
	// within the Value tree as a dot-separated sequence of child indices (e.g.
	// "2.0" is the first child of the third child of the root). Empty for the
	// root value and for all decode errors.
	Path string

	// Err is the underlying cause, if any (the integer-token decoder's
	// itoken.ErrTruncated or itoken.ErrNonCanonical). May be nil.
	Err error
}

func (e *Error) Error() string {
	s := "dbor: " + e.Kind.String()
	if e.Path != "" {
		s += " at " + e.Path
	}
	if e.Offset >= 0 {
		s += fmt.Sprintf(" (offset %d)", e.Offset)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return sentinelFor(e.Kind) }

// decodeErr constructs an *Error for a decode failure at the given offset.
func decodeErr(k Kind, offset int, cause error) *Error {
	return &Error{Kind: k, Offset: offset, Err: cause}
}

// encodeErr constructs an *Error for an encode failure at the given path.
func encodeErr(k Kind, path string, cause error) *Error {
	return &Error{Kind: k, Offset: -1, Path: path, Err: cause}
}
