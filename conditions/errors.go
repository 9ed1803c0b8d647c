package conditions

import (
	"errors"
	"strconv"
)

// Kind classifies codec errors by the decision a caller must make at a
// trust boundary: was this artifact the wrong kind of thing entirely
// (prefix), or the right kind with corrupt or unsupported content
// (parse)? Either way the input must be rejected outright.
type Kind int

const (
	// KindParse covers grammar violations, truncated buffers,
	// non-canonical encodings, and unknown type bits.
	KindParse Kind = iota

	// KindPrefix covers a wrong URI scheme or an unsupported format
	// version: the artifact is not even the right kind of object.
	KindPrefix
)

// Error is the interface satisfied by all errors that originate from
// this package's codec paths.
type Error interface {
	error

	// Kind returns the taxonomy class of the error.
	Kind() Kind
}

// IsParse reports whether err is (or wraps) a parse-class codec error.
func IsParse(err error) bool {
	var ce Error
	return errors.As(err, &ce) && ce.Kind() == KindParse
}

// IsPrefix reports whether err is (or wraps) a prefix-class codec error.
func IsPrefix(err error) bool {
	var ce Error
	return errors.As(err, &ce) && ce.Kind() == KindPrefix
}

var (
	// ErrShortBytes is returned when the buffer being decoded is too
	// short to contain the encoded object.
	ErrShortBytes error = errShort{}

	// ErrNonCanonicalVarUInt is returned when a variable-length integer
	// is not encoded in its unique minimal form.
	ErrNonCanonicalVarUInt error = errParseSentinel{"non-canonical varuint encoding"}

	// ErrVarUIntTooLong is returned when a varuint length prefix exceeds
	// the eight magnitude bytes a uint64 can occupy.
	ErrVarUIntTooLong error = errParseSentinel{"varuint exceeds 8 magnitude bytes"}

	// ErrEmptyVarUInt is returned when a varuint declares zero magnitude
	// bytes. Zero is encoded as a single 0x00 magnitude byte.
	ErrEmptyVarUInt error = errParseSentinel{"varuint with empty magnitude"}

	// ErrNonCanonicalLength is returned when an octet-string length
	// prefix is not encoded in its unique minimal form.
	ErrNonCanonicalLength error = errParseSentinel{"non-canonical length prefix"}

	// ErrTrailingBytes is returned when a delimited payload leaves
	// unconsumed bytes after its type finished parsing.
	ErrTrailingBytes error = errParseSentinel{"trailing bytes after payload"}

	// ErrMaskOutOfRange is returned when a wire type bit or bitmask
	// does not fit the 32-bit mask space.
	ErrMaskOutOfRange error = errParseSentinel{"bitmask out of 32-bit range"}

	// ErrRecursion is returned when compound fulfillments nest deeper
	// than MaxFulfillmentDepth.
	ErrRecursion error = errParseSentinel{"nesting depth exceeds limit"}

	// ErrEmptyHash is returned when a condition carries a zero-length
	// hash. Digests are fixed width and never empty.
	ErrEmptyHash error = errParseSentinel{"condition hash is empty"}
)

type errShort struct{}

func (e errShort) Error() string { return "conditions: too few bytes left to read object" }
func (e errShort) Kind() Kind    { return KindParse }

type errParseSentinel struct{ msg string }

func (e errParseSentinel) Error() string { return "conditions: " + e.msg }
func (e errParseSentinel) Kind() Kind    { return KindParse }

// SyntaxError is returned when a URI fails the crypto-conditions grammar
// after its scheme and version prefix checked out.
type SyntaxError struct {
	URI    string
	Reason string
}

// Error implements the error interface.
func (e SyntaxError) Error() string {
	return "conditions: malformed URI " + strconv.Quote(e.URI) + ": " + e.Reason
}

// Kind returns KindParse: the scheme was right, the content was not.
func (e SyntaxError) Kind() Kind { return KindParse }

// PrefixError is returned when a URI does not carry the expected scheme
// keyword or format version. Field distinguishes the two cases so
// callers can tell "not a crypto-condition at all" from "a version this
// implementation does not speak".
type PrefixError struct {
	Field string // "scheme" or "version"
	Want  string
	Got   string
}

// Error implements the error interface.
func (e PrefixError) Error() string {
	return "conditions: unexpected " + e.Field + " " + strconv.Quote(e.Got) +
		" (want " + strconv.Quote(e.Want) + ")"
}

// Kind returns KindPrefix.
func (e PrefixError) Kind() Kind { return KindPrefix }

// UnknownTypeError is returned when a wire type bit resolves to no
// registered implementation.
type UnknownTypeError struct {
	TypeBit uint32
}

// Error implements the error interface.
func (e UnknownTypeError) Error() string {
	return "conditions: no type registered for type bit 0x" +
		strconv.FormatUint(uint64(e.TypeBit), 16)
}

// Kind returns KindParse: the artifact may be well formed, but this
// process cannot interpret it.
func (e UnknownTypeError) Kind() Kind { return KindParse }
