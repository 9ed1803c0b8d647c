package conditions

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Fulfillment is the contract every concrete condition family
// implements. The set of methods is the full capability a family needs:
// payload encode/decode against the shared Writer/Reader interfaces,
// hash generation for condition derivation, and validation semantics.
// Making these interface methods turns a missing override into a
// compile-time error rather than a runtime throw.
//
// A fulfillment is populated either directly by a producer or exactly
// once by ParsePayload on the parse path; instances are not mutated
// after that.
type Fulfillment interface {
	// TypeBit returns the family's fixed wire type identifier. It has
	// exactly one bit set and never varies per instance.
	TypeBit() uint32

	// Bitmask returns the capability mask stored into a derived
	// Condition. Simple families return TypeBit(); compound families
	// return the OR of their own bit and all constituents' masks.
	Bitmask() uint32

	// WritePayload writes the type-specific payload fields. It is the
	// single source of truth for payload shape, used both for real
	// serialization and for length prediction.
	WritePayload(w Writer) error

	// ParsePayload populates the fulfillment from wire encoding.
	ParsePayload(r *Reader) error

	// GenerateHash computes the condition digest for the current
	// payload. The algorithm is family-specific.
	GenerateHash() ([]byte, error)

	// Validate reports whether the fulfillment satisfies its condition
	// with respect to message. A nil error means satisfied.
	Validate(message []byte) error
}

// MaxLengthCalculator is implemented by families whose worst-case
// fulfillment size exceeds the size of the current payload, such as
// compounds that may embed any sub-fulfillment matching a sub-condition.
// MaxFulfillmentLength prefers this override to the Predictor default.
type MaxLengthCalculator interface {
	CalculateMaxFulfillmentLength() (int, error)
}

const (
	fulfillmentScheme = "cf"
	conditionScheme   = "cc"
	formatVersion     = "1"
)

// Type bit hex: 1-3 lowercase hex digits, no leading zero, so the
// decoded value is in [1, 0xfff]. Payload: URL-safe base64 without
// padding; an empty segment denotes a zero-byte payload.
var fulfillmentBodyRe = regexp.MustCompile(`^([1-9a-f][0-9a-f]{0,2}):([A-Za-z0-9_-]*)$`)

// checkURIPrefix validates the scheme and version segments of a
// crypto-conditions URI and returns the remainder. Wrong scheme and
// wrong version are reported as distinct PrefixError values; both mean
// "not the kind of artifact this parser accepts".
func checkURIPrefix(uri, scheme string) (string, error) {
	parts := strings.SplitN(uri, ":", 3)
	if parts[0] != scheme {
		return "", PrefixError{Field: "scheme", Want: scheme, Got: parts[0]}
	}
	if len(parts) < 2 {
		return "", PrefixError{Field: "version", Want: formatVersion, Got: ""}
	}
	if parts[1] != formatVersion {
		return "", PrefixError{Field: "version", Want: formatVersion, Got: parts[1]}
	}
	if len(parts) < 3 {
		return "", SyntaxError{URI: uri, Reason: "missing body after version"}
	}
	return parts[2], nil
}

// ParseFulfillmentURI parses a "cf:1:<typeBitHex>:<base64url payload>"
// URI into the registered fulfillment family for its type bit.
func ParseFulfillmentURI(uri string) (Fulfillment, error) {
	body, err := checkURIPrefix(uri, fulfillmentScheme)
	if err != nil {
		return nil, err
	}
	m := fulfillmentBodyRe.FindStringSubmatch(body)
	if m == nil {
		return nil, SyntaxError{URI: uri, Reason: "expected <typeBitHex>:<base64url payload>"}
	}
	typeBit, err := strconv.ParseUint(m[1], 16, 32)
	if err != nil {
		return nil, SyntaxError{URI: uri, Reason: "bad type bit hex"}
	}
	payload, err := base64URLDecode(m[2])
	if err != nil {
		return nil, SyntaxError{URI: uri, Reason: "bad base64url payload"}
	}
	f, err := newFulfillment(uint32(typeBit))
	if err != nil {
		return nil, err
	}
	r := NewReader(payload)
	if err := f.ParsePayload(r); err != nil {
		return nil, err
	}
	// The payload segment is delimited; a correct encoder consumes it
	// exactly.
	if r.Len() != 0 {
		return nil, ErrTrailingBytes
	}
	return f, nil
}

// MaxFulfillmentDepth is the maximum nesting depth of compound
// fulfillments the parser accepts. Compounds embed sub-fulfillments
// recursively, so without a bound a small crafted input could nest
// millions of levels and exhaust the stack; past the limit parsing
// fails with ErrRecursion instead.
const MaxFulfillmentDepth = 32

// ReadFulfillment reads one fulfillment from r, leaving any following
// bytes unconsumed for the caller. The wire form is the varuint type
// bit followed by the family payload; there is no terminator, so when
// reading from a larger stream the boundary comes from an enclosing
// length-prefixed field.
func ReadFulfillment(r *Reader) (Fulfillment, error) {
	if r.depth > MaxFulfillmentDepth {
		return nil, ErrRecursion
	}
	typeBit, err := r.ReadVarUInt()
	if err != nil {
		return nil, err
	}
	if typeBit == 0 || typeBit > math.MaxUint32 {
		return nil, ErrMaskOutOfRange
	}
	f, err := newFulfillment(uint32(typeBit))
	if err != nil {
		return nil, err
	}
	if err := f.ParsePayload(r); err != nil {
		return nil, err
	}
	return f, nil
}

// ReadEmbeddedFulfillment parses a complete fulfillment from b, which a
// compound family read out of r as a length-prefixed field. The nesting
// depth carries over from r, so compound families must use this instead
// of ParseFulfillmentBinary for their sub-fulfillments or the depth
// limit would reset at every level.
func ReadEmbeddedFulfillment(r *Reader, b []byte) (Fulfillment, error) {
	sub := &Reader{buf: b, depth: r.depth + 1}
	f, err := ReadFulfillment(sub)
	if err != nil {
		return nil, err
	}
	if sub.Len() != 0 {
		return nil, ErrTrailingBytes
	}
	return f, nil
}

// ParseFulfillmentBinary parses a complete fulfillment from b,
// rejecting trailing bytes. Use ReadFulfillment to read from a larger
// stream.
func ParseFulfillmentBinary(b []byte) (Fulfillment, error) {
	r := NewReader(b)
	f, err := ReadFulfillment(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, ErrTrailingBytes
	}
	return f, nil
}

// SerializeBinary encodes f as the varuint type bit followed by its
// payload. Parsing the result and re-serializing yields identical
// bytes.
func SerializeBinary(f Fulfillment) ([]byte, error) {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)
	w := NewBufferWriter(bb)
	if err := w.WriteVarUInt(uint64(f.TypeBit())); err != nil {
		return nil, err
	}
	if err := f.WritePayload(w); err != nil {
		return nil, err
	}
	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())
	return out, nil
}

// SerializePayload encodes only f's payload, without the type bit
// prefix. This is the byte string carried in the URI form.
func SerializePayload(f Fulfillment) ([]byte, error) {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)
	w := NewBufferWriter(bb)
	if err := f.WritePayload(w); err != nil {
		return nil, err
	}
	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())
	return out, nil
}

// SerializeURI encodes f as "cf:1:<typeBitHex>:<base64url payload>".
func SerializeURI(f Fulfillment) (string, error) {
	payload, err := SerializePayload(f)
	if err != nil {
		return "", err
	}
	return fulfillmentScheme + ":" + formatVersion + ":" +
		strconv.FormatUint(uint64(f.TypeBit()), 16) + ":" +
		base64URLEncode(payload), nil
}

// MaxFulfillmentLength returns an upper bound on the serialized payload
// length of any fulfillment satisfying f's condition. Families with
// variable worst cases implement MaxLengthCalculator; for everyone else
// the payload encoder is replayed against a Predictor, so the bound is
// exactly the current payload size.
func MaxFulfillmentLength(f Fulfillment) (int, error) {
	if c, ok := f.(MaxLengthCalculator); ok {
		return c.CalculateMaxFulfillmentLength()
	}
	p := NewPredictor()
	if err := f.WritePayload(p); err != nil {
		return 0, err
	}
	return p.Size(), nil
}

// DeriveCondition builds the condition committed to by f: its
// capability bitmask, its family hash, and the worst-case fulfillment
// length. The result is an independent value snapshot; deriving twice
// from an unmutated fulfillment yields equal conditions.
func DeriveCondition(f Fulfillment) (*Condition, error) {
	hash, err := f.GenerateHash()
	if err != nil {
		return nil, err
	}
	maxLen, err := MaxFulfillmentLength(f)
	if err != nil {
		return nil, err
	}
	return &Condition{
		Bitmask:              f.Bitmask(),
		Hash:                 hash,
		MaxFulfillmentLength: maxLen,
	}, nil
}

// VerifyFulfillment checks that f discharges cond with respect to
// message: the condition derived from f must equal cond, and f must
// validate. Any failure means the input is rejected; there is no
// partial acceptance.
func VerifyFulfillment(cond *Condition, f Fulfillment, message []byte) error {
	derived, err := DeriveCondition(f)
	if err != nil {
		return err
	}
	if !derived.Equal(cond) {
		return fmt.Errorf("conditions: fulfillment does not match condition %s", cond.SerializeURI())
	}
	return f.Validate(message)
}
