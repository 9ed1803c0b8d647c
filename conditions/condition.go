package conditions

import (
	"bytes"
	"math"
	"regexp"
	"strconv"
)

// Condition is the public commitment a fulfillment must satisfy: the
// capability bitmask, the family hash digest, and an upper bound on the
// serialized fulfillment payload size. It is a value snapshot with no
// ownership of the fulfillment that produced it; two distinct
// fulfillments may legally commit to equal conditions when all three
// fields coincide.
type Condition struct {
	Bitmask              uint32
	Hash                 []byte
	MaxFulfillmentLength int
}

// Bitmask hex: 1-8 lowercase hex digits, no leading zero. Hash:
// non-empty base64url. Max length: decimal with no leading zero.
var conditionBodyRe = regexp.MustCompile(`^([1-9a-f][0-9a-f]{0,7}):([A-Za-z0-9_-]+):(0|[1-9][0-9]*)$`)

// SerializeBinary encodes the condition as the varuint bitmask, the
// length-prefixed hash, and the varuint max fulfillment length.
func (c *Condition) SerializeBinary() []byte {
	b := make([]byte, 0, VarUIntMaxSize+VarOctetStringSize(len(c.Hash))+VarUIntMaxSize)
	b = AppendVarUInt(b, uint64(c.Bitmask))
	b = AppendVarOctetString(b, c.Hash)
	b = AppendVarUInt(b, uint64(c.MaxFulfillmentLength))
	return b
}

// SerializeURI encodes the condition as
// "cc:1:<bitmaskHex>:<base64url hash>:<maxFulfillmentLength>".
func (c *Condition) SerializeURI() string {
	return conditionScheme + ":" + formatVersion + ":" +
		strconv.FormatUint(uint64(c.Bitmask), 16) + ":" +
		base64URLEncode(c.Hash) + ":" +
		strconv.Itoa(c.MaxFulfillmentLength)
}

// Equal reports whether c and o commit to the same obligation: equal
// bitmask, hash bytes, and max fulfillment length.
func (c *Condition) Equal(o *Condition) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.Bitmask == o.Bitmask &&
		c.MaxFulfillmentLength == o.MaxFulfillmentLength &&
		bytes.Equal(c.Hash, o.Hash)
}

// ReadCondition reads one condition from r, leaving any following bytes
// unconsumed for the caller.
func ReadCondition(r *Reader) (*Condition, error) {
	mask, err := r.ReadVarUInt()
	if err != nil {
		return nil, err
	}
	if mask == 0 || mask > math.MaxUint32 {
		return nil, ErrMaskOutOfRange
	}
	hash, err := r.ReadVarOctetString()
	if err != nil {
		return nil, err
	}
	// A digest is fixed width and never empty; the URI grammar already
	// requires a non-empty hash segment, and the binary form must not
	// accept conditions its own URI codec cannot round-trip.
	if len(hash) == 0 {
		return nil, ErrEmptyHash
	}
	maxLen, err := r.ReadVarUInt()
	if err != nil {
		return nil, err
	}
	if maxLen > uint64(maxInt) {
		return nil, ErrMaskOutOfRange
	}
	// Copy the hash out of the caller's buffer; the condition is an
	// independent value.
	h := make([]byte, len(hash))
	copy(h, hash)
	return &Condition{
		Bitmask:              uint32(mask),
		Hash:                 h,
		MaxFulfillmentLength: int(maxLen),
	}, nil
}

// ParseConditionBinary parses a complete condition from b, rejecting
// trailing bytes.
func ParseConditionBinary(b []byte) (*Condition, error) {
	r := NewReader(b)
	c, err := ReadCondition(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, ErrTrailingBytes
	}
	return c, nil
}

// ParseConditionURI parses a "cc:1:<bitmaskHex>:<base64url
// hash>:<maxFulfillmentLength>" URI. Scheme and version mismatches are
// PrefixErrors, exactly as for fulfillment URIs.
func ParseConditionURI(uri string) (*Condition, error) {
	body, err := checkURIPrefix(uri, conditionScheme)
	if err != nil {
		return nil, err
	}
	m := conditionBodyRe.FindStringSubmatch(body)
	if m == nil {
		return nil, SyntaxError{URI: uri, Reason: "expected <bitmaskHex>:<base64url hash>:<maxFulfillmentLength>"}
	}
	mask, err := strconv.ParseUint(m[1], 16, 32)
	if err != nil {
		return nil, SyntaxError{URI: uri, Reason: "bad bitmask hex"}
	}
	hash, err := base64URLDecode(m[2])
	if err != nil {
		return nil, SyntaxError{URI: uri, Reason: "bad base64url hash"}
	}
	maxLen, err := strconv.ParseUint(m[3], 10, 63)
	if err != nil {
		return nil, SyntaxError{URI: uri, Reason: "bad max fulfillment length"}
	}
	if maxLen > uint64(maxInt) {
		return nil, SyntaxError{URI: uri, Reason: "max fulfillment length too large"}
	}
	return &Condition{
		Bitmask:              uint32(mask),
		Hash:                 hash,
		MaxFulfillmentLength: int(maxLen),
	}, nil
}
