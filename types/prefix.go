package types

import (
	"crypto/sha256"
	"errors"

	cc "github.com/interlock-labs/crypto-conditions.go/conditions"
)

// PrefixSha256Bit is the type bit of the prefix compound family.
const PrefixSha256Bit = 0x04

func init() {
	cc.RegisterType(PrefixSha256Bit, func() cc.Fulfillment { return &PrefixSha256{} })
}

// PrefixSha256 wraps a sub-fulfillment and a byte prefix: validating
// against message means validating the sub-fulfillment against
// prefix||message. The condition hash binds both the prefix and the
// sub-condition, so neither can be swapped after commitment.
type PrefixSha256 struct {
	Prefix         []byte
	Subfulfillment cc.Fulfillment
}

// NewPrefixSha256 constructs a prefix compound over sub.
func NewPrefixSha256(prefix []byte, sub cc.Fulfillment) *PrefixSha256 {
	return &PrefixSha256{Prefix: prefix, Subfulfillment: sub}
}

// TypeBit returns 0x04.
func (f *PrefixSha256) TypeBit() uint32 { return PrefixSha256Bit }

// Bitmask combines the family bit with the sub-fulfillment's mask: a
// verifier needs both capabilities. Note the wire type bit stays 0x04;
// only the derived condition carries the combined mask.
func (f *PrefixSha256) Bitmask() uint32 {
	if f.Subfulfillment == nil {
		return PrefixSha256Bit
	}
	return cc.CombineMasks(PrefixSha256Bit, f.Subfulfillment.Bitmask())
}

// WritePayload writes the length-prefixed prefix and the embedded
// sub-fulfillment binary.
func (f *PrefixSha256) WritePayload(w cc.Writer) error {
	if f.Subfulfillment == nil {
		return errors.New("prefix fulfillment has no subfulfillment")
	}
	if err := w.WriteVarOctetString(f.Prefix); err != nil {
		return err
	}
	sub, err := cc.SerializeBinary(f.Subfulfillment)
	if err != nil {
		return err
	}
	return w.WriteVarOctetString(sub)
}

// ParsePayload reads the prefix and recursively parses the embedded
// sub-fulfillment through the registry.
func (f *PrefixSha256) ParsePayload(r *cc.Reader) error {
	prefix, err := r.ReadVarOctetString()
	if err != nil {
		return err
	}
	subBytes, err := r.ReadVarOctetString()
	if err != nil {
		return err
	}
	sub, err := cc.ReadEmbeddedFulfillment(r, subBytes)
	if err != nil {
		return err
	}
	f.Prefix = append([]byte(nil), prefix...)
	f.Subfulfillment = sub
	return nil
}

// GenerateHash returns SHA-256 over the length-prefixed prefix followed
// by the sub-condition binary, committing to the sub-condition rather
// than any particular sub-fulfillment.
func (f *PrefixSha256) GenerateHash() ([]byte, error) {
	if f.Subfulfillment == nil {
		return nil, errors.New("prefix fulfillment has no subfulfillment")
	}
	subCond, err := cc.DeriveCondition(f.Subfulfillment)
	if err != nil {
		return nil, err
	}
	b := cc.AppendVarOctetString(nil, f.Prefix)
	b = append(b, subCond.SerializeBinary()...)
	h := sha256.Sum256(b)
	return h[:], nil
}

// CalculateMaxFulfillmentLength accounts for any sub-fulfillment that
// could satisfy the sub-condition, not just the one currently embedded.
func (f *PrefixSha256) CalculateMaxFulfillmentLength() (int, error) {
	if f.Subfulfillment == nil {
		return 0, errors.New("prefix fulfillment has no subfulfillment")
	}
	subCond, err := cc.DeriveCondition(f.Subfulfillment)
	if err != nil {
		return 0, err
	}
	// Worst-case embedded sub-fulfillment: the widest type bit the
	// sub-condition's mask admits plus its own max payload length.
	worstSub := cc.VarUIntSize(uint64(subCond.Bitmask)) + subCond.MaxFulfillmentLength
	return cc.VarOctetStringSize(len(f.Prefix)) + cc.VarOctetStringSize(worstSub), nil
}

// Validate validates the sub-fulfillment against prefix||message.
func (f *PrefixSha256) Validate(message []byte) error {
	if f.Subfulfillment == nil {
		return errors.New("prefix fulfillment has no subfulfillment")
	}
	prefixed := make([]byte, 0, len(f.Prefix)+len(message))
	prefixed = append(prefixed, f.Prefix...)
	prefixed = append(prefixed, message...)
	return f.Subfulfillment.Validate(prefixed)
}
