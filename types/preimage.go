package types

import (
	"crypto/sha256"

	cc "github.com/interlock-labs/crypto-conditions.go/conditions"
)

// PreimageSha256Bit is the type bit of the hash-lock family.
const PreimageSha256Bit = 0x01

func init() {
	cc.RegisterType(PreimageSha256Bit, func() cc.Fulfillment { return &PreimageSha256{} })
}

// PreimageSha256 is the hash-lock fulfillment: the condition commits to
// SHA-256(preimage), and revealing the preimage discharges it. There is
// nothing further to check against a message; possession of the
// preimage is the proof.
type PreimageSha256 struct {
	Preimage []byte
}

// NewPreimageSha256 constructs a hash-lock fulfillment over preimage.
func NewPreimageSha256(preimage []byte) *PreimageSha256 {
	return &PreimageSha256{Preimage: preimage}
}

// TypeBit returns 0x01.
func (f *PreimageSha256) TypeBit() uint32 { return PreimageSha256Bit }

// Bitmask equals the type bit; the family is simple.
func (f *PreimageSha256) Bitmask() uint32 { return PreimageSha256Bit }

// WritePayload writes the length-prefixed preimage.
func (f *PreimageSha256) WritePayload(w cc.Writer) error {
	return w.WriteVarOctetString(f.Preimage)
}

// ParsePayload reads the length-prefixed preimage.
func (f *PreimageSha256) ParsePayload(r *cc.Reader) error {
	p, err := r.ReadVarOctetString()
	if err != nil {
		return err
	}
	f.Preimage = append([]byte(nil), p...)
	return nil
}

// GenerateHash returns SHA-256 of the raw preimage.
func (f *PreimageSha256) GenerateHash() ([]byte, error) {
	h := sha256.Sum256(f.Preimage)
	return h[:], nil
}

// Validate always succeeds: the preimage itself, checked against the
// condition hash by VerifyFulfillment, is the entire proof.
func (f *PreimageSha256) Validate(message []byte) error { return nil }
