package types

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"

	cc "github.com/interlock-labs/crypto-conditions.go/conditions"
)

// RsaSha256Bit is the type bit of the RSA signature family.
const RsaSha256Bit = 0x02

// rsaPublicExponent is fixed for the family; only the modulus travels
// on the wire.
const rsaPublicExponent = 65537

func init() {
	cc.RegisterType(RsaSha256Bit, func() cc.Fulfillment { return &RsaSha256{} })
}

// RsaSha256 is the RSA signature fulfillment: the condition commits to
// a modulus and the fulfillment carries an RSA-PSS/SHA-256 signature
// over the message being verified. The public exponent is fixed at
// 65537.
type RsaSha256 struct {
	Modulus   []byte
	Signature []byte
}

// NewRsaSha256 constructs an RSA signature fulfillment from the
// big-endian modulus bytes and a PSS signature.
func NewRsaSha256(modulus, signature []byte) *RsaSha256 {
	return &RsaSha256{Modulus: modulus, Signature: signature}
}

// TypeBit returns 0x02.
func (f *RsaSha256) TypeBit() uint32 { return RsaSha256Bit }

// Bitmask equals the type bit; the family is simple.
func (f *RsaSha256) Bitmask() uint32 { return RsaSha256Bit }

// WritePayload writes the length-prefixed modulus and signature.
func (f *RsaSha256) WritePayload(w cc.Writer) error {
	if err := w.WriteVarOctetString(f.Modulus); err != nil {
		return err
	}
	return w.WriteVarOctetString(f.Signature)
}

// ParsePayload reads the length-prefixed modulus and signature.
func (f *RsaSha256) ParsePayload(r *cc.Reader) error {
	mod, err := r.ReadVarOctetString()
	if err != nil {
		return err
	}
	sig, err := r.ReadVarOctetString()
	if err != nil {
		return err
	}
	f.Modulus = append([]byte(nil), mod...)
	f.Signature = append([]byte(nil), sig...)
	return nil
}

// GenerateHash returns SHA-256 of the modulus bytes; the exponent is
// fixed and contributes nothing.
func (f *RsaSha256) GenerateHash() ([]byte, error) {
	if len(f.Modulus) == 0 {
		return nil, errors.New("rsa fulfillment has no modulus")
	}
	h := sha256.Sum256(f.Modulus)
	return h[:], nil
}

// Validate verifies the PSS signature over message. The salt length is
// bound to the digest size so every verifier checks the same encoding.
func (f *RsaSha256) Validate(message []byte) error {
	if len(f.Modulus) == 0 || len(f.Signature) == 0 {
		return errors.New("rsa fulfillment is missing modulus or signature")
	}
	pub := &rsa.PublicKey{
		N: new(big.Int).SetBytes(f.Modulus),
		E: rsaPublicExponent,
	}
	digest := sha256.Sum256(message)
	opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: crypto.SHA256}
	if err := rsa.VerifyPSS(pub, crypto.SHA256, digest[:], f.Signature, opts); err != nil {
		return fmt.Errorf("rsa signature verification failed: %w", err)
	}
	return nil
}
