package types

import (
	"crypto/ed25519"
	"crypto/sha256"
	"errors"
	"fmt"

	cc "github.com/interlock-labs/crypto-conditions.go/conditions"
)

// Ed25519Bit is the type bit of the Ed25519 signature family.
const Ed25519Bit = 0x10

func init() {
	cc.RegisterType(Ed25519Bit, func() cc.Fulfillment { return &Ed25519{} })
}

// Ed25519 is the signature fulfillment: the condition commits to a
// public key and the fulfillment carries a signature over the message
// being verified. Both fields are fixed width on the wire.
type Ed25519 struct {
	PublicKey ed25519.PublicKey
	Signature []byte
}

// NewEd25519 constructs a signature fulfillment from a public key and a
// signature over the message the condition will be verified against.
func NewEd25519(publicKey ed25519.PublicKey, signature []byte) *Ed25519 {
	return &Ed25519{PublicKey: publicKey, Signature: signature}
}

// TypeBit returns 0x10.
func (f *Ed25519) TypeBit() uint32 { return Ed25519Bit }

// Bitmask equals the type bit; the family is simple.
func (f *Ed25519) Bitmask() uint32 { return Ed25519Bit }

// WritePayload writes the 32-byte public key and 64-byte signature as
// fixed-width octet strings.
func (f *Ed25519) WritePayload(w cc.Writer) error {
	if err := w.WriteOctetString(f.PublicKey, ed25519.PublicKeySize); err != nil {
		return fmt.Errorf("ed25519 public key: %w", err)
	}
	if err := w.WriteOctetString(f.Signature, ed25519.SignatureSize); err != nil {
		return fmt.Errorf("ed25519 signature: %w", err)
	}
	return nil
}

// ParsePayload reads the fixed-width public key and signature.
func (f *Ed25519) ParsePayload(r *cc.Reader) error {
	pk, err := r.ReadOctetString(ed25519.PublicKeySize)
	if err != nil {
		return err
	}
	sig, err := r.ReadOctetString(ed25519.SignatureSize)
	if err != nil {
		return err
	}
	f.PublicKey = append(ed25519.PublicKey(nil), pk...)
	f.Signature = append([]byte(nil), sig...)
	return nil
}

// GenerateHash returns SHA-256 of the public key, so the condition
// commits to the key without revealing a signature.
func (f *Ed25519) GenerateHash() ([]byte, error) {
	if len(f.PublicKey) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("ed25519 public key is %d bytes, want %d",
			len(f.PublicKey), ed25519.PublicKeySize)
	}
	h := sha256.Sum256(f.PublicKey)
	return h[:], nil
}

// Validate verifies the signature over message with the committed key.
func (f *Ed25519) Validate(message []byte) error {
	if len(f.PublicKey) != ed25519.PublicKeySize || len(f.Signature) != ed25519.SignatureSize {
		return errors.New("ed25519 fulfillment is missing key or signature")
	}
	if !ed25519.Verify(f.PublicKey, message, f.Signature) {
		return errors.New("ed25519 signature verification failed")
	}
	return nil
}
