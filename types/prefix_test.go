package types

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"testing"

	cc "github.com/interlock-labs/crypto-conditions.go/conditions"
)

// wrapInPrefixes builds the binary of n nested prefix compounds around
// inner without going through the parser.
func wrapInPrefixes(inner []byte, n int) []byte {
	buf := inner
	for i := 0; i < n; i++ {
		b := cc.AppendVarUInt(nil, PrefixSha256Bit)
		b = cc.AppendVarOctetString(b, nil)
		b = cc.AppendVarOctetString(b, buf)
		buf = b
	}
	return buf
}

// TestPrefixDeepNestingRejected feeds the parser a compound nested far
// past the depth limit; it must fail with ErrRecursion rather than
// recurse until the stack runs out.
func TestPrefixDeepNestingRejected(t *testing.T) {
	inner, err := cc.SerializeBinary(NewPreimageSha256([]byte("x")))
	if err != nil {
		t.Fatal(err)
	}
	deep := wrapInPrefixes(inner, 50*cc.MaxFulfillmentDepth)
	_, err = cc.ParseFulfillmentBinary(deep)
	if !errors.Is(err, cc.ErrRecursion) {
		t.Fatalf("got %v, want ErrRecursion", err)
	}
	if !cc.IsParse(err) {
		t.Fatal("deep nesting not classified as parse error")
	}

	// Nesting at the limit still parses.
	atLimit := wrapInPrefixes(inner, cc.MaxFulfillmentDepth)
	if _, err := cc.ParseFulfillmentBinary(atLimit); err != nil {
		t.Fatalf("nesting at limit rejected: %v", err)
	}
}

func TestPrefixBitmask(t *testing.T) {
	f := NewPrefixSha256([]byte("p"), NewPreimageSha256([]byte("s")))
	if got := f.Bitmask(); got != PrefixSha256Bit|PreimageSha256Bit {
		t.Fatalf("bitmask = %#x, want %#x", got, PrefixSha256Bit|PreimageSha256Bit)
	}
	// The wire type bit stays the prefix family's own bit.
	if got := f.TypeBit(); got != PrefixSha256Bit {
		t.Fatalf("type bit = %#x, want %#x", got, PrefixSha256Bit)
	}
}

func TestPrefixRoundTrip(t *testing.T) {
	f := NewPrefixSha256([]byte("chan-7:"), NewPreimageSha256([]byte("inner secret")))
	bin, err := cc.SerializeBinary(f)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := cc.ParseFulfillmentBinary(bin)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := parsed.(*PrefixSha256)
	if !ok {
		t.Fatalf("parsed %T", parsed)
	}
	if !bytes.Equal(p.Prefix, []byte("chan-7:")) {
		t.Fatalf("prefix = %q", p.Prefix)
	}
	if _, ok := p.Subfulfillment.(*PreimageSha256); !ok {
		t.Fatalf("subfulfillment %T", p.Subfulfillment)
	}
	bin2, err := cc.SerializeBinary(parsed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(bin2, bin) {
		t.Fatal("round trip not byte-identical")
	}
}

// TestPrefixValidation checks the defining property: the subfulfillment
// sees prefix||message, so a signature over the prefixed message
// validates and one over the bare message does not.
func TestPrefixValidation(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	prefix := []byte("scope:")
	message := []byte("transfer")

	prefixed := append(append([]byte(nil), prefix...), message...)
	good := NewPrefixSha256(prefix, NewEd25519(pub, ed25519.Sign(priv, prefixed)))
	if err := good.Validate(message); err != nil {
		t.Fatalf("prefixed signature rejected: %v", err)
	}

	bad := NewPrefixSha256(prefix, NewEd25519(pub, ed25519.Sign(priv, message)))
	if err := bad.Validate(message); err == nil {
		t.Fatal("unprefixed signature accepted")
	}
}

func TestPrefixMaxLengthSoundness(t *testing.T) {
	f := NewPrefixSha256([]byte("prefix"), NewPreimageSha256([]byte("a longer preimage value")))
	cond, err := cc.DeriveCondition(f)
	if err != nil {
		t.Fatal(err)
	}
	payload, err := cc.SerializePayload(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(payload) > cond.MaxFulfillmentLength {
		t.Fatalf("payload %d bytes exceeds max %d", len(payload), cond.MaxFulfillmentLength)
	}
}

func TestPrefixHashDeterminism(t *testing.T) {
	f := NewPrefixSha256([]byte("p"), NewPreimageSha256([]byte("s")))
	c1, err := cc.DeriveCondition(f)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := cc.DeriveCondition(f)
	if err != nil {
		t.Fatal(err)
	}
	if !c1.Equal(c2) {
		t.Fatal("derived conditions differ")
	}
}
