package tests

import (
	"bytes"
	_ "embed"
	"encoding/hex"
	"testing"

	"gopkg.in/yaml.v3"

	cc "github.com/interlock-labs/crypto-conditions.go/conditions"
	_ "github.com/interlock-labs/crypto-conditions.go/types"
)

//go:embed vectors.yaml
var vectorsYAML []byte

type vectorFile struct {
	Vectors []vector `yaml:"vectors"`
}

type vector struct {
	Name           string `yaml:"name"`
	FulfillmentURI string `yaml:"fulfillment_uri"`
	FulfillmentHex string `yaml:"fulfillment_hex"`
	ConditionURI   string `yaml:"condition_uri"`
	ConditionHex   string `yaml:"condition_hex"`
	Message        string `yaml:"message"`
	Valid          bool   `yaml:"valid"`
}

func loadVectors(t *testing.T) []vector {
	t.Helper()
	var vf vectorFile
	if err := yaml.Unmarshal(vectorsYAML, &vf); err != nil {
		t.Fatalf("parse vectors.yaml: %v", err)
	}
	if len(vf.Vectors) == 0 {
		t.Fatal("vectors.yaml contains no vectors")
	}
	return vf.Vectors
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

// TestVectors checks every pinned vector in both directions: URI and
// binary forms parse into the same fulfillment, re-serialize
// byte-identically, derive the pinned condition, and verify against the
// pinned message.
func TestVectors(t *testing.T) {
	for _, v := range loadVectors(t) {
		t.Run(v.Name, func(t *testing.T) {
			fromURI, err := cc.ParseFulfillmentURI(v.FulfillmentURI)
			if err != nil {
				t.Fatalf("ParseFulfillmentURI: %v", err)
			}
			fromBin, err := cc.ParseFulfillmentBinary(mustHex(t, v.FulfillmentHex))
			if err != nil {
				t.Fatalf("ParseFulfillmentBinary: %v", err)
			}

			for name, f := range map[string]cc.Fulfillment{"uri": fromURI, "binary": fromBin} {
				uri, err := cc.SerializeURI(f)
				if err != nil {
					t.Fatal(err)
				}
				if uri != v.FulfillmentURI {
					t.Errorf("%s: uri = %s, want %s", name, uri, v.FulfillmentURI)
				}
				bin, err := cc.SerializeBinary(f)
				if err != nil {
					t.Fatal(err)
				}
				if got := hex.EncodeToString(bin); got != v.FulfillmentHex {
					t.Errorf("%s: binary = %s, want %s", name, got, v.FulfillmentHex)
				}

				cond, err := cc.DeriveCondition(f)
				if err != nil {
					t.Fatal(err)
				}
				if got := cond.SerializeURI(); got != v.ConditionURI {
					t.Errorf("%s: condition uri = %s, want %s", name, got, v.ConditionURI)
				}
				if got := hex.EncodeToString(cond.SerializeBinary()); got != v.ConditionHex {
					t.Errorf("%s: condition binary = %s, want %s", name, got, v.ConditionHex)
				}

				err = cc.VerifyFulfillment(cond, f, []byte(v.Message))
				if v.Valid && err != nil {
					t.Errorf("%s: verification failed: %v", name, err)
				}
				if !v.Valid && err == nil {
					t.Errorf("%s: verification unexpectedly passed", name)
				}
			}
		})
	}
}

// TestVectorConditionsParse checks the pinned condition forms parse and
// round-trip on their own.
func TestVectorConditionsParse(t *testing.T) {
	for _, v := range loadVectors(t) {
		t.Run(v.Name, func(t *testing.T) {
			fromURI, err := cc.ParseConditionURI(v.ConditionURI)
			if err != nil {
				t.Fatalf("ParseConditionURI: %v", err)
			}
			fromBin, err := cc.ParseConditionBinary(mustHex(t, v.ConditionHex))
			if err != nil {
				t.Fatalf("ParseConditionBinary: %v", err)
			}
			if !fromURI.Equal(fromBin) {
				t.Fatal("URI and binary forms disagree")
			}
			if got := hex.EncodeToString(fromURI.SerializeBinary()); got != v.ConditionHex {
				t.Errorf("binary = %s, want %s", got, v.ConditionHex)
			}
			if got := fromBin.SerializeURI(); got != v.ConditionURI {
				t.Errorf("uri = %s, want %s", got, v.ConditionURI)
			}
		})
	}
}

// TestCrossFamilyRoundTrip nests families and checks the byte-identical
// round-trip property on the composite.
func TestCrossFamilyRoundTrip(t *testing.T) {
	inner, err := cc.ParseFulfillmentURI("cf:1:1:DEhlbGxvIFdvcmxkIQ")
	if err != nil {
		t.Fatal(err)
	}
	innerBin, err := cc.SerializeBinary(inner)
	if err != nil {
		t.Fatal(err)
	}

	// prefix(preimage) assembled on the wire: varuint type bit 0x04,
	// then varoctet(prefix) and varoctet(inner binary).
	payload := cc.AppendVarUInt(nil, 0x04)
	payload = cc.AppendVarOctetString(payload, []byte("outer:"))
	payload = cc.AppendVarOctetString(payload, innerBin)

	f, err := cc.ParseFulfillmentBinary(payload)
	if err != nil {
		t.Fatal(err)
	}
	out, err := cc.SerializeBinary(f)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("composite round trip mismatch:\n got %x\nwant %x", out, payload)
	}
}
