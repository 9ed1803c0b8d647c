package conditions

import (
	"bytes"
	"errors"
	"testing"
)

func TestReaderSequentialReads(t *testing.T) {
	b := AppendUint8(nil, 9)
	b = AppendVarUInt(b, 1234)
	b = AppendVarOctetString(b, []byte("payload"))
	b = AppendUint32(b, 77)

	r := NewReader(b)
	if v, err := r.ReadUint8(); err != nil || v != 9 {
		t.Fatalf("ReadUint8 = %d, %v", v, err)
	}
	if v, err := r.ReadVarUInt(); err != nil || v != 1234 {
		t.Fatalf("ReadVarUInt = %d, %v", v, err)
	}
	if s, err := r.ReadVarOctetString(); err != nil || !bytes.Equal(s, []byte("payload")) {
		t.Fatalf("ReadVarOctetString = %q, %v", s, err)
	}
	if v, err := r.ReadUint32(); err != nil || v != 77 {
		t.Fatalf("ReadUint32 = %d, %v", v, err)
	}
	if r.Len() != 0 {
		t.Fatalf("reader has %d bytes left", r.Len())
	}
}

func TestReaderUnderrun(t *testing.T) {
	cases := []struct {
		name string
		read func(r *Reader) error
	}{
		{"uint8", func(r *Reader) error { _, err := r.ReadUint8(); return err }},
		{"uint16", func(r *Reader) error { _, err := r.ReadUint16(); return err }},
		{"uint32", func(r *Reader) error { _, err := r.ReadUint32(); return err }},
		{"varuint", func(r *Reader) error { _, err := r.ReadVarUInt(); return err }},
		{"octet string", func(r *Reader) error { _, err := r.ReadOctetString(4); return err }},
		{"var octet string", func(r *Reader) error { _, err := r.ReadVarOctetString(); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.read(NewReader(nil)); !errors.Is(err, ErrShortBytes) {
				t.Fatalf("empty buffer: got %v, want ErrShortBytes", err)
			}
		})
	}
}

// TestReaderDoesNotAdvanceOnError verifies a failed read leaves the
// cursor in place, so a failed parse can never silently skip input.
func TestReaderDoesNotAdvanceOnError(t *testing.T) {
	r := NewReader(mustHex(t, "02ff"))
	if _, err := r.ReadVarUInt(); !errors.Is(err, ErrShortBytes) {
		t.Fatalf("got %v, want ErrShortBytes", err)
	}
	if r.Len() != 2 {
		t.Fatalf("cursor advanced on error: %d bytes left, want 2", r.Len())
	}
}

func TestReaderAliasing(t *testing.T) {
	src := AppendVarOctetString(nil, []byte{1, 2, 3})
	r := NewReader(src)
	s, err := r.ReadVarOctetString()
	if err != nil {
		t.Fatal(err)
	}
	// Documented: returned slices alias the input buffer.
	src[1] = 0xff
	if s[0] != 0xff {
		t.Fatal("expected returned slice to alias the source buffer")
	}
}
