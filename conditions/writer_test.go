package conditions

import (
	"bytes"
	"testing"
)

// TestPredictorMatchesBufferWriter replays the same write sequences
// against both Writer implementations; the Predictor's count must equal
// the BufferWriter's output length for every sequence, since max-length
// prediction depends on that agreement.
func TestPredictorMatchesBufferWriter(t *testing.T) {
	sequences := []struct {
		name  string
		write func(w Writer) error
	}{
		{"nothing", func(w Writer) error { return nil }},
		{"fixed widths", func(w Writer) error {
			if err := w.WriteUint8(7); err != nil {
				return err
			}
			if err := w.WriteUint16(300); err != nil {
				return err
			}
			return w.WriteUint32(1 << 30)
		}},
		{"varuints", func(w Writer) error {
			for _, v := range []uint64{0, 1, 0x80, 0xffff, 1 << 40} {
				if err := w.WriteVarUInt(v); err != nil {
					return err
				}
			}
			return nil
		}},
		{"octet strings", func(w Writer) error {
			if err := w.WriteOctetString(make([]byte, 32), 32); err != nil {
				return err
			}
			if err := w.WriteVarOctetString(nil); err != nil {
				return err
			}
			return w.WriteVarOctetString(bytes.Repeat([]byte{0xaa}, 200))
		}},
	}

	for _, seq := range sequences {
		t.Run(seq.name, func(t *testing.T) {
			bb := GetByteBuffer()
			defer PutByteBuffer(bb)
			bw := NewBufferWriter(bb)
			if err := seq.write(bw); err != nil {
				t.Fatalf("BufferWriter: %v", err)
			}
			p := NewPredictor()
			if err := seq.write(p); err != nil {
				t.Fatalf("Predictor: %v", err)
			}
			if p.Size() != len(bw.Bytes()) {
				t.Fatalf("Predictor size %d, BufferWriter wrote %d bytes", p.Size(), len(bw.Bytes()))
			}
		})
	}
}

func TestOctetStringSizeContract(t *testing.T) {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)
	if err := NewBufferWriter(bb).WriteOctetString(make([]byte, 3), 4); err == nil {
		t.Fatal("BufferWriter accepted a size mismatch")
	}
	if err := NewPredictor().WriteOctetString(make([]byte, 3), 4); err == nil {
		t.Fatal("Predictor accepted a size mismatch")
	}
}
