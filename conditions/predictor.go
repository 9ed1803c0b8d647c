package conditions

import "fmt"

// Predictor implements Writer but discards all data, accumulating only
// the byte count each operation would have produced. Replaying a
// payload encoder against a Predictor yields the exact serialized size
// without materializing bytes; MaxFulfillmentLength uses this to derive
// a condition's max-length field from WritePayload itself.
type Predictor struct {
	size int
}

var _ Writer = (*Predictor)(nil)

// NewPredictor constructs a Predictor with a zero count.
func NewPredictor() *Predictor { return &Predictor{} }

// Size returns the number of bytes the recorded writes would occupy.
func (p *Predictor) Size() int { return p.size }

// WriteUint8 counts one byte.
func (p *Predictor) WriteUint8(v uint8) error {
	p.size++
	return nil
}

// WriteUint16 counts two bytes.
func (p *Predictor) WriteUint16(v uint16) error {
	p.size += 2
	return nil
}

// WriteUint32 counts four bytes.
func (p *Predictor) WriteUint32(v uint32) error {
	p.size += 4
	return nil
}

// WriteVarUInt counts the encoded size of v.
func (p *Predictor) WriteVarUInt(v uint64) error {
	p.size += VarUIntSize(v)
	return nil
}

// WriteOctetString counts size bytes, enforcing the same fixed-width
// contract as BufferWriter so prediction fails where serialization
// would.
func (p *Predictor) WriteOctetString(b []byte, size int) error {
	if len(b) != size {
		return fmt.Errorf("conditions: octet string is %d bytes, want %d", len(b), size)
	}
	p.size += size
	return nil
}

// WriteVarOctetString counts the prefix plus the string bytes.
func (p *Predictor) WriteVarOctetString(b []byte) error {
	p.size += VarOctetStringSize(len(b))
	return nil
}
