package conditions

import "fmt"

// Writer is the write interface shared by real serialization and
// length-only prediction. Fulfillment payload encoders are written once
// against this interface; BufferWriter materializes the bytes while
// Predictor merely counts them, so payload shape has a single source of
// truth.
type Writer interface {
	WriteUint8(v uint8) error
	WriteUint16(v uint16) error
	WriteUint32(v uint32) error
	WriteVarUInt(v uint64) error
	WriteOctetString(b []byte, size int) error
	WriteVarOctetString(b []byte) error
}

// BufferWriter accumulates wire encoding into a ByteBuffer.
type BufferWriter struct {
	bb *ByteBuffer
}

var _ Writer = (*BufferWriter)(nil)

// NewBufferWriter constructs a BufferWriter appending to bb.
func NewBufferWriter(bb *ByteBuffer) *BufferWriter { return &BufferWriter{bb: bb} }

// Bytes returns the encoded bytes accumulated so far.
func (w *BufferWriter) Bytes() []byte { return w.bb.Bytes() }

// WriteUint8 writes a single byte.
func (w *BufferWriter) WriteUint8(v uint8) error {
	w.bb.b = AppendUint8(w.bb.b, v)
	return nil
}

// WriteUint16 writes two big-endian bytes.
func (w *BufferWriter) WriteUint16(v uint16) error {
	w.bb.b = AppendUint16(w.bb.b, v)
	return nil
}

// WriteUint32 writes four big-endian bytes.
func (w *BufferWriter) WriteUint32(v uint32) error {
	w.bb.b = AppendUint32(w.bb.b, v)
	return nil
}

// WriteVarUInt writes a variable-length unsigned integer.
func (w *BufferWriter) WriteVarUInt(v uint64) error {
	w.bb.b = AppendVarUInt(w.bb.b, v)
	return nil
}

// WriteOctetString writes the raw bytes of b, which must be exactly
// size bytes long. The size is a contract with the reading side, which
// consumes the same fixed width.
func (w *BufferWriter) WriteOctetString(b []byte, size int) error {
	if len(b) != size {
		return fmt.Errorf("conditions: octet string is %d bytes, want %d", len(b), size)
	}
	w.bb.b = AppendOctetString(w.bb.b, b)
	return nil
}

// WriteVarOctetString writes a length-prefixed byte string.
func (w *BufferWriter) WriteVarOctetString(b []byte) error {
	w.bb.b = AppendVarOctetString(w.bb.b, b)
	return nil
}
