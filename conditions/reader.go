package conditions

// Reader consumes wire primitives from a fixed in-memory buffer. Each
// read advances past the consumed bytes; underruns and non-canonical
// encodings fail without advancing, so a failed parse never yields a
// partially consumed value.
type Reader struct {
	buf   []byte
	depth int
}

// NewReader constructs a Reader over the provided buffer. The Reader
// does not copy; returned byte slices alias b.
func NewReader(b []byte) *Reader { return &Reader{buf: b} }

// Remaining returns the unread portion of the underlying buffer.
func (r *Reader) Remaining() []byte { return r.buf }

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.buf) }

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() (uint8, error) {
	v, rest, err := ReadUint8Bytes(r.buf)
	if err != nil {
		return 0, err
	}
	r.buf = rest
	return v, nil
}

// ReadUint16 reads two big-endian bytes.
func (r *Reader) ReadUint16() (uint16, error) {
	v, rest, err := ReadUint16Bytes(r.buf)
	if err != nil {
		return 0, err
	}
	r.buf = rest
	return v, nil
}

// ReadUint32 reads four big-endian bytes.
func (r *Reader) ReadUint32() (uint32, error) {
	v, rest, err := ReadUint32Bytes(r.buf)
	if err != nil {
		return 0, err
	}
	r.buf = rest
	return v, nil
}

// ReadVarUInt reads a variable-length unsigned integer, rejecting
// non-canonical encodings.
func (r *Reader) ReadVarUInt() (uint64, error) {
	v, rest, err := ReadVarUIntBytes(r.buf)
	if err != nil {
		return 0, err
	}
	r.buf = rest
	return v, nil
}

// ReadOctetString reads exactly size raw bytes.
func (r *Reader) ReadOctetString(size int) ([]byte, error) {
	v, rest, err := ReadOctetStringBytes(r.buf, size)
	if err != nil {
		return nil, err
	}
	r.buf = rest
	return v, nil
}

// ReadVarOctetString reads a length-prefixed byte string, rejecting
// non-canonical length prefixes.
func (r *Reader) ReadVarOctetString() ([]byte, error) {
	v, rest, err := ReadVarOctetStringBytes(r.buf)
	if err != nil {
		return nil, err
	}
	r.buf = rest
	return v, nil
}
