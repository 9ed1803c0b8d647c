package conditions

import "encoding/binary"

// ReadUint8Bytes reads a single byte and returns the remaining bytes.
func ReadUint8Bytes(b []byte) (uint8, []byte, error) {
	if len(b) < 1 {
		return 0, b, ErrShortBytes
	}
	return b[0], b[1:], nil
}

// ReadUint16Bytes reads two big-endian bytes and returns the rest.
func ReadUint16Bytes(b []byte) (uint16, []byte, error) {
	if len(b) < 2 {
		return 0, b, ErrShortBytes
	}
	return binary.BigEndian.Uint16(b), b[2:], nil
}

// ReadUint32Bytes reads four big-endian bytes and returns the rest.
func ReadUint32Bytes(b []byte) (uint32, []byte, error) {
	if len(b) < 4 {
		return 0, b, ErrShortBytes
	}
	return binary.BigEndian.Uint32(b), b[4:], nil
}

// ReadVarUIntBytes reads a variable-length unsigned integer and returns
// the remaining bytes. Non-canonical encodings are rejected: a length
// byte of zero, more than eight magnitude bytes, or a multi-byte
// magnitude with a leading zero byte all fail, so every value has
// exactly one accepted encoding on the wire.
func ReadVarUIntBytes(b []byte) (uint64, []byte, error) {
	if len(b) < 1 {
		return 0, b, ErrShortBytes
	}
	n := int(b[0])
	switch {
	case n == 0:
		return 0, b, ErrEmptyVarUInt
	case n > 8:
		return 0, b, ErrVarUIntTooLong
	case len(b) < 1+n:
		return 0, b, ErrShortBytes
	}
	if n > 1 && b[1] == 0 {
		return 0, b, ErrNonCanonicalVarUInt
	}
	var v uint64
	for _, c := range b[1 : 1+n] {
		v = v<<8 | uint64(c)
	}
	return v, b[1+n:], nil
}

// ReadOctetStringBytes reads exactly size raw bytes and returns the
// rest. The returned slice shares memory with b.
func ReadOctetStringBytes(b []byte, size int) ([]byte, []byte, error) {
	if size < 0 || len(b) < size {
		return nil, b, ErrShortBytes
	}
	return b[:size:size], b[size:], nil
}

// ReadVarOctetStringBytes reads a length-prefixed byte string and
// returns the rest. The length prefix must be canonical: the single-byte
// form for lengths up to 127, otherwise 0x80|n with a minimal n-byte
// big-endian length. The returned slice shares memory with b.
func ReadVarOctetStringBytes(b []byte) ([]byte, []byte, error) {
	n, rest, err := readLengthPrefix(b)
	if err != nil {
		return nil, b, err
	}
	if len(rest) < n {
		return nil, b, ErrShortBytes
	}
	return rest[:n:n], rest[n:], nil
}

// readLengthPrefix decodes the length-of-length prefix and returns the
// declared string length plus the bytes following the prefix.
func readLengthPrefix(b []byte) (int, []byte, error) {
	if len(b) < 1 {
		return 0, b, ErrShortBytes
	}
	first := b[0]
	if first&0x80 == 0 {
		return int(first), b[1:], nil
	}
	m := int(first & 0x7f)
	switch {
	case m == 0:
		return 0, b, ErrNonCanonicalLength
	case m > 8:
		return 0, b, ErrVarUIntTooLong
	case len(b) < 1+m:
		return 0, b, ErrShortBytes
	}
	if b[1] == 0 {
		return 0, b, ErrNonCanonicalLength
	}
	var n uint64
	for _, c := range b[1 : 1+m] {
		n = n<<8 | uint64(c)
	}
	if n <= 0x7f {
		// Would have fit in the single-byte form.
		return 0, b, ErrNonCanonicalLength
	}
	if n > uint64(maxInt) {
		return 0, b, ErrVarUIntTooLong
	}
	return int(n), b[1+m:], nil
}

const maxInt = int(^uint(0) >> 1)
