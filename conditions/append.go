package conditions

import "encoding/binary"

// AppendUint8 appends v as a single byte.
func AppendUint8(b []byte, v uint8) []byte {
	return append(b, v)
}

// AppendUint16 appends v as two big-endian bytes.
func AppendUint16(b []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(b, v)
}

// AppendUint32 appends v as four big-endian bytes.
func AppendUint32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}

// AppendVarUInt appends the variable-length encoding of v: one length
// byte followed by that many big-endian magnitude bytes, using the
// unique minimal magnitude. Zero encodes as 0x01 0x00.
func AppendVarUInt(b []byte, v uint64) []byte {
	n := uintMagnitude(v)
	b = append(b, byte(n))
	for i := n - 1; i >= 0; i-- {
		b = append(b, byte(v>>(8*uint(i))))
	}
	return b
}

// AppendOctetString appends the raw bytes of s with no prefix. The
// expected fixed width comes from context; readers consume it with
// ReadOctetStringBytes and the same width.
func AppendOctetString(b, s []byte) []byte {
	return append(b, s...)
}

// AppendVarOctetString appends a length-prefixed byte string. Lengths up
// to 127 use a single prefix byte; longer strings use 0x80|n followed by
// the n-byte minimal big-endian length.
func AppendVarOctetString(b, s []byte) []byte {
	b = appendLengthPrefix(b, len(s))
	return append(b, s...)
}

// appendLengthPrefix appends the canonical length-of-length prefix for a
// byte string of length n.
func appendLengthPrefix(b []byte, n int) []byte {
	if n <= 0x7f {
		return append(b, byte(n))
	}
	m := uintMagnitude(uint64(n))
	b = append(b, 0x80|byte(m))
	for i := m - 1; i >= 0; i-- {
		b = append(b, byte(uint64(n)>>(8*uint(i))))
	}
	return b
}

// uintMagnitude returns the number of bytes in the minimal big-endian
// representation of v. Zero occupies one byte.
func uintMagnitude(v uint64) int {
	n := 1
	for v > 0xff {
		v >>= 8
		n++
	}
	return n
}
