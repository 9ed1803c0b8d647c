package conditions

// Worst-case encoded sizes for the wire primitives. For variable-length
// primitives the exact size of a concrete value comes from VarUIntSize
// and VarOctetStringSize.
const (
	Uint8Size  = 1
	Uint16Size = 2
	Uint32Size = 4

	// VarUIntMaxSize is the largest encoding of a uint64: one length
	// byte plus eight magnitude bytes.
	VarUIntMaxSize = 9

	// LengthPrefixMaxSize is the largest octet-string length prefix:
	// 0x80|8 plus eight big-endian length bytes.
	LengthPrefixMaxSize = 9
)

// VarUIntSize returns the exact encoded size of v: the length byte plus
// the minimal big-endian magnitude.
func VarUIntSize(v uint64) int {
	return 1 + uintMagnitude(v)
}

// VarOctetStringSize returns the exact encoded size of an n-byte
// string: the canonical length prefix plus the bytes themselves.
func VarOctetStringSize(n int) int {
	if n <= 0x7f {
		return 1 + n
	}
	return 1 + uintMagnitude(uint64(n)) + n
}
