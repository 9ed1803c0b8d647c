package conditions

import (
	"math/bits"
	"strconv"
	"sync"
)

// The registry maps a single-bit type identifier to the constructor of
// the concrete fulfillment family that owns it. Families register
// themselves in init; after initialization the table is only read, and
// reads take the shared lock so late registration (tests, plugins)
// stays safe.
var (
	registryMu sync.RWMutex
	registry   = map[uint32]func() Fulfillment{}
)

// RegisterType binds a type bit to a fulfillment constructor. The bit
// must have exactly one bit set and must not already be bound;
// violating either is a programming error and panics, mirroring the
// registration discipline of encoding/gob.
func RegisterType(typeBit uint32, ctor func() Fulfillment) {
	if bits.OnesCount32(typeBit) != 1 {
		panic("conditions: type bit 0x" + strconv.FormatUint(uint64(typeBit), 16) +
			" does not have exactly one bit set")
	}
	if ctor == nil {
		panic("conditions: nil constructor for type bit 0x" +
			strconv.FormatUint(uint64(typeBit), 16))
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[typeBit]; dup {
		panic("conditions: type bit 0x" + strconv.FormatUint(uint64(typeBit), 16) +
			" registered twice")
	}
	registry[typeBit] = ctor
}

// newFulfillment constructs an empty fulfillment for the given wire
// type bit, failing with UnknownTypeError when no family is registered
// for it.
func newFulfillment(typeBit uint32) (Fulfillment, error) {
	registryMu.RLock()
	ctor := registry[typeBit]
	registryMu.RUnlock()
	if ctor == nil {
		return nil, UnknownTypeError{TypeBit: typeBit}
	}
	return ctor(), nil
}

// RegisteredTypeBits returns the currently registered type bits as a
// combined bitmask.
func RegisteredTypeBits() uint32 {
	registryMu.RLock()
	defer registryMu.RUnlock()
	var mask uint32
	for bit := range registry {
		mask |= bit
	}
	return mask
}

// CombineMasks ORs the bitmasks of a compound type's constituents into
// the effective bitmask stored in a derived condition. A verifier needs
// every capability named in the combined mask to check the eventual
// fulfillment.
func CombineMasks(masks ...uint32) uint32 {
	var out uint32
	for _, m := range masks {
		out |= m
	}
	return out
}
