// Package conditions implements the crypto-conditions wire codec and the
// polymorphic type registry that dispatches parsing to concrete
// condition/fulfillment families.
//
// A Condition is the public commitment to an obligation: a type bitmask,
// a hash digest, and an upper bound on the size of any fulfillment that
// can discharge it. A Fulfillment is the type-specific proof data that,
// once validated, satisfies the condition. Conditions can be exchanged
// and verified using only public data; the fulfillment is revealed later.
//
// This package defines four "families" of codec functions:
//   - AppendXxx() appends a primitive to a []byte in wire encoding.
//   - ReadXxxBytes() reads a primitive from a []byte and returns the rest.
//   - (*BufferWriter).WriteXxx() and (*Predictor).WriteXxx() implement the
//     shared Writer interface; the Predictor only counts bytes.
//   - (*Reader).ReadXxx() reads from a buffered *Reader with a cursor.
//
// Concrete families implement the Fulfillment interface and register
// themselves with RegisterType; parsing entry points
// (ParseFulfillmentBinary, ParseFulfillmentURI) resolve the registered
// implementation from the wire type bit and delegate payload parsing.
//
// The codec is strict: non-canonical varint encodings, malformed length
// prefixes, truncated buffers, and URI grammar violations are rejected.
// Two encodings of the same value never both parse, which removes wire
// malleability as an attack surface.
package conditions
