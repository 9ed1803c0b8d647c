package conditions

import "encoding/base64"

// The URI forms carry their payload and hash segments as URL-safe
// base64 with no padding. The codec treats the encoding as a pure,
// injective byte<->text function; these two helpers are its only use.
// Decoding is strict so that every byte string has exactly one text
// form: trailing-bit variants of the final character are rejected,
// keeping the URI form as malleability-free as the binary form.

var rawURLStrict = base64.RawURLEncoding.Strict()

func base64URLEncode(b []byte) string {
	return rawURLStrict.EncodeToString(b)
}

func base64URLDecode(s string) ([]byte, error) {
	return rawURLStrict.DecodeString(s)
}
