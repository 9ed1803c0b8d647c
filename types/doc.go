// Package types provides the standard crypto-condition families. Each
// family owns one type bit and registers its constructor with the
// conditions registry in init, so importing this package (blank import
// is enough) makes all standard families parseable:
//
//	0x01  PreimageSha256   hash-lock over a revealed preimage
//	0x02  RsaSha256        RSA-PSS/SHA-256 signature, fixed exponent 65537
//	0x04  PrefixSha256     compound: sub-fulfillment over a prefixed message
//	0x08  ThresholdSha256  compound: weighted t-of-n over sub-conditions
//	0x10  Ed25519          Ed25519 signature
package types
