package auth

import "encoding/base64"

// segmentEncoding is the URL-safe, unpadded base64 alphabet shared by every
// encoded value this package produces: token segments, password salts and
// password hashes.
var segmentEncoding = base64.RawURLEncoding

// Encode renders raw bytes as unpadded URL-safe base64 text.
func Encode(raw []byte) string {
	return segmentEncoding.EncodeToString(raw)
}

// Decode is the inverse of Encode. Malformed input yields an error that
// callers must treat as invalid data; it never panics.
func Decode(text string) ([]byte, error) {
	return segmentEncoding.DecodeString(text)
}
