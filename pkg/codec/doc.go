// Package codec renders per-character byte sequences for display.
//
// A ByteView holds the bytes one character occupies under a given encoding,
// together with two textual renderings of those bytes:
//
//	Hex:    "E3 81 82"
//	Binary: "11100011 10000001 10000010"
//
// # Format
//
// Hex groups are exactly two uppercase hexadecimal digits. Binary groups are
// exactly eight digits, zero-padded on the left. Groups are separated by a
// single ASCII space with no leading or trailing space. An empty byte
// sequence renders as the empty string in both forms, so for a non-empty
// sequence of n bytes:
//
//	len(Hex)    == 3*n - 1
//	len(Binary) == 9*n - 1
//
// Renderings are locale independent and order preserving; no byte is ever
// added, dropped or reordered.
//
// # Parsing
//
// ParseHex and ParseBinary are the inverse of ToHex and ToBinary. They accept
// any run of whitespace between groups and lowercase hex digits, but reject
// groups of the wrong width or with foreign digits:
//
//	b, err := codec.ParseHex("e3 81 82")
//	if err != nil {
//	    return err // wraps ErrMalformedGroup
//	}
//
// # JSON
//
// Bytes marshals as an array of integers rather than base64 so that the
// values can be rendered directly by a browser UI.
//
// # Thread Safety
//
// All functions are pure. ByteView values are not mutated after construction
// and are safe to share between goroutines.
package codec
