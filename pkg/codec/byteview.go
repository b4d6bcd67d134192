package codec

import (
	"encoding/json"
	"fmt"
)

// Bytes is a byte sequence that marshals to JSON as an array of integers
type Bytes []byte

// MarshalJSON encodes the bytes as a JSON array of numbers
func (b Bytes) MarshalJSON() ([]byte, error) {
	values := make([]int, len(b))
	for i, v := range b {
		values[i] = int(v)
	}
	return json.Marshal(values)
}

// UnmarshalJSON decodes a JSON array of numbers in the range 0-255
func (b *Bytes) UnmarshalJSON(data []byte) error {
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("failed to decode bytes: %w", err)
	}
	out := make(Bytes, len(values))
	for i, v := range values {
		if v < 0 || v > 0xFF {
			return fmt.Errorf("byte value out of range at index %d: %d", i, v)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}

// ByteView is the byte sequence of one character with its display renderings
type ByteView struct {
	Bytes  Bytes  `json:"bytes"`
	Hex    string `json:"hex"`
	Binary string `json:"binary"`
	Length int    `json:"length"`
}

// NewByteView builds a view over a copy of b
func NewByteView(b []byte) ByteView {
	owned := make(Bytes, len(b))
	copy(owned, b)

	return ByteView{
		Bytes:  owned,
		Hex:    ToHex(owned),
		Binary: ToBinary(owned),
		Length: len(owned),
	}
}

// IsEmpty reports whether the view holds no bytes
func (v ByteView) IsEmpty() bool {
	return len(v.Bytes) == 0
}
