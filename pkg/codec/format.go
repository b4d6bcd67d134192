package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const hexDigits = "0123456789ABCDEF"

// ErrMalformedGroup is returned when a hex or binary group cannot be parsed
var ErrMalformedGroup = errors.New("malformed byte group")

// ToHex renders bytes as space-separated two-digit uppercase hexadecimal
func ToHex(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(b)*3 - 1)
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(hexDigits[v>>4])
		sb.WriteByte(hexDigits[v&0x0F])
	}
	return sb.String()
}

// ToBinary renders bytes as space-separated eight-digit binary groups
func ToBinary(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(b)*9 - 1)
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		for shift := 7; shift >= 0; shift-- {
			sb.WriteByte('0' + (v>>uint(shift))&1)
		}
	}
	return sb.String()
}

// ParseHex parses the output of ToHex back into bytes
func ParseHex(s string) ([]byte, error) {
	return parseGroups(s, 2, 16)
}

// ParseBinary parses the output of ToBinary back into bytes
func ParseBinary(s string) ([]byte, error) {
	return parseGroups(s, 8, 2)
}

func parseGroups(s string, width, base int) ([]byte, error) {
	groups := strings.Fields(s)
	out := make([]byte, 0, len(groups))

	for i, group := range groups {
		if len(group) != width {
			return nil, fmt.Errorf("%w: group %d %q must be %d digits", ErrMalformedGroup, i, group, width)
		}
		v, err := strconv.ParseUint(group, base, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: group %d %q: %v", ErrMalformedGroup, i, group, err)
		}
		out = append(out, byte(v))
	}

	return out, nil
}
