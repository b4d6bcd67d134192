package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteView(t *testing.T) {
	src := []byte{0x82, 0xA0}
	v := NewByteView(src)

	assert.Equal(t, Bytes{0x82, 0xA0}, v.Bytes)
	assert.Equal(t, "82 A0", v.Hex)
	assert.Equal(t, "10000010 10100000", v.Binary)
	assert.Equal(t, 2, v.Length)
	assert.False(t, v.IsEmpty())

	// The view must not alias the caller's slice
	src[0] = 0x00
	assert.Equal(t, byte(0x82), v.Bytes[0])
}

func TestNewByteView_Empty(t *testing.T) {
	v := NewByteView(nil)

	assert.True(t, v.IsEmpty())
	assert.Equal(t, 0, v.Length)
	assert.Equal(t, "", v.Hex)
	assert.Equal(t, "", v.Binary)
}

func TestByteView_JSON(t *testing.T) {
	v := NewByteView([]byte{0xE3, 0x81, 0x82})

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bytes":[227,129,130],"hex":"E3 81 82","binary":"11100011 10000001 10000010","length":3}`, string(data))

	var decoded ByteView
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, v, decoded)
}

func TestBytes_UnmarshalJSON_OutOfRange(t *testing.T) {
	var b Bytes
	err := json.Unmarshal([]byte(`[1, 256]`), &b)
	assert.Error(t, err)
}

func TestBytes_MarshalJSON_Empty(t *testing.T) {
	data, err := json.Marshal(Bytes{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
