package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexFromString(t *testing.T) {
	t.Run("accepts valid quantities", func(t *testing.T) {
		for _, s := range []string{"0x0", "0x1a", "0X2B", "0xdeadbeef"} {
			h, err := HexFromString(s)
			require.NoError(t, err)
			assert.Equal(t, Hex(s), h)
		}
	})

	t.Run("rejects missing prefix", func(t *testing.T) {
		_, err := HexFromString("1a")
		assert.Error(t, err)
	})

	t.Run("rejects non-hex digits", func(t *testing.T) {
		_, err := HexFromString("0xzz")
		assert.Error(t, err)
	})

	t.Run("rejects empty string", func(t *testing.T) {
		_, err := HexFromString("")
		assert.Error(t, err)
	})
}

func TestHex_Uint64(t *testing.T) {
	t.Run("decodes quantity", func(t *testing.T) {
		assert.Equal(t, uint64(0x4b7), Hex("0x4b7").Uint64())
	})

	t.Run("absent value decodes to zero", func(t *testing.T) {
		assert.Equal(t, uint64(0), Hex("").Uint64())
	})
}

func TestHex_Add(t *testing.T) {
	t.Run("advances the quantity", func(t *testing.T) {
		assert.Equal(t, Hex("0x10"), Hex("0xf").Add(1))
		assert.Equal(t, Hex("0x12"), Hex("0xf").Add(3))
	})

	t.Run("absent value counts as zero", func(t *testing.T) {
		assert.Equal(t, Hex("0x2"), Hex("").Add(2))
	})
}

func TestHex_UnmarshalJSON(t *testing.T) {
	t.Run("valid quantity", func(t *testing.T) {
		var h Hex
		require.NoError(t, json.Unmarshal([]byte(`"0x1b4"`), &h))
		assert.Equal(t, Hex("0x1b4"), h)
	})

	t.Run("null leaves the value absent", func(t *testing.T) {
		h := Hex("0x1")
		require.NoError(t, json.Unmarshal([]byte(`null`), &h))
		assert.True(t, h.IsEmpty())
	})

	t.Run("invalid quantity", func(t *testing.T) {
		var h Hex
		assert.Error(t, json.Unmarshal([]byte(`"nope"`), &h))
	})
}
