// Package types holds small shared value types used across the module.
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Hex is a hex-encoded quantity as delivered by Ethereum-style JSON-RPC
// APIs (e.g. "0x4b7"). The zero value ("") means "absent".
type Hex string

// HexFromString parses and validates s, returning it as a Hex value.
func HexFromString(s string) (Hex, error) {
	if err := validateHex(s); err != nil {
		return "", err
	}
	return Hex(s), nil
}

// HexFromUint64 encodes n as a Hex quantity.
func HexFromUint64(n uint64) Hex {
	return Hex(fmt.Sprintf("0x%x", n))
}

// validateHex checks that s is a "0x"-prefixed hexadecimal quantity.
func validateHex(s string) error {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return fmt.Errorf("hex quantity must start with 0x")
	}

	if _, err := strconv.ParseUint(s[2:], 16, 64); err != nil {
		return fmt.Errorf("invalid hex quantity: %w", err)
	}

	return nil
}

// IsEmpty reports whether the value is absent.
func (h Hex) IsEmpty() bool {
	return h == ""
}

// Uint64 returns the decoded quantity, or zero when the value is absent
// or malformed.
func (h Hex) Uint64() uint64 {
	if h.IsEmpty() {
		return 0
	}

	v, _ := strconv.ParseUint(string(h)[2:], 16, 64)
	return v
}

// Add returns a new Hex holding the current quantity plus n.
// An absent value is treated as zero.
func (h Hex) Add(n uint64) Hex {
	return HexFromUint64(h.Uint64() + n)
}

// MarshalJSON encodes the quantity as a JSON string.
func (h Hex) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(h))
}

// UnmarshalJSON decodes and validates a JSON-encoded hex quantity.
// JSON null is accepted and leaves the value absent, matching the way
// pending blocks report their number and hash.
func (h *Hex) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*h = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid hex quantity: %w", err)
	}

	if err := validateHex(s); err != nil {
		return err
	}

	*h = Hex(s)
	return nil
}
