package domain

import (
	"fmt"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
)

// FeltHex formats a felt as a 0x-prefixed lowercase hex string without padding
func FeltHex(f *felt.Felt) string {
	if f == nil {
		return "0x0"
	}
	return "0x" + f.Text(16)
}

// ParseFelt parses a hex (0x-prefixed) or decimal string into a felt
func ParseFelt(s string) (*felt.Felt, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty value", ErrInvalidFelt)
	}
	f, err := new(felt.Felt).SetString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFelt, s, err)
	}
	return f, nil
}

// ParseFelts parses every value with ParseFelt
func ParseFelts(values []string) ([]*felt.Felt, error) {
	out := make([]*felt.Felt, 0, len(values))
	for _, v := range values {
		f, err := ParseFelt(v)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// FeltHexes formats every felt with FeltHex
func FeltHexes(values []*felt.Felt) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = FeltHex(v)
	}
	return out
}

// ShortString encodes an ASCII string of at most 31 bytes as a Cairo short string felt
func ShortString(s string) (*felt.Felt, error) {
	if len(s) > 31 {
		return nil, fmt.Errorf("%w: short string %q longer than 31 bytes", ErrInvalidFelt, s)
	}
	return new(felt.Felt).SetBytes([]byte(s)), nil
}

// DecodeShortString decodes a Cairo short string felt (e.g. a chain id) into ASCII
func DecodeShortString(f *felt.Felt) string {
	b := f.Bytes()
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	return string(b[i:])
}
