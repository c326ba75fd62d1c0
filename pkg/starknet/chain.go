package starknet

import (
	"strings"

	"github.com/NethermindEth/juno/core/felt"
)

// Chain ids reported by starknet_chainId, decoded from their short string form
const (
	ChainIDMainnet = "SN_MAIN"
	ChainIDSepolia = "SN_SEPOLIA"
)

// DecodeChainID turns the felt returned by starknet_chainId into its ASCII name.
// Non printable values are returned as hex.
func DecodeChainID(raw string) string {
	f, err := new(felt.Felt).SetString(raw)
	if err != nil {
		return raw
	}
	b := f.Bytes()
	name := strings.TrimLeft(string(b[:]), "\x00")
	for _, c := range name {
		if c < 0x20 || c > 0x7e {
			return "0x" + f.Text(16)
		}
	}
	if name == "" {
		return "0x0"
	}
	return name
}
