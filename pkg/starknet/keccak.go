package starknet

import (
	"github.com/NethermindEth/juno/core/felt"
	"github.com/ethereum/go-ethereum/crypto"
)

// Entry point names that dispatch to the default handlers and have a zero selector
const (
	DefaultEntryPointName   = "__default__"
	DefaultL1EntryPointName = "__l1_default__"
)

// StarknetKeccak implements starknet_keccak: keccak256 truncated to its 250 low bits
func StarknetKeccak(b []byte) *felt.Felt {
	d := crypto.Keccak256(b)
	// Remove the first 6 bits from the first byte
	d[0] &= 3
	return new(felt.Felt).SetBytes(d)
}

// Selector returns the entry point selector of a function or event name
func Selector(name string) *felt.Felt {
	if name == DefaultEntryPointName || name == DefaultL1EntryPointName {
		return new(felt.Felt)
	}
	return StarknetKeccak([]byte(name))
}
