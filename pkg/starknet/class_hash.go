package starknet

import (
	"encoding/json"
	"fmt"

	"github.com/NethermindEth/juno/core/crypto"
	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/contracts"
)

// classHashPrefix is prepended to the class version in the hashed preimage
const classHashPrefix = "CONTRACT_CLASS_V"

// EntryPoint is a Sierra entry point as it enters the class hash
type EntryPoint struct {
	Selector    *felt.Felt
	FunctionIdx uint64
}

// SierraClass carries the components of a Sierra contract class that are hashed
type SierraClass struct {
	Version     string // e.g. "0.1.0"
	External    []EntryPoint
	L1Handler   []EntryPoint
	Constructor []EntryPoint
	ABI         string // as returned by DeclaredABI, hashed with starknet_keccak
	Program     []*felt.Felt
}

// DeclaredABI returns the ABI string a class is declared with.
// String ABIs are kept as is. Array ABIs are flattened to a single line with a space
// after each colon and separating comma, the form the class hash is computed over.
func DeclaredABI(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var abi contracts.NestedString
	if err := json.Unmarshal(raw, &abi); err != nil {
		return "", fmt.Errorf("failed to normalize abi: %w", err)
	}
	return string(abi), nil
}

// ClassHash computes the hash of a Sierra contract class:
//
//	poseidon(short("CONTRACT_CLASS_V"+version), h(external), h(l1_handler), h(constructor),
//	         starknet_keccak(abi), poseidon(program...))
//
// where h(eps) = poseidon(selector_0, idx_0, selector_1, idx_1, ...).
func ClassHash(class *SierraClass) (*felt.Felt, error) {
	if class == nil {
		return nil, fmt.Errorf("nil contract class")
	}
	versionTag := classHashPrefix + class.Version
	if len(versionTag) > 31 {
		return nil, fmt.Errorf("contract class version %q too long", class.Version)
	}

	return crypto.PoseidonArray(
		new(felt.Felt).SetBytes([]byte(versionTag)),
		entryPointsHash(class.External),
		entryPointsHash(class.L1Handler),
		entryPointsHash(class.Constructor),
		StarknetKeccak([]byte(class.ABI)),
		crypto.PoseidonArray(class.Program...),
	), nil
}

func entryPointsHash(entryPoints []EntryPoint) *felt.Felt {
	elems := make([]*felt.Felt, 0, len(entryPoints)*2)
	for _, ep := range entryPoints {
		selector := ep.Selector
		if selector == nil {
			selector = new(felt.Felt)
		}
		elems = append(elems, selector, new(felt.Felt).SetUint64(ep.FunctionIdx))
	}
	return crypto.PoseidonArray(elems...)
}
