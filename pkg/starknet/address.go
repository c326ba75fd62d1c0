package starknet

import (
	"math/big"

	"github.com/NethermindEth/juno/core/crypto"
	"github.com/NethermindEth/juno/core/felt"
)

// UDCAddress is the Universal Deployer Contract on mainnet and sepolia
const UDCAddress = "0x041a78e741e5af2fec34b695679bc6891742439f7afb8484ecd7766661ad02bf"

// UDC function and event names
const (
	UDCDeployFunction = "deployContract"
	UDCDeployedEvent  = "ContractDeployed"
)

const contractAddressPrefix = "STARKNET_CONTRACT_ADDRESS"

// addressUpperBound is 2**251 - 256, the exclusive bound of contract addresses
var addressUpperBound = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 251), big.NewInt(256))

// ContractAddress computes the address of a contract deployed by deployer
func ContractAddress(deployer, salt, classHash *felt.Felt, calldata []*felt.Felt) *felt.Felt {
	hash := crypto.PedersenArray(
		new(felt.Felt).SetBytes([]byte(contractAddressPrefix)),
		deployer,
		salt,
		classHash,
		crypto.PedersenArray(calldata...),
	)

	n := feltToBig(hash)
	n.Mod(n, addressUpperBound)
	return new(felt.Felt).SetBytes(n.Bytes())
}

// UDCDeployment describes a deployContract call on the Universal Deployer
type UDCDeployment struct {
	ClassHash *felt.Felt
	Salt      *felt.Felt
	Unique    bool
	Calldata  []*felt.Felt
	// Caller is the account invoking the UDC, only used when Unique is set
	Caller *felt.Felt
}

// CallData returns the deployContract calldata: class_hash, salt, unique, len(calldata), calldata...
func (d *UDCDeployment) CallData() []*felt.Felt {
	unique := new(felt.Felt)
	if d.Unique {
		unique.SetUint64(1)
	}
	out := make([]*felt.Felt, 0, 4+len(d.Calldata))
	out = append(out, d.ClassHash, d.Salt, unique, new(felt.Felt).SetUint64(uint64(len(d.Calldata))))
	return append(out, d.Calldata...)
}

// Address predicts the address the UDC assigns to the deployment
func (d *UDCDeployment) Address(udc *felt.Felt) *felt.Felt {
	if d.Unique {
		salt := crypto.Pedersen(d.Caller, d.Salt)
		return ContractAddress(udc, salt, d.ClassHash, d.Calldata)
	}
	return ContractAddress(new(felt.Felt), d.Salt, d.ClassHash, d.Calldata)
}

func feltToBig(f *felt.Felt) *big.Int {
	b := f.Bytes()
	return new(big.Int).SetBytes(b[:])
}
