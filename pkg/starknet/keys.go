package starknet

import (
	"errors"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	starkcurve "github.com/consensys/gnark-crypto/ecc/stark-curve"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fr"
)

// ErrInvalidPrivateKey is returned for keys outside [1, curve order)
var ErrInvalidPrivateKey = errors.New("invalid stark private key")

// PublicKey derives the STARK public key (x coordinate of k*G) of a private key
func PublicKey(privateKey *felt.Felt) (*felt.Felt, error) {
	k := feltToBig(privateKey)
	if k.Sign() == 0 || k.Cmp(fr.Modulus()) >= 0 {
		return nil, ErrInvalidPrivateKey
	}

	_, g := starkcurve.Generators()
	var p starkcurve.G1Affine
	p.ScalarMultiplication(&g, k)

	x := p.X.BigInt(new(big.Int))
	return new(felt.Felt).SetBytes(x.Bytes()), nil
}
