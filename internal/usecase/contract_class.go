package usecase

import (
	"fmt"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/samber/lo"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
	"github.com/starknet-mobile/starkdeploy/pkg/starknet"
)

// Result file names written into the output directory
const (
	ExtractedInfoFile    = "extracted_contract_info.json"
	ClassHashFile        = "class_hash.json"
	DeploymentInfoFile   = "contract_deployment_info.json"
	abiFileNameSuffix    = "_ABI.json"
	constructorEntryName = "constructor"
)

// ABIFileName returns the name of the ABI file written for a contract
func ABIFileName(contractName string) string {
	return contractName + abiFileNameSuffix
}

// computeClassHash hashes a decoded Sierra class
func computeClassHash(class *models.ContractClass) (*felt.Felt, error) {
	abi, err := starknet.DeclaredABI(class.RawABI())
	if err != nil {
		return nil, err
	}

	toEntryPoints := func(eps []models.SierraEntryPoint) []starknet.EntryPoint {
		return lo.Map(eps, func(ep models.SierraEntryPoint, _ int) starknet.EntryPoint {
			return starknet.EntryPoint{Selector: ep.Selector, FunctionIdx: ep.FunctionIdx}
		})
	}

	hash, err := starknet.ClassHash(&starknet.SierraClass{
		Version:     class.Version(),
		External:    toEntryPoints(class.EntryPointsByType.External),
		L1Handler:   toEntryPoints(class.EntryPointsByType.L1Handler),
		Constructor: toEntryPoints(class.EntryPointsByType.Constructor),
		ABI:         abi,
		Program:     class.SierraProgram,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute class hash: %w", err)
	}
	return hash, nil
}
