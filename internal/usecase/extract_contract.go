package usecase

import (
	"context"
	"fmt"

	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
	"github.com/starknet-mobile/starkdeploy/pkg/starknet"
)

// ExtractContractParams contains parameters for extracting contract metadata
type ExtractContractParams struct {
	Contract string
	NoSave   bool
}

// ExtractContractResult contains the extracted metadata and the files written
type ExtractContractResult struct {
	Contract *models.Contract
	Info     *models.ExtractedInfo
	InfoPath string
	ABIPath  string
}

// ExtractContract extracts the ABI, entry points and selectors of a compiled contract
type ExtractContract struct {
	resolver *ResolveContract
	writer   ResultWriter
	sink     ProgressSink
}

// NewExtractContract creates a new ExtractContract use case
func NewExtractContract(resolver *ResolveContract, writer ResultWriter, sink ProgressSink) *ExtractContract {
	return &ExtractContract{
		resolver: resolver,
		writer:   writer,
		sink:     sink,
	}
}

// Run executes the use case
func (uc *ExtractContract) Run(ctx context.Context, params ExtractContractParams) (*ExtractContractResult, error) {
	contract, class, err := uc.resolver.Load(ctx, params.Contract)
	if err != nil {
		return nil, err
	}

	info, err := BuildExtractedInfo(contract.Name, class)
	if err != nil {
		return nil, err
	}

	result := &ExtractContractResult{Contract: contract, Info: info}
	if params.NoSave {
		return result, nil
	}

	if result.InfoPath, err = uc.writer.WriteJSON(ctx, ExtractedInfoFile, info); err != nil {
		return nil, fmt.Errorf("failed to write extracted info: %w", err)
	}
	if result.ABIPath, err = uc.writer.WriteJSON(ctx, ABIFileName(contract.Name), info.ABI); err != nil {
		return nil, fmt.Errorf("failed to write abi: %w", err)
	}
	uc.sink.Info(fmt.Sprintf("Saved contract info to %s", result.InfoPath))

	return result, nil
}

// BuildExtractedInfo derives the extracted-info record from a contract class
func BuildExtractedInfo(contractName string, class *models.ContractClass) (*models.ExtractedInfo, error) {
	entries, err := class.ABI.Entries()
	if err != nil {
		return nil, err
	}

	info := &models.ExtractedInfo{
		ContractName:         contractName,
		ContractClassVersion: class.Version(),
		ABI:                  class.ABI,
		EntryPoints:          class.EntryPointsByType,
		EntryPointCounts:     class.EntryPointsByType.Counts(),
		Functions:            make(map[string]models.FunctionInfo),
		FunctionDefinitions:  make(map[string]models.FunctionDefinition),
		SierraProgramLength:  len(class.SierraProgram),
	}

	names := map[string]string{
		domain.FeltHex(starknet.Selector(constructorEntryName)): constructorEntryName,
	}
	// Definitions list interface functions only. Top level items still name their selectors.
	for _, entry := range entries {
		switch {
		case entry.Type == models.ABITypeInterface:
			for _, item := range entry.Items {
				if item.Type == models.ABITypeFunction {
					addDefinition(info, names, item, entry.Name)
				}
			}
		case entry.IsCallable():
			names[domain.FeltHex(starknet.Selector(entry.Name))] = entry.Name
		}
	}

	for _, t := range models.EntryPointTypes() {
		for _, ep := range class.EntryPointsByType.ByType(t) {
			selector := domain.FeltHex(ep.Selector)
			info.Functions[selector] = models.FunctionInfo{
				Selector:      selector,
				FunctionIndex: ep.FunctionIdx,
				Type:          t,
				Name:          names[selector],
			}
		}
	}

	return info, nil
}

func addDefinition(info *models.ExtractedInfo, names map[string]string, entry models.ABIEntry, iface string) {
	selector := domain.FeltHex(starknet.Selector(entry.Name))
	names[selector] = entry.Name

	inputs := entry.Inputs
	if inputs == nil {
		inputs = []models.ABIInput{}
	}
	outputs := entry.Outputs
	if outputs == nil {
		outputs = []models.ABIOutput{}
	}

	info.FunctionDefinitions[entry.Name] = models.FunctionDefinition{
		Name:            entry.Name,
		Type:            entry.Type,
		Interface:       iface,
		StateMutability: entry.StateMutability,
		Inputs:          inputs,
		Outputs:         outputs,
		Selector:        selector,
	}
}
