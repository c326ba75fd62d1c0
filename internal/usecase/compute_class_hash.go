package usecase

import (
	"context"
	"fmt"

	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
)

// ComputeClassHashParams contains parameters for computing a class hash
type ComputeClassHashParams struct {
	Contract string
	NoSave   bool
}

// ComputeClassHashResult contains the class hash and the class summary
type ComputeClassHashResult struct {
	Contract         *models.Contract
	Info             *models.ClassHashInfo
	ProgramLength    int
	EntryPointCounts map[models.EntryPointType]int
	Path             string
}

// ComputeClassHash computes the Sierra class hash of a compiled contract
type ComputeClassHash struct {
	resolver *ResolveContract
	writer   ResultWriter
	sink     ProgressSink
}

// NewComputeClassHash creates a new ComputeClassHash use case
func NewComputeClassHash(resolver *ResolveContract, writer ResultWriter, sink ProgressSink) *ComputeClassHash {
	return &ComputeClassHash{
		resolver: resolver,
		writer:   writer,
		sink:     sink,
	}
}

// Run executes the use case
func (uc *ComputeClassHash) Run(ctx context.Context, params ComputeClassHashParams) (*ComputeClassHashResult, error) {
	contract, class, err := uc.resolver.Load(ctx, params.Contract)
	if err != nil {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageHashing),
		Message: fmt.Sprintf("Computing class hash of %s", contract.Name),
		Spinner: true,
	})

	hash, err := computeClassHash(class)
	if err != nil {
		return nil, err
	}

	result := &ComputeClassHashResult{
		Contract: contract,
		Info: &models.ClassHashInfo{
			ClassHash:            domain.FeltHex(hash),
			ContractClassVersion: class.Version(),
		},
		ProgramLength:    len(class.SierraProgram),
		EntryPointCounts: class.EntryPointsByType.Counts(),
	}

	if !params.NoSave {
		if result.Path, err = uc.writer.WriteJSON(ctx, ClassHashFile, result.Info); err != nil {
			return nil, fmt.Errorf("failed to write class hash: %w", err)
		}
	}

	return result, nil
}
