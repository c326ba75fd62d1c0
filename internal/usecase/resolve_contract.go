package usecase

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
)

// DefaultContractName is picked when no contract is named and the project compiles several
const DefaultContractName = "Counter"

// ResolveContract is the use case for resolving contract references to compiled artifacts
type ResolveContract struct {
	config    *config.RuntimeConfig
	contracts ContractRepository
	selector  ContractSelector
	sink      ProgressSink
}

// NewResolveContract creates a new ResolveContract use case
func NewResolveContract(
	cfg *config.RuntimeConfig,
	contracts ContractRepository,
	selector ContractSelector,
	sink ProgressSink,
) *ResolveContract {
	return &ResolveContract{
		config:    cfg,
		contracts: contracts,
		selector:  selector,
		sink:      sink,
	}
}

// Resolve resolves a contract name to a compiled contract.
// An empty name falls back to the configured contract, then to the only
// (or the "Counter") artifact of the project.
func (uc *ResolveContract) Resolve(ctx context.Context, name string) (*models.Contract, error) {
	if name == "" {
		name = uc.config.Contract
	}
	query := domain.ContractQuery{Name: name}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageResolving),
		Message: fmt.Sprintf("Resolving contract: %s", query),
		Spinner: true,
	})

	found, err := uc.contracts.FindContracts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search contracts: %w", err)
	}

	if len(found) == 0 {
		if name == "" {
			return nil, fmt.Errorf("%w: no compiled contracts in %s (run scarb build)", domain.ErrArtifactNotFound, uc.config.ProjectRoot)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
	}
	if len(found) == 1 {
		return found[0], nil
	}

	if name == "" {
		defaults := lo.Filter(found, func(c *models.Contract, _ int) bool {
			return c.Name == DefaultContractName
		})
		if len(defaults) == 1 {
			return defaults[0], nil
		}
	}

	// Multiple matches - use interactive selector if available
	if uc.selector != nil && !uc.config.NonInteractive {
		selected, err := uc.selector.SelectContract(ctx, found, fmt.Sprintf("Multiple contracts found for %s. Select one:", query))
		if err != nil {
			return nil, fmt.Errorf("contract selection failed: %w", err)
		}
		return selected, nil
	}

	return nil, domain.AmbiguousContractErr{
		Query: name,
		Matches: lo.Map(found, func(c *models.Contract, _ int) *domain.ContractRef {
			return &domain.ContractRef{Package: c.Package, Name: c.Name, Path: c.SierraPath}
		}),
	}
}

// Load resolves a contract and decodes its Sierra class
func (uc *ResolveContract) Load(ctx context.Context, name string) (*models.Contract, *models.ContractClass, error) {
	contract, err := uc.Resolve(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	class, err := uc.contracts.LoadClass(ctx, contract)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load contract class %s: %w", contract.Name, err)
	}
	return contract, class, nil
}
