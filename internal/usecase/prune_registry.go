package usecase

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
)

// PruneRegistryParams contains parameters for pruning the registry
type PruneRegistryParams struct {
	Network string
	// All removes every matching record without asking
	All bool
	// DryRun collects the records without removing them
	DryRun bool
}

// PruneRegistryResult contains the records that were (or would be) removed
type PruneRegistryResult struct {
	Items  domain.ItemsToPrune
	DryRun bool
}

// PruneRegistry removes deployment records from the registry
type PruneRegistry struct {
	config   *config.RuntimeConfig
	repo     DeploymentRepository
	selector DeploymentMultiSelector
	sink     ProgressSink
}

// NewPruneRegistry creates a new PruneRegistry use case
func NewPruneRegistry(
	cfg *config.RuntimeConfig,
	repo DeploymentRepository,
	selector DeploymentMultiSelector,
	sink ProgressSink,
) *PruneRegistry {
	return &PruneRegistry{
		config:   cfg,
		repo:     repo,
		selector: selector,
		sink:     sink,
	}
}

// Run executes the use case
func (uc *PruneRegistry) Run(ctx context.Context, params PruneRegistryParams) (*PruneRegistryResult, error) {
	network := params.Network
	if network == "" && uc.config.Network != nil {
		network = uc.config.Network.Name
	}

	candidates, err := uc.repo.ListDeployments(ctx, domain.DeploymentFilter{Network: network})
	if err != nil {
		return nil, err
	}
	sortDeployments(candidates)

	result := &PruneRegistryResult{DryRun: params.DryRun}
	if len(candidates) == 0 {
		return result, nil
	}

	selected := candidates
	reason := "all records selected"
	if !params.All {
		if uc.selector == nil || uc.config.NonInteractive {
			return nil, fmt.Errorf("select records interactively or pass --all")
		}
		selected, err = uc.selector.SelectDeployments(ctx, candidates, "Select deployments to remove from the registry")
		if err != nil {
			return nil, fmt.Errorf("deployment selection failed: %w", err)
		}
		reason = "selected"
	}

	result.Items.Deployments = lo.Map(selected, func(d *models.Deployment, _ int) domain.PruneItem {
		return domain.PruneItem{
			ID:       d.ID,
			Network:  d.Network,
			Contract: d.ContractName,
			Address:  d.ContractAddress,
			Reason:   reason,
		}
	})

	if params.DryRun {
		return result, nil
	}

	for i, item := range result.Items.Deployments {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "pruning",
			Current: i + 1,
			Total:   len(result.Items.Deployments),
			Message: fmt.Sprintf("Removing %s", item.ID),
		})
		if err := uc.repo.DeleteDeployment(ctx, item.ID); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", item.ID, err)
		}
	}

	return result, nil
}
