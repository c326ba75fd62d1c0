package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
)

// ShowDeploymentParams contains parameters for showing one deployment
type ShowDeploymentParams struct {
	// Reference is a deployment ID, a contract address or a contract name
	Reference string
	Network   string
}

// ShowDeployment is the use case for showing one recorded deployment
type ShowDeployment struct {
	repo DeploymentRepository
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(repo DeploymentRepository) *ShowDeployment {
	return &ShowDeployment{repo: repo}
}

// Run executes the use case
func (uc *ShowDeployment) Run(ctx context.Context, params ShowDeploymentParams) (*models.Deployment, error) {
	ref := strings.TrimSpace(params.Reference)
	if ref == "" {
		return nil, fmt.Errorf("deployment reference is required")
	}

	// Exact ID
	dep, err := uc.repo.GetDeployment(ctx, ref)
	if err == nil {
		return dep, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	all, err := uc.repo.ListDeployments(ctx, domain.DeploymentFilter{Network: params.Network})
	if err != nil {
		return nil, err
	}

	matches := lo.Filter(all, func(d *models.Deployment, _ int) bool {
		return sameFelt(d.ContractAddress, ref)
	})
	if len(matches) == 0 {
		matches = lo.Filter(all, func(d *models.Deployment, _ int) bool {
			return strings.EqualFold(d.ContractName, ref)
		})
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("deployment '%s': %w", ref, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, domain.AmbiguousDeploymentErr{
			Reference: ref,
			IDs:       lo.Map(matches, func(d *models.Deployment, _ int) string { return d.ID }),
		}
	}
}
