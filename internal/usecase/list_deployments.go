package usecase

import (
	"context"
	"sort"

	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	Network      string
	ContractName string
}

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Deployments []*models.Deployment
	Summary     DeploymentSummary
}

// DeploymentSummary provides summary statistics
type DeploymentSummary struct {
	Total      int
	ByNetwork  map[string]int
	ByContract map[string]int
}

// ListDeployments is the use case for listing recorded deployments
type ListDeployments struct {
	repo DeploymentRepository
	sink ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(repo DeploymentRepository, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		repo: repo,
		sink: sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployments from registry",
		Spinner: true,
	})

	deployments, err := uc.repo.ListDeployments(ctx, domain.DeploymentFilter{
		Network:      params.Network,
		ContractName: params.ContractName,
	})
	if err != nil {
		return nil, err
	}

	sortDeployments(deployments)

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(deployments),
		Total:   len(deployments),
		Message: "Deployments loaded",
	})

	return &DeploymentListResult{
		Deployments: deployments,
		Summary:     calculateSummary(deployments),
	}, nil
}

// sortDeployments sorts by network, contract name, then newest first
func sortDeployments(deployments []*models.Deployment) {
	sort.SliceStable(deployments, func(i, j int) bool {
		if deployments[i].Network != deployments[j].Network {
			return deployments[i].Network < deployments[j].Network
		}
		if deployments[i].ContractName != deployments[j].ContractName {
			return deployments[i].ContractName < deployments[j].ContractName
		}
		return deployments[i].DeployedAt.After(deployments[j].DeployedAt)
	})
}

func calculateSummary(deployments []*models.Deployment) DeploymentSummary {
	summary := DeploymentSummary{
		Total:      len(deployments),
		ByNetwork:  make(map[string]int),
		ByContract: make(map[string]int),
	}
	for _, dep := range deployments {
		summary.ByNetwork[dep.Network]++
		summary.ByContract[dep.ContractName]++
	}
	return summary
}
