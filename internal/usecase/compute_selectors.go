package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/pkg/starknet"
)

// ComputeSelectorsParams contains the names to hash
type ComputeSelectorsParams struct {
	Names []string
}

// SelectorResult pairs a name with its selector
type SelectorResult struct {
	Name     string `json:"name" yaml:"name"`
	Selector string `json:"selector" yaml:"selector"`
}

// ComputeSelectorsResult contains one selector per requested name
type ComputeSelectorsResult struct {
	Selectors []SelectorResult
}

// ComputeSelectors computes entry point and event selectors
type ComputeSelectors struct{}

// NewComputeSelectors creates a new ComputeSelectors use case
func NewComputeSelectors() *ComputeSelectors {
	return &ComputeSelectors{}
}

// Run executes the use case
func (uc *ComputeSelectors) Run(ctx context.Context, params ComputeSelectorsParams) (*ComputeSelectorsResult, error) {
	if len(params.Names) == 0 {
		return nil, fmt.Errorf("at least one name is required")
	}

	result := &ComputeSelectorsResult{Selectors: make([]SelectorResult, 0, len(params.Names))}
	for _, name := range params.Names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("empty name")
		}
		result.Selectors = append(result.Selectors, SelectorResult{
			Name:     name,
			Selector: domain.FeltHex(starknet.Selector(name)),
		})
	}
	return result, nil
}
