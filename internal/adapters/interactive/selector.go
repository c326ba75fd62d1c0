package interactive

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectContract selects a contract from a list
func (s *SelectorAdapter) SelectContract(ctx context.Context, contracts []*models.Contract, prompt string) (*models.Contract, error) {
	// In non-interactive mode, we can't select
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(contracts) == 0 {
		return nil, fmt.Errorf("no contracts provided for selection")
	}

	// If only one match, return it directly
	if len(contracts) == 1 {
		return contracts[0], nil
	}

	options := formatContractOptions(s.config.ProjectRoot, contracts)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(plainContractOptions(contracts)),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return contracts[index], nil
}

// formatContractOptions creates display strings for contract selection
func formatContractOptions(projectRoot string, contracts []*models.Contract) []string {
	options := make([]string, len(contracts))
	for i, contract := range contracts {
		// Format as "Counter [counter] (target/dev/counter_Counter.contract_class.json)"
		relPath := contract.SierraPath
		if rel, err := filepath.Rel(projectRoot, contract.SierraPath); err == nil && projectRoot != "" {
			relPath = rel
		}

		contractName := color.New(color.FgWhite, color.Bold).Sprint(contract.Name)
		pathStr := color.New(color.FgBlue).Sprint(relPath)

		if contract.Package != "" {
			pkg := color.New(color.FgYellow).Sprintf("[%s]", contract.Package)
			options[i] = fmt.Sprintf("%s %s (%s)", contractName, pkg, pathStr)
		} else {
			options[i] = fmt.Sprintf("%s (%s)", contractName, pathStr)
		}
	}
	return options
}

// plainContractOptions returns the uncolored search keys of the contracts
func plainContractOptions(contracts []*models.Contract) []string {
	keys := make([]string, len(contracts))
	for i, contract := range contracts {
		keys[i] = contract.Package + " " + contract.Name
	}
	return keys
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		// Convert to lowercase for case-insensitive search
		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		// First try simple substring match
		if strings.Contains(item, input) {
			return true
		}

		// Then try fuzzy match
		pattern := fuzzy.Find(input, []string{item})
		return len(pattern) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.ContractSelector = (*SelectorAdapter)(nil)
