package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrNotInProject is returned when no Scarb.toml is found above the working directory
	ErrNotInProject = errors.New("not in a Scarb project (Scarb.toml not found)")

	// ErrArtifactNotFound is returned when the compiled contract class file is missing
	ErrArtifactNotFound = errors.New("contract artifact not found")

	// ErrCasmNotFound is returned when declaring without a compiled CASM class
	ErrCasmNotFound = errors.New("compiled casm class not found")

	// ErrMissingPrivateKey is returned when no signing key is configured
	ErrMissingPrivateKey = errors.New("private key not configured")

	// ErrMissingAccountAddress is returned when no account address is configured
	ErrMissingAccountAddress = errors.New("account address not configured")

	// ErrInvalidFelt is returned when a value is not a valid field element
	ErrInvalidFelt = errors.New("invalid felt")

	// ErrUnknownNetwork is returned when a network name cannot be resolved
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrNetworkRequired is returned when an operation needs a network and none is selected
	ErrNetworkRequired = errors.New("no network selected")

	// ErrTransactionReverted is returned when a submitted transaction did not succeed
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrAmbiguousContract is returned when a contract reference matches several artifacts
	ErrAmbiguousContract = errors.New("ambiguous contract reference")

	// ErrInvalidConfigKey is returned when setting an unknown local config key
	ErrInvalidConfigKey = errors.New("invalid config key")
)

// AmbiguousContractErr is returned when a contract reference matches several artifacts
type AmbiguousContractErr struct {
	Query   string
	Matches []*ContractRef
}

// ContractRef names a compiled contract inside the project
type ContractRef struct {
	Package string
	Name    string
	Path    string
}

func (e AmbiguousContractErr) Error() string {
	sorted := make([]*ContractRef, len(e.Matches))
	copy(sorted, e.Matches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	var suggestions []string
	for _, c := range sorted {
		suggestions = append(suggestions, fmt.Sprintf("  - %s (%s)", c.Name, c.Path))
	}

	query := e.Query
	if query == "" {
		query = "<all contracts>"
	}
	return fmt.Sprintf("multiple contracts found matching %s - pass the contract name to disambiguate:\n%s",
		query, strings.Join(suggestions, "\n"))
}

// Unwrap allows errors.Is(err, ErrAmbiguousContract)
func (e AmbiguousContractErr) Unwrap() error {
	return ErrAmbiguousContract
}

// AmbiguousDeploymentErr is returned when a registry reference matches several deployments
type AmbiguousDeploymentErr struct {
	Reference string
	IDs       []string
}

func (e AmbiguousDeploymentErr) Error() string {
	ids := make([]string, len(e.IDs))
	copy(ids, e.IDs)
	sort.Strings(ids)
	return fmt.Sprintf("multiple deployments match '%s':\n  - %s", e.Reference, strings.Join(ids, "\n  - "))
}
