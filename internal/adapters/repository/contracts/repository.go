package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// Scarb output layout
const (
	TargetDir              = "target/dev"
	ArtifactsIndexSuffix   = ".starknet_artifacts.json"
	SierraSuffix           = ".contract_class.json"
	CompiledCasmSuffix     = ".compiled_contract_class.json"
	starknetArtifactsGlob  = "*" + ArtifactsIndexSuffix
	contractClassFilesGlob = "*" + SierraSuffix
)

// artifactsIndex is the <package>.starknet_artifacts.json file written by scarb build
type artifactsIndex struct {
	Version   int             `json:"version"`
	Contracts []indexedTarget `json:"contracts"`
}

type indexedTarget struct {
	ID           string `json:"id"`
	PackageName  string `json:"package_name"`
	ContractName string `json:"contract_name"`
	ModulePath   string `json:"module_path"`
	Artifacts    struct {
		Sierra string  `json:"sierra"`
		Casm   *string `json:"casm"`
	} `json:"artifacts"`
}

// Repository discovers compiled contracts in the Scarb target directory
type Repository struct {
	projectRoot string
	packageName string
	log         *slog.Logger
}

// NewRepository creates a new contract repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	packageName := ""
	if cfg.Scarb != nil {
		packageName = cfg.Scarb.Package.Name
	}
	return &Repository{
		projectRoot: cfg.ProjectRoot,
		packageName: packageName,
		log:         log.With("component", "ContractRepository"),
	}
}

// index lists every compiled contract, preferring the artifacts index over file names
func (r *Repository) index() ([]*models.Contract, error) {
	targetDir := filepath.Join(r.projectRoot, TargetDir)
	if _, err := os.Stat(targetDir); os.IsNotExist(err) {
		r.log.Debug("target directory not found", "path", targetDir)
		return nil, nil
	}

	indexes, err := filepath.Glob(filepath.Join(targetDir, starknetArtifactsGlob))
	if err != nil {
		return nil, err
	}

	var contracts []*models.Contract
	seen := make(map[string]bool)
	for _, indexPath := range indexes {
		found, err := r.readArtifactsIndex(targetDir, indexPath)
		if err != nil {
			return nil, err
		}
		for _, c := range found {
			seen[c.SierraPath] = true
			contracts = append(contracts, c)
		}
	}

	// Classes missing from an index (or projects without one) are named after the file
	classFiles, err := filepath.Glob(filepath.Join(targetDir, contractClassFilesGlob))
	if err != nil {
		return nil, err
	}
	for _, path := range classFiles {
		if seen[path] {
			continue
		}
		pkg, name := r.splitArtifactName(strings.TrimSuffix(filepath.Base(path), SierraSuffix))
		contracts = append(contracts, &models.Contract{
			Name:       name,
			Package:    pkg,
			SierraPath: path,
			CasmPath:   strings.TrimSuffix(path, SierraSuffix) + CompiledCasmSuffix,
		})
	}

	sort.Slice(contracts, func(i, j int) bool {
		return contracts[i].SierraPath < contracts[j].SierraPath
	})
	return contracts, nil
}

func (r *Repository) readArtifactsIndex(targetDir, indexPath string) ([]*models.Contract, error) {
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", indexPath, err)
	}

	var index artifactsIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(indexPath), err)
	}

	contracts := make([]*models.Contract, 0, len(index.Contracts))
	for _, target := range index.Contracts {
		if target.Artifacts.Sierra == "" {
			continue
		}
		sierraPath := filepath.Join(targetDir, target.Artifacts.Sierra)
		casmPath := strings.TrimSuffix(sierraPath, SierraSuffix) + CompiledCasmSuffix
		if target.Artifacts.Casm != nil && *target.Artifacts.Casm != "" {
			casmPath = filepath.Join(targetDir, *target.Artifacts.Casm)
		}

		r.log.Debug("indexed contract", "package", target.PackageName, "name", target.ContractName, "sierra", sierraPath)
		contracts = append(contracts, &models.Contract{
			Name:       target.ContractName,
			Package:    target.PackageName,
			ModulePath: target.ModulePath,
			SierraPath: sierraPath,
			CasmPath:   casmPath,
		})
	}
	return contracts, nil
}

// splitArtifactName splits "<package>_<Contract>" using the Scarb package name when it matches
func (r *Repository) splitArtifactName(base string) (string, string) {
	if r.packageName != "" && strings.HasPrefix(base, r.packageName+"_") {
		return r.packageName, strings.TrimPrefix(base, r.packageName+"_")
	}
	if idx := strings.LastIndex(base, "_"); idx > 0 {
		return base[:idx], base[idx+1:]
	}
	return "", base
}

// FindContracts returns the compiled contracts matching the query.
// Names match exactly, falling back to a case-insensitive match.
func (r *Repository) FindContracts(ctx context.Context, query domain.ContractQuery) ([]*models.Contract, error) {
	all, err := r.index()
	if err != nil {
		return nil, fmt.Errorf("failed to index contracts: %w", err)
	}

	inPackage := lo.Filter(all, func(c *models.Contract, _ int) bool {
		return query.Package == "" || c.Package == query.Package
	})
	if query.Name == "" {
		return inPackage, nil
	}

	exact := lo.Filter(inPackage, func(c *models.Contract, _ int) bool {
		return c.Name == query.Name
	})
	if len(exact) > 0 {
		return exact, nil
	}
	return lo.Filter(inPackage, func(c *models.Contract, _ int) bool {
		return strings.EqualFold(c.Name, query.Name)
	}), nil
}

// LoadClass reads and decodes the Sierra class of a contract
func (r *Repository) LoadClass(ctx context.Context, contract *models.Contract) (*models.ContractClass, error) {
	data, err := os.ReadFile(contract.SierraPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, contract.SierraPath)
		}
		return nil, fmt.Errorf("failed to read %s: %w", contract.SierraPath, err)
	}
	return models.ParseContractClass(data)
}

// Ensure the adapter implements the interface
var _ usecase.ContractRepository = (*Repository)(nil)
