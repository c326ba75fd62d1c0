package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

const (
	DeploymentsFile = "deployments.json"
)

// FileRepository stores the deployments in a json file under the data directory
type FileRepository struct {
	dataDir     string
	mu          sync.RWMutex
	deployments map[string]*models.Deployment
}

// NewFileRepository creates a new deployment registry rooted at dataDir
func NewFileRepository(dataDir string) (*FileRepository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", dataDir, err)
	}

	m := &FileRepository{
		dataDir:     dataDir,
		deployments: make(map[string]*models.Deployment),
	}

	if err := m.load(); err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}

	return m, nil
}

// NewFileRepositoryFromConfig creates the registry in the configured data directory
func NewFileRepositoryFromConfig(cfg *config.RuntimeConfig) (*FileRepository, error) {
	return NewFileRepository(cfg.DataDir)
}

func (m *FileRepository) load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.loadFile(DeploymentsFile, &m.deployments); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load deployments: %w", err)
	}
	if m.deployments == nil {
		m.deployments = make(map[string]*models.Deployment)
	}
	return nil
}

func (m *FileRepository) loadFile(filename string, v any) error {
	data, err := os.ReadFile(filepath.Join(m.dataDir, filename))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (m *FileRepository) saveFile(filename string, v any) error {
	path := filepath.Join(m.dataDir, filename)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	// Write to temp file first
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	// Atomic rename
	return os.Rename(tmpPath, path)
}

// GetDeployment retrieves a deployment by ID
func (m *FileRepository) GetDeployment(ctx context.Context, id string) (*models.Deployment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dep, exists := m.deployments[id]
	if !exists {
		return nil, domain.ErrNotFound
	}

	// Clone to avoid mutations
	clone := *dep
	return &clone, nil
}

// ListDeployments retrieves deployments matching the filter
func (m *FileRepository) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []*models.Deployment{}
	for _, dep := range m.deployments {
		if filter.Network != "" && dep.Network != filter.Network {
			continue
		}
		if filter.ContractName != "" && dep.ContractName != filter.ContractName {
			continue
		}
		clone := *dep
		result = append(result, &clone)
	}
	return result, nil
}

// SaveDeployment inserts or replaces a deployment
func (m *FileRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	if deployment.ID == "" {
		deployment.ID = models.DeploymentID(deployment.Network, deployment.ContractName, deployment.ContractAddress)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *deployment
	m.deployments[deployment.ID] = &clone

	if err := m.saveFile(DeploymentsFile, m.deployments); err != nil {
		return fmt.Errorf("failed to save deployments: %w", err)
	}
	return nil
}

// DeleteDeployment removes a deployment
func (m *FileRepository) DeleteDeployment(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.deployments[id]; !exists {
		return fmt.Errorf("deployment %s: %w", id, domain.ErrNotFound)
	}
	delete(m.deployments, id)

	if err := m.saveFile(DeploymentsFile, m.deployments); err != nil {
		return fmt.Errorf("failed to save deployments: %w", err)
	}
	return nil
}

var _ usecase.DeploymentRepository = (*FileRepository)(nil)
