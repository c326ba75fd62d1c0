package deployments_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starknet-mobile/starkdeploy/internal/adapters/repository/deployments"
	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterDeployment(network, address string) *models.Deployment {
	return &models.Deployment{
		ID:                  models.DeploymentID(network, "Counter", address),
		Network:             network,
		ChainID:             "SN_SEPOLIA",
		ContractName:        "Counter",
		ContractAddress:     address,
		ClassHash:           "0x6a9bd6f8f0e5a1b2c3d4e5f60718293a4b5c6d7e8f9012345678901234567",
		DeclarationTx:       "0xdec",
		DeploymentTx:        "0xdep",
		ConstructorCalldata: []string{"0x0"},
		DeployedAt:          time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFileRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create and retrieve deployment", func(t *testing.T) {
		dir := t.TempDir()
		repo, err := deployments.NewFileRepository(dir)
		require.NoError(t, err)

		dep := counterDeployment("sepolia", "0xabc")
		require.NoError(t, repo.SaveDeployment(ctx, dep))

		got, err := repo.GetDeployment(ctx, "sepolia/Counter/0xabc")
		require.NoError(t, err)
		assert.Equal(t, dep, got)

		// Returned records are copies
		got.ContractName = "Mutated"
		again, err := repo.GetDeployment(ctx, dep.ID)
		require.NoError(t, err)
		assert.Equal(t, "Counter", again.ContractName)
	})

	t.Run("persists across instances", func(t *testing.T) {
		dir := t.TempDir()
		repo, err := deployments.NewFileRepository(dir)
		require.NoError(t, err)
		require.NoError(t, repo.SaveDeployment(ctx, counterDeployment("sepolia", "0x1")))
		require.NoError(t, repo.SaveDeployment(ctx, counterDeployment("mainnet", "0x2")))

		assert.FileExists(t, filepath.Join(dir, deployments.DeploymentsFile))
		assert.NoFileExists(t, filepath.Join(dir, deployments.DeploymentsFile+".tmp"))

		reopened, err := deployments.NewFileRepository(dir)
		require.NoError(t, err)
		all, err := reopened.ListDeployments(ctx, domain.DeploymentFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("filters", func(t *testing.T) {
		repo, err := deployments.NewFileRepository(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, repo.SaveDeployment(ctx, counterDeployment("sepolia", "0x1")))
		require.NoError(t, repo.SaveDeployment(ctx, counterDeployment("mainnet", "0x2")))
		token := counterDeployment("sepolia", "0x3")
		token.ContractName = "Token"
		token.ID = models.DeploymentID("sepolia", "Token", "0x3")
		require.NoError(t, repo.SaveDeployment(ctx, token))

		sepolia, err := repo.ListDeployments(ctx, domain.DeploymentFilter{Network: "sepolia"})
		require.NoError(t, err)
		assert.Len(t, sepolia, 2)

		counters, err := repo.ListDeployments(ctx, domain.DeploymentFilter{Network: "sepolia", ContractName: "Counter"})
		require.NoError(t, err)
		require.Len(t, counters, 1)
		assert.Equal(t, "0x1", counters[0].ContractAddress)

		none, err := repo.ListDeployments(ctx, domain.DeploymentFilter{Network: "devnet"})
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("upsert assigns id", func(t *testing.T) {
		repo, err := deployments.NewFileRepository(t.TempDir())
		require.NoError(t, err)

		dep := counterDeployment("sepolia", "0xABC")
		dep.ID = ""
		require.NoError(t, repo.SaveDeployment(ctx, dep))
		assert.Equal(t, "sepolia/Counter/0xabc", dep.ID)

		dep.DeploymentTx = "0xnew"
		require.NoError(t, repo.SaveDeployment(ctx, dep))
		all, err := repo.ListDeployments(ctx, domain.DeploymentFilter{})
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "0xnew", all[0].DeploymentTx)
	})

	t.Run("delete", func(t *testing.T) {
		repo, err := deployments.NewFileRepository(t.TempDir())
		require.NoError(t, err)
		dep := counterDeployment("sepolia", "0x1")
		require.NoError(t, repo.SaveDeployment(ctx, dep))

		require.NoError(t, repo.DeleteDeployment(ctx, dep.ID))
		_, err = repo.GetDeployment(ctx, dep.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		assert.ErrorIs(t, repo.DeleteDeployment(ctx, dep.ID), domain.ErrNotFound)
	})

	t.Run("corrupt registry", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, deployments.DeploymentsFile), []byte("{not json"), 0644))

		_, err := deployments.NewFileRepository(dir)
		assert.Error(t, err)
	})
}
