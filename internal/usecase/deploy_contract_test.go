package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
	"github.com/starknet-mobile/starkdeploy/pkg/starknet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeployContract(t *testing.T) {
	ctx := context.Background()
	deployedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	predict := func(t *testing.T, f *declareFixture, unique bool, calldata ...string) string {
		cd := make([]*felt.Felt, len(calldata))
		for i, c := range calldata {
			cd[i] = mustFelt(t, c)
		}
		d := &starknet.UDCDeployment{
			ClassHash: mustFelt(t, f.hash),
			Salt:      mustFelt(t, "0x42"),
			Unique:    unique,
			Calldata:  cd,
			Caller:    mustFelt(t, f.cfg.Account.Address),
		}
		return domain.FeltHex(d.Address(mustFelt(t, starknet.UDCAddress)))
	}

	newDeployer := func(f *declareFixture, repo *MockDeploymentRepository, writer *memoryWriter) *usecase.DeployContract {
		uc := usecase.NewDeployContract(f.cfg, f.declarer(), f.gateway, repo, writer, f.sink)
		uc.SetClock(func() time.Time { return deployedAt })
		return uc
	}

	deployedEvent := func(address string) models.Event {
		return models.Event{
			FromAddress: starknet.UDCAddress,
			Keys:        []string{domain.FeltHex(starknet.Selector(starknet.UDCDeployedEvent))},
			Data:        []string{address, "0x123abc", "0x0"},
		}
	}

	t.Run("declares, deploys and records", func(t *testing.T) {
		f := newDeclareFixture(t)
		predicted := predict(t, f, false, "0x5")

		f.gateway.On("Connect", ctx, f.cfg.Network, f.cfg.Account).Return(nil)
		f.gateway.On("IsDeclared", ctx, mock.Anything).Return(false, nil)
		f.gateway.On("Declare", ctx, f.contract).Return(&models.Declaration{ClassHash: f.hash, TransactionHash: "0xdec"}, nil)
		f.gateway.On("WaitForReceipt", ctx, "0xdec").Return(&models.TransactionReceipt{ExecutionStatus: "SUCCEEDED"}, nil)
		f.gateway.On("Invoke", ctx, []models.Call{{
			ContractAddress: starknet.UDCAddress,
			FunctionName:    "deployContract",
			Calldata:        []string{f.hash, "0x42", "0x0", "0x1", "0x5"},
		}}).Return("0xdep", nil)
		f.gateway.On("WaitForReceipt", ctx, "0xdep").Return(&models.TransactionReceipt{
			ExecutionStatus: "SUCCEEDED",
			Events:          []models.Event{{FromAddress: "0x49d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7", Data: []string{"0x1"}}, deployedEvent(predicted)},
		}, nil)

		repo := new(MockDeploymentRepository)
		repo.On("SaveDeployment", ctx, mock.AnythingOfType("*models.Deployment")).Return(nil)
		writer := newMemoryWriter()

		result, err := newDeployer(f, repo, writer).Run(ctx, usecase.DeployContractParams{
			Contract: "Counter",
			Salt:     "0x42",
			Calldata: []string{"5"},
		})
		require.NoError(t, err)

		dep := result.Deployment
		require.NotNil(t, dep)
		assert.Equal(t, predicted, dep.ContractAddress)
		assert.Equal(t, predicted, result.PredictedAddress)
		assert.Equal(t, "sepolia/Counter/"+predicted, dep.ID)
		assert.Equal(t, f.hash, dep.ClassHash)
		assert.Equal(t, "0xdec", dep.DeclarationTx)
		assert.Equal(t, "0xdep", dep.DeploymentTx)
		assert.Equal(t, "SN_SEPOLIA", dep.ChainID)
		assert.Equal(t, "0x42", dep.Salt)
		assert.Equal(t, []string{"0x5"}, dep.ConstructorCalldata)
		assert.Equal(t, deployedAt, dep.DeployedAt)
		assert.Equal(t, "/out/contract_deployment_info.json", result.Path)
		assert.Same(t, dep, writer.files[usecase.DeploymentInfoFile])
		assert.Empty(t, f.sink.errors)
		repo.AssertCalled(t, "SaveDeployment", ctx, dep)
	})

	t.Run("deploys the class hash the network declared", func(t *testing.T) {
		f := newDeclareFixture(t)
		declared := "0x5b2"
		require.NotEqual(t, declared, f.hash)

		f.gateway.On("Connect", ctx, mock.Anything, mock.Anything).Return(nil)
		f.gateway.On("IsDeclared", ctx, mock.Anything).Return(false, nil)
		f.gateway.On("Declare", ctx, f.contract).Return(&models.Declaration{ClassHash: declared, TransactionHash: "0xdec"}, nil)
		f.gateway.On("WaitForReceipt", ctx, "0xdec").Return(&models.TransactionReceipt{ExecutionStatus: "SUCCEEDED"}, nil)
		f.gateway.On("Invoke", ctx, []models.Call{{
			ContractAddress: starknet.UDCAddress,
			FunctionName:    starknet.UDCDeployFunction,
			Calldata:        []string{declared, "0x42", "0x0", "0x0"},
		}}).Return("0xdep", nil)
		f.gateway.On("WaitForReceipt", ctx, "0xdep").Return(&models.TransactionReceipt{ExecutionStatus: "SUCCEEDED"}, nil)

		repo := new(MockDeploymentRepository)
		repo.On("SaveDeployment", ctx, mock.Anything).Return(nil)

		result, err := newDeployer(f, repo, newMemoryWriter()).Run(ctx, usecase.DeployContractParams{Contract: "Counter", Salt: "0x42"})
		require.NoError(t, err)

		expected := domain.FeltHex((&starknet.UDCDeployment{
			ClassHash: mustFelt(t, declared),
			Salt:      mustFelt(t, "0x42"),
			Caller:    mustFelt(t, f.cfg.Account.Address),
		}).Address(mustFelt(t, starknet.UDCAddress)))

		assert.Equal(t, expected, result.PredictedAddress)
		assert.Equal(t, expected, result.Deployment.ContractAddress)
		assert.Equal(t, declared, result.Deployment.ClassHash)
		assert.Len(t, f.sink.errors, 1, "hash mismatch is reported")
		f.gateway.AssertExpectations(t)
	})

	t.Run("reuses declared class and falls back to predicted address", func(t *testing.T) {
		f := newDeclareFixture(t)
		predicted := predict(t, f, true)

		f.gateway.On("Connect", ctx, mock.Anything, mock.Anything).Return(nil)
		f.gateway.On("IsDeclared", ctx, mock.Anything).Return(true, nil)
		f.gateway.On("Invoke", ctx, mock.Anything).Return("0xdep", nil)
		f.gateway.On("WaitForReceipt", ctx, "0xdep").Return(&models.TransactionReceipt{ExecutionStatus: "SUCCEEDED"}, nil)

		repo := new(MockDeploymentRepository)
		repo.On("SaveDeployment", ctx, mock.Anything).Return(nil)

		result, err := newDeployer(f, repo, newMemoryWriter()).Run(ctx, usecase.DeployContractParams{
			Contract: "Counter",
			Salt:     "0x42",
			Unique:   true,
		})
		require.NoError(t, err)

		assert.Equal(t, predicted, result.Deployment.ContractAddress)
		assert.True(t, result.Deployment.AlreadyDeclared)
		assert.True(t, result.Deployment.Unique)
		assert.Empty(t, result.Deployment.DeclarationTx)
		f.gateway.AssertNotCalled(t, "Declare", mock.Anything, mock.Anything)
	})

	t.Run("event address wins over prediction", func(t *testing.T) {
		f := newDeclareFixture(t)
		f.gateway.On("Connect", ctx, mock.Anything, mock.Anything).Return(nil)
		f.gateway.On("IsDeclared", ctx, mock.Anything).Return(true, nil)
		f.gateway.On("Invoke", ctx, mock.Anything).Return("0xdep", nil)
		f.gateway.On("WaitForReceipt", ctx, "0xdep").Return(&models.TransactionReceipt{
			Events: []models.Event{deployedEvent("0x0999")},
		}, nil)
		repo := new(MockDeploymentRepository)
		repo.On("SaveDeployment", ctx, mock.Anything).Return(nil)

		result, err := newDeployer(f, repo, newMemoryWriter()).Run(ctx, usecase.DeployContractParams{Contract: "Counter", Salt: "0x42"})
		require.NoError(t, err)

		assert.Equal(t, "0x999", result.Deployment.ContractAddress)
		assert.Len(t, f.sink.errors, 1)
	})

	t.Run("dry run stays offline", func(t *testing.T) {
		f := newDeclareFixture(t)
		f.cfg.Account.PrivateKey = ""
		repo := new(MockDeploymentRepository)

		result, err := newDeployer(f, repo, newMemoryWriter()).Run(ctx, usecase.DeployContractParams{
			Contract: "Counter",
			Salt:     "0x42",
			DryRun:   true,
		})
		require.NoError(t, err)

		assert.True(t, result.DryRun)
		assert.Nil(t, result.Deployment)
		assert.Equal(t, predict(t, f, false), result.PredictedAddress)
		assert.Equal(t, f.hash, result.Declaration.ClassHash)
		f.gateway.AssertNotCalled(t, "Connect", mock.Anything, mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "SaveDeployment", mock.Anything, mock.Anything)
	})

	t.Run("dry run predicts from a scarb artifact", func(t *testing.T) {
		f := newDeclareFixtureWithClass(t, artifactClass(t, helloStarknetClass))
		require.Equal(t, helloStarknetClassHash, f.hash)

		result, err := newDeployer(f, new(MockDeploymentRepository), newMemoryWriter()).Run(ctx, usecase.DeployContractParams{
			Contract: "Counter",
			Salt:     "0x42",
			DryRun:   true,
		})
		require.NoError(t, err)

		assert.Equal(t, helloStarknetClassHash, result.Declaration.ClassHash)
		assert.Equal(t, predict(t, f, false), result.PredictedAddress)
	})

	t.Run("random salt", func(t *testing.T) {
		f := newDeclareFixture(t)

		a, err := newDeployer(f, new(MockDeploymentRepository), newMemoryWriter()).Run(ctx, usecase.DeployContractParams{Contract: "Counter", DryRun: true})
		require.NoError(t, err)
		b, err := newDeployer(f, new(MockDeploymentRepository), newMemoryWriter()).Run(ctx, usecase.DeployContractParams{Contract: "Counter", DryRun: true})
		require.NoError(t, err)

		assert.NotEqual(t, a.PredictedAddress, b.PredictedAddress)
	})

	t.Run("invalid calldata", func(t *testing.T) {
		f := newDeclareFixture(t)

		_, err := newDeployer(f, new(MockDeploymentRepository), newMemoryWriter()).Run(ctx, usecase.DeployContractParams{
			Contract: "Counter",
			Calldata: []string{"zz"},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidFelt)
	})

	t.Run("registry failure is reported", func(t *testing.T) {
		f := newDeclareFixture(t)
		f.gateway.On("Connect", ctx, mock.Anything, mock.Anything).Return(nil)
		f.gateway.On("IsDeclared", ctx, mock.Anything).Return(true, nil)
		f.gateway.On("Invoke", ctx, mock.Anything).Return("0xdep", nil)
		f.gateway.On("WaitForReceipt", ctx, "0xdep").Return(&models.TransactionReceipt{ExecutionStatus: "SUCCEEDED"}, nil)
		repo := new(MockDeploymentRepository)
		repo.On("SaveDeployment", ctx, mock.Anything).Return(errors.New("disk full"))

		_, err := newDeployer(f, repo, newMemoryWriter()).Run(ctx, usecase.DeployContractParams{Contract: "Counter", Salt: "0x1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("reverted deployment", func(t *testing.T) {
		f := newDeclareFixture(t)
		f.gateway.On("Connect", ctx, mock.Anything, mock.Anything).Return(nil)
		f.gateway.On("IsDeclared", ctx, mock.Anything).Return(true, nil)
		f.gateway.On("Invoke", ctx, mock.Anything).Return("0xdep", nil)
		f.gateway.On("WaitForReceipt", ctx, "0xdep").Return(&models.TransactionReceipt{ExecutionStatus: "REVERTED"}, nil)
		repo := new(MockDeploymentRepository)

		_, err := newDeployer(f, repo, newMemoryWriter()).Run(ctx, usecase.DeployContractParams{Contract: "Counter", Salt: "0x1"})
		assert.ErrorIs(t, err, domain.ErrTransactionReverted)
		repo.AssertNotCalled(t, "SaveDeployment", mock.Anything, mock.Anything)
	})
}
