package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
	"github.com/starknet-mobile/starkdeploy/pkg/starknet"
)

// DeployContractParams contains parameters for deploying a contract instance
type DeployContractParams struct {
	Contract    string
	Salt        string // random when empty
	Unique      bool
	Calldata    []string
	DryRun      bool
	Build       bool
	BuildOutput io.Writer
}

// DeployContractResult contains the result of a deployment
type DeployContractResult struct {
	Contract         *models.Contract
	Network          *config.Network
	Declaration      *models.Declaration
	Deployment       *models.Deployment
	PredictedAddress string
	DryRun           bool
	Path             string
}

// DeployContract declares (if needed) and deploys a contract through the Universal Deployer
type DeployContract struct {
	config      *config.RuntimeConfig
	declarer    *DeclareContract
	gateway     StarknetGateway
	deployments DeploymentRepository
	writer      ResultWriter
	sink        ProgressSink
	now         func() time.Time
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	declarer *DeclareContract,
	gateway StarknetGateway,
	deployments DeploymentRepository,
	writer ResultWriter,
	sink ProgressSink,
) *DeployContract {
	return &DeployContract{
		config:      cfg,
		declarer:    declarer,
		gateway:     gateway,
		deployments: deployments,
		writer:      writer,
		sink:        sink,
		now:         time.Now,
	}
}

// Run executes the use case
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	var (
		account *config.Account
		network *config.Network
		err     error
	)
	if params.DryRun {
		account, network = uc.config.Account, uc.config.Network
		if params.Unique && (account == nil || account.Address == "") {
			return nil, fmt.Errorf("%w: unique deployments derive the salt from the deployer", domain.ErrMissingAccountAddress)
		}
	} else {
		if account, err = requireAccount(uc.config); err != nil {
			return nil, err
		}
		if network, err = requireNetwork(uc.config); err != nil {
			return nil, err
		}
	}

	calldata, err := domain.ParseFelts(params.Calldata)
	if err != nil {
		return nil, fmt.Errorf("constructor calldata: %w", err)
	}
	salt, err := resolveSalt(params.Salt)
	if err != nil {
		return nil, err
	}

	contract, class, err := uc.declarer.prepare(ctx, params.Contract, params.Build, params.BuildOutput)
	if err != nil {
		return nil, err
	}

	hash, err := computeClassHash(class)
	if err != nil {
		return nil, err
	}

	udc := mustFelt(starknet.UDCAddress)
	deployment := &starknet.UDCDeployment{
		ClassHash: hash,
		Salt:      salt,
		Unique:    params.Unique,
		Calldata:  calldata,
	}
	if account != nil && account.Address != "" {
		if deployment.Caller, err = domain.ParseFelt(account.Address); err != nil {
			return nil, fmt.Errorf("account address: %w", err)
		}
	}
	predicted := domain.FeltHex(deployment.Address(udc))

	result := &DeployContractResult{
		Contract:         contract,
		Network:          network,
		PredictedAddress: predicted,
		DryRun:           params.DryRun,
	}
	if params.DryRun {
		result.Declaration = &models.Declaration{ClassHash: domain.FeltHex(hash)}
		return result, nil
	}

	declaration, err := uc.declarer.declareClass(ctx, network, account, contract, class)
	if err != nil {
		return nil, err
	}
	result.Declaration = declaration

	declared, err := domain.ParseFelt(declaration.ClassHash)
	if err != nil {
		return nil, fmt.Errorf("declared class hash: %w", err)
	}
	if !declared.Equal(deployment.ClassHash) {
		deployment.ClassHash = declared
		predicted = domain.FeltHex(deployment.Address(udc))
		result.PredictedAddress = predicted
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageDeploying),
		Message: fmt.Sprintf("Deploying %s on %s", contract.Name, network.Name),
		Spinner: true,
	})
	txHash, err := uc.gateway.Invoke(ctx, []models.Call{{
		ContractAddress: starknet.UDCAddress,
		FunctionName:    starknet.UDCDeployFunction,
		Calldata:        domain.FeltHexes(deployment.CallData()),
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", contract.Name, err)
	}

	receipt, err := waitForReceipt(ctx, uc.gateway, uc.sink, txHash)
	if err != nil {
		return nil, err
	}

	address := deployedAddress(receipt, udc)
	switch {
	case address == "":
		address = predicted
	case !sameFelt(address, predicted):
		uc.sink.Error(fmt.Sprintf("Deployed address %s differs from predicted %s", address, predicted))
	}

	record := &models.Deployment{
		ID:                  models.DeploymentID(network.Name, contract.Name, address),
		Network:             network.Name,
		ChainID:             network.ChainID,
		RPCURL:              network.RPCURL,
		ContractName:        contract.Name,
		ContractAddress:     address,
		ClassHash:           declaration.ClassHash,
		DeclarationTx:       declaration.TransactionHash,
		DeploymentTx:        txHash,
		AccountAddress:      account.Address,
		Salt:                domain.FeltHex(salt),
		Unique:              params.Unique,
		ConstructorCalldata: domain.FeltHexes(calldata),
		AlreadyDeclared:     declaration.AlreadyDeclared,
		DeployedAt:          uc.now().UTC(),
	}
	result.Deployment = record

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageRecording),
		Message: "Recording deployment",
	})
	if result.Path, err = uc.writer.WriteJSON(ctx, DeploymentInfoFile, record); err != nil {
		return nil, fmt.Errorf("failed to write deployment info: %w", err)
	}
	if err := uc.deployments.SaveDeployment(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record deployment: %w", err)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: string(StageCompleted)})
	return result, nil
}

func resolveSalt(s string) (*felt.Felt, error) {
	if s != "" {
		salt, err := domain.ParseFelt(s)
		if err != nil {
			return nil, fmt.Errorf("salt: %w", err)
		}
		return salt, nil
	}
	salt, err := new(felt.Felt).SetRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// deployedAddress returns the address carried by the UDC ContractDeployed event, if any
func deployedAddress(receipt *models.TransactionReceipt, udc *felt.Felt) string {
	deployedKey := starknet.Selector(starknet.UDCDeployedEvent)
	for _, ev := range receipt.Events {
		from, err := domain.ParseFelt(ev.FromAddress)
		if err != nil || !from.Equal(udc) || len(ev.Data) == 0 {
			continue
		}
		if len(ev.Keys) > 0 && !sameFelt(ev.Keys[0], domain.FeltHex(deployedKey)) {
			continue
		}
		if addr, err := domain.ParseFelt(ev.Data[0]); err == nil {
			return domain.FeltHex(addr)
		}
	}
	return ""
}
