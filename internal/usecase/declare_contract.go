package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
)

// DeclareContractParams contains parameters for declaring a contract class
type DeclareContractParams struct {
	Contract    string
	Build       bool
	BuildOutput io.Writer
}

// DeclareContractResult contains the result of a declaration
type DeclareContractResult struct {
	Contract    *models.Contract
	Network     *config.Network
	Account     string
	Declaration *models.Declaration
}

// DeclareContract declares a contract class on the selected network, once
type DeclareContract struct {
	config   *config.RuntimeConfig
	resolver *ResolveContract
	builder  ProjectBuilder
	gateway  StarknetGateway
	sink     ProgressSink
}

// NewDeclareContract creates a new DeclareContract use case
func NewDeclareContract(
	cfg *config.RuntimeConfig,
	resolver *ResolveContract,
	builder ProjectBuilder,
	gateway StarknetGateway,
	sink ProgressSink,
) *DeclareContract {
	return &DeclareContract{
		config:   cfg,
		resolver: resolver,
		builder:  builder,
		gateway:  gateway,
		sink:     sink,
	}
}

// Run executes the use case
func (uc *DeclareContract) Run(ctx context.Context, params DeclareContractParams) (*DeclareContractResult, error) {
	account, err := requireAccount(uc.config)
	if err != nil {
		return nil, err
	}
	network, err := requireNetwork(uc.config)
	if err != nil {
		return nil, err
	}

	contract, class, err := uc.prepare(ctx, params.Contract, params.Build, params.BuildOutput)
	if err != nil {
		return nil, err
	}

	declaration, err := uc.declareClass(ctx, network, account, contract, class)
	if err != nil {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: string(StageCompleted)})
	return &DeclareContractResult{
		Contract:    contract,
		Network:     network,
		Account:     account.Address,
		Declaration: declaration,
	}, nil
}

// prepare optionally builds the project, then resolves and loads the contract
func (uc *DeclareContract) prepare(ctx context.Context, name string, build bool, out io.Writer) (*models.Contract, *models.ContractClass, error) {
	if build {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   string(StageBuilding),
			Message: "Running scarb build",
		})
		if out == nil {
			out = io.Discard
		}
		if err := uc.builder.Build(ctx, out); err != nil {
			return nil, nil, fmt.Errorf("build failed: %w", err)
		}
	}
	return uc.resolver.Load(ctx, name)
}

// declareClass declares the class unless the network already knows its hash
func (uc *DeclareContract) declareClass(
	ctx context.Context,
	network *config.Network,
	account *config.Account,
	contract *models.Contract,
	class *models.ContractClass,
) (*models.Declaration, error) {
	if !contract.HasCasm() {
		return nil, fmt.Errorf("%w: %s (enable casm = true under [[target.starknet-contract]] in Scarb.toml)",
			domain.ErrCasmNotFound, contract.CasmPath)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageHashing),
		Message: fmt.Sprintf("Computing class hash of %s", contract.Name),
		Spinner: true,
	})
	hash, err := computeClassHash(class)
	if err != nil {
		return nil, err
	}
	classHash := domain.FeltHex(hash)

	if err := uc.gateway.Connect(ctx, network, account); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", network.Name, err)
	}

	declared, err := uc.gateway.IsDeclared(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to check class %s: %w", classHash, err)
	}
	if declared {
		uc.sink.Info(fmt.Sprintf("Class %s already declared on %s", classHash, network.Name))
		return &models.Declaration{ClassHash: classHash, AlreadyDeclared: true}, nil
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageDeclaring),
		Message: fmt.Sprintf("Declaring %s on %s", contract.Name, network.Name),
		Spinner: true,
	})
	declaration, err := uc.gateway.Declare(ctx, contract)
	if err != nil {
		return nil, fmt.Errorf("failed to declare %s: %w", contract.Name, err)
	}

	if err := waitForSuccess(ctx, uc.gateway, uc.sink, declaration.TransactionHash); err != nil {
		return nil, err
	}

	if !sameFelt(declaration.ClassHash, classHash) {
		uc.sink.Error(fmt.Sprintf("Network reported class hash %s, computed %s", declaration.ClassHash, classHash))
	}
	return declaration, nil
}

// waitForSuccess waits for the receipt of txHash and fails if the transaction reverted
func waitForSuccess(ctx context.Context, gateway StarknetGateway, sink ProgressSink, txHash string) error {
	_, err := waitForReceipt(ctx, gateway, sink, txHash)
	return err
}

func waitForReceipt(ctx context.Context, gateway StarknetGateway, sink ProgressSink, txHash string) (*models.TransactionReceipt, error) {
	sink.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageWaiting),
		Message: fmt.Sprintf("Waiting for transaction %s", models.ShortAddress(txHash)),
		Spinner: true,
	})
	receipt, err := gateway.WaitForReceipt(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt of %s: %w", txHash, err)
	}
	if !receipt.Succeeded() {
		return nil, fmt.Errorf("%w: %s: %s", domain.ErrTransactionReverted, txHash, receipt.RevertReason)
	}
	return receipt, nil
}

func requireAccount(cfg *config.RuntimeConfig) (*config.Account, error) {
	if cfg.Account == nil || cfg.Account.PrivateKey == "" {
		return nil, fmt.Errorf("%w: set STARKNET_PRIVATE_KEY or [tool.starkdeploy.accounts]", domain.ErrMissingPrivateKey)
	}
	if cfg.Account.Address == "" {
		return nil, fmt.Errorf("%w: set STARKNET_ACCOUNT_ADDRESS or [tool.starkdeploy.accounts]", domain.ErrMissingAccountAddress)
	}
	if _, err := domain.ParseFelt(cfg.Account.Address); err != nil {
		return nil, fmt.Errorf("account address: %w", err)
	}
	return cfg.Account, nil
}

func requireNetwork(cfg *config.RuntimeConfig) (*config.Network, error) {
	if cfg.Network == nil {
		return nil, fmt.Errorf("%w: use --network or set STARKNET_NETWORK", domain.ErrNetworkRequired)
	}
	return cfg.Network, nil
}

// sameFelt compares two felt strings by value, false if either does not parse
func sameFelt(a, b string) bool {
	fa, err := domain.ParseFelt(a)
	if err != nil {
		return false
	}
	fb, err := domain.ParseFelt(b)
	if err != nil {
		return false
	}
	return fa.Equal(fb)
}

func mustFelt(s string) *felt.Felt {
	f, err := domain.ParseFelt(s)
	if err != nil {
		panic(err)
	}
	return f
}
