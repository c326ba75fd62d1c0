package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/account"
	"github.com/NethermindEth/starknet.go/contracts"
	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/NethermindEth/starknet.go/utils"
	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
	"github.com/starknet-mobile/starkdeploy/pkg/starknet"
)

// cairoVersion of the account contracts the gateway signs for
const cairoVersion = 2

// errNotConnected is returned when a call is made before Connect
var errNotConnected = errors.New("not connected to a starknet node")

// GatewayAdapter implements the StarknetGateway interface using starknet.go
type GatewayAdapter struct {
	feeMultiplier float64
	pollInterval  time.Duration
	log           *slog.Logger

	provider *rpc.Provider
	account  *account.Account
}

// NewGatewayAdapter creates a new gateway adapter
func NewGatewayAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *GatewayAdapter {
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	feeMultiplier := cfg.FeeMultiplier
	if feeMultiplier <= 0 {
		feeMultiplier = 1.5
	}
	return &GatewayAdapter{
		feeMultiplier: feeMultiplier,
		pollInterval:  pollInterval,
		log:           log.With("component", "StarknetGateway"),
	}
}

// Connect establishes connection to the node and unlocks the signing account
func (g *GatewayAdapter) Connect(ctx context.Context, network *config.Network, acct *config.Account) error {
	if g.account != nil {
		return nil
	}

	provider, err := rpc.NewProvider(network.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC: %w", err)
	}

	// Verify chain ID matches
	chainID, err := provider.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	if network.ChainID == "" {
		network.ChainID = chainID
	} else if network.ChainID != chainID {
		return fmt.Errorf("chain ID mismatch: expected %s, got %s", network.ChainID, chainID)
	}

	privateKey, err := domain.ParseFelt(acct.PrivateKey)
	if err != nil {
		return fmt.Errorf("private key: %w", err)
	}
	publicKey, err := starknet.PublicKey(privateKey)
	if err != nil {
		return err
	}
	address, err := domain.ParseFelt(acct.Address)
	if err != nil {
		return fmt.Errorf("account address: %w", err)
	}

	privBytes := privateKey.Bytes()
	publicHex := domain.FeltHex(publicKey)
	ks := account.SetNewMemKeystore(publicHex, new(big.Int).SetBytes(privBytes[:]))

	a, err := account.NewAccount(provider, address, publicHex, ks, cairoVersion)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	g.log.Debug("connected", "rpc", network.RPCURL, "chainId", chainID, "account", acct.Address, "publicKey", publicHex)
	g.provider = provider
	g.account = a
	return nil
}

// IsDeclared reports whether the class hash is known at the latest block
func (g *GatewayAdapter) IsDeclared(ctx context.Context, classHash *felt.Felt) (bool, error) {
	if g.provider == nil {
		return false, errNotConnected
	}

	_, err := g.provider.Class(ctx, rpc.WithBlockTag("latest"), classHash)
	if err == nil {
		return true, nil
	}

	var rpcErr *rpc.RPCError
	if errors.As(err, &rpcErr) && rpcErr.Code == rpc.ErrClassHashNotFound.Code {
		return false, nil
	}
	return false, fmt.Errorf("failed to query class %s: %w", domain.FeltHex(classHash), err)
}

// Declare submits a declare transaction for the contract's sierra and casm classes
func (g *GatewayAdapter) Declare(ctx context.Context, contract *models.Contract) (*models.Declaration, error) {
	if g.account == nil {
		return nil, errNotConnected
	}

	class, err := utils.UnmarshalJSONFileToType[contracts.ContractClass](contract.SierraPath, "")
	if err != nil {
		return nil, fmt.Errorf("failed to read sierra class: %w", err)
	}
	casm, err := contracts.UnmarshalCasmClass(contract.CasmPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read casm class: %w", err)
	}

	resp, err := g.account.BuildAndSendDeclareTxn(ctx, casm, class, g.feeMultiplier)
	if err != nil {
		return nil, fmt.Errorf("declare transaction failed: %w", err)
	}

	g.log.Debug("declare sent", "tx", resp.TransactionHash, "classHash", resp.ClassHash)
	return &models.Declaration{
		ClassHash:       domain.FeltHex(resp.ClassHash),
		TransactionHash: domain.FeltHex(resp.TransactionHash),
	}, nil
}

// Invoke submits an invoke transaction executing the calls through the account
func (g *GatewayAdapter) Invoke(ctx context.Context, calls []models.Call) (string, error) {
	if g.account == nil {
		return "", errNotConnected
	}

	functionCalls := make([]rpc.InvokeFunctionCall, 0, len(calls))
	for _, call := range calls {
		address, err := domain.ParseFelt(call.ContractAddress)
		if err != nil {
			return "", fmt.Errorf("contract address: %w", err)
		}
		calldata, err := domain.ParseFelts(call.Calldata)
		if err != nil {
			return "", fmt.Errorf("calldata for %s: %w", call.FunctionName, err)
		}
		functionCalls = append(functionCalls, rpc.InvokeFunctionCall{
			ContractAddress: address,
			FunctionName:    call.FunctionName,
			CallData:        calldata,
		})
	}

	resp, err := g.account.BuildAndSendInvokeTxn(ctx, functionCalls, g.feeMultiplier)
	if err != nil {
		return "", fmt.Errorf("invoke transaction failed: %w", err)
	}

	g.log.Debug("invoke sent", "tx", resp.TransactionHash, "calls", len(calls))
	return domain.FeltHex(resp.TransactionHash), nil
}

// WaitForReceipt polls until the transaction receipt is available or ctx expires
func (g *GatewayAdapter) WaitForReceipt(ctx context.Context, txHash string) (*models.TransactionReceipt, error) {
	if g.account == nil {
		return nil, errNotConnected
	}

	hash, err := domain.ParseFelt(txHash)
	if err != nil {
		return nil, fmt.Errorf("transaction hash: %w", err)
	}

	receipt, err := g.account.WaitForTransactionReceipt(ctx, hash, g.pollInterval)
	if err != nil {
		return nil, err
	}

	result := &models.TransactionReceipt{
		TransactionHash: txHash,
		ExecutionStatus: string(receipt.ExecutionStatus),
		FinalityStatus:  string(receipt.FinalityStatus),
		RevertReason:    receipt.RevertReason,
	}
	for _, event := range receipt.Events {
		result.Events = append(result.Events, models.Event{
			FromAddress: domain.FeltHex(event.FromAddress),
			Keys:        domain.FeltHexes(event.Keys),
			Data:        domain.FeltHexes(event.Data),
		})
	}
	return result, nil
}

// Ensure the adapter implements the interface
var _ usecase.StarknetGateway = (*GatewayAdapter)(nil)
