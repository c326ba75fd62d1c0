package blockchain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
	"github.com/starknet-mobile/starkdeploy/pkg/starknet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rpcNode is a scripted JSON-RPC node. Each method answers with its queued
// "result" or "error" members in turn, repeating the last one.
type rpcNode struct {
	mu      sync.Mutex
	answers map[string][]string
	calls   []string
}

func (n *rpcNode) answer(method string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, method)
	queue, ok := n.answers[method]
	if !ok || len(queue) == 0 {
		return `"error":{"code":-32601,"message":"method not found"}`
	}
	if len(queue) > 1 {
		n.answers[method] = queue[1:]
	}
	return queue[0]
}

func (n *rpcNode) methods() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.calls...)
}

// startNode serves the chain id, spec version and an unknown class, plus the given answers
func startNode(t *testing.T, answers map[string][]string) (*httptest.Server, *rpcNode) {
	t.Helper()
	node := &rpcNode{answers: map[string][]string{
		// "SN_SEPOLIA"
		"starknet_chainId":     {`"result":"0x534e5f5345504f4c4941"`},
		"starknet_specVersion": {`"result":"0.7.1"`},
		"starknet_getClass":    {`"error":{"code":28,"message":"Class hash not found"}`},
	}}
	for method, queue := range answers {
		node.answers[method] = queue
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,%s}`, req.ID, node.answer(req.Method))
	}))
	t.Cleanup(server.Close)
	return server, node
}

func fakeNode(t *testing.T) *httptest.Server {
	t.Helper()
	server, _ := startNode(t, nil)
	return server
}

func newTestGateway() *GatewayAdapter {
	cfg := &config.RuntimeConfig{PollInterval: time.Second, FeeMultiplier: 2}
	return NewGatewayAdapter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var testAccount = &config.Account{Name: "default", Address: "0x123abc", PrivateKey: "0x12"}

func TestGateway_Defaults(t *testing.T) {
	g := NewGatewayAdapter(&config.RuntimeConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, 5*time.Second, g.pollInterval)
	assert.InDelta(t, 1.5, g.feeMultiplier, 1e-9)

	g = newTestGateway()
	assert.Equal(t, time.Second, g.pollInterval)
	assert.InDelta(t, 2.0, g.feeMultiplier, 1e-9)
}

func TestGateway_NotConnected(t *testing.T) {
	g := newTestGateway()
	ctx := context.Background()

	_, err := g.IsDeclared(ctx, nil)
	assert.ErrorIs(t, err, errNotConnected)

	_, err = g.Declare(ctx, &models.Contract{Name: "Counter"})
	assert.ErrorIs(t, err, errNotConnected)

	_, err = g.Invoke(ctx, []models.Call{{ContractAddress: "0x1", FunctionName: "deployContract"}})
	assert.ErrorIs(t, err, errNotConnected)

	_, err = g.WaitForReceipt(ctx, "0x1")
	assert.ErrorIs(t, err, errNotConnected)
}

func TestGateway_Connect(t *testing.T) {
	server := fakeNode(t)

	t.Run("fills the chain id and checks declarations", func(t *testing.T) {
		g := newTestGateway()
		network := &config.Network{Name: "local", RPCURL: server.URL}

		require.NoError(t, g.Connect(context.Background(), network, testAccount))
		assert.Equal(t, "SN_SEPOLIA", network.ChainID)

		classHash, err := domain.ParseFelt("0x1234")
		require.NoError(t, err)
		declared, err := g.IsDeclared(context.Background(), classHash)
		require.NoError(t, err)
		assert.False(t, declared)
	})

	t.Run("chain id mismatch", func(t *testing.T) {
		g := newTestGateway()
		network := &config.Network{Name: "mainnet", RPCURL: server.URL, ChainID: "SN_MAIN"}

		err := g.Connect(context.Background(), network, testAccount)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chain ID mismatch")
	})

	t.Run("invalid private key", func(t *testing.T) {
		g := newTestGateway()
		network := &config.Network{Name: "local", RPCURL: server.URL}

		err := g.Connect(context.Background(), network, &config.Account{Address: "0x1", PrivateKey: "not-a-key"})
		assert.ErrorIs(t, err, domain.ErrInvalidFelt)
	})
}

const (
	helloClassHash = "0x224518978adb773cfd4862a894e9d333192fbd24bc83841dc7d4167c09b89c5"

	feeEstimate = `"result":[{
		"l1_gas_consumed":"0x0","l1_gas_price":"0x1",
		"l2_gas_consumed":"0x2a000","l2_gas_price":"0x2",
		"l1_data_gas_consumed":"0xe0","l1_data_gas_price":"0x3",
		"overall_fee":"0x54540","unit":"FRI"}]`

	txHashNotFound = `"error":{"code":29,"message":"Transaction hash not found"}`
)

func receiptAnswer(txHash, txType, status, revertReason, events string) string {
	return fmt.Sprintf(`"result":{
		"type":%q,"transaction_hash":%q,
		"actual_fee":{"amount":"0x54540","unit":"FRI"},
		"execution_status":%q,"finality_status":"ACCEPTED_ON_L2","revert_reason":%q,
		"messages_sent":[],"events":[%s],
		"execution_resources":{"l1_gas":0,"l1_data_gas":224,"l2_gas":172032},
		"block_hash":"0xb10c","block_number":7}`, txType, txHash, status, revertReason, events)
}

func connectedGateway(t *testing.T, answers map[string][]string) (*GatewayAdapter, *rpcNode) {
	t.Helper()
	server, node := startNode(t, answers)
	g := NewGatewayAdapter(
		&config.RuntimeConfig{PollInterval: 10 * time.Millisecond, FeeMultiplier: 1.5},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.NoError(t, g.Connect(context.Background(), &config.Network{Name: "local", RPCURL: server.URL}, testAccount))
	return g, node
}

func helloContract() *models.Contract {
	dir := filepath.Join("..", "..", "..", "pkg", "starknet", "testdata")
	return &models.Contract{
		Name:       "HelloStarknet",
		Package:    "hello",
		SierraPath: filepath.Join(dir, "hello_HelloStarknet.contract_class.json"),
		CasmPath:   filepath.Join(dir, "hello_HelloStarknet.compiled_contract_class.json"),
	}
}

func TestGateway_Declare(t *testing.T) {
	ctx := context.Background()

	t.Run("submits the scarb artifacts and waits for the receipt", func(t *testing.T) {
		g, node := connectedGateway(t, map[string][]string{
			"starknet_getNonce":              {`"result":"0x3"`},
			"starknet_estimateFee":           {feeEstimate},
			"starknet_addDeclareTransaction": {fmt.Sprintf(`"result":{"transaction_hash":"0xdec1","class_hash":%q}`, helloClassHash)},
			"starknet_getTransactionReceipt": {
				txHashNotFound,
				receiptAnswer("0xdec1", "DECLARE", "SUCCEEDED", "", ""),
			},
		})

		declaration, err := g.Declare(ctx, helloContract())
		require.NoError(t, err)
		assert.Equal(t, helloClassHash, declaration.ClassHash)
		assert.Equal(t, "0xdec1", declaration.TransactionHash)

		receipt, err := g.WaitForReceipt(ctx, declaration.TransactionHash)
		require.NoError(t, err)
		assert.Equal(t, "0xdec1", receipt.TransactionHash)
		assert.Equal(t, "SUCCEEDED", receipt.ExecutionStatus)
		assert.Equal(t, "ACCEPTED_ON_L2", receipt.FinalityStatus)
		assert.Empty(t, receipt.Events)

		assert.Subset(t, node.methods(), []string{
			"starknet_getNonce",
			"starknet_estimateFee",
			"starknet_addDeclareTransaction",
			"starknet_getTransactionReceipt",
		})
	})

	t.Run("node rejection", func(t *testing.T) {
		g, _ := connectedGateway(t, map[string][]string{
			"starknet_getNonce":              {`"result":"0x3"`},
			"starknet_estimateFee":           {feeEstimate},
			"starknet_addDeclareTransaction": {`"error":{"code":51,"message":"Class already declared"}`},
		})

		_, err := g.Declare(ctx, helloContract())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "declare transaction failed")
	})

	t.Run("missing casm", func(t *testing.T) {
		g, node := connectedGateway(t, nil)
		contract := helloContract()
		contract.CasmPath = filepath.Join(t.TempDir(), "missing.compiled_contract_class.json")

		_, err := g.Declare(ctx, contract)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read casm class")
		assert.NotContains(t, node.methods(), "starknet_addDeclareTransaction")
	})
}

func TestGateway_InvokeDeploy(t *testing.T) {
	ctx := context.Background()
	udc, err := domain.ParseFelt(starknet.UDCAddress)
	require.NoError(t, err)
	deployedKey := domain.FeltHex(starknet.Selector(starknet.UDCDeployedEvent))
	deployCall := []models.Call{{
		ContractAddress: starknet.UDCAddress,
		FunctionName:    starknet.UDCDeployFunction,
		Calldata:        []string{helloClassHash, "0x42", "0x0", "0x0"},
	}}

	t.Run("returns the ContractDeployed event", func(t *testing.T) {
		event := fmt.Sprintf(`{"from_address":%q,"keys":[%q],"data":["0x4a1","0x123abc","0x0",%q,"0x0","0x42"]}`,
			domain.FeltHex(udc), deployedKey, helloClassHash)
		g, node := connectedGateway(t, map[string][]string{
			"starknet_getNonce":              {`"result":"0x4"`},
			"starknet_estimateFee":           {feeEstimate},
			"starknet_addInvokeTransaction":  {`"result":{"transaction_hash":"0xdep1"}`},
			"starknet_getTransactionReceipt": {receiptAnswer("0xdep1", "INVOKE", "SUCCEEDED", "", event)},
		})

		txHash, err := g.Invoke(ctx, deployCall)
		require.NoError(t, err)
		assert.Equal(t, "0xdep1", txHash)

		receipt, err := g.WaitForReceipt(ctx, txHash)
		require.NoError(t, err)
		require.Len(t, receipt.Events, 1)
		ev := receipt.Events[0]
		assert.Equal(t, domain.FeltHex(udc), ev.FromAddress)
		assert.Equal(t, []string{deployedKey}, ev.Keys)
		assert.Equal(t, "0x4a1", ev.Data[0])
		assert.Equal(t, helloClassHash, ev.Data[3])
		assert.Contains(t, node.methods(), "starknet_addInvokeTransaction")
	})

	t.Run("reverted receipt keeps the reason", func(t *testing.T) {
		g, _ := connectedGateway(t, map[string][]string{
			"starknet_getTransactionReceipt": {receiptAnswer("0xdep2", "INVOKE", "REVERTED", "Class with hash 0x5b2 is not declared.", "")},
		})

		receipt, err := g.WaitForReceipt(ctx, "0xdep2")
		require.NoError(t, err)
		assert.Equal(t, "REVERTED", receipt.ExecutionStatus)
		assert.Equal(t, "Class with hash 0x5b2 is not declared.", receipt.RevertReason)
	})

	t.Run("invalid calldata is rejected before signing", func(t *testing.T) {
		g, node := connectedGateway(t, nil)

		_, err := g.Invoke(ctx, []models.Call{{ContractAddress: starknet.UDCAddress, FunctionName: "deployContract", Calldata: []string{"zz"}}})
		assert.ErrorIs(t, err, domain.ErrInvalidFelt)
		assert.NotContains(t, node.methods(), "starknet_getNonce")
	})
}
