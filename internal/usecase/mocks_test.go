package usecase_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDeploymentRepository is a mock implementation of DeploymentRepository
type MockDeploymentRepository struct {
	mock.Mock
}

func (m *MockDeploymentRepository) GetDeployment(ctx context.Context, id string) (*models.Deployment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	args := m.Called(ctx, deployment)
	return args.Error(0)
}

func (m *MockDeploymentRepository) DeleteDeployment(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockContractRepository is a mock implementation of ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindContracts(ctx context.Context, query domain.ContractQuery) ([]*models.Contract, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Contract), args.Error(1)
}

func (m *MockContractRepository) LoadClass(ctx context.Context, contract *models.Contract) (*models.ContractClass, error) {
	args := m.Called(ctx, contract)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContractClass), args.Error(1)
}

// MockContractSelector is a mock implementation of ContractSelector
type MockContractSelector struct {
	mock.Mock
}

func (m *MockContractSelector) SelectContract(ctx context.Context, contracts []*models.Contract, prompt string) (*models.Contract, error) {
	args := m.Called(ctx, contracts, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

// MockDeploymentMultiSelector is a mock implementation of DeploymentMultiSelector
type MockDeploymentMultiSelector struct {
	mock.Mock
}

func (m *MockDeploymentMultiSelector) SelectDeployments(ctx context.Context, deployments []*models.Deployment, prompt string) ([]*models.Deployment, error) {
	args := m.Called(ctx, deployments, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Deployment), args.Error(1)
}

// MockStarknetGateway is a mock implementation of StarknetGateway
type MockStarknetGateway struct {
	mock.Mock
}

func (m *MockStarknetGateway) Connect(ctx context.Context, network *config.Network, account *config.Account) error {
	args := m.Called(ctx, network, account)
	return args.Error(0)
}

func (m *MockStarknetGateway) IsDeclared(ctx context.Context, classHash *felt.Felt) (bool, error) {
	args := m.Called(ctx, classHash)
	return args.Bool(0), args.Error(1)
}

func (m *MockStarknetGateway) Declare(ctx context.Context, contract *models.Contract) (*models.Declaration, error) {
	args := m.Called(ctx, contract)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Declaration), args.Error(1)
}

func (m *MockStarknetGateway) Invoke(ctx context.Context, calls []models.Call) (string, error) {
	args := m.Called(ctx, calls)
	return args.String(0), args.Error(1)
}

func (m *MockStarknetGateway) WaitForReceipt(ctx context.Context, txHash string) (*models.TransactionReceipt, error) {
	args := m.Called(ctx, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionReceipt), args.Error(1)
}

// MockProjectBuilder is a mock implementation of ProjectBuilder
type MockProjectBuilder struct {
	mock.Mock
}

func (m *MockProjectBuilder) Build(ctx context.Context, out io.Writer) error {
	args := m.Called(ctx, out)
	return args.Error(0)
}

// MockLocalConfigRepository is a mock implementation of LocalConfigRepository
type MockLocalConfigRepository struct {
	mock.Mock
}

func (m *MockLocalConfigRepository) Exists() bool {
	return m.Called().Bool(0)
}

func (m *MockLocalConfigRepository) Load(ctx context.Context) (*config.LocalConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.LocalConfig), args.Error(1)
}

func (m *MockLocalConfigRepository) Save(ctx context.Context, cfg *config.LocalConfig) error {
	return m.Called(ctx, cfg).Error(0)
}

func (m *MockLocalConfigRepository) GetPath() string {
	return m.Called().String(0)
}

// memoryWriter records written results instead of touching disk
type memoryWriter struct {
	files map[string]any
	err   error
}

func newMemoryWriter() *memoryWriter {
	return &memoryWriter{files: make(map[string]any)}
}

func (w *memoryWriter) WriteJSON(_ context.Context, name string, v any) (string, error) {
	if w.err != nil {
		return "", w.err
	}
	w.files[name] = v
	return filepath.Join("/out", name), nil
}

// MockProgressSink collects progress events
type MockProgressSink struct {
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (m *MockProgressSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string) {
	m.infos = append(m.infos, message)
}

func (m *MockProgressSink) Error(message string) {
	m.errors = append(m.errors, message)
}

func (m *MockProgressSink) stages() []string {
	stages := make([]string, len(m.events))
	for i, e := range m.events {
		stages[i] = e.Stage
	}
	return stages
}

func mustFelt(t *testing.T, s string) *felt.Felt {
	t.Helper()
	f, err := domain.ParseFelt(s)
	require.NoError(t, err)
	return f
}

const counterABI = `[
  {"type": "impl", "name": "CounterImpl", "interface_name": "counter::ICounter"},
  {"type": "interface", "name": "counter::ICounter", "items": [
    {"type": "function", "name": "get_counter", "inputs": [], "outputs": [{"type": "core::integer::u32"}], "state_mutability": "view"},
    {"type": "function", "name": "increase_counter", "inputs": [], "outputs": [], "state_mutability": "external"}
  ]},
  {"type": "constructor", "name": "constructor", "inputs": [{"name": "initial_value", "type": "core::integer::u32"}]},
  {"type": "event", "name": "counter::Counter::Event", "kind": "enum", "variants": []}
]`

// Scarb artifacts shared with pkg/starknet, with the class hashes the network assigns them
const (
	helloStarknetClass           = "hello_HelloStarknet.contract_class.json"
	helloStarknetClassHash       = "0x224518978adb773cfd4862a894e9d333192fbd24bc83841dc7d4167c09b89c5"
	legacyHelloStarknetClass     = "legacy_HelloStarknet.contract_class.json"
	legacyHelloStarknetClassHash = "0x4ec2ecf58014bc2ffd7c84843c3525e5ecb0a2cac33c47e9c347f39fc0c0944"
)

func artifactPath(name string) string {
	return filepath.Join("..", "..", "pkg", "starknet", "testdata", name)
}

// artifactClass parses a contract class from pkg/starknet/testdata
func artifactClass(t *testing.T, name string) *models.ContractClass {
	t.Helper()
	data, err := os.ReadFile(artifactPath(name))
	require.NoError(t, err)
	class, err := models.ParseContractClass(data)
	require.NoError(t, err)
	return class
}

// counterClass returns a small Counter contract class
func counterClass(t *testing.T) *models.ContractClass {
	t.Helper()
	data := `{
  "contract_class_version": "0.1.0",
  "sierra_program": ["0x1", "0x2", "0x3", "0x4"],
  "entry_points_by_type": {
    "EXTERNAL": [
      {"selector": "0x3370263ab53343580e77063a719a5865004caff7f367ec136a6cdd34b6786ca", "function_idx": 0},
      {"selector": "0x245f9bea6574169db91599999bf914dd43aebc1e0544bdc96c9f401a52b8768", "function_idx": 1}
    ],
    "L1_HANDLER": [],
    "CONSTRUCTOR": [
      {"selector": "0x28ffe4ff0f226a9107253e17a904099aa4f63a02a5621de0576e5aa71bc5194", "function_idx": 2}
    ]
  },
  "abi": ` + counterABI + `
}`
	class, err := models.ParseContractClass([]byte(data))
	require.NoError(t, err)
	return class
}

// counterContract returns a Counter artifact whose casm file exists on disk
func counterContract(t *testing.T) *models.Contract {
	t.Helper()
	dir := t.TempDir()
	casm := filepath.Join(dir, "counter_Counter.compiled_contract_class.json")
	require.NoError(t, os.WriteFile(casm, []byte(`{}`), 0644))
	return &models.Contract{
		Name:       "Counter",
		Package:    "counter",
		SierraPath: filepath.Join(dir, "counter_Counter.contract_class.json"),
		CasmPath:   casm,
	}
}

func testConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		ProjectRoot:    "/project",
		NonInteractive: true,
		Network: &config.Network{
			Name:    "sepolia",
			RPCURL:  "https://starknet-sepolia.example/rpc",
			ChainID: "SN_SEPOLIA",
		},
		Account: &config.Account{
			Name:       "deployer",
			Address:    "0x123abc",
			PrivateKey: "0x12",
		},
	}
}
