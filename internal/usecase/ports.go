package usecase

import (
	"context"
	"io"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
)

// DeploymentRepository handles persistence of deployment records
type DeploymentRepository interface {
	GetDeployment(ctx context.Context, id string) (*models.Deployment, error)
	ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error)
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
	DeleteDeployment(ctx context.Context, id string) error
}

// ContractRepository provides access to compiled contracts in the Scarb target directory
type ContractRepository interface {
	FindContracts(ctx context.Context, query domain.ContractQuery) ([]*models.Contract, error)
	LoadClass(ctx context.Context, contract *models.Contract) (*models.ContractClass, error)
}

// ContractSelector handles interactive selection of contracts
type ContractSelector interface {
	SelectContract(ctx context.Context, contracts []*models.Contract, prompt string) (*models.Contract, error)
}

// DeploymentMultiSelector handles interactive selection of several deployments
type DeploymentMultiSelector interface {
	SelectDeployments(ctx context.Context, deployments []*models.Deployment, prompt string) ([]*models.Deployment, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// StarknetGateway submits transactions to a Starknet node on behalf of an account
type StarknetGateway interface {
	// Connect binds the gateway to a network and signing account
	Connect(ctx context.Context, network *config.Network, account *config.Account) error
	// IsDeclared reports whether a class hash is known to the network
	IsDeclared(ctx context.Context, classHash *felt.Felt) (bool, error)
	// Declare submits a declare transaction for the contract's sierra and casm classes
	Declare(ctx context.Context, contract *models.Contract) (*models.Declaration, error)
	// Invoke submits an invoke transaction executing the calls through the account
	Invoke(ctx context.Context, calls []models.Call) (string, error)
	// WaitForReceipt polls until the transaction is accepted or ctx expires
	WaitForReceipt(ctx context.Context, txHash string) (*models.TransactionReceipt, error)
}

// ResultWriter writes result records into the output directory
type ResultWriter interface {
	// WriteJSON writes v as indented JSON under name and returns the written path
	WriteJSON(ctx context.Context, name string, v any) (string, error)
}

// ProjectBuilder compiles the Scarb project
type ProjectBuilder interface {
	Build(ctx context.Context, out io.Writer) error
}

// LocalConfigRepository manages local configuration persistence
type LocalConfigRepository interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, config *config.LocalConfig) error
	GetPath() string
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// ExecutionStage represents a stage of a declare or deploy run
type ExecutionStage string

const (
	StageResolving ExecutionStage = "Resolving"
	StageBuilding  ExecutionStage = "Building"
	StageHashing   ExecutionStage = "Hashing"
	StageDeclaring ExecutionStage = "Declaring"
	StageDeploying ExecutionStage = "Deploying"
	StageWaiting   ExecutionStage = "Waiting"
	StageRecording ExecutionStage = "Recording"
	StageCompleted ExecutionStage = "Completed"
)
