package models

import (
	"fmt"
	"strings"
	"time"
)

// Deployment is the record of one deployed contract instance
type Deployment struct {
	ID                  string    `json:"id"` // e.g. "sepolia/Counter/0x1234..."
	Network             string    `json:"network"`
	ChainID             string    `json:"chain_id,omitempty"` // e.g. "SN_SEPOLIA"
	RPCURL              string    `json:"rpc_url,omitempty"`
	ContractName        string    `json:"contract_name"`
	ContractAddress     string    `json:"contract_address"`
	ClassHash           string    `json:"class_hash"`
	DeclarationTx       string    `json:"declaration_tx"`
	DeploymentTx        string    `json:"deployment_tx"`
	AccountAddress      string    `json:"account_address,omitempty"`
	Salt                string    `json:"salt,omitempty"`
	Unique              bool      `json:"unique"`
	ConstructorCalldata []string  `json:"constructor_calldata"`
	AlreadyDeclared     bool      `json:"already_declared"`
	DeployedAt          time.Time `json:"deployed_at"`
}

// DeploymentID builds the registry identifier of a deployment
func DeploymentID(network, contractName, address string) string {
	return fmt.Sprintf("%s/%s/%s", network, contractName, strings.ToLower(address))
}

// ShortAddress abbreviates a long hex address for display
func ShortAddress(address string) string {
	if len(address) <= 14 {
		return address
	}
	return address[:8] + "..." + address[len(address)-6:]
}

// Declaration is the outcome of declaring a contract class
type Declaration struct {
	ClassHash       string `json:"class_hash"`
	TransactionHash string `json:"transaction_hash,omitempty"`
	AlreadyDeclared bool   `json:"already_declared"`
}

// Call is one contract call executed by an invoke transaction
type Call struct {
	ContractAddress string
	FunctionName    string
	Calldata        []string
}

// TransactionReceipt is the subset of a receipt the deployer inspects
type TransactionReceipt struct {
	TransactionHash string
	ExecutionStatus string
	FinalityStatus  string
	RevertReason    string
	Events          []Event
}

// Succeeded reports whether the transaction executed without revert
func (r *TransactionReceipt) Succeeded() bool {
	return r.ExecutionStatus == "" || strings.EqualFold(r.ExecutionStatus, "SUCCEEDED")
}

// Event is an emitted Starknet event
type Event struct {
	FromAddress string
	Keys        []string
	Data        []string
}
