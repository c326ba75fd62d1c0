package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
)

// DeploymentRenderer renders detailed information about a single deployment
type DeploymentRenderer struct {
	out    io.Writer
	format string
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer, format string) *DeploymentRenderer {
	return &DeploymentRenderer{
		out:    out,
		format: format,
	}
}

// RenderDeployment renders detailed deployment information
func (r *DeploymentRenderer) RenderDeployment(deployment *models.Deployment) error {
	if IsStructured(r.format) {
		return WriteStructured(r.out, r.format, deployment)
	}

	// Header
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployment: %s\n", deployment.ID)
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	// Basic Info
	fmt.Fprintln(r.out, "\nBasic Information:")
	fmt.Fprintf(r.out, "  Contract: %s\n", color.New(color.FgYellow).Sprint(deployment.ContractName))
	fmt.Fprintf(r.out, "  Address: %s\n", deployment.ContractAddress)
	fmt.Fprintf(r.out, "  Class Hash: %s\n", deployment.ClassHash)
	fmt.Fprintf(r.out, "  Network: %s\n", deployment.Network)
	if deployment.ChainID != "" {
		fmt.Fprintf(r.out, "  Chain ID: %s\n", deployment.ChainID)
	}
	if deployment.RPCURL != "" {
		fmt.Fprintf(r.out, "  RPC URL: %s\n", deployment.RPCURL)
	}

	// Deployment Strategy
	fmt.Fprintln(r.out, "\nDeployment Strategy:")
	fmt.Fprintln(r.out, "  Method: Universal Deployer")
	fmt.Fprintf(r.out, "  Salt: %s\n", deployment.Salt)
	fmt.Fprintf(r.out, "  Unique: %t\n", deployment.Unique)
	if len(deployment.ConstructorCalldata) > 0 {
		fmt.Fprintf(r.out, "  Constructor Calldata: [%s]\n", strings.Join(deployment.ConstructorCalldata, ", "))
	}
	if deployment.AccountAddress != "" {
		fmt.Fprintf(r.out, "  Deployer: %s\n", deployment.AccountAddress)
	}

	// Transactions
	fmt.Fprintln(r.out, "\nTransactions:")
	if deployment.AlreadyDeclared {
		fmt.Fprintf(r.out, "  Declaration: %s\n", color.New(color.FgYellow).Sprint("class was already declared"))
	} else {
		fmt.Fprintf(r.out, "  Declaration: %s\n", deployment.DeclarationTx)
	}
	fmt.Fprintf(r.out, "  Deployment: %s\n", deployment.DeploymentTx)

	// Timestamps
	fmt.Fprintln(r.out, "\nTimestamps:")
	fmt.Fprintf(r.out, "  Deployed: %s\n", deployment.DeployedAt.Format("2006-01-02 15:04:05 MST"))

	return nil
}
