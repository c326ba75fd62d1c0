package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

var (
	successStyle = color.New(color.FgGreen, color.Bold)
	codeStyle    = color.New(color.FgHiWhite)
	skipStyle    = color.New(color.FgYellow)
)

// DeployRenderer renders declare and deploy results
type DeployRenderer struct {
	out    io.Writer
	format string
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, format string) *DeployRenderer {
	return &DeployRenderer{out: out, format: format}
}

// RenderDeclare renders the result of a declaration
func (r *DeployRenderer) RenderDeclare(result *usecase.DeclareContractResult) error {
	if IsStructured(r.format) {
		return WriteStructured(r.out, r.format, result.Declaration)
	}

	decl := result.Declaration
	if decl.AlreadyDeclared {
		skipStyle.Fprintf(r.out, "⏭️  %s is already declared on %s\n", result.Contract.Name, result.Network.Name)
	} else {
		successStyle.Fprintf(r.out, "✅ Declared %s on %s\n", result.Contract.Name, result.Network.Name)
	}

	r.field("Class hash", nameStyle.Sprint(decl.ClassHash))
	if decl.TransactionHash != "" {
		r.field("Transaction", decl.TransactionHash)
		r.link(explorerLink(result.Network.ExplorerURL, "tx", decl.TransactionHash))
	}
	r.field("Account", result.Account)
	return nil
}

// RenderDeploy renders the result of a deployment, or of a dry run
func (r *DeployRenderer) RenderDeploy(result *usecase.DeployContractResult) error {
	if IsStructured(r.format) {
		if result.Deployment != nil {
			return WriteStructured(r.out, r.format, result.Deployment)
		}
		return WriteStructured(r.out, r.format, map[string]any{
			"contract_name":     result.Contract.Name,
			"class_hash":        result.Declaration.ClassHash,
			"predicted_address": result.PredictedAddress,
			"dry_run":           true,
		})
	}

	if result.DryRun {
		headerStyle.Fprintf(r.out, "Dry run: %s\n", result.Contract.Name)
		r.field("Class hash", nameStyle.Sprint(result.Declaration.ClassHash))
		r.field("Predicted address", result.PredictedAddress)
		return nil
	}

	dep := result.Deployment
	successStyle.Fprintf(r.out, "🚀 Deployed %s on %s\n", dep.ContractName, dep.Network)
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	r.field("Contract address", nameStyle.Sprint(dep.ContractAddress))
	r.link(explorerLink(result.Network.ExplorerURL, "contract", dep.ContractAddress))
	r.field("Class hash", dep.ClassHash)
	if dep.AlreadyDeclared {
		r.field("Declaration", skipStyle.Sprint("already declared"))
	} else {
		r.field("Declaration tx", dep.DeclarationTx)
	}
	r.field("Deployment tx", dep.DeploymentTx)
	r.link(explorerLink(result.Network.ExplorerURL, "tx", dep.DeploymentTx))
	r.field("Salt", dep.Salt)
	if dep.ChainID != "" {
		r.field("Chain", dep.ChainID)
	}
	if result.Path != "" {
		fmt.Fprintf(r.out, "\n📁 Deployment info saved to: %s\n", pathStyle.Sprint(result.Path))
	}

	r.renderClientConstants(dep)
	return nil
}

// renderClientConstants prints the values a mobile client needs to talk to the contract
func (r *DeployRenderer) renderClientConstants(dep *models.Deployment) {
	fmt.Fprintln(r.out)
	headerStyle.Fprintln(r.out, "Client constants:")
	fmt.Fprintf(r.out, "  %s\n", codeStyle.Sprintf("contractAddress = '%s';", dep.ContractAddress))
	if dep.RPCURL != "" {
		fmt.Fprintf(r.out, "  %s\n", codeStyle.Sprintf("rpcUrl = '%s';", dep.RPCURL))
	}
}

func (r *DeployRenderer) field(label, value string) {
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprintf("%-18s", label+":"), value)
}

func (r *DeployRenderer) link(url string) {
	if url != "" {
		fmt.Fprintf(r.out, "  %-18s %s\n", "", pathStyle.Sprint(url))
	}
}
