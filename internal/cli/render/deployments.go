package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// Color styles for table format
var (
	networkBg          = color.BgCyan
	networkHeader      = color.New(networkBg, color.FgBlack)
	networkHeaderBold  = color.New(networkBg, color.FgBlack, color.Bold)
	addressStyle       = color.New(color.FgWhite)
	timestampStyle     = color.New(color.Faint)
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
)

// DeploymentsRenderer renders deployment lists grouped by network
type DeploymentsRenderer struct {
	out    io.Writer
	format string
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, format string) *DeploymentsRenderer {
	return &DeploymentsRenderer{
		out:    out,
		format: format,
	}
}

// RenderDeploymentList renders one table per network followed by a summary
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if IsStructured(r.format) {
		return WriteStructured(r.out, r.format, result.Deployments)
	}

	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	byNetwork := lo.GroupBy(result.Deployments, func(d *models.Deployment) string { return d.Network })
	networks := lo.Keys(byNetwork)
	sort.Strings(networks)

	for i, network := range networks {
		deployments := byNetwork[network]
		if i > 0 {
			fmt.Fprintln(r.out)
		}

		chain := ""
		if deployments[0].ChainID != "" {
			chain = " (" + deployments[0].ChainID + ")"
		}
		fmt.Fprintln(r.out, networkHeader.Sprint(" ⛓ network: ")+networkHeaderBold.Sprintf("%-30s", Title(network)+chain))
		r.renderTable(deployments)
	}

	fmt.Fprintln(r.out)
	sectionHeaderStyle.Fprintf(r.out, "Total: %d deployment(s) across %d network(s)\n", result.Summary.Total, len(result.Summary.ByNetwork))
	return nil
}

func (r *DeploymentsRenderer) renderTable(deployments []*models.Deployment) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignRight},
	})
	t.AppendHeader(table.Row{"Contract", "Address", "Class Hash", "Deployed"})

	for _, dep := range deployments {
		t.AppendRow(table.Row{
			nameStyle.Sprint(dep.ContractName),
			addressStyle.Sprint(dep.ContractAddress),
			models.ShortAddress(dep.ClassHash),
			timestampStyle.Sprint(dep.DeployedAt.Local().Format("2006-01-02 15:04:05")),
		})
	}
	t.Render()
}
