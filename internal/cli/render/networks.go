package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out    io.Writer
	format string
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, format string) *NetworksRenderer {
	return &NetworksRenderer{
		out:    out,
		format: format,
	}
}

type networkRecord struct {
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl,omitempty"`
	ChainID string `json:"chainId,omitempty"`
	Current bool   `json:"current,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RenderNetworksList renders the known networks with their fetched chain ids
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if IsStructured(r.format) {
		return WriteStructured(r.out, r.format, lo.Map(result.Networks, func(n usecase.NetworkStatus, _ int) networkRecord {
			record := networkRecord{Name: n.Name, RPCURL: n.RPCURL, ChainID: n.ChainID, Current: n.Name == result.Current}
			if n.Error != nil {
				record.Error = n.Error.Error()
			}
			return record
		}))
	}

	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "Network", "Chain ID", "RPC URL"})
	for _, network := range result.Networks {
		marker := " "
		if network.Name == result.Current {
			marker = color.New(color.FgCyan).Sprint("▸")
		}

		if network.Error != nil {
			t.AppendRow(table.Row{marker, network.Name, color.New(color.FgRed).Sprintf("❌ %v", network.Error), network.RPCURL})
			continue
		}
		t.AppendRow(table.Row{marker, network.Name, color.New(color.FgGreen).Sprintf("✅ %s", network.ChainID), network.RPCURL})
	}
	t.Render()

	return nil
}
