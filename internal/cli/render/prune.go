package render

import (
	"fmt"
	"io"

	"github.com/starknet-mobile/starkdeploy/internal/domain"
)

// PruneRenderer renders prune-related output
type PruneRenderer struct {
	out io.Writer
}

// NewPruneRenderer creates a new prune renderer
func NewPruneRenderer(out io.Writer) *PruneRenderer {
	return &PruneRenderer{
		out: out,
	}
}

// RenderItemsToPrune renders the records that will be (or were) removed
func (r *PruneRenderer) RenderItemsToPrune(items domain.ItemsToPrune) error {
	if items.Empty() {
		fmt.Fprintln(r.out, "✅ Nothing to prune.")
		return nil
	}

	fmt.Fprintf(r.out, "🗑️  Found %d deployment(s) to prune:\n\n", len(items.Deployments))
	for _, item := range items.Deployments {
		fmt.Fprintf(r.out, "  - %s at %s (reason: %s)\n", item.ID, item.Address, item.Reason)
	}
	fmt.Fprintln(r.out)

	return nil
}
