package interactive

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// multiSelectModel is the bubbletea model for multi-select
type multiSelectModel struct {
	items     []*models.Deployment
	cursor    int
	selected  map[int]bool
	title     string
	done      bool
	cancelled bool
}

// initialMultiSelectModel creates the initial model for multi-select
func initialMultiSelectModel(deployments []*models.Deployment, title string) multiSelectModel {
	return multiSelectModel{
		items:    deployments,
		selected: make(map[int]bool, len(deployments)),
		title:    title,
	}
}

// Init is the initial command for bubbletea
func (m multiSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ":
		m.selected[m.cursor] = !m.selected[m.cursor]
	case "a":
		// Toggle all: select everything unless everything is already selected
		all := len(m.selectedIndices()) == len(m.items)
		for i := range m.items {
			m.selected[i] = !all
		}
	case "enter":
		if len(m.selectedIndices()) > 0 {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// selectedIndices returns the selected item indices in list order
func (m multiSelectModel) selectedIndices() []int {
	var indices []int
	for i := range m.items {
		if m.selected[i] {
			indices = append(indices, i)
		}
	}
	return indices
}

// View renders the UI
func (m multiSelectModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(color.New(color.FgCyan, color.Bold).Sprintf("%s\n\n", m.title))

	for i, item := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = color.New(color.FgCyan).Sprint("▸")
		}

		checkbox := color.New(color.FgWhite).Sprint("○")
		if m.selected[i] {
			checkbox = color.New(color.FgGreen).Sprint("✓")
		}

		name := color.New(color.FgWhite, color.Bold).Sprint(item.ContractName)
		address := color.New(color.FgWhite).Sprint(models.ShortAddress(item.ContractAddress))
		network := color.New(color.FgYellow).Sprintf("(%s)", item.Network)

		b.WriteString(fmt.Sprintf("%s %s %s %s %s\n", cursor, checkbox, name, address, network))
	}

	b.WriteString("\n")
	b.WriteString(color.New(color.FgYellow).Sprint("↑/↓: move  Space: toggle  a: all  Enter: confirm  q: quit\n"))

	return b.String()
}

// MultiSelectAdapter selects several deployments with a bubbletea checklist
type MultiSelectAdapter struct {
	config *config.RuntimeConfig
}

// NewMultiSelectAdapter creates a new multi-select adapter
func NewMultiSelectAdapter(cfg *config.RuntimeConfig) *MultiSelectAdapter {
	return &MultiSelectAdapter{config: cfg}
}

// SelectDeployments shows a multi-select interface and returns the chosen deployments
func (a *MultiSelectAdapter) SelectDeployments(ctx context.Context, deployments []*models.Deployment, prompt string) ([]*models.Deployment, error) {
	if a.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}
	if len(deployments) == 0 {
		return nil, fmt.Errorf("no deployments to select")
	}

	p := tea.NewProgram(initialMultiSelectModel(deployments, prompt), tea.WithContext(ctx))

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("multi-select failed: %w", err)
	}

	return selectionResult(finalModel.(multiSelectModel))
}

// selectionResult maps the final model to the chosen deployments
func selectionResult(m multiSelectModel) ([]*models.Deployment, error) {
	if m.cancelled || !m.done {
		return nil, fmt.Errorf("selection cancelled")
	}

	indices := m.selectedIndices()
	if len(indices) == 0 {
		return nil, fmt.Errorf("no deployments selected")
	}

	selected := make([]*models.Deployment, 0, len(indices))
	for _, i := range indices {
		selected = append(selected, m.items[i])
	}
	return selected, nil
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentMultiSelector = (*MultiSelectAdapter)(nil)
