package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

var (
	headerStyle   = color.New(color.FgCyan, color.Bold)
	labelStyle    = color.New(color.Faint)
	nameStyle     = color.New(color.FgYellow, color.Bold)
	hashStyle     = color.New(color.FgWhite)
	typeStyle     = color.New(color.FgMagenta)
	mutViewStyle  = color.New(color.FgGreen)
	mutWriteStyle = color.New(color.FgRed)
	pathStyle     = color.New(color.FgBlue)
)

// ContractRenderer renders contract metadata: extracted info, class hashes and selectors
type ContractRenderer struct {
	out    io.Writer
	format string
}

// NewContractRenderer creates a new contract renderer
func NewContractRenderer(out io.Writer, format string) *ContractRenderer {
	return &ContractRenderer{out: out, format: format}
}

// RenderExtract renders the extracted contract information
func (r *ContractRenderer) RenderExtract(result *usecase.ExtractContractResult) error {
	if IsStructured(r.format) {
		return WriteStructured(r.out, r.format, result.Info)
	}

	info := result.Info
	headerStyle.Fprintf(r.out, "Contract: %s\n", info.ContractName)
	fmt.Fprintln(r.out, strings.Repeat("=", 80))
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("Class version:"), info.ContractClassVersion)
	fmt.Fprintf(r.out, "  %s %d felts\n", labelStyle.Sprint("Sierra program:"), info.SierraProgramLength)
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("Entry points:"), formatCounts(info.EntryPointCounts))

	r.renderDefinitions(info.FunctionDefinitions)
	r.renderEntryPoints(info.Functions)

	if result.InfoPath != "" {
		fmt.Fprintln(r.out)
		fmt.Fprintf(r.out, "📁 Contract info saved to: %s\n", pathStyle.Sprint(result.InfoPath))
		fmt.Fprintf(r.out, "📁 ABI saved to: %s\n", pathStyle.Sprint(result.ABIPath))
	}
	return nil
}

func (r *ContractRenderer) renderDefinitions(definitions map[string]models.FunctionDefinition) {
	if len(definitions) == 0 {
		return
	}

	fmt.Fprintln(r.out)
	headerStyle.Fprintln(r.out, "Functions:")
	names := lo.Keys(definitions)
	sort.Strings(names)

	for _, name := range names {
		def := definitions[name]
		inputs := lo.Map(def.Inputs, func(in models.ABIInput, _ int) string {
			return fmt.Sprintf("%s: %s", in.Name, in.Type)
		})
		outputs := lo.Map(def.Outputs, func(out models.ABIOutput, _ int) string {
			return out.Type
		})

		signature := fmt.Sprintf("%s(%s)", nameStyle.Sprint(def.Name), strings.Join(inputs, ", "))
		if len(outputs) > 0 {
			signature += " -> " + strings.Join(outputs, ", ")
		}

		fmt.Fprintf(r.out, "  %s %s%s\n", typeStyle.Sprintf("%-12s", def.Type), signature, formatMutability(def.StateMutability))
		if def.Interface != "" {
			fmt.Fprintf(r.out, "  %-12s %s %s\n", "", labelStyle.Sprint("interface:"), def.Interface)
		}
		if def.Selector != "" {
			fmt.Fprintf(r.out, "  %-12s %s %s\n", "", labelStyle.Sprint("selector:"), hashStyle.Sprint(def.Selector))
		}
	}
}

func (r *ContractRenderer) renderEntryPoints(functions map[string]models.FunctionInfo) {
	if len(functions) == 0 {
		return
	}

	fmt.Fprintln(r.out)
	headerStyle.Fprintln(r.out, "Entry points:")

	entries := lo.Values(functions)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Type != entries[j].Type {
			return entryPointOrder(entries[i].Type) < entryPointOrder(entries[j].Type)
		}
		return entries[i].FunctionIndex < entries[j].FunctionIndex
	})

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Type", "Index", "Selector", "Name"})
	for _, fn := range entries {
		name := fn.Name
		if name == "" {
			name = labelStyle.Sprint("(unknown)")
		}
		t.AppendRow(table.Row{string(fn.Type), fn.FunctionIndex, fn.Selector, name})
	}
	t.Render()
}

// RenderClassHash renders a computed class hash with the class statistics
func (r *ContractRenderer) RenderClassHash(result *usecase.ComputeClassHashResult) error {
	if IsStructured(r.format) {
		return WriteStructured(r.out, r.format, result.Info)
	}

	headerStyle.Fprintf(r.out, "Contract: %s\n", result.Contract.Name)
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("Class version:"), result.Info.ContractClassVersion)
	fmt.Fprintf(r.out, "  %s %d felts\n", labelStyle.Sprint("Sierra program:"), result.ProgramLength)
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("Entry points:"), formatCounts(result.EntryPointCounts))
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%s %s\n", color.New(color.Bold).Sprint("Class hash:"), nameStyle.Sprint(result.Info.ClassHash))

	if result.Path != "" {
		fmt.Fprintf(r.out, "📁 Saved to: %s\n", pathStyle.Sprint(result.Path))
	}
	return nil
}

// RenderSelectors renders one selector per requested name
func (r *ContractRenderer) RenderSelectors(result *usecase.ComputeSelectorsResult) error {
	if IsStructured(r.format) {
		return WriteStructured(r.out, r.format, result.Selectors)
	}

	width := lo.Max(lo.Map(result.Selectors, func(s usecase.SelectorResult, _ int) int { return len(s.Name) }))
	for _, s := range result.Selectors {
		fmt.Fprintf(r.out, "%-*s  %s\n", width, s.Name, hashStyle.Sprint(s.Selector))
	}
	return nil
}

func formatCounts(counts map[models.EntryPointType]int) string {
	parts := lo.Map(models.EntryPointTypes(), func(t models.EntryPointType, _ int) string {
		return fmt.Sprintf("%s=%d", t, counts[t])
	})
	return strings.Join(parts, " ")
}

func formatMutability(mutability string) string {
	switch mutability {
	case "":
		return ""
	case "view":
		return " " + mutViewStyle.Sprintf("[%s]", mutability)
	default:
		return " " + mutWriteStyle.Sprintf("[%s]", mutability)
	}
}

func entryPointOrder(t models.EntryPointType) int {
	return lo.IndexOf(models.EntryPointTypes(), t)
}
