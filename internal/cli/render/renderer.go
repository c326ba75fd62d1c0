package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type Renderer[T any] interface {
	Render(result T) error
}

// Output formats accepted by --format
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// IsStructured reports whether the format prints records instead of summaries
func IsStructured(format string) bool {
	return format == FormatJSON || format == FormatYAML
}

// WriteStructured writes v as indented JSON or as YAML.
// YAML keys follow the JSON field names so both formats describe the same record.
func WriteStructured(out io.Writer, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		_, err = fmt.Fprintln(out, string(data))
		return err
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return err
		}
		blockStyle(&node)

		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// blockStyle drops the flow style inherited from JSON
func blockStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}
