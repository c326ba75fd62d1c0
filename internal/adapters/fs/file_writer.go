package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// ResultWriterAdapter writes result records as indented JSON into the output directory
type ResultWriterAdapter struct {
	outDir string
	log    *slog.Logger
}

// NewResultWriterAdapter creates a new result writer rooted at the configured output directory
func NewResultWriterAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *ResultWriterAdapter {
	outDir := cfg.OutDir
	if outDir == "" {
		outDir = cfg.ProjectRoot
	}
	return &ResultWriterAdapter{
		outDir: outDir,
		log:    log.With("component", "ResultWriter"),
	}
}

// WriteJSON writes v to <outDir>/<name>
func (w *ResultWriterAdapter) WriteJSON(ctx context.Context, name string, v any) (string, error) {
	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	data = append(data, '\n')

	path := filepath.Join(w.outDir, name)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", err
	}

	w.log.Debug("wrote result file", "path", path, "bytes", len(data))
	return path, nil
}

var _ usecase.ResultWriter = (*ResultWriterAdapter)(nil)
