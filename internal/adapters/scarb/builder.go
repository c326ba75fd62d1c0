package scarb

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// BuilderAdapter runs scarb build with streaming output
type BuilderAdapter struct {
	log         *slog.Logger
	projectRoot string
	binary      string
}

// NewBuilderAdapter creates a new scarb builder
func NewBuilderAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *BuilderAdapter {
	return &BuilderAdapter{
		log:         log.With("component", "ScarbBuilder"),
		projectRoot: cfg.ProjectRoot,
		binary:      "scarb",
	}
}

// Build runs scarb build under a PTY so scarb keeps its colored output
func (b *BuilderAdapter) Build(ctx context.Context, out io.Writer) error {
	start := time.Now()
	b.log.Debug("running scarb build", "dir", b.projectRoot)

	cmd := exec.CommandContext(ctx, b.binary, "build")
	cmd.Dir = b.projectRoot

	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", b.binary, err)
	}
	defer func() {
		_ = ptyFile.Close()
	}()

	if out == nil {
		out = io.Discard
	}
	var output bytes.Buffer
	// reading the pty returns EIO once the child exits
	_, _ = io.Copy(io.MultiWriter(out, &output), ptyFile)

	err = cmd.Wait()
	duration := time.Since(start)
	if err != nil {
		b.log.Error("scarb build failed", "error", err, "duration", duration)
		return fmt.Errorf("scarb build failed: %w\nOutput: %s", err, output.String())
	}

	b.log.Debug("scarb build completed successfully", "duration", duration)
	return nil
}

// Ensure the adapter implements the interface
var _ usecase.ProjectBuilder = (*BuilderAdapter)(nil)
