package usecase

import (
	"context"
	"fmt"
	"io"
)

// BuildProjectParams contains parameters for building the project
type BuildProjectParams struct {
	Output io.Writer
}

// BuildProject compiles the Scarb project
type BuildProject struct {
	builder ProjectBuilder
	sink    ProgressSink
}

// NewBuildProject creates a new BuildProject use case
func NewBuildProject(builder ProjectBuilder, sink ProgressSink) *BuildProject {
	return &BuildProject{builder: builder, sink: sink}
}

// Run executes the use case
func (uc *BuildProject) Run(ctx context.Context, params BuildProjectParams) error {
	out := params.Output
	if out == nil {
		out = io.Discard
	}
	if err := uc.builder.Build(ctx, out); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	return nil
}
