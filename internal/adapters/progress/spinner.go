package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// SpinnerProgressReporter implements progress reporting with a spinner
type SpinnerProgressReporter struct {
	out          io.Writer
	spinner      *spinner.Spinner
	stages       []stageInfo
	currentStage usecase.ExecutionStage
}

type stageInfo struct {
	Stage     usecase.ExecutionStage
	StartTime time.Time
	EndTime   time.Time
	Status    string
	Message   string
}

// NewSpinnerProgressReporter creates a spinner-based progress reporter writing to stderr
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return NewSpinnerProgressReporterTo(os.Stderr)
}

// NewSpinnerProgressReporterTo creates a spinner-based progress reporter writing to out
func NewSpinnerProgressReporterTo(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		out:     out,
		spinner: s,
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	stage := usecase.ExecutionStage(event.Stage)
	if stage != "" && stage != r.currentStage {
		r.enterStage(stage)
	}
	if len(r.stages) > 0 && event.Message != "" {
		r.stages[len(r.stages)-1].Message = event.Message
	}

	if stage == usecase.StageCompleted {
		r.stop()
		return
	}

	if event.Spinner {
		r.spinner.Suffix = " " + r.display()
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	r.stop()
	if event.Message != "" {
		color.New(color.Faint).Fprintln(r.out, event.Message)
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.printPaused(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.printPaused(color.New(color.FgRed), message)
}

// Stages returns the stages seen so far, in order
func (r *SpinnerProgressReporter) Stages() []usecase.ExecutionStage {
	stages := make([]usecase.ExecutionStage, len(r.stages))
	for i, s := range r.stages {
		stages[i] = s.Stage
	}
	return stages
}

func (r *SpinnerProgressReporter) printPaused(c *color.Color, message string) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

func (r *SpinnerProgressReporter) stop() {
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// enterStage completes the running stage and records the new one
func (r *SpinnerProgressReporter) enterStage(stage usecase.ExecutionStage) {
	now := time.Now()
	if n := len(r.stages); n > 0 && r.stages[n-1].Status == "running" {
		r.stages[n-1].EndTime = now
		r.stages[n-1].Status = "completed"
	}

	r.currentStage = stage
	r.stages = append(r.stages, stageInfo{
		Stage:     stage,
		StartTime: now,
		Status:    "running",
	})
}

// display renders the stage trail with the message of the running stage
func (r *SpinnerProgressReporter) display() string {
	parts := make([]string, 0, len(r.stages))
	for _, stage := range r.stages {
		var icon string
		var stageColor *color.Color

		switch stage.Status {
		case "completed":
			icon = "✓"
			stageColor = color.New(color.FgGreen)
		case "running":
			icon = "●"
			stageColor = color.New(color.FgYellow)
		default:
			icon = "○"
			stageColor = color.New(color.FgWhite)
		}

		duration := ""
		if !stage.EndTime.IsZero() {
			duration = fmt.Sprintf(" (%s)", stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond))
		}
		parts = append(parts, fmt.Sprintf("%s %s%s", icon, stageColor.Sprint(string(stage.Stage)), duration))
	}

	display := strings.Join(parts, " → ")
	if n := len(r.stages); n > 0 && r.stages[n-1].Message != "" {
		display += ": " + r.stages[n-1].Message
	}
	return display
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
