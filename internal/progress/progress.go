// Package progress renders terminal feedback for long-running downloads as
// an explicit state machine: idle until a task starts, an indeterminate
// spinner while the size of the work is unknown, and a counted bar once it
// is. Transitions are explicit start/stop calls, never implicit flags.
package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// State is the reporter's current rendering mode.
type State int

const (
	// StateIdle means nothing is being rendered.
	StateIdle State = iota
	// StateLoading means an indeterminate spinner is visible.
	StateLoading
	// StateProgressShown means a counted progress bar is visible.
	StateProgressShown
)

const (
	spinnerTotal = -1
	spinnerType  = 14
	barWidth     = 40
)

// Reporter drives at most one spinner or progress bar at a time. A disabled
// reporter accepts every transition and renders nothing, which keeps the
// command layer free of terminal checks.
type Reporter struct {
	writer  io.Writer
	enabled bool
	state   State
	bar     *progressbar.ProgressBar
}

// NewReporter constructs a reporter writing to the given writer. Pass
// enabled=false for quiet mode or non-terminal output.
func NewReporter(writer io.Writer, enabled bool) *Reporter {
	return &Reporter{writer: writer, enabled: enabled, state: StateIdle}
}

// State returns the current rendering state.
func (reporter *Reporter) State() State {
	return reporter.state
}

// StartSpinner transitions Idle -> Loading. Starting while already rendering
// first stops the previous display.
func (reporter *Reporter) StartSpinner(label string) {
	reporter.Stop()
	reporter.state = StateLoading
	if !reporter.enabled {
		return
	}
	reporter.bar = progressbar.NewOptions(spinnerTotal,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWriter(reporter.writer),
		progressbar.OptionSpinnerType(spinnerType),
		progressbar.OptionClearOnFinish(),
	)
}

// StartProgress transitions to ProgressShown with a known total, replacing a
// running spinner.
func (reporter *Reporter) StartProgress(label string, total int) {
	reporter.Stop()
	reporter.state = StateProgressShown
	if !reporter.enabled {
		return
	}
	reporter.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWriter(reporter.writer),
		progressbar.OptionSetWidth(barWidth),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// Advance moves the progress bar forward. It is a no-op outside
// ProgressShown.
func (reporter *Reporter) Advance(count int) {
	if reporter.state != StateProgressShown || reporter.bar == nil {
		return
	}
	_ = reporter.bar.Add(count)
}

// Set moves the progress bar to an absolute position. It is a no-op outside
// ProgressShown.
func (reporter *Reporter) Set(position int) {
	if reporter.state != StateProgressShown || reporter.bar == nil {
		return
	}
	_ = reporter.bar.Set(position)
}

// Stop clears any visible display and returns to Idle. Stopping an idle
// reporter is a no-op.
func (reporter *Reporter) Stop() {
	if reporter.state == StateIdle {
		return
	}
	if reporter.bar != nil {
		_ = reporter.bar.Finish()
		reporter.bar = nil
	}
	reporter.state = StateIdle
}
