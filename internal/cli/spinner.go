package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner draws a one-line progress indicator on w until stopped or until
// its context ends. The message can change while it runs.
type Spinner struct {
	w       io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
	started atomic.Bool
	halted  atomic.Bool // stopped by Stop rather than by the parent context

	mu      sync.Mutex
	message string
	width   int // widest line drawn, for clearing
}

// newSpinner creates a spinner writing to w.
func newSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
		message: message,
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.started.Store(true)
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = max(s.width, len(s.message)+2)
	pad := strings.Repeat(" ", s.width-len(s.message)-2)
	fmt.Fprintf(s.w, "\r%s %s%s", styleIconSpinner.Render(frame), StyleDim.Render(s.message), pad)
}

// SetMessage replaces the text shown next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
}

// Message returns the current text.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Stop ends the animation and clears the line. It is safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.halted.Store(s.ctx.Err() == nil)
		s.cancel()
		if s.started.Load() {
			<-s.stopped
		}
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width+2))
	}
}

// Cancelled reports whether the parent context ended the spinner before Stop.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil && !s.halted.Load()
}

// stageSpinner shows the running pipeline stage on a spinner and forwards
// every event to the hooks that were installed before it.
type stageSpinner struct {
	next    observability.PipelineHooks
	spinner *Spinner
	label   string
}

func (h *stageSpinner) OnStageStart(ctx context.Context, stage string, size int) {
	h.spinner.SetMessage(fmt.Sprintf("%s: %s (%d)", h.label, stage, size))
	h.next.OnStageStart(ctx, stage, size)
}

func (h *stageSpinner) OnStageComplete(ctx context.Context, stage string, d time.Duration, err error) {
	h.next.OnStageComplete(ctx, stage, d, err)
}

func (h *stageSpinner) OnDiagnostic(ctx context.Context, kind string) {
	h.next.OnDiagnostic(ctx, kind)
}

// trackStages runs a spinner labelled with the current pipeline stage until
// the returned function is called, which also restores the previous hooks.
func (c *CLI) trackStages(ctx context.Context, label string) func() {
	prev := observability.Pipeline()
	s := newSpinner(ctx, c.errOut, label)
	observability.SetPipelineHooks(&stageSpinner{next: prev, spinner: s, label: label})
	s.Start()
	return func() {
		s.Stop()
		observability.SetPipelineHooks(prev)
	}
}
