package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner draws a one-line progress indicator on w until stopped or until its
// context is canceled. With a non-zero total the line carries a done/total
// counter that workers advance concurrently with Advance.
type Spinner struct {
	w      io.Writer
	label  string
	total  int
	solved atomic.Int64

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	started  atomic.Bool
	stopOnce sync.Once
	stopped  chan struct{}
	mu       sync.Mutex
	width    int // widest line drawn, for clearing
}

// newSpinner creates a spinner bound to ctx. It does not draw until Start.
func newSpinner(ctx context.Context, w io.Writer, label string, total int) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		label:   label,
		total:   total,
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Advance records one more finished unit of work.
func (s *Spinner) Advance() {
	s.solved.Add(1)
}

// Done returns how many units have been recorded with Advance.
func (s *Spinner) Done() int {
	return int(s.solved.Load())
}

func (s *Spinner) message() string {
	if s.total <= 0 {
		return s.label
	}
	return fmt.Sprintf("%s %d/%d", s.label, s.Done(), s.total)
}

// Start begins drawing in the background.
func (s *Spinner) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
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
	msg := s.message()
	s.width = max(s.width, len(msg)+2)
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(msg))
}

// Stop halts drawing and clears the line. It is safe to call more than once,
// and before Start.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		if s.started.Load() {
			<-s.stopped
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.width > 0 {
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
		}
	})
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(format string, args ...any) {
	s.Stop()
	printSuccess(format, args...)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(format string, args ...any) {
	s.Stop()
	printError(format, args...)
}

// Cancelled reports whether the work was interrupted through the parent
// context, as opposed to stopped by the caller.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
