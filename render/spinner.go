package render

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var brailleFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// QuickSpinner returns spinner frames for use in simple loops.
// Call with incrementing index to animate.
func QuickSpinner(index int) string {
	return brailleFrames[index%len(brailleFrames)]
}

// Spinner animates a one-line status message on a terminal.
type Spinner struct {
	w        io.Writer
	message  string
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewSpinner creates a spinner writing to w.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{w: w, message: message, interval: 80 * time.Millisecond}
}

// Start begins the animation. Calling Start twice has no effect.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.stop, s.done)
}

func (s *Spinner) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for frame := 0; ; frame++ {
		fmt.Fprintf(s.w, "%s%s %s", ClearLine, QuickSpinner(frame), s.message)
		select {
		case <-stop:
			fmt.Fprint(s.w, ClearLine)
			return
		case <-ticker.C:
		}
	}
}

// Stop ends the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}
