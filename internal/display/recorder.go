package display

import (
	"sync"

	"github.com/Dicklesworthstone/oledstat/internal/model"
)

// Recorder is a Sink that keeps every presented frame. Blank presents are
// recorded as empty frames. Set Fail to make Present return an error.
type Recorder struct {
	mu      sync.Mutex
	pending []model.Line
	frames  []model.Frame

	Fail error
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Clear() {
	r.mu.Lock()
	r.pending = nil
	r.mu.Unlock()
}

func (r *Recorder) DrawText(_, y int, text string) {
	r.mu.Lock()
	r.pending = append(r.pending, model.Line{Y: y, Text: text})
	r.mu.Unlock()
}

func (r *Recorder) Present() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail != nil {
		return r.Fail
	}
	lines := make([]model.Line, len(r.pending))
	copy(lines, r.pending)
	r.frames = append(r.frames, model.Frame{Lines: lines})
	return nil
}

// Frames returns a copy of everything presented so far.
func (r *Recorder) Frames() []model.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Blanks counts presented empty frames.
func (r *Recorder) Blanks() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, f := range r.frames {
		if f.Blank() {
			n++
		}
	}
	return n
}

// Last returns the most recent frame, if any.
func (r *Recorder) Last() (model.Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return model.Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}
