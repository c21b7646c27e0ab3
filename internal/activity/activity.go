// Package activity decides whether the display is rendering or blanked,
// from a level-sensed button and an inactivity timeout.
package activity

import "time"

type State int

const (
	Active State = iota
	Inactive
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// Transition tells the caller which side effect, if any, an evaluation
// requires.
type Transition int

const (
	TransitionNone Transition = iota
	// TransitionWake: the button brought the display back from Inactive.
	TransitionWake
	// TransitionBlank: the timeout elapsed; blank the panel exactly once.
	TransitionBlank
)

// Machine is the activity state. Gating disabled pins it Active.
type Machine struct {
	gated          bool
	timeout        time.Duration
	state          State
	lastActivation time.Time
}

// New starts Active with lastActivation at now, so the first frame renders
// immediately.
func New(gated bool, timeout time.Duration, now time.Time) *Machine {
	return &Machine{
		gated:          gated,
		timeout:        timeout,
		state:          Active,
		lastActivation: now,
	}
}

// Evaluate runs one tick of the machine. pressed is the current button
// level; holding or re-pressing while Active extends the window.
func (m *Machine) Evaluate(now time.Time, pressed bool) Transition {
	if !m.gated {
		return TransitionNone
	}

	if pressed {
		m.lastActivation = now
		if m.state == Inactive {
			m.state = Active
			return TransitionWake
		}
		return TransitionNone
	}

	if m.state == Active && now.Sub(m.lastActivation) > m.timeout {
		m.state = Inactive
		return TransitionBlank
	}
	return TransitionNone
}

func (m *Machine) State() State { return m.state }

func (m *Machine) Active() bool { return m.state == Active }

func (m *Machine) LastActivation() time.Time { return m.lastActivation }

func (m *Machine) Gated() bool { return m.gated }

// Remaining is how long the display stays on without another press. It is
// zero when Inactive and meaningless when gating is disabled.
func (m *Machine) Remaining(now time.Time) time.Duration {
	if m.state != Active {
		return 0
	}
	left := m.timeout - now.Sub(m.lastActivation)
	if left < 0 {
		return 0
	}
	return left
}
