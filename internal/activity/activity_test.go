package activity

import (
	"math/rand"
	"testing"
	"time"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestMachine_StartsActive(t *testing.T) {
	m := New(true, 10*time.Second, t0)
	if !m.Active() {
		t.Fatalf("expected initial state active")
	}
	if tr := m.Evaluate(t0, false); tr != TransitionNone {
		t.Fatalf("unexpected transition %v", tr)
	}
}

func TestMachine_TimeoutBlanksOnce(t *testing.T) {
	m := New(true, 10*time.Second, t0)

	if tr := m.Evaluate(t0.Add(10*time.Second), false); tr != TransitionNone || !m.Active() {
		t.Fatalf("exactly at the timeout the display must stay on")
	}

	blanks := 0
	for i := 1; i <= 50; i++ {
		if m.Evaluate(t0.Add(10*time.Second+time.Duration(i)*100*time.Millisecond), false) == TransitionBlank {
			blanks++
		}
	}
	if blanks != 1 {
		t.Fatalf("expected exactly one blank transition, got %d", blanks)
	}
	if m.State() != Inactive {
		t.Fatalf("expected inactive, got %v", m.State())
	}
}

func TestMachine_PressWakesAndExtends(t *testing.T) {
	m := New(true, 5*time.Second, t0)
	m.Evaluate(t0.Add(6*time.Second), false)
	if m.Active() {
		t.Fatalf("expected inactive after timeout")
	}

	wake := t0.Add(20 * time.Second)
	if tr := m.Evaluate(wake, true); tr != TransitionWake {
		t.Fatalf("expected wake transition, got %v", tr)
	}
	if !m.LastActivation().Equal(wake) {
		t.Fatalf("press must reset the activation time")
	}

	// re-press while active only moves the deadline
	if tr := m.Evaluate(wake.Add(4*time.Second), true); tr != TransitionNone {
		t.Fatalf("re-press while active should not transition, got %v", tr)
	}
	if tr := m.Evaluate(wake.Add(8*time.Second), false); tr != TransitionNone || !m.Active() {
		t.Fatalf("re-press should have extended the window")
	}
	if got := m.Remaining(wake.Add(8 * time.Second)); got != time.Second {
		t.Fatalf("expected 1s remaining, got %v", got)
	}
}

func TestMachine_UngatedAlwaysActive(t *testing.T) {
	m := New(false, time.Millisecond, t0)
	for i := 0; i < 10000; i++ {
		if tr := m.Evaluate(t0.Add(time.Duration(i)*time.Hour), false); tr != TransitionNone {
			t.Fatalf("ungated machine transitioned at step %d", i)
		}
		if !m.Active() {
			t.Fatalf("ungated machine went inactive at step %d", i)
		}
	}
}

// For random press/advance sequences the state must equal
// now-lastActivation <= timeout.
func TestMachine_ActiveIffWithinTimeout(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	timeout := 3 * time.Second

	for run := 0; run < 200; run++ {
		now := t0
		m := New(true, timeout, now)
		last := now

		for step := 0; step < 100; step++ {
			now = now.Add(time.Duration(rng.Intn(2000)) * time.Millisecond)
			pressed := rng.Intn(5) == 0
			if pressed {
				last = now
			}
			m.Evaluate(now, pressed)

			want := now.Sub(last) <= timeout
			if m.Active() != want {
				t.Fatalf("run %d step %d: active=%v, want %v (since press %v)",
					run, step, m.Active(), want, now.Sub(last))
			}
		}
	}
}
