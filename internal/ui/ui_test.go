package ui

import (
	"context"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/oledstat/internal/button"
	"github.com/Dicklesworthstone/oledstat/internal/display"
)

func TestHalfBlocks(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(0, 0, color.Gray{Y: 255})
	img.SetGray(1, 1, color.Gray{Y: 255})
	img.SetGray(2, 0, color.Gray{Y: 255})
	img.SetGray(2, 1, color.Gray{Y: 255})

	if got := halfBlocks(img); got != "▀▄█" {
		t.Fatalf("unexpected rendering %q", got)
	}
}

func TestSink_PublishesLatestFrame(t *testing.T) {
	f, _ := display.LoadFont("")
	s := NewSink(display.NewCanvas(128, 32, f, 8, nil))

	s.Clear()
	s.DrawText(0, -2, "first")
	if err := s.Present(); err != nil {
		t.Fatal(err)
	}
	s.Clear()
	s.DrawText(0, -2, "second")
	if err := s.Present(); err != nil {
		t.Fatal(err)
	}

	select {
	case snap := <-s.Stream():
		if got := snap.Frame.Texts(); len(got) != 1 || got[0] != "second" {
			t.Fatalf("expected only the newest frame, got %v", got)
		}
		if snap.Pixels.Bounds() != image.Rect(0, 0, 128, 32) {
			t.Fatalf("unexpected pixel bounds %v", snap.Pixels.Bounds())
		}
	default:
		t.Fatalf("no snapshot published")
	}
}

func TestModel_SpacePressesLatch(t *testing.T) {
	latch := button.NewLatch(time.Minute)
	m := New(nil, latch, func() {})

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !latch.Pressed() {
		t.Fatalf("space should press the latch")
	}
}

func TestModel_QuitCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := New(nil, nil, cancel)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if ctx.Err() == nil {
		t.Fatalf("quit should cancel the render loop")
	}
}

func TestModel_ViewShowsLines(t *testing.T) {
	f, _ := display.LoadFont("")
	s := NewSink(display.NewCanvas(128, 32, f, 8, nil))
	s.Clear()
	s.DrawText(0, -2, "IP: 10.0.0.7")
	_ = s.Present()

	m := New(s.Stream(), nil, func() {})
	m.Update(tickMsg{})

	if v := m.View(); !strings.Contains(v, "IP: 10.0.0.7") {
		t.Fatalf("view missing line text:\n%s", v)
	}
}
