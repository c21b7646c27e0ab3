// Package ui is a terminal preview of the panel for machines without one.
// Frames rendered by the normal canvas are streamed to a Bubble Tea program
// that draws the pixels with half-block characters.
package ui

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/oledstat/internal/button"
	"github.com/Dicklesworthstone/oledstat/internal/display"
	"github.com/Dicklesworthstone/oledstat/internal/model"
)

// Snapshot is one presented frame.
type Snapshot struct {
	At     time.Time
	Pixels *image.Gray
	Frame  model.Frame
}

// Sink renders into a canvas and publishes a copy of every presented frame.
type Sink struct {
	canvas *display.Canvas
	out    chan Snapshot
}

var _ display.Sink = (*Sink)(nil)

func NewSink(c *display.Canvas) *Sink {
	return &Sink{canvas: c, out: make(chan Snapshot, 1)}
}

func (s *Sink) Clear()                         { s.canvas.Clear() }
func (s *Sink) DrawText(x, y int, text string) { s.canvas.DrawText(x, y, text) }

// Present never blocks: a frame the UI has not picked up yet is replaced.
func (s *Sink) Present() error {
	if err := s.canvas.Present(); err != nil {
		return err
	}
	src := s.canvas.Image()
	px := image.NewGray(src.Bounds())
	draw.Draw(px, px.Bounds(), src, src.Bounds().Min, draw.Src)
	snap := Snapshot{At: time.Now(), Pixels: px, Frame: s.canvas.Frame()}

	select {
	case <-s.out:
	default:
	}
	s.out <- snap
	return nil
}

// Stream is the channel the UI reads frames from.
func (s *Sink) Stream() <-chan Snapshot { return s.out }

// Model renders the latest snapshot.
type Model struct {
	latest  Snapshot
	have    bool
	stream  <-chan Snapshot
	latch   *button.Latch
	cancel  context.CancelFunc
	presses int
}

func New(stream <-chan Snapshot, latch *button.Latch, cancel context.CancelFunc) *Model {
	return &Model{stream: stream, latch: latch, cancel: cancel}
}

type tickMsg struct{}

func tickCmd() tea.Cmd { return tea.Tick(time.Second/10, func(time.Time) tea.Msg { return tickMsg{} }) }

func (m *Model) Init() tea.Cmd { return tickCmd() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeySpace {
			m.press()
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		case " ", "b":
			m.press()
		}
	case tickMsg:
		select {
		case snap, ok := <-m.stream:
			if ok {
				m.latest = snap
				m.have = true
			}
		default:
		}
		return m, tickCmd()
	}
	return m, nil
}

func (m *Model) press() {
	if m.latch != nil {
		m.latch.Press()
		m.presses++
	}
}

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Foreground(lipgloss.Color("117"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
)

func (m *Model) View() string {
	header := titleStyle.Render("oledstat preview")
	if !m.have {
		return lipgloss.JoinVertical(lipgloss.Left, header, subtleStyle.Render("waiting for first frame..."))
	}

	status := "rendering"
	if m.latest.Frame.Blank() {
		status = "blanked (press space)"
	}
	header += "  " + subtleStyle.Render(fmt.Sprintf("%s  %s  presses:%d",
		m.latest.At.Format("15:04:05"), status, m.presses))

	lines := make([]string, 0, len(m.latest.Frame.Lines))
	for _, l := range m.latest.Frame.Lines {
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render(fmt.Sprintf("y=%3d", l.Y)), l.Text))
	}

	help := subtleStyle.Render("space/b: button   q: quit")
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		panelStyle.Render(halfBlocks(m.latest.Pixels)),
		strings.Join(lines, "\n"),
		help)
}

// halfBlocks packs two pixel rows into one terminal row.
func halfBlocks(img *image.Gray) string {
	if img == nil {
		return ""
	}
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := lit(img, x, y)
			bottom := y+1 < b.Max.Y && lit(img, x, y+1)
			switch {
			case top && bottom:
				sb.WriteString("█")
			case top:
				sb.WriteString("▀")
			case bottom:
				sb.WriteString("▄")
			default:
				sb.WriteByte(' ')
			}
		}
		if y+2 < b.Max.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func lit(img *image.Gray, x, y int) bool { return img.GrayAt(x, y).Y >= 0x80 }

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(stream <-chan Snapshot, latch *button.Latch, cancel context.CancelFunc) error {
	prog := tea.NewProgram(New(stream, latch, cancel), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
