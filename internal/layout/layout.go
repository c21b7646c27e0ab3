// Package layout maps the number of enabled slots to a size class and turns
// samples into positioned text lines. The size class table is tuned to a
// 128x32 panel: every row trades label clarity for characters as the line
// count grows.
package layout

import "github.com/Dicklesworthstone/oledstat/internal/model"

// Verbosity selects how much labelling a line carries.
type Verbosity int

const (
	Full Verbosity = iota
	Abbreviated
	Minimal
)

func (v Verbosity) String() string {
	switch v {
	case Full:
		return "full"
	case Abbreviated:
		return "abbreviated"
	case Minimal:
		return "minimal"
	default:
		return "unknown"
	}
}

// SizeClass bundles the font and spacing used for a given line count.
type SizeClass struct {
	FontSize       int // pixels
	LinePitch      int // pixels between baselines of consecutive lines
	VerticalOffset int // y of the first line, may be negative
	Verbosity      Verbosity
}

var (
	oneLine    = SizeClass{FontSize: 22, LinePitch: 32, VerticalOffset: 2, Verbosity: Full}
	twoLines   = SizeClass{FontSize: 14, LinePitch: 16, VerticalOffset: -1, Verbosity: Abbreviated}
	threeLines = SizeClass{FontSize: 10, LinePitch: 11, VerticalOffset: -1, Verbosity: Minimal}
	manyLines  = SizeClass{FontSize: 8, LinePitch: 8, VerticalOffset: -2, Verbosity: Full}
)

// Plan returns the size class for enabledCount lines. It is total: counts
// outside 1..3 (including zero, which config validation rejects) fall back
// to the smallest font.
func Plan(enabledCount int) SizeClass {
	switch enabledCount {
	case 1:
		return oneLine
	case 2:
		return twoLines
	case 3:
		return threeLines
	default:
		return manyLines
	}
}

// Y returns the vertical position of the line at index.
func (c SizeClass) Y(index int) int { return c.VerticalOffset + index*c.LinePitch }

// Layout is the static arrangement derived once from configuration.
type Layout struct {
	Slots []model.Slot
	Class SizeClass
}

// New plans a layout for the enabled slots of set.
func New(set model.SlotSet) Layout {
	slots := set.Enabled()
	return Layout{Slots: slots, Class: Plan(len(slots))}
}

// Frame formats samples into positioned lines. Samples must be in the same
// order as l.Slots.
func (l Layout) Frame(samples []model.Sample) model.Frame {
	f := model.Frame{Lines: make([]model.Line, 0, len(samples))}
	for i, s := range samples {
		f.Lines = append(f.Lines, model.Line{
			Y:    l.Class.Y(i),
			Text: FormatLine(s, l.Class.Verbosity),
		})
	}
	return f
}
