package model

// CPUStatus is a one-shot CPU snapshot.
type CPUStatus struct {
	Percent    float64 // 0-100, single snapshot
	TempC      float64 // rounded to 0.1
	TempOK     bool    // false when the thermal zone could not be read
	LowVoltage bool    // under-voltage detected right now
}

// MemoryStatus is RAM usage in whole megabytes (truncated).
type MemoryStatus struct {
	UsedMB  uint64
	TotalMB uint64
}

// DiskStatus is filesystem usage in gigabytes rounded to 0.1.
type DiskStatus struct {
	UsedGB  float64
	TotalGB float64
	Percent float64
}

// Sample is the per-tick value of one slot. Exactly one payload field is
// meaningful for a given Slot. Degraded means the read failed and the line
// must show a placeholder instead.
type Sample struct {
	Slot     Slot
	Degraded bool

	Text   string // Hostname, IPAddress
	CPU    CPUStatus
	Memory MemoryStatus
	Disk   DiskStatus
}

// DegradedSample returns the placeholder sample for s.
func DegradedSample(s Slot) Sample { return Sample{Slot: s, Degraded: true} }

// Line is one rendered text row at vertical position Y.
type Line struct {
	Y    int
	Text string
}

// Frame is a fully rebuilt readout. An empty frame blanks the panel.
type Frame struct {
	Lines []Line
}

// Blank reports whether the frame draws nothing.
func (f Frame) Blank() bool { return len(f.Lines) == 0 }

// Texts returns the line texts in order.
func (f Frame) Texts() []string {
	out := make([]string, len(f.Lines))
	for i, l := range f.Lines {
		out[i] = l.Text
	}
	return out
}
