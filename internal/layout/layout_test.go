package layout

import (
	"testing"

	"github.com/Dicklesworthstone/oledstat/internal/model"
)

func TestPlan_Table(t *testing.T) {
	cases := []struct {
		count int
		want  SizeClass
	}{
		{1, SizeClass{22, 32, 2, Full}},
		{2, SizeClass{14, 16, -1, Abbreviated}},
		{3, SizeClass{10, 11, -1, Minimal}},
		{4, SizeClass{8, 8, -2, Full}},
		{5, SizeClass{8, 8, -2, Full}},
		{0, SizeClass{8, 8, -2, Full}},
	}

	for _, c := range cases {
		if got := Plan(c.count); got != c.want {
			t.Errorf("Plan(%d) = %+v, want %+v", c.count, got, c.want)
		}
	}
}

func TestFormatLine_Idempotent(t *testing.T) {
	samples := []model.Sample{
		{Slot: model.Hostname, Text: "raspberrypi-kitchen"},
		{Slot: model.CPU, CPU: model.CPUStatus{Percent: 12.5, TempC: 48.3, TempOK: true}},
		{Slot: model.Disk, Disk: model.DiskStatus{UsedGB: 5.2, TotalGB: 29.1, Percent: 17.9}},
		model.DegradedSample(model.Memory),
	}
	for _, s := range samples {
		for _, v := range []Verbosity{Full, Abbreviated, Minimal} {
			a := FormatLine(s, v)
			b := FormatLine(s, v)
			if a != b {
				t.Fatalf("FormatLine(%v, %v) not stable: %q vs %q", s.Slot, v, a, b)
			}
		}
	}
}

func TestFormatLine_TemperatureUnavailable(t *testing.T) {
	s := model.Sample{Slot: model.CPU, CPU: model.CPUStatus{Percent: 7.0}}

	got := FormatLine(s, Full)
	if got != "CPU: 7.0%  0°C" {
		t.Fatalf("unexpected line %q", got)
	}
}

func TestFormatLine_LowVoltageTakesPrecedence(t *testing.T) {
	s := model.Sample{
		Slot: model.CPU,
		CPU:  model.CPUStatus{Percent: 33.3, TempC: 51.2, TempOK: true, LowVoltage: true},
	}
	for _, v := range []Verbosity{Full, Abbreviated, Minimal} {
		if got := FormatLine(s, v); got != "LOW VOLT!" {
			t.Fatalf("verbosity %v: expected warning, got %q", v, got)
		}
	}
}

func TestFormatLine_Degraded(t *testing.T) {
	cases := []struct {
		slot model.Slot
		v    Verbosity
		want string
	}{
		{model.Hostname, Full, "Host: -"},
		{model.Hostname, Abbreviated, "-"},
		{model.IPAddress, Full, "IP: -"},
		{model.IPAddress, Minimal, "-"},
		{model.CPU, Full, "CPU: -"},
		{model.Memory, Minimal, "M: -"},
		{model.Disk, Full, "SD:  -"},
	}
	for _, c := range cases {
		if got := FormatLine(model.DegradedSample(c.slot), c.v); got != c.want {
			t.Errorf("%v/%v: got %q want %q", c.slot, c.v, got, c.want)
		}
	}
}

func TestLayout_TwoSlots(t *testing.T) {
	l := New(model.NewSlotSet(model.Hostname, model.IPAddress))

	if l.Class != (SizeClass{14, 16, -1, Abbreviated}) {
		t.Fatalf("unexpected size class %+v", l.Class)
	}

	f := l.Frame([]model.Sample{
		{Slot: model.Hostname, Text: "raspberrypi-kitchen"},
		{Slot: model.IPAddress, Text: "192.168.1.42"},
	})

	// Over 10 characters keeps the first 9 and appends "..".
	want := []model.Line{
		{Y: -1, Text: "raspberry.."},
		{Y: 15, Text: "192.168.1.42"},
	}
	if len(f.Lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(f.Lines))
	}
	for i := range want {
		if f.Lines[i] != want[i] {
			t.Fatalf("line %d: got %+v want %+v", i, f.Lines[i], want[i])
		}
	}
}

func TestLayout_ShortHostnameNotTruncated(t *testing.T) {
	if got := FormatLine(model.Sample{Slot: model.Hostname, Text: "pi-garage1"}, Abbreviated); got != "pi-garage1" {
		t.Fatalf("10 char hostname should be kept, got %q", got)
	}
}

func TestLayout_AllSlotsFullLabels(t *testing.T) {
	l := New(model.NewSlotSet(model.AllSlots...))

	if l.Class != (SizeClass{8, 8, -2, Full}) {
		t.Fatalf("unexpected size class %+v", l.Class)
	}

	f := l.Frame([]model.Sample{
		{Slot: model.Hostname, Text: "raspberrypi-kitchen"},
		{Slot: model.IPAddress, Text: "10.0.0.7"},
		{Slot: model.CPU, CPU: model.CPUStatus{Percent: 3.2, TempC: 47.8, TempOK: true}},
		{Slot: model.Memory, Memory: model.MemoryStatus{UsedMB: 412, TotalMB: 3794}},
		{Slot: model.Disk, Disk: model.DiskStatus{UsedGB: 4.1, TotalGB: 28.9, Percent: 14.9}},
	})

	want := []model.Line{
		{Y: -2, Text: "Host: raspberrypi-kitchen"},
		{Y: 6, Text: "IP: 10.0.0.7"},
		{Y: 14, Text: "CPU: 3.2%  47.8°C"},
		{Y: 22, Text: "RAM: 412/3794MB"},
		{Y: 30, Text: "SD:  4.1/28.9GB (14.9%)"},
	}
	for i := range want {
		if f.Lines[i] != want[i] {
			t.Errorf("line %d: got %+v want %+v", i, f.Lines[i], want[i])
		}
	}
}

func TestLayout_ThreeSlotsMinimal(t *testing.T) {
	l := New(model.NewSlotSet(model.IPAddress, model.Memory, model.Disk))

	f := l.Frame([]model.Sample{
		{Slot: model.IPAddress, Text: "10.0.0.7"},
		{Slot: model.Memory, Memory: model.MemoryStatus{UsedMB: 412, TotalMB: 3794}},
		{Slot: model.Disk, Disk: model.DiskStatus{UsedGB: 4.1, TotalGB: 28.9, Percent: 14.9}},
	})

	want := []string{"10.0.0.7", "M: 412/3794MB", "D: 4.1/28.9GB 14.9%"}
	got := f.Texts()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q want %q", i, got[i], want[i])
		}
	}
	if f.Lines[2].Y != 21 {
		t.Fatalf("expected third line at y=21, got %d", f.Lines[2].Y)
	}
}
