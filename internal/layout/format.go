package layout

import (
	"fmt"

	"github.com/Dicklesworthstone/oledstat/internal/model"
)

const (
	placeholder   = "-"
	lowVoltage    = "LOW VOLT!"
	hostMaxRunes  = 10
	hostKeepRunes = 9
)

// labels per slot: Full, Abbreviated, Minimal. Empty means no prefix.
var labels = map[model.Slot][3]string{
	model.Hostname:  {"Host: ", "", "H: "},
	model.IPAddress: {"IP: ", "", ""},
	model.CPU:       {"CPU: ", "C: ", "C: "},
	model.Memory:    {"RAM: ", "M: ", "M: "},
	model.Disk:      {"SD:  ", "D: ", "D: "},
}

func label(s model.Slot, v Verbosity) string {
	l, ok := labels[s]
	if !ok || v < Full || v > Minimal {
		return ""
	}
	return l[v]
}

// FormatLine renders one sample as display text. It has no side effects.
func FormatLine(s model.Sample, v Verbosity) string {
	if s.Slot == model.CPU && !s.Degraded && s.CPU.LowVoltage {
		return lowVoltage
	}

	prefix := label(s.Slot, v)
	if s.Degraded {
		return prefix + placeholder
	}

	switch s.Slot {
	case model.Hostname:
		name := s.Text
		if v == Abbreviated {
			name = truncate(name)
		}
		return prefix + orPlaceholder(name)

	case model.IPAddress:
		return prefix + orPlaceholder(s.Text)

	case model.CPU:
		sep := " "
		if v == Full {
			sep = "  "
		}
		return fmt.Sprintf("%s%.1f%%%s%s°C", prefix, s.CPU.Percent, sep, temperature(s.CPU))

	case model.Memory:
		return fmt.Sprintf("%s%d/%dMB", prefix, s.Memory.UsedMB, s.Memory.TotalMB)

	case model.Disk:
		d := s.Disk
		switch v {
		case Abbreviated:
			return fmt.Sprintf("%s%.1f/%.1fGB", prefix, d.UsedGB, d.TotalGB)
		case Minimal:
			return fmt.Sprintf("%s%.1f/%.1fGB %.1f%%", prefix, d.UsedGB, d.TotalGB, d.Percent)
		default:
			return fmt.Sprintf("%s%.1f/%.1fGB (%.1f%%)", prefix, d.UsedGB, d.TotalGB, d.Percent)
		}
	}
	return placeholder
}

func temperature(c model.CPUStatus) string {
	if !c.TempOK {
		return "0"
	}
	return fmt.Sprintf("%.1f", c.TempC)
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// truncate shortens names longer than hostMaxRunes to hostKeepRunes plus "..".
func truncate(s string) string {
	r := []rune(s)
	if len(r) <= hostMaxRunes {
		return s
	}
	return string(r[:hostKeepRunes]) + ".."
}
