package sampler

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/Dicklesworthstone/oledstat/internal/logging"
	"github.com/Dicklesworthstone/oledstat/internal/model"
)

// ErrUnsupported marks a metric the host cannot provide at all, e.g. the
// throttle query on boards without vcgencmd. It is expected, not a fault.
var ErrUnsupported = errors.New("not supported on this host")

// Source is the narrow set of host reads the sampler depends on. Every method
// may fail independently.
type Source interface {
	Hostname(ctx context.Context) (string, error)
	PrimaryIPv4(ctx context.Context) (string, error)
	CPUPercent(ctx context.Context) (float64, error)
	CPUTemperature(ctx context.Context) (float64, error)
	Throttled(ctx context.Context) (ThrottleState, error)
	Memory(ctx context.Context) (used, total uint64, err error)
	Disk(ctx context.Context, path string) (used, total uint64, percent float64, err error)
}

// Sampler turns Source reads into display samples. It never fails: a broken
// read degrades only its own slot.
type Sampler struct {
	src      Source
	diskPath string
	log      *logging.Logger

	// lastErr is the last failure logged per metric. A repeat of the same
	// message is not logged again until the read succeeds once.
	lastErr map[string]string

	throttled        bool
	underVoltageSeen bool
}

func New(src Source, diskPath string, log *logging.Logger) *Sampler {
	if diskPath == "" {
		diskPath = "/"
	}
	return &Sampler{
		src:      src,
		diskPath: diskPath,
		log:      log,
		lastErr:  make(map[string]string),
	}
}

// Sample reads one slot.
func (s *Sampler) Sample(ctx context.Context, slot model.Slot) model.Sample {
	switch slot {
	case model.Hostname:
		name, err := s.src.Hostname(ctx)
		if s.failed("hostname", err) || name == "" {
			return model.DegradedSample(slot)
		}
		return model.Sample{Slot: slot, Text: name}

	case model.IPAddress:
		ip, err := s.src.PrimaryIPv4(ctx)
		if s.failed("ip", err) || ip == "" {
			return model.DegradedSample(slot)
		}
		return model.Sample{Slot: slot, Text: ip}

	case model.CPU:
		return s.cpu(ctx)

	case model.Memory:
		used, total, err := s.src.Memory(ctx)
		if s.failed("memory", err) {
			return model.DegradedSample(slot)
		}
		return model.Sample{Slot: slot, Memory: model.MemoryStatus{
			UsedMB:  used / 1024 / 1024,
			TotalMB: total / 1024 / 1024,
		}}

	case model.Disk:
		used, total, pct, err := s.src.Disk(ctx, s.diskPath)
		if s.failed("disk", err) {
			return model.DegradedSample(slot)
		}
		return model.Sample{Slot: slot, Disk: model.DiskStatus{
			UsedGB:  round1(bytesToGiB(used)),
			TotalGB: round1(bytesToGiB(total)),
			Percent: round1(pct),
		}}
	}
	return model.DegradedSample(slot)
}

// SampleAll reads slots in order.
func (s *Sampler) SampleAll(ctx context.Context, slots []model.Slot) []model.Sample {
	out := make([]model.Sample, 0, len(slots))
	for _, slot := range slots {
		out = append(out, s.Sample(ctx, slot))
	}
	return out
}

func (s *Sampler) cpu(ctx context.Context) model.Sample {
	pct, err := s.src.CPUPercent(ctx)
	if s.failed("cpu percent", err) {
		return model.DegradedSample(model.CPU)
	}
	st := model.CPUStatus{Percent: round1(pct)}

	if temp, err := s.src.CPUTemperature(ctx); !s.failed("cpu temperature", err) {
		st.TempC = round1(temp)
		st.TempOK = true
	}

	// A failed throttle query keeps the normal readout.
	if thr, err := s.src.Throttled(ctx); !s.failed("throttle state", err) {
		st.LowVoltage = thr.UnderVoltage()
		s.noteThrottle(thr)
	}

	return model.Sample{Slot: model.CPU, CPU: st}
}

// failed logs err and reports whether it is non-nil. Unsupported metrics go
// to debug, other failures to warn, and each distinct error is logged once
// per failure streak.
func (s *Sampler) failed(what string, err error) bool {
	if err == nil {
		if prev, ok := s.lastErr[what]; ok {
			delete(s.lastErr, what)
			s.log.Infof("%s read recovered (was: %s)", what, prev)
		}
		return false
	}

	msg := err.Error()
	if s.lastErr[what] == msg {
		return true
	}
	s.lastErr[what] = msg
	if errors.Is(err, ErrUnsupported) {
		s.log.Debugf("%s unavailable: %v", what, err)
	} else {
		s.log.Warnf("%s read failed: %v", what, err)
	}
	return true
}

// noteThrottle logs changes in the firmware throttle state. The sticky
// under-voltage bit is reported once.
func (s *Sampler) noteThrottle(thr ThrottleState) {
	if thr.UnderVoltageOccurred() && !s.underVoltageSeen {
		s.underVoltageSeen = true
		s.log.Warnf("under-voltage has occurred since boot (throttled=%#x)", uint32(thr))
	}
	if now := thr.Throttled(); now != s.throttled {
		s.throttled = now
		if now {
			s.log.Warnf("cpu is being throttled (throttled=%#x)", uint32(thr))
		} else {
			s.log.Infof("cpu throttling cleared")
		}
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func bytesToGiB(b uint64) float64 { return float64(b) / (1024 * 1024 * 1024) }
