package sampler

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ThrottleState is the bit field reported by `vcgencmd get_throttled`.
type ThrottleState uint32

const (
	underVoltageNow      ThrottleState = 1 << 0
	freqCappedNow        ThrottleState = 1 << 1
	throttledNow         ThrottleState = 1 << 2
	softTempLimitNow     ThrottleState = 1 << 3
	underVoltageOccurred ThrottleState = 1 << 16
)

// UnderVoltage reports an under-voltage condition right now.
func (t ThrottleState) UnderVoltage() bool { return t&underVoltageNow != 0 }

func (t ThrottleState) Throttled() bool { return t&(freqCappedNow|throttledNow|softTempLimitNow) != 0 }

// UnderVoltageOccurred reports under-voltage at any point since boot.
func (t ThrottleState) UnderVoltageOccurred() bool { return t&underVoltageOccurred != 0 }

// ParseThrottled parses output like "throttled=0x50005".
func ParseThrottled(out string) (ThrottleState, error) {
	s := strings.TrimSpace(out)
	if i := strings.IndexByte(s, '='); i >= 0 {
		s = s[i+1:]
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "parse throttle state %q", strings.TrimSpace(out))
	}
	return ThrottleState(v), nil
}
