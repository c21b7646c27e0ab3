package sampler

import (
	"context"
	"net/netip"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"
)

// DefaultThermalPath is the SoC thermal zone on Raspberry Pi OS.
const DefaultThermalPath = "/sys/class/thermal/thermal_zone0/temp"

// Host reads telemetry from the local machine via gopsutil, sysfs and a
// couple of external commands.
type Host struct {
	ThermalPath    string
	CommandTimeout time.Duration
}

var _ Source = (*Host)(nil)

func NewHost(thermalPath string, commandTimeout time.Duration) *Host {
	if thermalPath == "" {
		thermalPath = DefaultThermalPath
	}
	if commandTimeout <= 0 {
		commandTimeout = time.Second
	}
	return &Host{ThermalPath: thermalPath, CommandTimeout: commandTimeout}
}

// Hostname is the kernel's node name, read on every call.
func (h *Host) Hostname(ctx context.Context) (string, error) {
	name, err := os.Hostname()
	if err != nil {
		return "", errors.Wrap(err, "hostname")
	}
	return name, nil
}

// PrimaryIPv4 prefers the first address printed by `hostname -I`, which
// matches what the Pi itself reports. Without that utility it falls back to
// the first non-loopback IPv4 interface address.
func (h *Host) PrimaryIPv4(ctx context.Context) (string, error) {
	out, err := runCmd(ctx, h.CommandTimeout, "hostname", "-I")
	if err == nil {
		if ip := firstIPv4Field(out); ip != "" {
			return ip, nil
		}
	}

	ifaces, ierr := psnet.InterfacesWithContext(ctx)
	if ierr != nil {
		return "", errors.Wrap(ierr, "list interfaces")
	}
	if ip := firstIPv4(ifaces); ip != "" {
		return ip, nil
	}
	if err != nil {
		return "", errors.Wrap(err, "hostname -I")
	}
	return "", errors.New("no IPv4 address")
}

// firstIPv4Field picks the first IPv4 address from whitespace-separated
// `hostname -I` output, which may list IPv6 addresses first.
func firstIPv4Field(out string) string {
	for _, f := range strings.Fields(out) {
		if a, err := netip.ParseAddr(f); err == nil && a.Is4() {
			return a.String()
		}
	}
	return ""
}

func firstIPv4(ifaces psnet.InterfaceStatList) string {
	for _, iface := range ifaces {
		if hasFlag(iface.Flags, "loopback") || !hasFlag(iface.Flags, "up") {
			continue
		}
		for _, a := range iface.Addrs {
			p, err := netip.ParsePrefix(a.Addr)
			if err != nil {
				continue
			}
			if ip := p.Addr(); ip.Is4() && !ip.IsLoopback() {
				return ip.String()
			}
		}
	}
	return ""
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}

// CPUPercent is utilisation since the previous call (one snapshot, not an
// average over a window).
func (h *Host) CPUPercent(ctx context.Context) (float64, error) {
	pct, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, errors.Wrap(err, "cpu percent")
	}
	if len(pct) == 0 {
		return 0, errors.New("cpu percent: no data")
	}
	return pct[0], nil
}

func (h *Host) CPUTemperature(ctx context.Context) (float64, error) {
	b, err := os.ReadFile(h.ThermalPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, errors.Wrap(ErrUnsupported, h.ThermalPath)
		}
		return 0, errors.Wrap(err, "read thermal zone")
	}
	return parseMilliCelsius(string(b))
}

func parseMilliCelsius(s string) (float64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse temperature %q", strings.TrimSpace(s))
	}
	return float64(v) / 1000, nil
}

func (h *Host) Throttled(ctx context.Context) (ThrottleState, error) {
	out, err := runCmd(ctx, h.CommandTimeout, "vcgencmd", "get_throttled")
	if err != nil {
		return 0, errors.Wrap(err, "vcgencmd get_throttled")
	}
	return ParseThrottled(out)
}

func (h *Host) Memory(ctx context.Context) (uint64, uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, errors.Wrap(err, "virtual memory")
	}
	return vm.Used, vm.Total, nil
}

func (h *Host) Disk(ctx context.Context, path string) (uint64, uint64, float64, error) {
	u, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, 0, 0, errors.Wrapf(err, "disk usage %s", path)
	}
	return u.Used, u.Total, u.UsedPercent, nil
}

// runCmd runs name with its own deadline so a hung tool cannot stall a tick.
// A missing binary maps to ErrUnsupported.
func runCmd(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if ctx.Err() == context.DeadlineExceeded {
		return "", errors.Wrapf(ctx.Err(), "%s timed out after %s", name, timeout)
	}
	if errors.Is(err, exec.ErrNotFound) {
		return "", errors.Wrap(ErrUnsupported, name)
	}
	return string(out), err
}
