// Package report gathers the provisioned volume's health for the status
// surfaces. Everything here is informational: every probe is best-effort and
// failure degrades to a placeholder instead of an error.
package report

import (
	"context"
	"strings"
	"time"

	"github.com/mdforge/mdforge/internal/domain/config"
	"github.com/mdforge/mdforge/internal/domain/provision"
	"github.com/mdforge/mdforge/internal/ports"
)

// MdstatPath exposes the kernel's md array status.
const MdstatPath = "/proc/mdstat"

const (
	smartTimeout = 30 * time.Second
	probeTimeout = time.Minute

	// scanLogTail bounds how much of the scan log the report shows.
	scanLogTail = 2000
)

// smartctl exits 4 when some optional subcommand failed but still prints
// usable identity and health data.
const smartctlPartialExit = 4

// DiskHealth is one device's identity and SMART summary.
type DiskHealth struct {
	Device  string
	Present bool
	Summary string
}

// Report is a point-in-time snapshot of the volume's health.
type Report struct {
	GeneratedAt time.Time
	ServerIP    string
	ShareName   string
	MountPoint  string
	ArrayStatus string
	Disks       []DiskHealth
	Usage       string
	ScanLog     string
}

// Collector builds Reports.
type Collector struct {
	runner ports.CommandRunner
	fs     ports.FileSystem
	cfg    *config.Config
	host   provision.HostInfo
}

// NewCollector creates a Collector.
func NewCollector(runner ports.CommandRunner, fs ports.FileSystem, cfg *config.Config, host provision.HostInfo) *Collector {
	return &Collector{runner: runner, fs: fs, cfg: cfg, host: host}
}

// Collect gathers a snapshot. It never fails; unavailable probes yield
// placeholder text.
func (c *Collector) Collect(ctx context.Context) Report {
	report := Report{
		GeneratedAt: time.Now(),
		ServerIP:    c.host.ServerIP,
		ShareName:   c.cfg.ShareName,
		MountPoint:  c.host.MountPoint,
		ArrayStatus: c.arrayStatus(),
		Usage:       c.usage(ctx),
		ScanLog:     c.scanLog(),
	}

	for _, device := range c.cfg.Devices {
		report.Disks = append(report.Disks, c.diskHealth(ctx, device))
	}

	return report
}

func (c *Collector) arrayStatus() string {
	data, err := c.fs.ReadFile(MdstatPath)
	if err != nil {
		return "array status unavailable"
	}
	if strings.TrimSpace(string(data)) == "" {
		return "no md arrays found"
	}
	return string(data)
}

func (c *Collector) diskHealth(ctx context.Context, device string) DiskHealth {
	health := DiskHealth{Device: device}

	if !c.fs.Exists(device) {
		health.Summary = "device not found"
		return health
	}
	health.Present = true

	result := c.runner.RunSafe(ctx, smartTimeout, "smartctl", "-i", "-H", device)
	if !result.TimedOut && (result.ExitCode == 0 || result.ExitCode == smartctlPartialExit) {
		if summary := extractSmartSummary(result.Stdout); summary != "" {
			health.Summary = summary
			return health
		}
		health.Summary = "connected (SMART details limited)"
		return health
	}

	// SMART unreadable; fall back to basic identity.
	if basic := c.runner.RunSafe(ctx, probeTimeout, "lsblk", "-o", "NAME,SIZE,MODEL", device); basic.Success() {
		health.Summary = "SMART unavailable\n" + strings.TrimSpace(basic.Stdout)
		return health
	}
	health.Summary = "SMART unavailable"
	return health
}

// smartSummaryPrefixes are the identity and health lines worth surfacing.
var smartSummaryPrefixes = []string{
	"Device Model:",
	"Serial Number:",
	"Firmware Version:",
	"User Capacity:",
	"SMART overall-health",
	"SMART Health Status",
}

func extractSmartSummary(output string) string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, prefix := range smartSummaryPrefixes {
			if strings.HasPrefix(trimmed, prefix) {
				lines = append(lines, trimmed)
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (c *Collector) usage(ctx context.Context) string {
	if !c.fs.IsDir(c.host.MountPoint) {
		return "mount point not found: " + c.host.MountPoint
	}

	if result := c.runner.RunSafe(ctx, probeTimeout, "df", "-h", c.host.MountPoint); result.Success() && strings.TrimSpace(result.Stdout) != "" {
		return result.Stdout
	}
	return "disk usage unavailable; check that the array is mounted at " + c.host.MountPoint
}

func (c *Collector) scanLog() string {
	data, err := c.fs.ReadFile(c.cfg.ScanLog)
	if err != nil {
		return "no scan report yet; the scheduled scan writes to " + c.cfg.ScanLog
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return "scan log is empty; the first scheduled scan has not completed"
	}
	if len(content) > scanLogTail {
		content = content[len(content)-scanLogTail:]
	}
	return content
}
