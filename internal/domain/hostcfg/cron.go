package hostcfg

import (
	"fmt"
	"strings"

	"github.com/mdforge/mdforge/internal/ports"
)

// CrontabPath is the system-wide cron table.
const CrontabPath = "/etc/crontab"

// ScanJobLine renders the nightly antivirus scan entry for the mounted
// volume. Runs at 02:00 as root and overwrites the scan log each night.
func ScanJobLine(mountPoint, scanLog string) string {
	return fmt.Sprintf("0 2 * * * root clamscan -r %s > %s 2>&1\n", mountPoint, scanLog)
}

// ScheduleScan appends the scan job to the crontab unless an entry scanning
// the same mount point already exists.
func ScheduleScan(fs ports.FileSystem, crontabPath, mountPoint, scanLog string) error {
	line := ScanJobLine(mountPoint, scanLog)

	if existing, err := fs.ReadFile(crontabPath); err == nil {
		if strings.Contains(string(existing), "clamscan -r "+mountPoint) {
			return nil
		}
	}
	return fs.AppendFile(crontabPath, []byte(line), 0o644)
}
