package hostcfg

import (
	"fmt"
	"strings"

	"github.com/mdforge/mdforge/internal/ports"
)

// FstabPath is the mount table consulted at boot.
const FstabPath = "/etc/fstab"

// FstabEntry renders a durable-mount line. When uuid is non-empty the entry
// is keyed by UUID so it survives device renumbering; otherwise it falls back
// to the device node. nofail keeps the host bootable if the array is absent.
func FstabEntry(uuid, device, mountPoint, fstype string) string {
	source := device
	if uuid != "" {
		source = "UUID=" + uuid
	}
	return fmt.Sprintf("%s %s %s defaults,nofail 0 2\n", source, mountPoint, fstype)
}

// RegisterMount appends the entry to fstab unless a line for the mount point
// is already present, so a repeated stage does not stack duplicates.
func RegisterMount(fs ports.FileSystem, fstabPath, entry, mountPoint string) error {
	if existing, err := fs.ReadFile(fstabPath); err == nil {
		for _, line := range strings.Split(string(existing), "\n") {
			if !strings.HasPrefix(strings.TrimSpace(line), "#") && strings.Contains(line, " "+mountPoint+" ") {
				return nil
			}
		}
	}
	return fs.AppendFile(fstabPath, []byte("\n"+entry), 0o644)
}
