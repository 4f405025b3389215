package hostcfg

import (
	"strings"

	"github.com/mdforge/mdforge/internal/ports"
)

// BootConfigPath is the Raspberry Pi firmware configuration file.
const BootConfigPath = "/boot/firmware/config.txt"

// pcieMarker guards the appended block so repeated runs stay idempotent.
const pcieMarker = "# PCIe HAT SSD support"

const pcieBlock = "\n" + pcieMarker + "\ndtparam=pciex1\ndtparam=pciex1_gen=3\n"

// EnablePCIe appends the dtparam lines that make the firmware bring up a
// PCIe HAT, once. Returns true when the file was changed; false when the
// block was already present. Takes effect on the next boot.
func EnablePCIe(fs ports.FileSystem, configPath string) (bool, error) {
	data, err := fs.ReadFile(configPath)
	if err != nil {
		return false, err
	}

	if strings.Contains(string(data), pcieMarker) {
		return false, nil
	}

	if err := fs.AppendFile(configPath, []byte(pcieBlock), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
