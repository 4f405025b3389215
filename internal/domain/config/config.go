// Package config holds the provisioner's configuration model: the device
// set, the RAID layout, and the host integration settings, together with the
// consistency rules that must hold before any stage may mutate the host.
package config

import "path/filepath"

// Default values matching a stock Raspberry Pi NAS build.
const (
	DefaultArrayDevice    = "/dev/md0"
	DefaultFilesystem     = "ext4"
	DefaultMountBase      = "storage"
	DefaultShareName      = "Public"
	DefaultScanLog        = "/var/log/clamav_scan.log"
	DefaultDashboardPort  = 5000
	DefaultCheckpointPath = "/var/lib/mdforge/step"
)

// Config is the full provisioner configuration. It is read once at startup
// and read-only during execution.
type Config struct {
	// Level is the RAID layout for the array.
	Level Level `yaml:"raid_level" toml:"raid_level"`

	// Devices is the ordered set of block devices joined into the array.
	Devices []string `yaml:"devices" toml:"devices"`

	// ArrayDevice is the md device node to create.
	ArrayDevice string `yaml:"array_device" toml:"array_device"`

	// Filesystem is the filesystem type created on the array.
	Filesystem string `yaml:"filesystem" toml:"filesystem"`

	// MountBase is the directory name under the operator's home directory
	// where the array is mounted.
	MountBase string `yaml:"mount_base" toml:"mount_base"`

	// ShareName is the Samba share name exported for the mount point.
	ShareName string `yaml:"share_name" toml:"share_name"`

	// ScanLog is where scheduled antivirus scans write their report.
	ScanLog string `yaml:"scan_log" toml:"scan_log"`

	// DashboardPort is the status dashboard's listen port.
	DashboardPort int `yaml:"dashboard_port" toml:"dashboard_port"`

	// CheckpointPath is the file holding the persisted stage ordinal.
	CheckpointPath string `yaml:"checkpoint_path" toml:"checkpoint_path"`
}

// Default returns a Config with stock values and no devices selected.
func Default() *Config {
	return &Config{
		Level:          LevelStripeMirror,
		ArrayDevice:    DefaultArrayDevice,
		Filesystem:     DefaultFilesystem,
		MountBase:      DefaultMountBase,
		ShareName:      DefaultShareName,
		ScanLog:        DefaultScanLog,
		DashboardPort:  DefaultDashboardPort,
		CheckpointPath: DefaultCheckpointPath,
	}
}

// applyDefaults fills unset optional fields.
func (c *Config) applyDefaults() {
	if c.ArrayDevice == "" {
		c.ArrayDevice = DefaultArrayDevice
	}
	if c.Filesystem == "" {
		c.Filesystem = DefaultFilesystem
	}
	if c.MountBase == "" {
		c.MountBase = DefaultMountBase
	}
	if c.ShareName == "" {
		c.ShareName = DefaultShareName
	}
	if c.ScanLog == "" {
		c.ScanLog = DefaultScanLog
	}
	if c.DashboardPort == 0 {
		c.DashboardPort = DefaultDashboardPort
	}
	if c.CheckpointPath == "" {
		c.CheckpointPath = DefaultCheckpointPath
	}
}

// MountPoint returns the mount directory for the given operator username.
func (c *Config) MountPoint(username string) string {
	return filepath.Join("/home", username, c.MountBase)
}

// Validate checks configuration consistency. It must pass before the first
// stage runs and is never re-checked mid-stage.
func (c *Config) Validate() error {
	if !c.Level.Valid() {
		return NewConfigInvalidError(
			"raid_level is not one of the supported levels (0, 1, 5, 10)",
			"set raid_level to a supported value",
		)
	}

	if len(c.Devices) == 0 {
		return NewConfigInvalidError(
			"no devices configured",
			"list the block devices to join into the array",
		)
	}

	seen := make(map[string]bool, len(c.Devices))
	for _, dev := range c.Devices {
		if dev == "" {
			return NewConfigInvalidError("empty device path in devices list", "remove the empty entry")
		}
		if seen[dev] {
			return NewConfigInvalidError("duplicate device path: "+dev, "each device may appear only once")
		}
		seen[dev] = true
	}

	return c.Level.ValidateDeviceCount(len(c.Devices))
}
