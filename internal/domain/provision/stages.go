package provision

import (
	"context"
	"fmt"
	"strings"

	"github.com/mdforge/mdforge/internal/domain/config"
	"github.com/mdforge/mdforge/internal/domain/hostcfg"
	"github.com/mdforge/mdforge/internal/ports"
)

// MdadmConfPath is where the array layout is persisted for early boot.
const MdadmConfPath = "/etc/mdadm/mdadm.conf"

// basePackages are installed before the reboot; arrayPackages once the
// devices are visible.
var (
	basePackages  = []string{"vim"}
	arrayPackages = []string{"mdadm", "smartmontools", "samba", "ufw", "clamav"}
)

// BuildSequence assembles the full provisioning sequence for the given
// configuration and host.
func BuildSequence(cfg *config.Config, host HostInfo, tb Toolbox, validator *DeviceValidator) Sequence {
	return NewSequence(
		stageBootConfig(tb),
		stagePackages(cfg, tb, validator),
		stageWipe(cfg, tb),
		stageArray(cfg, tb),
		stageFilesystem(cfg, host, tb),
		stageShare(cfg, host, tb),
		stageProtect(cfg, host, tb),
	)
}

// stageBootConfig installs the base tooling and enables the PCIe HAT in the
// boot firmware. The HAT only comes up on the next boot, so the stage is
// reboot-terminal.
func stageBootConfig(tb Toolbox) Stage {
	return Stage{
		Ordinal:        1,
		Name:           "boot-config",
		Summary:        "install base packages and enable PCIe HAT in boot firmware",
		RebootTerminal: true,
		Run: func(ctx context.Context) error {
			if _, err := runRequired(ctx, tb, requiredTimeout, "apt-get", "update"); err != nil {
				return err
			}
			installArgs := append([]string{"install", "-y"}, basePackages...)
			if _, err := runRequired(ctx, tb, requiredTimeout, "apt-get", installArgs...); err != nil {
				return err
			}

			if !tb.FS.Exists(hostcfg.BootConfigPath) {
				tb.Log.Warn(ctx, "boot firmware config not found, PCIe HAT must be enabled manually",
					ports.F("path", hostcfg.BootConfigPath))
				return nil
			}

			changed, err := hostcfg.EnablePCIe(tb.FS, hostcfg.BootConfigPath)
			if err != nil {
				return err
			}
			if changed {
				tb.Log.Info(ctx, "PCIe HAT enabled in boot firmware", ports.F("path", hostcfg.BootConfigPath))
			} else {
				tb.Log.Info(ctx, "PCIe HAT already enabled in boot firmware")
			}
			return nil
		},
	}
}

// stagePackages validates that the devices became visible after the reboot,
// then installs the array and sharing tool set.
func stagePackages(cfg *config.Config, tb Toolbox, validator *DeviceValidator) Stage {
	return Stage{
		Ordinal: 2,
		Name:    "packages",
		Summary: "verify devices are visible and install array tooling",
		Run: func(ctx context.Context) error {
			if err := validator.Validate(ctx, cfg.Devices); err != nil {
				return err
			}
			installArgs := append([]string{"install", "-y"}, arrayPackages...)
			_, err := runRequired(ctx, tb, requiredTimeout, "apt-get", installArgs...)
			return err
		},
	}
}

// stageWipe erases every signature from the configured devices. wipefs is
// safe to repeat on an already-wiped device, so a failed attempt can re-run.
func stageWipe(cfg *config.Config, tb Toolbox) Stage {
	return Stage{
		Ordinal:     3,
		Name:        "wipe",
		Summary:     "erase all existing data and signatures from the selected devices",
		Destructive: true,
		ConfirmPrompt: fmt.Sprintf("all data on the following devices will be permanently erased: %s",
			strings.Join(cfg.Devices, ", ")),
		Run: func(ctx context.Context) error {
			for _, device := range cfg.Devices {
				if _, err := runRequired(ctx, tb, requiredTimeout, "wipefs", "--all", device); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// stageArray creates the md array. If a previous attempt already assembled
// an array on these devices mdadm refuses and the stage aborts without
// advancing, leaving remediation to the operator.
func stageArray(cfg *config.Config, tb Toolbox) Stage {
	return Stage{
		Ordinal:     4,
		Name:        "array",
		Summary:     fmt.Sprintf("create RAID %s array %s", cfg.Level, cfg.ArrayDevice),
		Destructive: true,
		ConfirmPrompt: fmt.Sprintf("a RAID %s array will be created on %s from %d devices; their contents become part of the array",
			cfg.Level, cfg.ArrayDevice, len(cfg.Devices)),
		Run: func(ctx context.Context) error {
			args := []string{
				"--create", "--verbose", cfg.ArrayDevice,
				"--level=" + cfg.Level.String(),
				fmt.Sprintf("--raid-devices=%d", len(cfg.Devices)),
			}
			args = append(args, cfg.Devices...)
			if _, err := runRequired(ctx, tb, requiredTimeout, "mdadm", args...); err != nil {
				return err
			}

			// Sync continues in the background; record where it stands.
			if detail := tb.Runner.RunSafe(ctx, quickTimeout, "mdadm", "--detail", cfg.ArrayDevice); detail.Success() {
				tb.Log.Debug(ctx, "array created, sync in progress", ports.F("detail", strings.TrimSpace(detail.Stdout)))
			}
			return nil
		},
	}
}

// stageFilesystem creates the filesystem, mounts it, and makes both the
// array assembly and the mount survive reboots.
func stageFilesystem(cfg *config.Config, host HostInfo, tb Toolbox) Stage {
	return Stage{
		Ordinal: 5,
		Name:    "filesystem",
		Summary: fmt.Sprintf("create %s on %s, mount at %s, register durable mount", cfg.Filesystem, cfg.ArrayDevice, host.MountPoint),
		Run: func(ctx context.Context) error {
			if _, err := runRequired(ctx, tb, requiredTimeout, "mkfs."+cfg.Filesystem, cfg.ArrayDevice); err != nil {
				return err
			}

			if err := tb.FS.MkdirAll(host.MountPoint, 0o755); err != nil {
				return err
			}
			if _, err := runRequired(ctx, tb, requiredTimeout, "mount", cfg.ArrayDevice, host.MountPoint); err != nil {
				return err
			}
			owner := host.Username + ":" + host.Username
			if _, err := runRequired(ctx, tb, quickTimeout, "chown", owner, host.MountPoint); err != nil {
				return err
			}

			// Persist the array layout so early boot can assemble it.
			scan, err := runRequired(ctx, tb, quickTimeout, "mdadm", "--detail", "--scan")
			if err != nil {
				return err
			}
			if err := appendMdadmConf(tb.FS, cfg.ArrayDevice, scan.Stdout); err != nil {
				return err
			}
			if _, err := runRequired(ctx, tb, requiredTimeout, "update-initramfs", "-u"); err != nil {
				return err
			}

			uuid := volumeUUID(ctx, tb, cfg.ArrayDevice)
			if uuid == "" {
				tb.Log.Warn(ctx, "volume UUID unavailable, registering mount by device node",
					ports.F("device", cfg.ArrayDevice))
			}
			entry := hostcfg.FstabEntry(uuid, cfg.ArrayDevice, host.MountPoint, cfg.Filesystem)
			return hostcfg.RegisterMount(tb.FS, hostcfg.FstabPath, entry, host.MountPoint)
		},
	}
}

// stageShare exports the mount point over Samba.
func stageShare(cfg *config.Config, host HostInfo, tb Toolbox) Stage {
	return Stage{
		Ordinal: 6,
		Name:    "share",
		Summary: fmt.Sprintf("export %s as Samba share %q", host.MountPoint, cfg.ShareName),
		Run: func(ctx context.Context) error {
			share := hostcfg.Share{
				Name:    cfg.ShareName,
				Path:    host.MountPoint,
				Owner:   host.Username,
				Network: host.Network,
				GuestOK: true,
			}
			if err := hostcfg.WriteSambaShare(tb.FS, hostcfg.SambaConfPath, share); err != nil {
				return err
			}

			if _, err := runRequired(ctx, tb, quickTimeout, "systemctl", "restart", "smbd"); err != nil {
				return err
			}
			_, err := runRequired(ctx, tb, quickTimeout, "systemctl", "enable", "smbd")
			return err
		},
	}
}

// stageProtect opens the firewall for the served protocols and schedules
// antivirus coverage of the volume. The virus-database bootstrap is
// best-effort; the scheduled jobs catch up later if it fails here.
func stageProtect(cfg *config.Config, host HostInfo, tb Toolbox) Stage {
	return Stage{
		Ordinal: 7,
		Name:    "protect",
		Summary: "configure firewall and schedule antivirus scans",
		Run: func(ctx context.Context) error {
			for _, rule := range [][]string{
				{"allow", "ssh"},
				{"allow", "samba"},
				{"allow", fmt.Sprintf("%d/tcp", cfg.DashboardPort)},
				{"--force", "enable"},
			} {
				if _, err := runRequired(ctx, tb, quickTimeout, "ufw", rule...); err != nil {
					return err
				}
			}

			if err := hostcfg.ScheduleScan(tb.FS, hostcfg.CrontabPath, host.MountPoint, cfg.ScanLog); err != nil {
				return err
			}
			tb.Log.Info(ctx, "nightly antivirus scan scheduled", ports.F("mount_point", host.MountPoint))

			bootstrapClamAV(ctx, tb)
			return nil
		},
	}
}

// bootstrapClamAV primes the virus database. Every step degrades gracefully:
// the freshclam systemd unit keeps the database current regardless.
func bootstrapClamAV(ctx context.Context, tb Toolbox) {
	tb.Runner.RunSafe(ctx, quickTimeout, "systemctl", "stop", "clamav-freshclam")

	if err := tb.FS.MkdirAll("/var/log/clamav", 0o755); err == nil {
		tb.Runner.RunSafe(ctx, quickTimeout, "touch", "/var/log/clamav/freshclam.log")
		tb.Runner.RunSafe(ctx, quickTimeout, "chown", "clamav:clamav", "/var/log/clamav/freshclam.log")
		tb.Runner.RunSafe(ctx, quickTimeout, "chmod", "644", "/var/log/clamav/freshclam.log")
	}

	if pgrep := tb.Runner.RunSafe(ctx, quickTimeout, "pgrep", "freshclam"); pgrep.Success() {
		tb.Log.Debug(ctx, "stopping running freshclam before database update")
		tb.Runner.RunSafe(ctx, quickTimeout, "pkill", "freshclam")
	}

	if update := tb.Runner.RunSafe(ctx, freshclamTimeout, "freshclam"); update.Success() {
		tb.Log.Info(ctx, "virus database updated")
	} else {
		tb.Log.Warn(ctx, "initial virus database update failed, scheduled updates will retry")
	}

	tb.Runner.RunSafe(ctx, quickTimeout, "systemctl", "start", "clamav-freshclam")
	tb.Runner.RunSafe(ctx, quickTimeout, "systemctl", "enable", "clamav-freshclam")
}

// appendMdadmConf appends the scanned array definition unless the device is
// already registered.
func appendMdadmConf(fs ports.FileSystem, arrayDevice, scan string) error {
	if existing, err := fs.ReadFile(MdadmConfPath); err == nil {
		if strings.Contains(string(existing), arrayDevice) {
			return nil
		}
	}
	return fs.AppendFile(MdadmConfPath, []byte(scan), 0o644)
}
