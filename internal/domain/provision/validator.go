package provision

import (
	"context"

	"github.com/mdforge/mdforge/internal/domain/config"
	"github.com/mdforge/mdforge/internal/ports"
)

// DeviceValidator checks that every configured block device is visible on
// the host. It runs after any stage that can change device visibility (the
// post-reboot stage) and again before every destructive stage.
type DeviceValidator struct {
	tb Toolbox
}

// NewDeviceValidator creates a DeviceValidator.
func NewDeviceValidator(tb Toolbox) *DeviceValidator {
	return &DeviceValidator{tb: tb}
}

// Validate returns a DeviceError listing every missing device. On failure it
// enumerates the currently visible block devices as a diagnostic aid.
func (v *DeviceValidator) Validate(ctx context.Context, devices []string) error {
	var missing []string
	for _, device := range devices {
		if !v.tb.FS.Exists(device) {
			missing = append(missing, device)
		}
	}

	if len(missing) == 0 {
		v.tb.Log.Debug(ctx, "all configured devices present", ports.F("count", len(devices)))
		return nil
	}

	diagnostic := "block device listing unavailable"
	if result := v.tb.Runner.RunSafe(ctx, quickTimeout, "lsblk", "-d", "-o", "NAME,SIZE,TYPE"); result.Success() {
		diagnostic = result.Stdout
	}

	return config.NewDeviceMissingError(missing, diagnostic)
}
