package config

import "fmt"

// Level is an md RAID layout level. Only the levels the appliance vendor
// supports are accepted.
type Level int

// Supported RAID levels.
const (
	LevelStripe       Level = 0  // striping, no redundancy
	LevelMirror       Level = 1  // mirroring
	LevelParity       Level = 5  // single parity
	LevelStripeMirror Level = 10 // striped mirrors
)

// AllowedLevels lists every accepted RAID level.
var AllowedLevels = []Level{LevelStripe, LevelMirror, LevelParity, LevelStripeMirror}

// Valid reports whether l is an accepted RAID level.
func (l Level) Valid() bool {
	switch l {
	case LevelStripe, LevelMirror, LevelParity, LevelStripeMirror:
		return true
	default:
		return false
	}
}

// String returns the numeric level as mdadm spells it.
func (l Level) String() string {
	return fmt.Sprintf("%d", int(l))
}

// ValidateDeviceCount checks the level's device-count constraint:
// mirroring needs exactly 2 devices, parity at least 3, striped mirrors an
// even count of at least 4, and plain striping at least 2.
func (l Level) ValidateDeviceCount(count int) error {
	switch l {
	case LevelMirror:
		if count != 2 {
			return NewConfigInvalidError(
				fmt.Sprintf("RAID 1 requires exactly 2 devices (got %d)", count),
				"list exactly two devices for a mirror",
			)
		}
	case LevelParity:
		if count < 3 {
			return NewConfigInvalidError(
				fmt.Sprintf("RAID 5 requires at least 3 devices (got %d)", count),
				"add more devices or choose RAID 1",
			)
		}
	case LevelStripeMirror:
		if count < 4 || count%2 != 0 {
			return NewConfigInvalidError(
				fmt.Sprintf("RAID 10 requires an even number of devices, 4 or more (got %d)", count),
				"use 4, 6, 8, ... devices for striped mirrors",
			)
		}
	case LevelStripe:
		if count < 2 {
			return NewConfigInvalidError(
				fmt.Sprintf("RAID 0 requires at least 2 devices (got %d)", count),
				"a single device needs no array",
			)
		}
	default:
		return NewConfigInvalidError(
			fmt.Sprintf("RAID level %d is not supported (allowed: 0, 1, 5, 10)", int(l)),
			"choose one of the supported levels",
		)
	}
	return nil
}
