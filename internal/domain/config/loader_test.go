package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
raid_level: 10
devices:
  - /dev/sda
  - /dev/sdb
  - /dev/sdc
  - /dev/sdd
share_name: Media
`

const tomlConfig = `
raid_level = 5
devices = ["/dev/sda", "/dev/sdb", "/dev/sdc"]
dashboard_port = 8080
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Load_YAML(t *testing.T) {
	cfg, err := NewLoader().Load(writeTemp(t, "mdforge.yaml", yamlConfig))
	require.NoError(t, err)

	assert.Equal(t, LevelStripeMirror, cfg.Level)
	assert.Len(t, cfg.Devices, 4)
	assert.Equal(t, "Media", cfg.ShareName)
	// Unset fields fall back to defaults.
	assert.Equal(t, DefaultArrayDevice, cfg.ArrayDevice)
	assert.Equal(t, DefaultDashboardPort, cfg.DashboardPort)
}

func TestLoader_Load_TOML(t *testing.T) {
	cfg, err := NewLoader().Load(writeTemp(t, "mdforge.toml", tomlConfig))
	require.NoError(t, err)

	assert.Equal(t, LevelParity, cfg.Level)
	assert.Equal(t, []string{"/dev/sda", "/dev/sdb", "/dev/sdc"}, cfg.Devices)
	assert.Equal(t, 8080, cfg.DashboardPort)
	assert.Equal(t, DefaultShareName, cfg.ShareName)
}

func TestLoader_Load_NotFound(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	var userErr *UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, ErrCodeConfigNotFound, userErr.Code)
}

func TestLoader_Load_ParseError(t *testing.T) {
	_, err := NewLoader().Load(writeTemp(t, "broken.yaml", "raid_level: [not an int"))
	require.Error(t, err)

	var userErr *UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, ErrCodeConfigParse, userErr.Code)
	assert.Error(t, userErr.Unwrap())
}

func TestUserError_Format(t *testing.T) {
	err := NewDeviceMissingError([]string{"/dev/sdc"}, "sda 1T disk\nsdb 1T disk")

	formatted := err.Format()
	assert.Contains(t, formatted, ErrCodeDeviceMissing)
	assert.Contains(t, formatted, "/dev/sdc")
	assert.Contains(t, formatted, "sdb 1T disk")
}
