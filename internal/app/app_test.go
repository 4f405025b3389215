package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdforge/mdforge/internal/adapters/checkpoint"
	"github.com/mdforge/mdforge/internal/adapters/prompt"
	"github.com/mdforge/mdforge/internal/domain/config"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNew_LoadsConfigAndDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, "mdforge.yaml", `
raid_level: 10
devices: [/dev/sda, /dev/sdb, /dev/sdc, /dev/sdd]
checkpoint_path: `+filepath.Join(dir, "step")+`
`)

	a, err := New(Options{ConfigPath: cfgPath, Out: &strings.Builder{}})
	require.NoError(t, err)

	assert.Equal(t, config.LevelStripeMirror, a.Config().Level)
	assert.Equal(t, config.DefaultShareName, a.Config().ShareName)
	// No checkpoint written yet.
	assert.Equal(t, checkpoint.InitialOrdinal, a.Checkpoint())
}

func TestNew_MissingConfig(t *testing.T) {
	_, err := New(Options{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")})
	require.Error(t, err)

	var userErr *config.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, config.ErrCodeConfigNotFound, userErr.Code)
}

func TestNew_ConfirmerSelection(t *testing.T) {
	cfgPath := writeConfig(t, "mdforge.yaml", "raid_level: 1\ndevices: [/dev/sda, /dev/sdb]\n")

	auto, err := New(Options{ConfigPath: cfgPath, Yes: true})
	require.NoError(t, err)
	assert.IsType(t, &prompt.AutoApprove{}, auto.confirmer)

	interactive, err := New(Options{ConfigPath: cfgPath})
	require.NoError(t, err)
	assert.IsType(t, &prompt.Terminal{}, interactive.confirmer)
}

func TestSequence_Shape(t *testing.T) {
	cfgPath := writeConfig(t, "mdforge.yaml", "raid_level: 1\ndevices: [/dev/sda, /dev/sdb]\n")

	a, err := New(Options{ConfigPath: cfgPath})
	require.NoError(t, err)

	seq := a.Sequence(context.Background())
	assert.Equal(t, 7, seq.Len())
}
