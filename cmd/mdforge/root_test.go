package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdforge/mdforge/internal/domain/config"
)

func TestFormatError_PlainError(t *testing.T) {
	assert.Equal(t, "boom", formatError(errors.New("boom")))
}

func TestFormatError_UserError(t *testing.T) {
	err := config.NewDeviceMissingError([]string{"/dev/sdb"}, "sda 3.6T disk")

	msg := formatError(err)
	assert.Contains(t, msg, "/dev/sdb")
	assert.Contains(t, msg, "Suggestion:")
	assert.NotContains(t, msg, "Technical details")
}

func TestFormatError_Verbose(t *testing.T) {
	verbose = true
	t.Cleanup(func() { verbose = false })

	err := config.NewParseError("mdforge.yaml", errors.New("yaml: line 3"))
	msg := formatError(err)
	assert.Contains(t, msg, "Technical details")
	assert.Contains(t, msg, "yaml: line 3")
}

func TestPrintErrorTo(t *testing.T) {
	var buf bytes.Buffer
	printErrorTo(&buf, errors.New("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "mdforge dev")
}

func TestSetup_RequiresRoot(t *testing.T) {
	geteuid = func() int { return 1000 }
	t.Cleanup(func() { geteuid = os.Geteuid })

	err := runSetup(setupCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root")
}

func TestPlanCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "mdforge.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"raid_level: 1\ndevices: [/dev/sda, /dev/sdb]\ncheckpoint_path: "+filepath.Join(dir, "step")+"\n",
	), 0o644))

	cfgFile = cfgPath
	t.Cleanup(func() { cfgFile = "mdforge.yaml" })

	planCmd.SetContext(context.Background())

	var buf bytes.Buffer
	planCmd.SetOut(&buf)
	require.NoError(t, runPlan(planCmd, nil))

	out := buf.String()
	assert.Contains(t, out, "1. boot-config")
	assert.Contains(t, out, "[destructive]")
	assert.Contains(t, out, "next")
	assert.Equal(t, 1, strings.Count(out, "next"))
}
