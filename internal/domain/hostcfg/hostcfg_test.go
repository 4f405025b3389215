package hostcfg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"

	"github.com/mdforge/mdforge/internal/testutil/mocks"
)

const stockSmbConf = `[global]
workgroup = WORKGROUP
server string = %h server
`

func TestWriteSambaShare(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.Seed(SambaConfPath, stockSmbConf)

	share := Share{
		Name:    "Public",
		Path:    "/home/pi/storage",
		Owner:   "pi",
		Network: "192.168.0.0",
		GuestOK: true,
	}
	require.NoError(t, WriteSambaShare(fs, SambaConfPath, share))

	f, err := ini.Load([]byte(fs.Content(SambaConfPath)))
	require.NoError(t, err)

	// The global section survives the edit.
	assert.Equal(t, "WORKGROUP", f.Section("global").Key("workgroup").String())

	sec := f.Section("Public")
	assert.Equal(t, "/home/pi/storage", sec.Key("path").String())
	assert.Equal(t, "yes", sec.Key("guest ok").String())
	assert.Equal(t, "0775", sec.Key("create mask").String())
	assert.Equal(t, "127.0.0.1 192.168.0.0/24", sec.Key("hosts allow").String())
	assert.Equal(t, "pi", sec.Key("force user").String())
}

func TestWriteSambaShare_Rerun(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.Seed(SambaConfPath, stockSmbConf)

	share := Share{Name: "Public", Path: "/home/pi/storage", Owner: "pi", Network: "10.0.0.0"}
	require.NoError(t, WriteSambaShare(fs, SambaConfPath, share))

	share.Path = "/home/pi/media"
	require.NoError(t, WriteSambaShare(fs, SambaConfPath, share))

	f, err := ini.Load([]byte(fs.Content(SambaConfPath)))
	require.NoError(t, err)
	// Re-running replaces the section rather than duplicating it.
	assert.Equal(t, "/home/pi/media", f.Section("Public").Key("path").String())
	assert.Len(t, f.SectionStrings(), 3) // DEFAULT, global, Public
}

func TestFstabEntry(t *testing.T) {
	withUUID := FstabEntry("abcd-1234", "/dev/md0", "/home/pi/storage", "ext4")
	assert.Equal(t, "UUID=abcd-1234 /home/pi/storage ext4 defaults,nofail 0 2\n", withUUID)

	fallback := FstabEntry("", "/dev/md0", "/home/pi/storage", "ext4")
	assert.Equal(t, "/dev/md0 /home/pi/storage ext4 defaults,nofail 0 2\n", fallback)
}

func TestRegisterMount_SkipsDuplicate(t *testing.T) {
	fs := mocks.NewFileSystem()
	entry := FstabEntry("abcd", "/dev/md0", "/home/pi/storage", "ext4")

	require.NoError(t, RegisterMount(fs, FstabPath, entry, "/home/pi/storage"))
	require.NoError(t, RegisterMount(fs, FstabPath, entry, "/home/pi/storage"))

	content := fs.Content(FstabPath)
	assert.Equal(t, 1, strings.Count(content, "UUID=abcd"))
}

func TestScheduleScan(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.Seed(CrontabPath, "# /etc/crontab\n")

	require.NoError(t, ScheduleScan(fs, CrontabPath, "/home/pi/storage", "/var/log/clamav_scan.log"))
	require.NoError(t, ScheduleScan(fs, CrontabPath, "/home/pi/storage", "/var/log/clamav_scan.log"))

	content := fs.Content(CrontabPath)
	assert.Contains(t, content, "clamscan -r /home/pi/storage")
	assert.Equal(t, 1, strings.Count(content, "clamscan"))
}

func TestEnablePCIe(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.Seed(BootConfigPath, "dtparam=audio=on\n")

	changed, err := EnablePCIe(fs, BootConfigPath)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, fs.Content(BootConfigPath), "dtparam=pciex1_gen=3")

	// Second run finds the marker and leaves the file alone.
	changed, err = EnablePCIe(fs, BootConfigPath)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, strings.Count(fs.Content(BootConfigPath), "dtparam=pciex1\n"))
}

func TestEnablePCIe_MissingFile(t *testing.T) {
	fs := mocks.NewFileSystem()

	_, err := EnablePCIe(fs, BootConfigPath)
	assert.Error(t, err)
}
