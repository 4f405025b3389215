// Package hostcfg edits the host configuration files the provisioned volume
// depends on: the Samba share, fstab, the scan schedule, and the boot
// firmware config.
package hostcfg

import (
	"bytes"
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/mdforge/mdforge/internal/ports"
)

// SambaConfPath is the stock Samba configuration file.
const SambaConfPath = "/etc/samba/smb.conf"

// Share describes a Samba share exported for the mounted array.
type Share struct {
	Name       string
	Path       string
	Owner      string
	Network    string // network address allowed alongside loopback, e.g. "192.168.0.0"
	GuestOK    bool
	CreateMask string
}

// WriteSambaShare adds or replaces the share's section in smb.conf. The rest
// of the file is preserved; re-running overwrites the same section, so the
// stage is safe to repeat.
func WriteSambaShare(fs ports.FileSystem, confPath string, share Share) error {
	data, err := fs.ReadFile(confPath)
	if err != nil {
		// Samba installs a stock config; a missing file still gets a valid one.
		data = nil
	}

	f, err := ini.Load(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", confPath, err)
	}

	mask := share.CreateMask
	if mask == "" {
		mask = "0775"
	}

	sec := f.Section(share.Name)
	sec.Key("path").SetValue(share.Path)
	sec.Key("browseable").SetValue("yes")
	sec.Key("writeable").SetValue("yes")
	sec.Key("read only").SetValue("no")
	if share.GuestOK {
		sec.Key("guest ok").SetValue("yes")
	} else {
		sec.Key("guest ok").SetValue("no")
	}
	sec.Key("create mask").SetValue(mask)
	sec.Key("directory mask").SetValue(mask)
	sec.Key("hosts allow").SetValue(fmt.Sprintf("127.0.0.1 %s/24", share.Network))
	sec.Key("force user").SetValue(share.Owner)
	sec.Key("force group").SetValue(share.Owner)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("render %s: %w", confPath, err)
	}

	return fs.WriteFile(confPath, buf.Bytes(), 0o644)
}
