package provision

import (
	"context"
	"net"
	"os"
	"strings"

	"github.com/mdforge/mdforge/internal/domain/config"
	"github.com/mdforge/mdforge/internal/ports"
)

// fallbackNetwork is used when the host's address cannot be determined.
const fallbackNetwork = "192.168.0.0"

// HostInfo captures the per-host facts the stage sequence depends on: the
// invoking operator, their mount point, and the local network the share is
// exposed to.
type HostInfo struct {
	Username   string
	MountPoint string
	ServerIP   string
	Network    string
}

// ResolveHost derives HostInfo from the environment and the host's primary
// address. Lookups are best-effort; a headless host without an address still
// provisions, with the share restricted to the fallback network.
func ResolveHost(ctx context.Context, runner ports.CommandRunner, cfg *config.Config) HostInfo {
	username := os.Getenv("SUDO_USER")
	if username == "" {
		username = os.Getenv("USER")
	}
	if username == "" {
		username = "root"
	}

	info := HostInfo{
		Username:   username,
		MountPoint: cfg.MountPoint(username),
		Network:    fallbackNetwork,
	}

	result := runner.RunSafe(ctx, quickTimeout, "hostname", "-I")
	if result.Success() {
		if fields := strings.Fields(result.Stdout); len(fields) > 0 {
			info.ServerIP = fields[0]
			if network := networkAddress(fields[0]); network != "" {
				info.Network = network
			}
		}
	}

	return info
}

// networkAddress masks an IPv4 address to its /24 network address.
func networkAddress(addr string) string {
	ip := net.ParseIP(addr)
	if ip == nil {
		return ""
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return ""
	}
	return ip4.Mask(net.CIDRMask(24, 32)).String()
}
