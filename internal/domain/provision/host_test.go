package provision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mdforge/mdforge/internal/domain/config"
	"github.com/mdforge/mdforge/internal/ports"
	"github.com/mdforge/mdforge/internal/testutil/mocks"
)

func TestResolveHost(t *testing.T) {
	t.Setenv("SUDO_USER", "pi")

	runner := mocks.NewCommandRunner()
	runner.Script(ports.CommandResult{Stdout: "192.168.1.42 fd00::1\n"}, "hostname", "-I")

	host := ResolveHost(context.Background(), runner, config.Default())

	assert.Equal(t, "pi", host.Username)
	assert.Equal(t, "/home/pi/storage", host.MountPoint)
	assert.Equal(t, "192.168.1.42", host.ServerIP)
	assert.Equal(t, "192.168.1.0", host.Network)
}

func TestResolveHost_AddressUnavailable(t *testing.T) {
	t.Setenv("SUDO_USER", "")
	t.Setenv("USER", "admin")

	runner := mocks.NewCommandRunner()
	runner.ScriptError(assert.AnError, "hostname", "-I")

	host := ResolveHost(context.Background(), runner, config.Default())

	assert.Equal(t, "admin", host.Username)
	assert.Empty(t, host.ServerIP)
	assert.Equal(t, "192.168.0.0", host.Network)
}

func TestNetworkAddress(t *testing.T) {
	assert.Equal(t, "10.1.2.0", networkAddress("10.1.2.200"))
	assert.Empty(t, networkAddress("not-an-ip"))
	assert.Empty(t, networkAddress("fd00::1"))
}
