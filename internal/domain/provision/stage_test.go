package provision

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdforge/mdforge/internal/adapters/logging"
	"github.com/mdforge/mdforge/internal/domain/config"
	"github.com/mdforge/mdforge/internal/testutil/mocks"
)

func buildTestSequence(t *testing.T) Sequence {
	t.Helper()

	cfg := config.Default()
	cfg.Devices = []string{"/dev/sda", "/dev/sdb"}
	cfg.Level = config.LevelMirror

	tb := Toolbox{Runner: mocks.NewCommandRunner(), FS: mocks.NewFileSystem(), Log: logging.NewNopLogger()}
	return BuildSequence(cfg, HostInfo{Username: "pi", MountPoint: "/home/pi/storage"}, tb, NewDeviceValidator(tb))
}

func TestBuildSequence_Shape(t *testing.T) {
	seq := buildTestSequence(t)

	require.Equal(t, 7, seq.Len())

	for i, stage := range seq.Stages() {
		assert.Equal(t, i+1, stage.Ordinal, "ordinals must be dense from 1")
		assert.NotEmpty(t, stage.Name)
		assert.NotEmpty(t, stage.Summary)
		assert.NotNil(t, stage.Run)
		if stage.Destructive {
			assert.NotEmpty(t, stage.ConfirmPrompt, "destructive stage %s needs a consequence prompt", stage.Name)
		}
	}

	boot, ok := seq.Stage(1)
	require.True(t, ok)
	assert.True(t, boot.RebootTerminal)

	wipe, ok := seq.Stage(3)
	require.True(t, ok)
	assert.True(t, wipe.Destructive)

	array, ok := seq.Stage(4)
	require.True(t, ok)
	assert.True(t, array.Destructive)

	_, ok = seq.Stage(8)
	assert.False(t, ok)
}

func TestBuildLifecycleMachine(t *testing.T) {
	interp, err := buildLifecycleMachine(invocation{Ordinal: 1, Stage: "boot-config", StartedAt: time.Now()})
	require.NoError(t, err)
	require.NotNil(t, interp)

	interp.Start()
	defer interp.Stop()
	assert.EqualValues(t, "idle", interp.State().Value)
}
