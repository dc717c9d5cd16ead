package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/internal/core/notify"
	"github.com/tablekit/tablekit/pkg/executil"
)

func testConfig() Config {
	return Config{
		Enabled:       true,
		NotifyCommand: []string{"notify-send"},
		SoundCommand:  []string{"paplay"},
		SoundAsset:    "/usr/share/sounds/chime.oga",
	}
}

func TestDispatcher_runs_both_side_effects(t *testing.T) {
	exec := &executil.RecordingExecutor{}
	d := New(exec, testConfig())

	d.HandleAdd(notify.Record{ID: "1", Title: "New order", Message: "Table 4"})
	d.Wait()

	cmds := exec.Commands()
	require.Len(t, cmds, 2)

	byName := map[string][]string{}
	for _, c := range cmds {
		byName[c.Cmd] = c.Args
	}
	assert.Equal(t, []string{"New order", "Table 4"}, byName["notify-send"])
	assert.Equal(t, []string{"/usr/share/sounds/chime.oga"}, byName["paplay"])
}

func TestDispatcher_failures_are_independent(t *testing.T) {
	exec := &executil.RecordingExecutor{
		Errors: map[string]error{"notify-send": assert.AnError},
	}
	d := New(exec, testConfig())

	// A failing notifier must not stop the sound from playing.
	d.HandleAdd(notify.Record{ID: "1", Title: "t", Message: "m"})
	d.Wait()

	require.Len(t, exec.Commands(), 2)
}

func TestDispatcher_disabled_runs_nothing(t *testing.T) {
	exec := &executil.RecordingExecutor{}
	cfg := testConfig()
	cfg.Enabled = false
	d := New(exec, cfg)

	d.HandleAdd(notify.Record{ID: "1"})
	d.Wait()

	assert.Empty(t, exec.Commands())
}

func TestDispatcher_skips_sound_without_asset(t *testing.T) {
	exec := &executil.RecordingExecutor{}
	cfg := testConfig()
	cfg.SoundAsset = ""
	d := New(exec, cfg)

	d.HandleAdd(notify.Record{ID: "1", Title: "t"})
	d.Wait()

	cmds := exec.Commands()
	require.Len(t, cmds, 1)
	assert.Equal(t, "notify-send", cmds[0].Cmd)
}
