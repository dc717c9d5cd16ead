// Package dispatch fans out best-effort side effects for newly added
// notifications: a desktop tray notification and a short sound. Both are
// fire-and-forget; a failure in either is logged and never reaches the
// notification log that triggered it.
package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tablekit/tablekit/internal/core/notify"
	"github.com/tablekit/tablekit/pkg/executil"
)

const (
	notifierTimeout = 3 * time.Second

	// soundTimeout bounds playback so the player process (and the audio
	// resource it holds) is released shortly after the chime.
	soundTimeout = 1500 * time.Millisecond
)

// Config controls the dispatcher's two sub-operations. Empty commands
// disable the corresponding effect.
type Config struct {
	Enabled       bool
	NotifyCommand []string // e.g. ["notify-send"]; title and body are appended
	SoundCommand  []string // e.g. ["paplay"]; the asset path is appended
	SoundAsset    string
}

// Dispatcher subscribes to a notification log and mirrors every new
// record to the desktop notifier and sound player.
type Dispatcher struct {
	exec   executil.Executor
	cfg    Config
	logger zerolog.Logger

	wg sync.WaitGroup
}

// New creates a dispatcher using the given executor.
func New(exec executil.Executor, cfg Config) *Dispatcher {
	return &Dispatcher{
		exec:   exec,
		cfg:    cfg,
		logger: log.With().Str("component", "dispatch").Logger(),
	}
}

// HandleAdd is registered as a Log OnAdd subscriber. It returns
// immediately; both side effects run on their own goroutines.
func (d *Dispatcher) HandleAdd(rec notify.Record) {
	if !d.cfg.Enabled {
		return
	}

	if len(d.cfg.NotifyCommand) > 0 {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.desktop(rec)
		}()
	}

	if len(d.cfg.SoundCommand) > 0 && d.cfg.SoundAsset != "" {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.sound()
		}()
	}
}

// Wait blocks until in-flight side effects finish. Used by one-shot CLI
// commands and tests; the TUI never waits on the dispatcher.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) desktop(rec notify.Record) {
	ctx, cancel := context.WithTimeout(context.Background(), notifierTimeout)
	defer cancel()

	cmd := d.cfg.NotifyCommand[0]
	args := append(append([]string(nil), d.cfg.NotifyCommand[1:]...), rec.Title, rec.Message)
	if _, err := d.exec.Run(ctx, cmd, args...); err != nil {
		d.logger.Warn().Err(err).Str("id", rec.ID).Msg("desktop notification failed")
	}
}

func (d *Dispatcher) sound() {
	ctx, cancel := context.WithTimeout(context.Background(), soundTimeout)
	defer cancel()

	cmd := d.cfg.SoundCommand[0]
	args := append(append([]string(nil), d.cfg.SoundCommand[1:]...), d.cfg.SoundAsset)
	if _, err := d.exec.Run(ctx, cmd, args...); err != nil {
		d.logger.Warn().Err(err).Msg("notification sound failed")
	}
}
