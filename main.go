package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/tablekit/tablekit/internal/commands"
	"github.com/tablekit/tablekit/internal/core/config"
	"github.com/tablekit/tablekit/internal/core/eventbus"
	"github.com/tablekit/tablekit/internal/core/notify"
	"github.com/tablekit/tablekit/internal/core/styles"
	"github.com/tablekit/tablekit/internal/data/db"
	"github.com/tablekit/tablekit/internal/data/stores"
	"github.com/tablekit/tablekit/internal/dispatch"
	"github.com/tablekit/tablekit/pkg/executil"
	"github.com/tablekit/tablekit/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser  func()
		database   *db.DB
		notifyLog  *notify.Log
		dispatcher *dispatch.Dispatcher
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "tablekit",
		Usage:     "Back-office companion for restaurant operators",
		UsageText: "tablekit [global options] command [command options]",
		Description: `Tablekit keeps restaurant operators on top of what happens in the
back office: new orders, menu changes, staff invites, and finished reports
land in a durable notification log with a transient on-screen alert.

Run 'tablekit' with no arguments to open the interactive notification center.
Run 'tablekit notify --help' to manage notifications from the command line.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TABLEKIT_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to the system state directory)",
				Sources:     cli.EnvVars("TABLEKIT_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TABLEKIT_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TABLEKIT_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; the TUI owns the terminal.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = commands.DefaultLogFile()
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures the name is valid)
			palette, _ := styles.GetPalette(cfg.Theme)
			styles.SetTheme(palette)

			// Open database connection
			dbOpts := db.OpenOptions{
				MaxOpenConns: cfg.Database.MaxOpenConns,
				MaxIdleConns: cfg.Database.MaxIdleConns,
				BusyTimeout:  cfg.Database.BusyTimeout,
			}
			database, err = db.Open(cfg.DataDir, dbOpts)
			if err != nil && stores.IsCorruptionError(err) {
				// Move the damaged file aside and start fresh; the
				// backup stays in the data dir for manual inspection.
				log.Warn().Err(err).Msg("database corrupted, recovering")
				if rerr := stores.RecoverFromCorruption(cfg.DataDir); rerr != nil {
					return ctx, fmt.Errorf("recover database: %w", rerr)
				}
				database, err = db.Open(cfg.DataDir, dbOpts)
			}
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			// Build the notification log on top of the snapshot store
			notifyLog = notify.NewLog(stores.NewSnapshotStore(database))
			notifyLog.Load(ctx)
			flags.Log = notifyLog

			// Side-channel: desktop notification and sound per new record
			dispatcher = dispatch.New(&executil.RealExecutor{}, dispatch.Config{
				Enabled:       cfg.Notifier.Enabled,
				NotifyCommand: cfg.Notifier.Command,
				SoundCommand:  cfg.Notifier.Sound,
				SoundAsset:    cfg.Notifier.Asset,
			})
			notifyLog.OnAdd(dispatcher.HandleAdd)

			// Domain events feed the log through the router
			bus := eventbus.New()
			eventbus.NewNotificationRouter(bus, notifyLog, cfg.Mute).Register()
			flags.Bus = bus

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Let in-flight side effects finish before teardown
			if dispatcher != nil {
				dispatcher.Wait()
			}

			// Flush pending snapshot writes and stop the saver
			if notifyLog != nil {
				notifyLog.Close()
			}

			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags)

	app = commands.NewNotifyCmd(flags).Register(app)
	app = commands.NewConfigCmd(flags).Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'tablekit --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
