package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/tablekit/tablekit/internal/core/config"
	"github.com/tablekit/tablekit/internal/core/eventbus"
	"github.com/tablekit/tablekit/internal/core/notify"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Log is the notification log, loaded from the store in the Before hook
	Log *notify.Log

	// Bus carries back-office domain events into the notification router
	Bus *eventbus.EventBus
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tablekit", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "tablekit")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/tablekit/tablekit.log
// On Linux: $XDG_STATE_HOME/tablekit/tablekit.log (defaults to ~/.local/state/tablekit/tablekit.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "tablekit", "tablekit.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "tablekit", "tablekit.log")
	}

	return filepath.Join(home, ".local", "state", "tablekit", "tablekit.log")
}
