package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/tablekit/tablekit/internal/core/styles"
)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("theme", c.Theme, themeExists),
		criterio.Run("toast.hold_ms", c.Toast.HoldMS, isPositive),
		criterio.Run("data_dir", c.DataDir, isNonEmpty),
		c.validateNotifier(),
		c.validateMutePatterns(),
		c.validateDatabase(),
	)
}

func (c *Config) validateNotifier() error {
	if !c.Notifier.Enabled {
		return nil
	}

	var errs criterio.FieldErrorsBuilder
	if len(c.Notifier.Command) == 0 && len(c.Notifier.Sound) == 0 {
		errs = errs.Append("notifier", fmt.Errorf("enabled but no command or sound configured"))
	}
	if len(c.Notifier.Sound) > 0 && c.Notifier.Asset == "" {
		errs = errs.Append("notifier.asset", fmt.Errorf("sound configured without an asset path"))
	}
	return errs.ToError()
}

func (c *Config) validateMutePatterns() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.Mute {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("mute[%d]", i), fmt.Errorf("invalid glob pattern %q", pattern))
		}
	}
	return errs.ToError()
}

func (c *Config) validateDatabase() error {
	var errs criterio.FieldErrorsBuilder
	if c.Database.MaxOpenConns < 1 {
		errs = errs.Append("database.max_open_conns", fmt.Errorf("must be at least 1"))
	}
	if c.Database.MaxIdleConns < 0 {
		errs = errs.Append("database.max_idle_conns", fmt.Errorf("cannot be negative"))
	}
	if c.Database.BusyTimeout < 0 {
		errs = errs.Append("database.busy_timeout", fmt.Errorf("cannot be negative"))
	}
	return errs.ToError()
}

func themeExists(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}

func isPositive(n int) error {
	if n <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func isNonEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}
