package config

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRecipes(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRecipes() error {
	if c.Recipes.File == "" {
		return errors.New("recipes.file must be set")
	}
	if c.Recipes.WatchDebounceMS < 0 {
		return errors.New("recipes.watch_debounce_ms must be >= 0")
	}
	return nil
}

func (c *Config) validateDisplay() error {
	if c.Display.Precision < 0 || c.Display.Precision > maxPrecision {
		return fmt.Errorf("display.precision must be between 0 and %d", maxPrecision)
	}
	if _, err := language.Parse(c.Display.Locale); err != nil {
		return fmt.Errorf("display.locale: unsupported value %q: %w", c.Display.Locale, err)
	}
	switch c.Display.Style {
	case "rounded", "light", "ascii":
	default:
		return fmt.Errorf("display.style: unsupported value %q (use rounded, light or ascii)", c.Display.Style)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
