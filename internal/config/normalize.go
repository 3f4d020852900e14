package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeRecipes(); err != nil {
		return err
	}
	c.normalizeDisplay()
	if err := c.normalizeLibrary(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeRecipes() error {
	c.Recipes.File = strings.TrimSpace(c.Recipes.File)
	if c.Recipes.File == "" {
		if value, ok := os.LookupEnv(RecipesEnv); ok && strings.TrimSpace(value) != "" {
			c.Recipes.File = strings.TrimSpace(value)
		} else {
			c.Recipes.File = defaultRecipeFile
		}
	}
	var err error
	if c.Recipes.File, err = expandPath(c.Recipes.File); err != nil {
		return fmt.Errorf("recipes.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeDisplay() {
	c.Display.Unit = strings.TrimSpace(c.Display.Unit)
	c.Display.Locale = strings.TrimSpace(c.Display.Locale)
	if c.Display.Locale == "" {
		c.Display.Locale = defaultLocale
	}
	c.Display.Style = strings.ToLower(strings.TrimSpace(c.Display.Style))
	if c.Display.Style == "" {
		c.Display.Style = defaultStyle
	}
}

func (c *Config) normalizeLibrary() error {
	if strings.TrimSpace(c.Library.Path) == "" {
		c.Library.Path = defaultLibraryPath
	}
	var err error
	if c.Library.Path, err = expandPath(strings.TrimSpace(c.Library.Path)); err != nil {
		return fmt.Errorf("library.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		var err error
		if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
	}
	return nil
}
