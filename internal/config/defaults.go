package config

const (
	defaultConfigPath      = "~/.config/resincalc/config.toml"
	defaultRecipeFile      = "~/recepten.json"
	defaultWatchDebounceMS = 250
	defaultPrecision       = 1
	defaultUnit            = "g"
	defaultLocale          = "en"
	defaultStyle           = "rounded"
	defaultLibraryPath     = "~/.local/share/resincalc/library.db"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"

	// RecipesEnv overrides an empty recipes.file setting.
	RecipesEnv = "RESINCALC_RECIPES"

	maxPrecision = 6
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Recipes: Recipes{
			WatchDebounceMS: defaultWatchDebounceMS,
		},
		Display: Display{
			Precision: defaultPrecision,
			Unit:      defaultUnit,
			Locale:    defaultLocale,
			Style:     defaultStyle,
		},
		Library: Library{
			Path: defaultLibraryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
