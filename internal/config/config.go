package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ajitpratap0/middagsvalet/internal/catalog"
	"github.com/ajitpratap0/middagsvalet/internal/ingredient"
	"github.com/ajitpratap0/middagsvalet/internal/menu"
	"github.com/ajitpratap0/middagsvalet/internal/scoring"
	"github.com/ajitpratap0/middagsvalet/internal/shopping"
)

// Config holds all configuration for middagsvalet.
type Config struct {
	Catalog  CatalogConfig    `mapstructure:"catalog"`
	Scoring  scoring.Weights  `mapstructure:"scoring"`
	Menu     MenuConfig       `mapstructure:"menu"`
	Swap     SwapConfig       `mapstructure:"swap"`
	Shopping shopping.Options `mapstructure:"shopping"`
	Logging  LoggingConfig    `mapstructure:"logging"`
}

// CatalogConfig holds ingredient catalog and matching settings.
type CatalogConfig struct {
	// Path to a catalog YAML file. Empty means the built-in catalog.
	Path               string  `mapstructure:"path"`
	FuzzyThreshold     float64 `mapstructure:"fuzzy_threshold"`
	FallbackConfidence float64 `mapstructure:"fallback_confidence"`
	ReviewThreshold    float64 `mapstructure:"review_threshold"`
}

// MenuConfig holds menu generation settings.
type MenuConfig struct {
	TopK     int `mapstructure:"top_k"`
	SwapTopK int `mapstructure:"swap_top_k"`
}

// SwapConfig holds swap candidate settings.
type SwapConfig struct {
	menu.SwapWeights `mapstructure:",squash"`
	DefaultLimit     int `mapstructure:"default_limit"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MatcherOptions returns the catalog matcher settings.
func (c *Config) MatcherOptions() catalog.Options {
	return catalog.Options{
		FuzzyThreshold:     c.Catalog.FuzzyThreshold,
		FallbackConfidence: c.Catalog.FallbackConfidence,
	}
}

// ServiceOptions returns the ingredient service settings.
func (c *Config) ServiceOptions() ingredient.Options {
	return ingredient.Options{ReviewThreshold: c.Catalog.ReviewThreshold}
}

// GeneratorOptions returns the menu generator settings.
func (c *Config) GeneratorOptions() menu.GeneratorOptions {
	return menu.GeneratorOptions{
		TopK:             c.Menu.TopK,
		SwapTopK:         c.Menu.SwapTopK,
		SwapWeights:      c.Swap.SwapWeights,
		DefaultSwapLimit: c.Swap.DefaultLimit,
	}
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.fuzzy_threshold", catalog.DefaultFuzzyThreshold)
	v.SetDefault("catalog.fallback_confidence", catalog.DefaultFallbackConfidence)
	v.SetDefault("catalog.review_threshold", ingredient.DefaultReviewThreshold)

	w := scoring.DefaultWeights()
	v.SetDefault("scoring.base", w.Base)
	v.SetDefault("scoring.cuisine", w.Cuisine)
	v.SetDefault("scoring.protein", w.Protein)
	v.SetDefault("scoring.time_bonus", w.TimeBonus)
	v.SetDefault("scoring.time_penalty", w.TimePenalty)
	v.SetDefault("scoring.mood", w.Mood)
	v.SetDefault("scoring.allergen", w.Allergen)
	v.SetDefault("scoring.avoid_ingredient", w.AvoidIngredient)
	v.SetDefault("scoring.kid_base", w.KidBase)
	v.SetDefault("scoring.picky_step", w.PickyStep)
	v.SetDefault("scoring.recent_dish", w.RecentDish)
	v.SetDefault("scoring.recent_protein", w.RecentProtein)
	v.SetDefault("scoring.like", w.Like)
	v.SetDefault("scoring.dislike", w.Dislike)

	v.SetDefault("menu.top_k", menu.DefaultTopK)
	v.SetDefault("menu.swap_top_k", menu.DefaultSwapTopK)

	sw := menu.DefaultSwapWeights()
	v.SetDefault("swap.same_protein", sw.SameProtein)
	v.SetDefault("swap.cuisine_overlap", sw.CuisineOverlap)
	v.SetDefault("swap.prep_time_per_minute", sw.PrepTimePerMinute)
	v.SetDefault("swap.default_limit", menu.DefaultSwapLimit)

	v.SetDefault("shopping.exclude", shopping.DefaultOptions().Exclude)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(homeDir(), ".middagsvalet"))
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("MIDDAGSVALET")
	v.AutomaticEnv()

	// Map specific env vars
	_ = v.BindEnv("catalog.path", "MIDDAGSVALET_CATALOG_PATH")
	_ = v.BindEnv("catalog.fuzzy_threshold", "MIDDAGSVALET_CATALOG_FUZZY_THRESHOLD")
	_ = v.BindEnv("catalog.review_threshold", "MIDDAGSVALET_CATALOG_REVIEW_THRESHOLD")
	_ = v.BindEnv("menu.top_k", "MIDDAGSVALET_MENU_TOP_K")
	_ = v.BindEnv("menu.swap_top_k", "MIDDAGSVALET_MENU_SWAP_TOP_K")
	_ = v.BindEnv("shopping.exclude", "MIDDAGSVALET_SHOPPING_EXCLUDE")
	_ = v.BindEnv("logging.level", "MIDDAGSVALET_LOG_LEVEL")
	_ = v.BindEnv("logging.format", "MIDDAGSVALET_LOG_FORMAT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that configuration values are in range and consistent.
func (c *Config) Validate() error {
	if c.Catalog.FuzzyThreshold <= 0 || c.Catalog.FuzzyThreshold > 1 {
		return fmt.Errorf("catalog.fuzzy_threshold must be in (0, 1]")
	}
	if c.Catalog.FallbackConfidence < 0 || c.Catalog.FallbackConfidence >= c.Catalog.FuzzyThreshold {
		return fmt.Errorf("catalog.fallback_confidence (%.2f) must be >= 0 and below catalog.fuzzy_threshold (%.2f)",
			c.Catalog.FallbackConfidence, c.Catalog.FuzzyThreshold)
	}
	if c.Catalog.ReviewThreshold < 0 || c.Catalog.ReviewThreshold > 1 {
		return fmt.Errorf("catalog.review_threshold must be between 0 and 1")
	}
	if err := c.Scoring.Validate(); err != nil {
		return err
	}
	if err := c.GeneratorOptions().Validate(); err != nil {
		return err
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json; got %q", c.Logging.Format)
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
