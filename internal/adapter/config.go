package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/mmcdole/edtag/internal/domain"
)

// Config holds all application configuration
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Viewer   ViewerConfig   `mapstructure:"viewer"`
	Annotate AnnotateConfig `mapstructure:"annotate"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// CatalogConfig locates the film listings and the ED description ranges
type CatalogConfig struct {
	DataDir   string `mapstructure:"data_dir"`   // Root of the scraped catalog
	FilmsGlob string `mapstructure:"films_glob"` // Film JSON files, relative to DataDir
	RangesCSV string `mapstructure:"ranges_csv"` // ED description ranges, relative to DataDir
}

// StorageConfig selects the annotation database
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // "bolt", "sqlite" or "memory"
	Path   string `mapstructure:"path"`
}

// ViewerConfig controls how images are displayed
type ViewerConfig struct {
	Enabled     bool     `mapstructure:"enabled"`
	Command     string   `mapstructure:"command"`      // Browser command, empty for system default
	Args        []string `mapstructure:"args"`         // Extra args placed before the URL
	StepCommand string   `mapstructure:"step_command"` // Optional command that presses the viewer's next/previous control
	StepArgs    []string `mapstructure:"step_args"`    // "{dir}" is replaced with "next" or "previous"
	URLTemplate string   `mapstructure:"url_template"` // {ark}, {i} and {cat} placeholders
}

// AnnotateConfig holds annotation session preferences
type AnnotateConfig struct {
	SeedOrder         string `mapstructure:"seed_order"`          // "ed" or "lexical"
	ResumeLastEntered bool   `mapstructure:"resume_last_entered"` // Start at the last annotated image
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			DataDir:   "",
			FilmsGlob: "films/*.json",
			RangesCSV: "ed_descr_nums.csv",
		},
		Storage: StorageConfig{
			Driver: "bolt",
			Path:   filepath.Join(defaultDataPath(), "edtag.db"),
		},
		Viewer: ViewerConfig{
			Enabled:     true,
			Args:        []string{},
			StepArgs:    []string{},
			URLTemplate: domain.DefaultImageURLTemplate,
		},
		Annotate: AnnotateConfig{
			SeedOrder:         "ed",
			ResumeLastEntered: true,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "edtag.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "edtag")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "edtag")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "edtag")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "edtag")
	}
}

// setDefaults registers every key so environment overrides reach Unmarshal
func setDefaults(cfg *Config) {
	viper.SetDefault("catalog.data_dir", cfg.Catalog.DataDir)
	viper.SetDefault("catalog.films_glob", cfg.Catalog.FilmsGlob)
	viper.SetDefault("catalog.ranges_csv", cfg.Catalog.RangesCSV)
	viper.SetDefault("storage.driver", cfg.Storage.Driver)
	viper.SetDefault("storage.path", cfg.Storage.Path)
	viper.SetDefault("viewer.enabled", cfg.Viewer.Enabled)
	viper.SetDefault("viewer.command", cfg.Viewer.Command)
	viper.SetDefault("viewer.args", cfg.Viewer.Args)
	viper.SetDefault("viewer.step_command", cfg.Viewer.StepCommand)
	viper.SetDefault("viewer.step_args", cfg.Viewer.StepArgs)
	viper.SetDefault("viewer.url_template", cfg.Viewer.URLTemplate)
	viper.SetDefault("annotate.seed_order", cfg.Annotate.SeedOrder)
	viper.SetDefault("annotate.resume_last_entered", cfg.Annotate.ResumeLastEntered)
	viper.SetDefault("logging.file", cfg.Logging.File)
	viper.SetDefault("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from file and environment.
// An explicit path wins over the default search locations.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(cfg)

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(defaultConfigPath())
		viper.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. EDTAG_STORAGE_DRIVER
	viper.SetEnvPrefix("EDTAG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Catalog.DataDir = ExpandHome(cfg.Catalog.DataDir)
	cfg.Storage.Path = ExpandHome(cfg.Storage.Path)
	cfg.Logging.File = ExpandHome(cfg.Logging.File)
	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("catalog.data_dir", cfg.Catalog.DataDir)
	viper.Set("catalog.films_glob", cfg.Catalog.FilmsGlob)
	viper.Set("catalog.ranges_csv", cfg.Catalog.RangesCSV)

	viper.Set("storage.driver", cfg.Storage.Driver)
	viper.Set("storage.path", cfg.Storage.Path)

	viper.Set("viewer.enabled", cfg.Viewer.Enabled)
	viper.Set("viewer.command", cfg.Viewer.Command)
	viper.Set("viewer.args", cfg.Viewer.Args)
	viper.Set("viewer.step_command", cfg.Viewer.StepCommand)
	viper.Set("viewer.step_args", cfg.Viewer.StepArgs)
	viper.Set("viewer.url_template", cfg.Viewer.URLTemplate)

	viper.Set("annotate.seed_order", cfg.Annotate.SeedOrder)
	viper.Set("annotate.resume_last_entered", cfg.Annotate.ResumeLastEntered)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the catalog location is set
func (c *Config) IsConfigured() bool {
	return c.Catalog.DataDir != ""
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
