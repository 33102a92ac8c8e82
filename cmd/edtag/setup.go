package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mmcdole/edtag/internal/adapter"
	"github.com/mmcdole/edtag/internal/store"
)

func newSetupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Choose the catalog, database and viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return runSetupForm(cfg)
		},
	}
}

// runSetupForm asks for the settings a first session needs and saves them
func runSetupForm(cfg *adapter.Config) error {
	dataDir := cfg.Catalog.DataDir
	driver := cfg.Storage.Driver
	dbPath := cfg.Storage.Path
	browser := cfg.Viewer.Command
	resume := cfg.Annotate.ResumeLastEntered

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Catalog directory").
				Description("Holds films/*.json and ed_descr_nums.csv").
				Value(&dataDir).
				Validate(func(dir string) error { return validateDataDir(dir, cfg.Catalog.RangesCSV) }),
			huh.NewSelect[string]().
				Title("Annotation database").
				Options(
					huh.NewOption("bbolt (single file, default)", store.DriverBolt),
					huh.NewOption("SQLite", store.DriverSQLite),
					huh.NewOption("In memory (nothing is saved)", store.DriverMemory),
				).
				Value(&driver),
			huh.NewInput().
				Title("Database file").
				Value(&dbPath),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Browser command").
				Description("Leave empty to detect one").
				Value(&browser),
			huh.NewConfirm().
				Title("Resume at the last annotated image?").
				Value(&resume),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}

	cfg.Catalog.DataDir = adapter.ExpandHome(strings.TrimSpace(dataDir))
	cfg.Storage.Driver = driver
	cfg.Storage.Path = adapter.ExpandHome(strings.TrimSpace(dbPath))
	cfg.Viewer.Command = strings.TrimSpace(browser)
	cfg.Annotate.ResumeLastEntered = resume

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Println("✓ Configuration saved")
	return nil
}

// validateDataDir checks dir exists and holds the ranges CSV
func validateDataDir(dir, rangesCSV string) error {
	dir = adapter.ExpandHome(strings.TrimSpace(dir))
	if dir == "" {
		return errors.New("catalog directory is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	if _, err := os.Stat(filepath.Join(dir, rangesCSV)); err != nil {
		return fmt.Errorf("no %s in %s", rangesCSV, dir)
	}
	return nil
}
