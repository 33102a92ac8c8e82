package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mmcdole/edtag/internal/domain"
)

// BrowserViewer opens image URLs in a browser
type BrowserViewer struct {
	command     string   // configured browser command, empty for detection
	args        []string // additional arguments placed before the URL
	stepCommand string   // optional command that clicks the viewer's next/previous control
	stepArgs    []string
	logger      *slog.Logger

	// run starts a process; swapped in tests
	run func(name string, args ...string) error
}

// candidateBrowsers defines the preferred browser order for each platform
var candidateBrowsers = map[string][]string{
	"darwin":  {"google-chrome", "chromium", "firefox"},
	"linux":   {"google-chrome", "chromium", "chromium-browser", "firefox"},
	"windows": {"chrome", "msedge", "firefox"},
}

// NewBrowserViewer creates a viewer from configuration
func NewBrowserViewer(cfg ViewerConfig, logger *slog.Logger) *BrowserViewer {
	if logger == nil {
		logger = slog.Default()
	}
	return &BrowserViewer{
		command:     cfg.Command,
		args:        cfg.Args,
		stepCommand: cfg.StepCommand,
		stepArgs:    cfg.StepArgs,
		logger:      logger,
		run:         startCommand,
	}
}

// startCommand launches a command found in PATH without waiting for it
func startCommand(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}

// Show opens url in the configured browser, a detected browser, or the system default
func (v *BrowserViewer) Show(url string) error {
	// Tier 1: User configured a specific browser
	if v.command != "" {
		args := append(append([]string{}, v.args...), url)
		v.logger.Debug("opening with configured browser", "command", v.command, "url", url)
		return v.run(v.command, args...)
	}

	// Tier 2: Try candidate chain
	candidates, ok := candidateBrowsers[runtime.GOOS]
	if !ok {
		candidates = candidateBrowsers["linux"] // default
	}
	for _, name := range candidates {
		if err := v.run(name, url); err == nil {
			v.logger.Debug("opened with detected browser", "browser", name, "url", url)
			return nil
		}
	}

	// Tier 3: Fall back to system default (open/xdg-open/start)
	v.logger.Debug("no candidate browsers found, using system default", "url", url)
	switch runtime.GOOS {
	case "darwin":
		return v.run("open", url)
	case "windows":
		return v.run("cmd", "/c", "start", "", url)
	default:
		return v.run("xdg-open", url)
	}
}

// Step runs the configured step command with {dir} set to "next" or "previous".
// Without one it reports domain.ErrStepUnsupported so the caller reloads by URL.
func (v *BrowserViewer) Step(dir domain.Direction) error {
	if v.stepCommand == "" {
		return domain.ErrStepUnsupported
	}

	args := make([]string, len(v.stepArgs))
	for i, a := range v.stepArgs {
		args[i] = strings.ReplaceAll(a, "{dir}", dir.String())
	}
	if err := v.run(v.stepCommand, args...); err != nil {
		return fmt.Errorf("step %s: %w", dir, err)
	}
	return nil
}

// DummyViewer records nothing and shows nothing; used when the viewer is disabled.
type DummyViewer struct {
	logger *slog.Logger
}

func NewDummyViewer(logger *slog.Logger) *DummyViewer {
	if logger == nil {
		logger = slog.Default()
	}
	return &DummyViewer{logger: logger}
}

func (v *DummyViewer) Show(url string) error {
	v.logger.Debug("viewer disabled, not showing", "url", url)
	return nil
}

func (v *DummyViewer) Step(dir domain.Direction) error {
	v.logger.Debug("viewer disabled, not stepping", "direction", dir.String())
	return nil
}

// NewViewer returns the viewer selected by cfg
func NewViewer(cfg ViewerConfig, logger *slog.Logger) domain.Viewer {
	if !cfg.Enabled {
		return NewDummyViewer(logger)
	}
	return NewBrowserViewer(cfg, logger)
}
