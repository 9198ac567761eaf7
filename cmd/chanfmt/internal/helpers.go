package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/tinyland-inc/chanfmt/pkg/config"
	"github.com/tinyland-inc/chanfmt/pkg/logger"
)

const Logo = "✉️"

var (
	version   = "dev"
	gitCommit string
	buildTime string
	goVersion string
)

func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".chanfmt", "config.json")
}

func GetDhallConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".chanfmt", "config.dhall")
}

// LoadConfig loads the config at path. With an empty path the Dhall config
// in the home directory is tried first, then the JSON one.
func LoadConfig(path string) (*config.Config, error) {
	if path != "" {
		if strings.HasSuffix(path, ".dhall") {
			return config.LoadDhallConfig(path)
		}
		return config.LoadConfig(path)
	}

	dhallPath := GetDhallConfigPath()
	if _, err := os.Stat(dhallPath); err == nil {
		cfg, err := config.LoadDhallConfig(dhallPath)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, config.ErrDhallNotAvailable) {
			return nil, fmt.Errorf("error loading dhall config: %w", err)
		}
		logger.WarnCF("cli", "dhall-to-json not installed, falling back to JSON config", map[string]any{
			"path": dhallPath,
		})
	}

	return config.LoadConfig(GetConfigPath())
}

// ApplyLogLevel sets the global log level from cfg unless debug forces DEBUG.
func ApplyLogLevel(cfg *config.Config, debug bool) {
	if debug {
		logger.SetLevel(logger.DEBUG)
		return
	}
	if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
}

// FormatVersion returns the version string with optional git commit
func FormatVersion() string {
	v := version
	if gitCommit != "" {
		v += fmt.Sprintf(" (git: %s)", gitCommit)
	}
	return v
}

// FormatBuildInfo returns build time and go version info
func FormatBuildInfo() (string, string) {
	build := buildTime
	goVer := goVersion
	if goVer == "" {
		goVer = runtime.Version()
	}
	return build, goVer
}

// GetVersion returns the version string
func GetVersion() string {
	return version
}
