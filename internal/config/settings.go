// Package config loads the installer's user settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fuse-open/android-build-tools/internal/platform"
)

// Default package versions.
const (
	DefaultCMakeVersion      = "3.18.1"
	DefaultNDKVersion        = "21.4.7075529"
	DefaultBuildToolsVersion = "33.0.2"
)

// Settings are user overrides for what gets installed and where.
type Settings struct {
	// ToolsVersion is the command-line tools build number.
	ToolsVersion string `yaml:"tools_version"`
	// CMakeVersion is installed as "cmake;<version>".
	CMakeVersion string `yaml:"cmake_version"`
	// NDKVersion is installed as "ndk;<version>".
	NDKVersion string `yaml:"ndk_version"`
	// BuildToolsVersion is installed as "build-tools;<version>". The "none"
	// value skips build tools.
	BuildToolsVersion string `yaml:"build_tools_version"`
	// SDKDir replaces the platform default SDK location.
	SDKDir string `yaml:"sdk_dir"`
	// JDKSearchPaths are extra directories scanned for JDK installs.
	JDKSearchPaths []string `yaml:"jdk_search_paths"`
	// DownloadAttempts bounds how often the tools download is tried.
	DownloadAttempts int `yaml:"download_attempts"`
}

// Defaults returns the settings used when no file overrides them.
func Defaults() *Settings {
	return &Settings{
		ToolsVersion:      platform.DefaultToolsVersion,
		CMakeVersion:      DefaultCMakeVersion,
		NDKVersion:        DefaultNDKVersion,
		BuildToolsVersion: DefaultBuildToolsVersion,
		DownloadAttempts:  3,
	}
}

// DefaultConfigDir returns the default configuration directory, respecting XDG_CONFIG_HOME.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "android-build-tools")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "android-build-tools")
	}

	return filepath.Join(home, ".config", "android-build-tools")
}

// DefaultPath returns the default settings file.
func DefaultPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Load reads settings from path on top of Defaults. A missing file is not
// an error.
func Load(path string) (*Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}

		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := Validate(s); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}

	return s, nil
}

// InstallBuildTools reports whether build tools should be installed.
func (s *Settings) InstallBuildTools() bool {
	return s.BuildToolsVersion != "" && s.BuildToolsVersion != "none"
}
