// Package provision installs the Android SDK command-line tools, the
// packages Uno needs, and records their locations in .unoconfig.
package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fuse-open/android-build-tools/internal/config"
	"github.com/fuse-open/android-build-tools/internal/getter"
	"github.com/fuse-open/android-build-tools/internal/jdk"
	"github.com/fuse-open/android-build-tools/internal/platform"
	"github.com/fuse-open/android-build-tools/internal/sdkmanager"
	"github.com/fuse-open/android-build-tools/internal/unoconfig"
)

// Discoverer enumerates installed JDKs.
type Discoverer interface {
	Discover(ctx context.Context) ([]jdk.Candidate, error)
}

// DiscoverFunc adapts a function to Discoverer.
type DiscoverFunc func(ctx context.Context) ([]jdk.Candidate, error)

// Discover calls f.
func (f DiscoverFunc) Discover(ctx context.Context) ([]jdk.Candidate, error) {
	return f(ctx)
}

// Fetcher downloads a single file.
type Fetcher interface {
	FetchFile(ctx context.Context, src, dest string, opts getter.FetchOpts) error
}

// Extractor unpacks a zip archive into a directory.
type Extractor interface {
	Extract(src, dst string) error
}

// ExtractFunc adapts a function to Extractor.
type ExtractFunc func(src, dst string) error

// Extract calls f.
func (f ExtractFunc) Extract(src, dst string) error {
	return f(src, dst)
}

// Installer installs SDK packages.
type Installer interface {
	AcceptLicenses(ctx context.Context) error
	Install(ctx context.Context, pkg sdkmanager.Package) error
}

// InstallerFunc builds an Installer for the sdkmanager at path running on
// the JDK at javaHome.
type InstallerFunc func(path, javaHome string) Installer

// Reporter receives user-facing progress.
type Reporter interface {
	Info(msg string)
	Warning(msg string)
	Progress(percent int, remaining int64)
	EndProgress()
}

// Opts holds the options for Run.
type Opts struct {
	// Platform is the detected host config. Required.
	Platform *platform.Config

	// Settings select package versions. Defaults to config.Defaults().
	Settings *config.Settings

	// ConfigPath is the .unoconfig to update. Defaults to the one in the
	// user's home directory.
	ConfigPath string

	// Discoverer finds JDK candidates. Defaults to jdk.Discover.
	Discoverer Discoverer

	// Fetcher downloads the tools archive. Defaults to getter.New.
	Fetcher Fetcher

	// Extractor unpacks the tools archive. Defaults to getter.Extract.
	Extractor Extractor

	// NewInstaller creates the sdkmanager driver. Defaults to a
	// sdkmanager.Runner with JAVA_HOME set in its environment.
	NewInstaller InstallerFunc

	// Reporter receives progress. Nil discards it.
	Reporter Reporter

	// Logger for debug output.
	Logger *slog.Logger
}

// Result holds the output of a successful install.
type Result struct {
	JDK          jdk.Candidate
	SDKDir       string
	NDKDir       string
	ConfigPath   string
	Packages     []string
	ToolsSkipped bool
	Warning      string
}

// Run executes the install workflow.
func Run(ctx context.Context, opts *Opts) (*Result, error) {
	if opts.Platform == nil {
		return nil, errors.New("platform config is required")
	}

	r := newRunner(opts)
	pf := opts.Platform

	// 1. Select a JDK.
	candidates, err := r.discoverer.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discovering JDKs: %w", err)
	}

	selected, attempt, ok := jdk.InstallPolicy.Resolve(candidates)
	if !ok {
		return nil, &NoJDKError{Minimum: jdk.InstallPolicy.Minimum(), Candidates: candidates}
	}

	if attempt.Warning != "" {
		r.reporter.Warning(attempt.Warning)
	}

	r.reporter.Info("Found JDK at " + selected.Home)
	r.logger.Debug("selected JDK", "home", selected.Home, "major", selected.Major, "constraint", attempt.Constraint.String())

	// 2. sdkmanager needs HOME on Unix.
	if !pf.Windows && pf.HomeDir == "" {
		return nil, &EnvironmentError{Var: "HOME"}
	}

	result := &Result{
		JDK:        selected,
		SDKDir:     pf.SDKDir,
		NDKDir:     pf.NDKDir(r.settings.NDKVersion),
		ConfigPath: r.configPath,
		Warning:    attempt.Warning,
	}

	// 3. Command-line tools.
	skipped, err := r.installTools(ctx)
	if err != nil {
		return nil, err
	}

	result.ToolsSkipped = skipped

	// 4. Silence the sdkmanager warning about a missing repositories.cfg.
	if pf.HomeDir != "" {
		if err := touch(filepath.Join(pf.AndroidUserDir(), "repositories.cfg")); err != nil {
			r.logger.Warn("creating repositories.cfg", "error", err)
		}
	}

	// 5. Packages.
	installer := r.newInstaller(pf.SDKManager(), selected.Home)

	r.reporter.Info("Accepting licenses")

	if err := installer.AcceptLicenses(ctx); err != nil {
		return nil, fmt.Errorf("accepting licenses: %w", err)
	}

	for _, pkg := range Packages(r.settings) {
		r.reporter.Info("Installing " + pkg.String())

		if err := installer.Install(ctx, pkg); err != nil {
			return nil, fmt.Errorf("installing %s: %w", pkg, err)
		}

		result.Packages = append(result.Packages, pkg.String())
	}

	// 6. Tell Uno where everything is.
	entries := []unoconfig.Entry{
		{Key: unoconfig.KeySDKDir, Value: result.SDKDir},
		{Key: unoconfig.KeyNDKDir, Value: result.NDKDir},
		{Key: unoconfig.KeyJDKDir, Value: selected.Home},
	}

	if err := unoconfig.Sync(r.configPath, entries, pf.LineEnding); err != nil {
		return nil, fmt.Errorf("updating %s: %w", unoconfig.FileName, err)
	}

	return result, nil
}

// Packages returns the SDK packages to install, in install order.
func Packages(s *config.Settings) []sdkmanager.Package {
	var pkgs []sdkmanager.Package

	if s.InstallBuildTools() {
		pkgs = append(pkgs, sdkmanager.Package{ID: "build-tools", Version: s.BuildToolsVersion})
	}

	return append(pkgs,
		sdkmanager.Package{ID: "cmake", Version: s.CMakeVersion},
		sdkmanager.Package{ID: "ndk", Version: s.NDKVersion},
	)
}

type runner struct {
	pf           *platform.Config
	settings     *config.Settings
	configPath   string
	discoverer   Discoverer
	fetcher      Fetcher
	extractor    Extractor
	newInstaller InstallerFunc
	reporter     Reporter
	logger       *slog.Logger
}

func newRunner(opts *Opts) *runner {
	r := &runner{
		pf:           opts.Platform,
		settings:     opts.Settings,
		configPath:   opts.ConfigPath,
		discoverer:   opts.Discoverer,
		fetcher:      opts.Fetcher,
		extractor:    opts.Extractor,
		newInstaller: opts.NewInstaller,
		reporter:     opts.Reporter,
		logger:       opts.Logger,
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	if r.settings == nil {
		r.settings = config.Defaults()
	}

	if r.configPath == "" {
		r.configPath = unoconfig.DefaultPath(r.pf.HomeDir)
	}

	if r.discoverer == nil {
		logger := r.logger
		roots := r.settings.JDKSearchPaths

		r.discoverer = DiscoverFunc(func(ctx context.Context) ([]jdk.Candidate, error) {
			return jdk.Discover(ctx, &jdk.DiscoverOpts{Roots: roots, Logger: logger})
		})
	}

	if r.fetcher == nil {
		attempts := r.settings.DownloadAttempts
		if attempts < 1 {
			attempts = getter.DefaultAttempts
		}

		r.fetcher = getter.New(r.logger).WithAttempts(attempts)
	}

	if r.extractor == nil {
		r.extractor = ExtractFunc(getter.Extract)
	}

	if r.newInstaller == nil {
		logger := r.logger

		r.newInstaller = func(path, javaHome string) Installer {
			return &sdkmanager.Runner{
				Path:   path,
				Env:    append(os.Environ(), "JAVA_HOME="+javaHome),
				Stderr: os.Stderr,
				Logger: logger,
			}
		}
	}

	if r.reporter == nil {
		r.reporter = nopReporter{}
	}

	return r
}

func touch(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // not secret
	if err != nil {
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	now := time.Now()

	return os.Chtimes(path, now, now)
}

type nopReporter struct{}

func (nopReporter) Info(string)         {}
func (nopReporter) Warning(string)      {}
func (nopReporter) Progress(int, int64) {}
func (nopReporter) EndProgress()        {}
