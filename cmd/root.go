// Package cmd defines the CLI commands for android-build-tools.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fuse-open/android-build-tools/internal/config"
	"github.com/fuse-open/android-build-tools/internal/platform"
	"github.com/fuse-open/android-build-tools/internal/ui"
)

var (
	verbose bool
	noColor bool
	cfgFile string
)

// rootCmd is the base command for the android-build-tools CLI.
var rootCmd = &cobra.Command{
	Use:   "android-build-tools",
	Short: "Install the Android SDK for Fuse and Uno",
	Long: `android-build-tools installs the Android SDK command-line tools, CMake and
the NDK, picks a suitable JDK, and records their locations in ~/.unoconfig
so that Uno can build Android apps.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		initLogger()
	},
}

// Execute runs the root command and prints a diagnostic for any error.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		ReportError(ui.NewWriter(noColor), err)
	}

	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.config/android-build-tools/config.yaml)")
}

func initLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// loadSettings reads the settings file named by --config, or the default one.
func loadSettings() (*config.Settings, error) {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	slog.Debug("loading settings", "path", path)

	return config.Load(path)
}

// detectPlatform resolves the host platform. sdkDir, when set, wins over
// the settings file.
func detectPlatform(settings *config.Settings, sdkDir string) (*platform.Config, error) {
	if sdkDir == "" {
		sdkDir = settings.SDKDir
	}

	pf, err := platform.Current(platform.Options{
		ToolsVersion: settings.ToolsVersion,
		SDKDir:       sdkDir,
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("detected platform", "config", pf.String())

	return pf, nil
}
