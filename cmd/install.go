package cmd

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fuse-open/android-build-tools/internal/list"
	"github.com/fuse-open/android-build-tools/internal/provision"
	"github.com/fuse-open/android-build-tools/internal/ui"
	"github.com/fuse-open/android-build-tools/internal/unoconfig"
)

var installSDKDir string

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the Android SDK, CMake and NDK",
	Long: `Install the Android SDK command-line tools, accept the SDK licenses, install
CMake and the NDK, and write their locations together with the selected JDK
to ~/.unoconfig.

A JDK 17 or newer is preferred. JDK 11 is accepted with a warning.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installSDKDir, "sdk-dir", "", "install the SDK into this directory")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, _ []string) error {
	w := ui.NewWriter(noColor)

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	pf, err := detectPlatform(settings, installSDKDir)
	if err != nil {
		return err
	}

	if pf.Relocated != "" {
		w.Warningf("Android SDK cannot be installed in %s, because the SDK location cannot contain non-ASCII characters", pf.Relocated)
		w.Infof("Changing SDK location to %s", pf.SDKDir)
	}

	result, err := provision.Run(cmd.Context(), &provision.Opts{
		Platform: pf,
		Settings: settings,
		Reporter: w,
		Logger:   slog.Default(),
	})
	if err != nil {
		var noJDK *provision.NoJDKError
		if errors.As(err, &noJDK) && len(noJDK.Candidates) > 0 {
			if lerr := list.Run(&list.Opts{Candidates: noJDK.Candidates, Writer: os.Stderr}); lerr != nil {
				slog.Debug("listing rejected JDKs", "error", lerr)
			}
		}

		return err
	}

	content, err := unoconfig.Read(result.ConfigPath)
	if err != nil {
		return err
	}

	w.Section("~/"+unoconfig.FileName, content)

	return nil
}
