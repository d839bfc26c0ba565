package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/fuse-open/android-build-tools/internal/check"
)

var (
	checkOutputFormat string
	checkSDKDir       string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the Android SDK install",
	Long: `Report whether the command-line tools, CMake, the NDK and a JDK are
installed, and whether ~/.unoconfig points at them. Exits non-zero when
anything is missing.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkOutputFormat, "output", "o", "text", "output format (text, json)")
	checkCmd.Flags().StringVar(&checkSDKDir, "sdk-dir", "", "check the SDK in this directory (default is the one in ~/.unoconfig)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	pf, err := detectPlatform(settings, checkSDKDir)
	if err != nil {
		return err
	}

	candidates, err := discoverJDKs(cmd)
	if err != nil {
		return err
	}

	result, err := check.Run(&check.Opts{
		Platform:         pf,
		Settings:         settings,
		SDKDirFromConfig: checkSDKDir == "" && settings.SDKDir == "",
		Candidates:       candidates,
		OutputFormat:     checkOutputFormat,
		Writer:           cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	if !result.Healthy {
		return errors.New("the Android SDK install is incomplete, run 'android-build-tools install'")
	}

	return nil
}
