package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/fuse-open/android-build-tools/internal/platform"
	"github.com/fuse-open/android-build-tools/internal/unoconfig"
)

var unoconfigFile string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and update ~/.unoconfig",
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY:VALUE...",
	Short: "Set or remove .unoconfig entries",
	Long: `Set entries in ~/.unoconfig. Existing lines for each key are replaced. An
empty value removes the key, e.g. "Android.NDK.Directory:".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConfigSet,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print ~/.unoconfig",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configCmd.PersistentFlags().StringVar(&unoconfigFile, "file", "", "config file to edit (default is ~/.unoconfig)")
	configCmd.AddCommand(configSetCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigSet(_ *cobra.Command, args []string) error {
	entries := make([]unoconfig.Entry, 0, len(args))

	for _, arg := range args {
		e, err := unoconfig.ParseEntry(arg)
		if err != nil {
			return err
		}

		entries = append(entries, e)
	}

	path, eol, err := unoconfigPath()
	if err != nil {
		return err
	}

	return unoconfig.Sync(path, entries, eol)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	path, _, err := unoconfigPath()
	if err != nil {
		return err
	}

	content, err := unoconfig.Read(path)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), content)

	return err
}

// unoconfigPath resolves --file, defaulting to .unoconfig in the user's home
// directory. The line ending is the host's.
func unoconfigPath() (path, eol string, err error) {
	eol = platform.LineEnding(runtime.GOOS)

	if unoconfigFile != "" {
		return unoconfigFile, eol, nil
	}

	home := platform.UserHome(runtime.GOOS, os.LookupEnv)
	if home == "" {
		return "", "", fmt.Errorf("cannot locate %s: home directory is not set", unoconfig.FileName)
	}

	return unoconfig.DefaultPath(home), eol, nil
}
