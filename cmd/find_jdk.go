package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fuse-open/android-build-tools/internal/jdk"
)

var findJDKCmd = &cobra.Command{
	Use:   "find-jdk",
	Short: "Print the home directory of the preferred JDK",
	Long: `Print the home directory of a JDK for Android development. JDK 11 is
preferred; newer versions are used when JDK 11 is not installed. Nothing is
printed when no JDK qualifies.`,
	Args: cobra.NoArgs,
	RunE: runFindJDK,
}

func init() {
	rootCmd.AddCommand(findJDKCmd)
}

func runFindJDK(cmd *cobra.Command, _ []string) error {
	candidates, err := discoverJDKs(cmd)
	if err != nil {
		return err
	}

	selected, _, ok := jdk.LocatePolicy.Resolve(candidates)
	if !ok {
		slog.Debug("no JDK satisfies the policy", "candidates", len(candidates))

		return nil
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), selected.Home)

	return err
}

// discoverJDKs scans the host, including the search paths from settings.
func discoverJDKs(cmd *cobra.Command) ([]jdk.Candidate, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	return jdk.Discover(cmd.Context(), &jdk.DiscoverOpts{
		Roots:  settings.JDKSearchPaths,
		Logger: slog.Default(),
	})
}
