package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fuse-open/android-build-tools/internal/jdk"
	"github.com/fuse-open/android-build-tools/internal/list"
)

var jdksOutputFormat string

var jdksCmd = &cobra.Command{
	Use:   "jdks",
	Short: "List the JDKs found on this machine",
	Long: `List every JDK found on this machine. The one install would use is marked
with an asterisk.`,
	Args: cobra.NoArgs,
	RunE: runJDKs,
}

func init() {
	jdksCmd.Flags().StringVarP(&jdksOutputFormat, "output", "o", "table", "output format (table, json)")
	rootCmd.AddCommand(jdksCmd)
}

func runJDKs(cmd *cobra.Command, _ []string) error {
	candidates, err := discoverJDKs(cmd)
	if err != nil {
		return err
	}

	return list.Run(&list.Opts{
		Candidates:   candidates,
		Policy:       jdk.InstallPolicy,
		OutputFormat: jdksOutputFormat,
		Writer:       cmd.OutOrStdout(),
	})
}
