package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"speakroots/internal/version"
)

// NewRootCommand assembles the adm command tree
func NewRootCommand(rt *Runtime) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "adm",
		Short: "speakroots administration tool",
		Long: `speakroots administration tool

Inspect level pools and daily quizzes, compute daily selections, manage the
key-value store, and query a running server.`,
		SilenceUsage: true,
		Version:      version.Get("adm").String(),
	}

	rootCmd.AddCommand(levelsCmd())
	rootCmd.AddCommand(poolCmd(rt))
	rootCmd.AddCommand(dailyCmd(rt))
	rootCmd.AddCommand(pickCmd(rt))
	rootCmd.AddCommand(CacheCommands(rt))
	rootCmd.AddCommand(hashPasswordCmd())
	rootCmd.AddCommand(RemoteCommands())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show the adm build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get("adm").String())
		},
	})

	return rootCmd
}
