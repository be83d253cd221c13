package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"speakroots/internal/client"
)

// RemoteCommands returns commands that talk to a running server
func RemoteCommands() *cobra.Command {
	var server string

	remoteCmd := &cobra.Command{
		Use:   "remote",
		Short: "Query a running speakroots server",
	}
	remoteCmd.PersistentFlags().StringVar(&server, "server", "http://localhost:8080", "Server base URL")

	newClient := func() *client.Client { return client.New(server) }

	remoteCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show the server version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := newClient().Version(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return nil
		},
	})

	remoteCmd.AddCommand(&cobra.Command{
		Use:   "levels",
		Short: "List the levels the server knows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			levels, err := newClient().Levels(cmd.Context())
			if err != nil {
				return err
			}
			return writeLevels(cmd.OutOrStdout(), levels)
		},
	})

	remoteCmd.AddCommand(remoteDailyCmd(newClient))
	return remoteCmd
}

func remoteDailyCmd(newClient func() *client.Client) *cobra.Command {
	var (
		date  string
		count int
	)

	cmd := &cobra.Command{
		Use:   "daily <level>",
		Short: "Fetch the daily quiz of a level from the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quiz, err := newClient().DailyQuiz(cmd.Context(), args[0], date, count)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s on %s: indexes %v of %d\n", quiz.LevelKey, quiz.Date, quiz.Indexes, quiz.PoolSize)
			for _, q := range quiz.Questions {
				fmt.Fprintf(out, "%3d. %s\n", q.Index, q.Prompt)
				for _, choice := range q.Choices {
					fmt.Fprintf(out, "       %s\n", choice)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Calendar date YYYY-MM-DD (default the server's today)")
	cmd.Flags().IntVar(&count, "count", 0, "Number of questions (default the server's)")
	return cmd
}
