package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	contextutils "speakroots/internal/utils"
)

// Store key prefixes written by the quiz service and the daily selector
const (
	dailyPrefix = "daily:"
	poolPrefix  = "pool:"
)

// CacheCommands returns the cache command group
func CacheCommands(rt *Runtime) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Key-value store maintenance",
	}

	cacheCmd.AddCommand(cacheClearCmd(rt))
	return cacheCmd
}

func cacheClearCmd(rt *Runtime) *cobra.Command {
	var (
		daily bool
		pools bool
		level string
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached daily selections and pools",
		Long: `Remove cached daily selections and pools.

With no flags both kinds are removed. --level narrows the removal to one level key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if level != "" && !contextutils.IsValidKey(level) {
				return contextutils.InvalidInputf("invalid level key %q", level)
			}
			if !daily && !pools {
				daily, pools = true, true
			}

			ctx := cmd.Context()
			container, err := rt.Container(ctx)
			if err != nil {
				return err
			}
			store, err := container.GetStore()
			if err != nil {
				return err
			}
			selector, err := container.GetSelector()
			if err != nil {
				return err
			}

			total := 0
			if daily {
				var n int
				if level != "" {
					n, err = selector.Forget(ctx, level)
				} else {
					n, err = store.DeletePrefix(ctx, dailyPrefix)
				}
				if err != nil {
					return contextutils.WrapError(err, "failed to clear daily selections")
				}
				total += n
			}
			if pools {
				var n int
				if level != "" {
					quiz, qerr := container.GetQuizService()
					if qerr != nil {
						return qerr
					}
					n, err = quiz.InvalidatePool(ctx, level)
				} else {
					n, err = store.DeletePrefix(ctx, poolPrefix)
				}
				if err != nil {
					return contextutils.WrapError(err, "failed to clear pools")
				}
				total += n
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d keys (backend %s)\n", total, rt.Config.Store.Backend)
			return nil
		},
	}

	cmd.Flags().BoolVar(&daily, "daily", false, "Remove daily selections")
	cmd.Flags().BoolVar(&pools, "pools", false, "Remove question pools")
	cmd.Flags().StringVar(&level, "level", "", "Only remove entries of this level key")
	return cmd
}
