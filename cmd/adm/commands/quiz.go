package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"speakroots/internal/config"
	"speakroots/internal/models"
	"speakroots/internal/quizgen"
	contextutils "speakroots/internal/utils"
)

// levelsCmd returns the levels command
func levelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the known level keys and their generators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeLevels(cmd.OutOrStdout(), quizgen.Catalogue())
		},
	}
}

func writeLevels(out io.Writer, levels []quizgen.LevelInfo) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LEVEL\tSUBJECT\tGRADE\tGENERATORS")
	for _, l := range levels {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", l.LevelKey, l.Subject, l.Grade, strings.Join(l.Generators, ","))
	}
	return w.Flush()
}

// poolCmd returns the pool command
func poolCmd(rt *Runtime) *cobra.Command {
	var (
		limit   int
		answers bool
	)

	cmd := &cobra.Command{
		Use:   "pool <level>",
		Short: "Build (or load) the question pool of a level and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := rt.Container(ctx)
			if err != nil {
				return err
			}
			quiz, err := container.GetQuizService()
			if err != nil {
				return err
			}

			pool, err := quiz.Pool(ctx, args[0])
			if err != nil {
				return err
			}

			items := pool.Items
			if limit > 0 && limit < len(items) {
				items = items[:limit]
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d questions\n", pool.LevelKey, pool.Size())
			writeQuestions(out, items, 0, answers)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Print at most this many questions (0 for all)")
	cmd.Flags().BoolVar(&answers, "answers", false, "Mark the correct answers")
	return cmd
}

// dailyCmd returns the daily command
func dailyCmd(rt *Runtime) *cobra.Command {
	var (
		date    string
		count   int
		answers bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "daily <level>",
		Short: "Show the daily quiz of a level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := rt.Container(ctx)
			if err != nil {
				return err
			}
			quiz, err := container.GetQuizService()
			if err != nil {
				return err
			}

			if date == "" {
				date = quiz.Today()
			}
			dailyQuiz, err := quiz.DailyQuizForDate(ctx, args[0], date, count)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, dailyQuiz)
			}
			fmt.Fprintf(out, "%s on %s: indexes %v of %d\n", dailyQuiz.LevelKey, dailyQuiz.Date, dailyQuiz.Indexes, dailyQuiz.PoolSize)
			writeQuestions(out, dailyQuiz.Questions, 0, answers)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Calendar date YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&count, "count", 0, "Number of questions (default quiz.daily_count)")
	cmd.Flags().BoolVar(&answers, "answers", false, "Mark the correct answers")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the quiz, answers included, as JSON")
	return cmd
}

// pickCmd returns the pick command
func pickCmd(rt *Runtime) *cobra.Command {
	var (
		poolSize   int
		count      int
		identifier string
		date       string
	)

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Compute the daily indexes for an identifier",
		Long: `Compute the daily indexes for an identifier.

The result is cached in the configured store exactly as the server would cache it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !contextutils.IsValidKey(identifier) {
				return contextutils.InvalidInputf("invalid identifier %q", identifier)
			}
			if poolSize > config.MaxPoolSize {
				return contextutils.InvalidInputf("pool-size must be at most %d", config.MaxPoolSize)
			}
			ctx := cmd.Context()
			container, err := rt.Container(ctx)
			if err != nil {
				return err
			}
			selector, err := container.GetSelector()
			if err != nil {
				return err
			}

			if date == "" {
				date = selector.Today()
			} else if _, err := contextutils.ParseDate(date, selector.Location()); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), selector.Selection(ctx, date, poolSize, count, identifier))
		},
	}

	cmd.Flags().IntVar(&poolSize, "pool-size", 0, "Pool size")
	cmd.Flags().IntVar(&count, "count", 10, "Number of indexes")
	cmd.Flags().StringVar(&identifier, "id", "", "Identifier, usually a level key")
	cmd.Flags().StringVar(&date, "date", "", "Calendar date YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("pool-size")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func writeQuestions(out io.Writer, items []models.QuestionItem, offset int, answers bool) {
	for i, item := range items {
		fmt.Fprintf(out, "%3d. %s\n", offset+i, item.Prompt)
		for _, choice := range item.Choices {
			marker := " "
			if answers && item.IsCorrect(choice) {
				marker = "*"
			}
			fmt.Fprintf(out, "     %s %s\n", marker, choice)
		}
	}
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
