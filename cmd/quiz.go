package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/iksnae/notelooms/internal"
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz [answers...]",
	Short: "Take the selected item's quiz",
	Long: `Without arguments the questions are printed. Pass one letter per question,
in order, to grade your answers:

  notelooms quiz A C B D`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			item := app.Store.Current()
			if item == nil {
				return internal.ErrNoContent
			}
			out := cmd.OutOrStdout()
			if len(item.MCQs) == 0 {
				internal.PrintWarning(out, "No quiz questions for this item. Run 'notelooms generate mcqs' first.")
				return nil
			}

			if len(args) == 0 {
				fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d question(s)", len(item.MCQs))))
				fmt.Fprintln(out, formatMCQs(item.MCQs, false))
				return nil
			}

			answers := args
			if len(args) == 1 && len(args[0]) == len(item.MCQs) && len(item.MCQs) > 1 {
				answers = strings.Split(args[0], "")
			}
			result := internal.GradeQuiz(item.MCQs, answers)
			fmt.Fprintf(out, "%s %s\n", titleStyle.Render("Score:"),
				countStyle.Render(fmt.Sprintf("%d/%d (%.1f%%)", result.Correct, result.Total, result.Score)))
			internal.PrintInfo(out, result.Feedback)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(quizCmd)
}
