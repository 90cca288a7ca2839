package cmd

import (
	"context"
	"fmt"

	"github.com/iksnae/notelooms/internal"
	"github.com/spf13/cobra"
)

var generateCount int

var generateCmd = &cobra.Command{
	Use:       "generate <notes|flashcards|mcqs>",
	Short:     "Regenerate one artifact of the selected item",
	Long:      `Ask the backend to regenerate short notes, flashcards or MCQs from the selected item's extracted text. The result replaces the existing artifact.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{internal.ArtifactNotes, internal.ArtifactFlashcards, internal.ArtifactMCQs},
	RunE: func(cmd *cobra.Command, args []string) error {
		artifact := args[0]
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			err := internal.RunWithSpinner(ctx, "Generating "+artifact, func() error {
				return app.Generator.Generate(ctx, artifact, generateCount)
			})
			if err != nil {
				return userError(err, fmt.Sprintf("Failed to generate %s. Please try again.", artifact))
			}
			renderClassic(cmd.OutOrStdout(), app.Store, artifact)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", internal.DefaultQuestionCount, "Number of MCQs to generate (1-20)")
}
