package cmd

import (
	"context"

	"github.com/iksnae/notelooms/internal"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start over with an empty workspace",
	Long:  `Remove every item, pending file and preview, the chat transcript and the current session id. Saved sessions on the backend are not touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			if err := app.Reset(ctx); err != nil {
				return err
			}
			internal.PrintSuccess(cmd.OutOrStdout(), "Workspace reset")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
