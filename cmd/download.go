package cmd

import (
	"context"
	"fmt"

	"github.com/iksnae/notelooms/internal"
	"github.com/spf13/cobra"
)

var (
	downloadFormat string
	downloadOut    string
	slidesOut      string
)

var downloadCmd = &cobra.Command{
	Use:   "download <summary|notes|mcqs|flashcards|image-description|transcript>",
	Short: "Download an artifact of the selected item rendered by the backend",
	Long: `Ask the backend to render one artifact of the selected item as a pdf, txt or
docx file and save it. Transcripts are only available as txt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			var path string
			err := internal.RunWithSpinner(ctx, fmt.Sprintf("Downloading %s as %s", args[0], downloadFormat), func() error {
				var dlErr error
				path, dlErr = app.Exporter.Download(ctx, args[0], downloadFormat, downloadOut)
				return dlErr
			})
			if err != nil {
				return userError(err, internal.MsgExportFailed)
			}
			internal.PrintSuccess(cmd.OutOrStdout(), "Saved "+path)
			return nil
		})
	},
}

var slidesCmd = &cobra.Command{
	Use:   "slides",
	Short: "Generate a slide deck from the selected item",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			var path string
			err := internal.RunWithSpinner(ctx, "Generating slides", func() error {
				var dlErr error
				path, dlErr = app.Exporter.Slideshow(ctx, slidesOut)
				return dlErr
			})
			if err != nil {
				return userError(err, internal.MsgDownloadFailed)
			}
			internal.PrintSuccess(cmd.OutOrStdout(), "Saved "+path)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(slidesCmd)
	downloadCmd.Flags().StringVarP(&downloadFormat, "format", "f", "pdf", "File format (pdf, txt, docx)")
	downloadCmd.Flags().StringVarP(&downloadOut, "out", "o", ".", "Output directory")
	slidesCmd.Flags().StringVarP(&slidesOut, "out", "o", ".", "Output directory")
}
