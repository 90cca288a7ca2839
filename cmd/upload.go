package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/notelooms/internal"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

var addCmd = &cobra.Command{
	Use:   "add <file>... | <youtube-url>",
	Short: "Select files or a YouTube link for upload",
	Long: `Add local files to the pending upload list, or replace the list with a
single YouTube link. Images and PDFs get a local preview until they are
uploaded or removed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := internal.ParseInput(args)
		if input == nil {
			internal.PrintWarning(cmd.ErrOrStderr(), "Nothing to add: pass file paths or a YouTube link.")
			return nil
		}
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			if err := app.Coordinator.AddPending(input); err != nil {
				return err
			}
			printPending(cmd.OutOrStdout(), app.Coordinator.Pending())
			return nil
		})
	},
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Show the pending upload list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			printPending(cmd.OutOrStdout(), app.Coordinator.Pending())
			return nil
		})
	},
}

var pendingRemoveCmd = &cobra.Command{
	Use:   "remove <number>",
	Short: "Remove one entry from the pending list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			if err := app.Coordinator.RemovePending(index); err != nil {
				return err
			}
			printPending(cmd.OutOrStdout(), app.Coordinator.Pending())
			return nil
		})
	},
}

var pendingClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the pending list and discard previews",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			if err := app.Coordinator.Clear(); err != nil {
				return err
			}
			internal.PrintSuccess(cmd.OutOrStdout(), "Pending list cleared")
			return nil
		})
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload the pending list for processing",
	Long: `Send every pending file (and the YouTube link, if any) to the backend in
a single request. On success the results are added to your workspace and the
first new item is selected. On failure the pending list is kept so you can
retry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			var items []internal.ContentItem
			err := internal.RunWithSpinner(ctx, "Processing upload", func() error {
				var submitErr error
				items, submitErr = app.Coordinator.SubmitPending(ctx)
				return submitErr
			})
			if err != nil {
				return userError(err, internal.MsgUploadFailed)
			}

			out := cmd.OutOrStdout()
			internal.PrintSuccess(out, fmt.Sprintf("Processed %d source(s)", len(items)))
			for _, item := range items {
				fmt.Fprintf(out, "  • %s %s\n", item.Filename, dimStyle.Render("("+string(item.Kind())+")"))
			}
			return nil
		})
	},
}

func printPending(w io.Writer, pending []internal.PendingFile) {
	if len(pending) == 0 {
		fmt.Fprintln(w, headerStyle.Render("No pending uploads"))
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%d pending upload(s)", len(pending))))
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, titleStyle.Render("#")+"\t"+titleStyle.Render("Name")+"\t"+titleStyle.Render("Type")+"\t"+titleStyle.Render("Size")+"\t"+titleStyle.Render("Preview"))
	for i, pf := range pending {
		kind := pf.MimeType
		size := formatSize(pf.Size)
		if pf.IsLink() {
			kind = "youtube"
			size = "—"
		}
		preview := dimStyle.Render("—")
		if pf.Preview != nil {
			preview = pf.Preview.Path
		}
		name := pf.Name
		if pf.IsLink() {
			name = pf.URL
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, name, kind, size, preview)
	}
	_ = tw.Flush()
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// parsePosition converts a 1-based position typed by the user into an index.
func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, &internal.ValidationError{Message: fmt.Sprintf("%q is not a valid position (use 1, 2, ...)", arg)}
	}
	return n - 1, nil
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(pendingCmd)
	pendingCmd.AddCommand(pendingRemoveCmd)
	pendingCmd.AddCommand(pendingClearCmd)
	rootCmd.AddCommand(uploadCmd)
}
