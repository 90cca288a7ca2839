package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/iksnae/notelooms/internal"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"sessions"},
	Short:   "Save, load and manage sessions stored on the backend",
}

var sessionSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the workspace and chat transcript as a named session",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			id, err := app.Sessions.Save(ctx, name)
			if err != nil {
				return userError(err, "Failed to save session. Please try again.")
			}
			internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Session saved (%s)", id))
			return nil
		})
	},
}

var sessionLoadCmd = &cobra.Command{
	Use:   "load <id>",
	Short: "Replace the workspace with a saved session",
	Long:  `Load a saved session. Items currently in your workspace are replaced; save them first if you want to keep them.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			session, err := app.Sessions.Load(ctx, args[0])
			if err != nil {
				return userError(err, "Failed to load session. Please try again.")
			}
			internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Loaded %q with %d item(s)", session.Name, app.Store.Len()))
			return nil
		})
	},
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			sessions, err := app.Sessions.List(ctx)
			if err != nil {
				return userError(err, "Failed to load sessions. Please try again.")
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, headerStyle.Render("No saved sessions"))
				return nil
			}
			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d saved session(s)", len(sessions))))
			tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			_, _ = fmt.Fprintln(tw, " \t"+titleStyle.Render("ID")+"\t"+titleStyle.Render("Name")+"\t"+titleStyle.Render("Files")+"\t"+titleStyle.Render("Chat")+"\t"+titleStyle.Render("Updated"))
			for _, s := range sessions {
				marker := " "
				if s.ID == app.Sessions.CurrentID {
					marker = selectedStyle.Render("▶")
				}
				chat := dimStyle.Render("—")
				if s.HasChat {
					chat = "yes"
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", marker, s.ID, s.Name,
					countStyle.Render(strconv.Itoa(s.FileCount)), chat, dimStyle.Render(formatDate(s.UpdatedAt)))
			}
			_ = tw.Flush()
			return nil
		})
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			if err := app.Sessions.Delete(ctx, args[0]); err != nil {
				return userError(err, "Failed to delete session. Please try again.")
			}
			internal.PrintSuccess(cmd.OutOrStdout(), "Session deleted")
			return nil
		})
	},
}

// formatDate renders backend timestamps relative to now where that reads better.
func formatDate(ts string) string {
	if ts == "" {
		return "—"
	}
	var t time.Time
	var err error
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err = time.Parse(layout, ts); err == nil {
			break
		}
	}
	if err != nil {
		return ts
	}
	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionSaveCmd)
	sessionCmd.AddCommand(sessionLoadCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
}
