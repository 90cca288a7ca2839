package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/notelooms/internal"
	"github.com/spf13/cobra"
)

var chatClear bool

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask the study assistant about the selected item",
	Long: `Send a message to the study assistant. The selected item's summary, notes
and image description are shared as context. Without a message the transcript
is printed. The transcript is kept on this device and saved with sessions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			out := cmd.OutOrStdout()
			if chatClear {
				if err := app.Transcript.Clear(ctx); err != nil {
					return err
				}
				internal.PrintSuccess(out, "Chat cleared")
				return nil
			}

			current := app.Store.Current()
			message := strings.Join(args, " ")
			if strings.TrimSpace(message) == "" {
				printTranscript(out, app.Chat.History(ctx, current))
				return nil
			}

			var reply internal.ChatMessage
			err := internal.RunWithSpinner(ctx, "Thinking", func() error {
				var sendErr error
				reply, sendErr = app.Chat.Send(ctx, message, current)
				return sendErr
			})
			if reply.Text != "" {
				printMessage(out, reply)
			}
			if err != nil && reply.Text == "" {
				return userError(err, internal.MsgChatFailed)
			}
			if err != nil {
				internal.LogDebug("chat failed: %v", err)
			}
			return nil
		})
	},
}

func printTranscript(w io.Writer, messages []internal.ChatMessage) {
	for _, msg := range messages {
		printMessage(w, msg)
	}
}

func printMessage(w io.Writer, msg internal.ChatMessage) {
	if msg.Sender == internal.SenderUser {
		fmt.Fprintf(w, "%s %s\n\n", userStyle.Render("You:"), msg.Text)
		return
	}
	fmt.Fprintf(w, "%s %s\n\n", assistantStyle.Render("Assistant:"), msg.Text)
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().BoolVar(&chatClear, "clear", false, "Delete the chat transcript")
}
