package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/notelooms/internal"
	"github.com/spf13/cobra"
)

var selectedStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("42")).
	Bold(true)

var itemsCmd = &cobra.Command{
	Use:     "items",
	Aliases: []string{"list", "ls"},
	Short:   "List the processed items in your workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			printItems(cmd.OutOrStdout(), app.Store)
			return nil
		})
	},
}

var selectCmd = &cobra.Command{
	Use:   "select <number>",
	Short: "Select the item that show, chat and quiz work on",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			if err := app.Store.Select(index); err != nil {
				return err
			}
			internal.PrintSuccess(cmd.OutOrStdout(), "Selected "+app.Store.Current().Filename)
			return nil
		})
	},
}

var removeItemCmd = &cobra.Command{
	Use:   "remove <number>",
	Short: "Remove one item from your workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			if err := app.Store.Remove(index); err != nil {
				return err
			}
			printItems(cmd.OutOrStdout(), app.Store)
			return nil
		})
	},
}

func printItems(w io.Writer, store *internal.ContentStore) {
	if store.Len() == 0 {
		fmt.Fprintln(w, headerStyle.Render("No items yet. Use `notelooms add` and `notelooms upload`."))
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%d item(s)", store.Len())))
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, " \t"+titleStyle.Render("#")+"\t"+titleStyle.Render("Name")+"\t"+titleStyle.Render("Kind")+"\t"+titleStyle.Render("Cards")+"\t"+titleStyle.Render("MCQs"))
	for i := range store.Items {
		item := &store.Items[i]
		marker := " "
		if i == store.Selected {
			marker = selectedStyle.Render("▶")
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n",
			marker, i+1, item.Filename, item.Kind(),
			countStyle.Render(strconv.Itoa(len(item.Flashcards))),
			countStyle.Render(strconv.Itoa(len(item.MCQs))))
	}
	_ = tw.Flush()
}

func init() {
	rootCmd.AddCommand(itemsCmd)
	itemsCmd.AddCommand(removeItemCmd)
	rootCmd.AddCommand(selectCmd)
}
