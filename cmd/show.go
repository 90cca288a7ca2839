package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/notelooms/internal"
	"github.com/spf13/cobra"
)

var (
	showAnswers bool
	showMore    bool
)

var showSections = []string{"summary", "notes", "flashcards", "mcqs", "image", "transcript"}

var showCmd = &cobra.Command{
	Use:   "show [section]",
	Short: "Show the generated material for the selected item",
	Long: `Show the generated material for the selected item.

Sections: summary, notes, flashcards, mcqs, image, transcript (default: all).
The classic layout prints one section after another; the studio layout shows
sources, content and generated output side by side. Choose with --layout or
the layout key in the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		section := "all"
		if len(args) == 1 {
			section = strings.ToLower(args[0])
		}
		if section != "all" && !containsString(showSections, section) {
			return &internal.ValidationError{Message: fmt.Sprintf("unknown section %q (%s)", section, strings.Join(showSections, ", "))}
		}

		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			item := app.Store.Current()
			if item == nil {
				return internal.ErrNoContent
			}
			if showMore {
				app.Store.FlashcardCount = min(app.Store.FlashcardCount+internal.DefaultFlashcardCount, len(item.Flashcards))
			}

			out := cmd.OutOrStdout()
			if app.Config.Layout == "studio" {
				renderStudio(out, app.Store)
				return nil
			}
			renderClassic(out, app.Store, section)
			return nil
		})
	},
}

var openCmd = &cobra.Command{
	Use:   "open [number]",
	Short: "Show where an item came from",
	Long: `Select an item (optional) and print its original source: the YouTube link
or the local file path. Images without a local file are written to the data
directory and that path is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			if len(args) == 1 {
				index, err := parsePosition(args[0])
				if err != nil {
					return err
				}
				if err := app.Store.Select(index); err != nil {
					return err
				}
			}
			item := app.Store.Current()
			if item == nil {
				return internal.ErrNoContent
			}

			location, err := sourceLocation(item, filepath.Join(app.Config.DataDir, "opened"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), location)
			return nil
		})
	},
}

// sourceLocation returns the URL or path of the item's source, writing the
// embedded image into dir when nothing else is available.
func sourceLocation(item *internal.ContentItem, dir string) (string, error) {
	if item.SourceMeta.YouTubeURL != "" {
		return item.SourceMeta.YouTubeURL, nil
	}
	if item.YouTubeID != "" {
		return "https://www.youtube.com/watch?v=" + item.YouTubeID, nil
	}
	if item.SourceMeta.LocalPath != "" {
		if _, err := os.Stat(item.SourceMeta.LocalPath); err == nil {
			return item.SourceMeta.LocalPath, nil
		}
		internal.LogDebug("Original file %s no longer exists", item.SourceMeta.LocalPath)
	}
	if item.Base64Image != "" {
		data, ext, err := internal.DecodeImageData(item.Base64Image)
		if err != nil {
			internal.LogDebug("%v", err)
			return "", &internal.ValidationError{Message: "The embedded image could not be decoded."}
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
		name := filepath.Base(item.Filename)
		if ext != "" {
			name = strings.TrimSuffix(name, filepath.Ext(name)) + ext
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return "", err
		}
		return path, nil
	}
	return "", &internal.ValidationError{Message: "The original source of this item is not available."}
}

func renderClassic(w io.Writer, store *internal.ContentStore, section string) {
	item := store.Current()
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s (%d/%d)", item.Filename, store.Selected+1, store.Len())))
	fmt.Fprintln(w)

	for _, name := range showSections {
		if section != "all" && section != name {
			continue
		}
		if section == "all" && !sectionApplies(item, name) {
			continue
		}
		fmt.Fprintln(w, internal.HeadingStyle.Render(sectionTitle(name)))
		fmt.Fprintln(w, sectionBody(store, name))
		fmt.Fprintln(w)
	}
}

func renderStudio(w io.Writer, store *internal.ContentStore) {
	item := store.Current()

	var sources strings.Builder
	for i := range store.Items {
		marker := "  "
		if i == store.Selected {
			marker = selectedStyle.Render("▶ ")
		}
		sources.WriteString(fmt.Sprintf("%s%d. %s\n", marker, i+1, store.Items[i].Filename))
	}

	var content strings.Builder
	content.WriteString(internal.HeadingStyle.Render("Summary") + "\n" + orPlaceholder(item.Summary) + "\n\n")
	content.WriteString(internal.HeadingStyle.Render("Notes") + "\n" + orPlaceholder(item.ShortNotes))

	var output strings.Builder
	output.WriteString(fmt.Sprintf("Flashcards: %s\n", countStyle.Render(fmt.Sprint(len(item.Flashcards)))))
	output.WriteString(fmt.Sprintf("MCQs:       %s\n", countStyle.Render(fmt.Sprint(len(item.MCQs)))))
	switch item.Kind() {
	case internal.SourceImage:
		output.WriteString("\n" + internal.HeadingStyle.Render("Image") + "\n" + item.ImageDescription)
	case internal.SourceVideoLink:
		output.WriteString(fmt.Sprintf("Transcript: %s lines", countStyle.Render(fmt.Sprint(len(item.Transcript)))))
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		internal.PaneStyle.Width(28).Render(titleStyle.Render("Sources")+"\n"+sources.String()),
		internal.PaneStyle.Width(60).Render(titleStyle.Render("Content")+"\n"+content.String()),
		internal.PaneStyle.Width(32).Render(titleStyle.Render("Output")+"\n"+output.String()),
	)
	fmt.Fprintln(w, panes)
}

func sectionApplies(item *internal.ContentItem, section string) bool {
	switch section {
	case "image":
		return item.Kind() == internal.SourceImage
	case "transcript":
		return len(item.Transcript) > 0
	default:
		return true
	}
}

func sectionTitle(section string) string {
	switch section {
	case "notes":
		return "Short Notes"
	case "mcqs":
		return "Quiz"
	case "image":
		return "Image Description"
	default:
		return strings.ToUpper(section[:1]) + section[1:]
	}
}

func sectionBody(store *internal.ContentStore, section string) string {
	item := store.Current()
	var b strings.Builder

	switch section {
	case "summary":
		b.WriteString(orPlaceholder(item.Summary))
	case "notes":
		b.WriteString(orPlaceholder(item.ShortNotes))
	case "image":
		b.WriteString(orPlaceholder(item.ImageDescription))
	case "flashcards":
		if len(item.Flashcards) == 0 {
			return orPlaceholder("")
		}
		end := min(max(store.FlashcardCount, 1), len(item.Flashcards))
		for i, card := range item.Flashcards[:end] {
			b.WriteString(fmt.Sprintf("%d. %s\n   %s\n", i+1, card.Front, internal.MutedStyle.Render(card.Back)))
		}
		if end < len(item.Flashcards) {
			b.WriteString(dimStyle.Render(fmt.Sprintf("… %d more (show flashcards --more)", len(item.Flashcards)-end)))
		}
	case "mcqs":
		if len(item.MCQs) == 0 {
			return orPlaceholder("")
		}
		b.WriteString(formatMCQs(item.MCQs, showAnswers))
	case "transcript":
		for _, seg := range item.Transcript {
			b.WriteString(fmt.Sprintf("[%s] %s\n", seg.Timestamp(), seg.Text))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatMCQs(mcqs []internal.MCQ, answers bool) string {
	var b strings.Builder
	for i, q := range mcqs {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, q.Question))
		for _, opt := range q.Options {
			line := fmt.Sprintf("   %s. %s", opt.Letter, opt.Text)
			if answers && opt.IsCorrect {
				line = selectedStyle.Render(line + " ✓")
			}
			b.WriteString(line + "\n")
		}
		if answers && q.Explanation != "" {
			b.WriteString(internal.MutedStyle.Render("   "+q.Explanation) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func orPlaceholder(text string) string {
	if strings.TrimSpace(text) == "" {
		return dimStyle.Render("Nothing here yet.")
	}
	return text
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showAnswers, "answers", false, "Reveal MCQ answers")
	showCmd.Flags().BoolVar(&showMore, "more", false, "Show ten more flashcards")
	rootCmd.AddCommand(openCmd)
}
