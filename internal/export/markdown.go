package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/notelooms/internal"
)

// MarkdownExporter writes the bundle as a study sheet
type MarkdownExporter struct{}

// Export writes bundle to w
func (e *MarkdownExporter) Export(bundle *Bundle, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# %s\n\n", bundle.Name)
	_, _ = fmt.Fprintf(w, "**Sources:** %d\n\n", len(bundle.Items))

	for i := range bundle.Items {
		_, _ = fmt.Fprintf(w, "---\n\n")
		writeItem(w, &bundle.Items[i])
	}

	if len(bundle.Chat) > 0 {
		_, _ = fmt.Fprintf(w, "---\n\n## Chat\n\n")
		for _, msg := range bundle.Chat {
			_, _ = fmt.Fprintf(w, "**%s:** %s\n\n", msg.Sender, escapeMarkdown(msg.Text))
		}
	}

	return nil
}

func writeItem(w io.Writer, item *internal.ContentItem) {
	_, _ = fmt.Fprintf(w, "## %s\n\n", item.Filename)

	switch {
	case item.SourceMeta.YouTubeURL != "":
		_, _ = fmt.Fprintf(w, "**Source:** %s\n\n", item.SourceMeta.YouTubeURL)
	case item.SourceMeta.LocalPath != "":
		_, _ = fmt.Fprintf(w, "**Source:** %s\n\n", item.SourceMeta.LocalPath)
	}

	if item.Summary != "" {
		_, _ = fmt.Fprintf(w, "### Summary\n\n%s\n\n", escapeMarkdown(item.Summary))
	}
	if item.ShortNotes != "" {
		_, _ = fmt.Fprintf(w, "### Notes\n\n%s\n\n", escapeMarkdown(item.ShortNotes))
	}
	if item.Kind() == internal.SourceImage && item.ImageDescription != "" {
		_, _ = fmt.Fprintf(w, "### Image description\n\n%s\n\n", escapeMarkdown(item.ImageDescription))
	}

	if len(item.Flashcards) > 0 {
		_, _ = fmt.Fprintf(w, "### Flashcards\n\n")
		for i, card := range item.Flashcards {
			_, _ = fmt.Fprintf(w, "%d. **Q:** %s  \n   **A:** %s\n", i+1, escapeMarkdown(card.Front), escapeMarkdown(card.Back))
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(item.MCQs) > 0 {
		_, _ = fmt.Fprintf(w, "### Quiz\n\n")
		for i, q := range item.MCQs {
			_, _ = fmt.Fprintf(w, "%d. %s\n", i+1, escapeMarkdown(q.Question))
			for _, opt := range q.Options {
				_, _ = fmt.Fprintf(w, "   - %s. %s\n", opt.Letter, escapeMarkdown(opt.Text))
			}
			if q.CorrectAnswer != "" {
				_, _ = fmt.Fprintf(w, "   - *Answer:* %s\n", q.CorrectAnswer)
			}
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(item.Transcript) > 0 {
		_, _ = fmt.Fprintf(w, "### Transcript\n\n")
		for _, seg := range item.Transcript {
			_, _ = fmt.Fprintf(w, "- [%s] %s\n", seg.Timestamp(), escapeMarkdown(seg.Text))
		}
		_, _ = fmt.Fprintln(w)
	}
}

// escapeMarkdown escapes emphasis markers outside code blocks
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	inCodeBlock := false

	for i, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if inCodeBlock {
			continue
		}
		line = strings.ReplaceAll(line, "**", "\\*\\*")
		lines[i] = strings.ReplaceAll(line, "__", "\\_\\_")
	}

	return strings.Join(lines, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
