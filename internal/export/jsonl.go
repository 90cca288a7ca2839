package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/notelooms/internal"
)

// JSONLExporter writes one artifact per line
type JSONLExporter struct{}

type artifactLine struct {
	Item     string      `json:"item"`
	Artifact string      `json:"artifact"`
	Content  interface{} `json:"content"`
}

// Export writes every non-empty artifact of every item, then the chat turns
func (e *JSONLExporter) Export(bundle *Bundle, w io.Writer) error {
	enc := json.NewEncoder(w)

	for i := range bundle.Items {
		for _, line := range artifactLines(&bundle.Items[i]) {
			if err := enc.Encode(line); err != nil {
				return fmt.Errorf("failed to encode %s of %s: %w", line.Artifact, line.Item, err)
			}
		}
	}

	for _, msg := range bundle.Chat {
		line := artifactLine{Item: bundle.Name, Artifact: "chat", Content: msg}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to encode chat message: %w", err)
		}
	}

	return nil
}

func artifactLines(item *internal.ContentItem) []artifactLine {
	var lines []artifactLine
	add := func(artifact string, content interface{}, present bool) {
		if present {
			lines = append(lines, artifactLine{Item: item.Filename, Artifact: artifact, Content: content})
		}
	}

	add("summary", item.Summary, item.Summary != "")
	add("short_notes", item.ShortNotes, item.ShortNotes != "")
	add("flashcards", item.Flashcards, len(item.Flashcards) > 0)
	add("mcqs", item.MCQs, len(item.MCQs) > 0)
	add("image_description", item.ImageDescription, item.Kind() == internal.SourceImage && item.ImageDescription != "")
	add("transcript", item.Transcript, len(item.Transcript) > 0)
	return lines
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
