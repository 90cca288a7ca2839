package export

import (
	"fmt"
	"io"

	"github.com/iksnae/notelooms/internal"
)

// Bundle is what gets written by a local export: one or more content items and,
// optionally, the chat transcript.
type Bundle struct {
	Name  string                 `json:"name" yaml:"name"`
	Items []internal.ContentItem `json:"items" yaml:"items"`
	Chat  []internal.ChatMessage `json:"chat,omitempty" yaml:"chat,omitempty"`
}

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(bundle *Bundle, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: jsonl, md, yaml, json)", format)
	}
}

// CurrentBundle wraps the selected item of store.
func CurrentBundle(store *internal.ContentStore) (*Bundle, error) {
	item := store.Current()
	if item == nil {
		return nil, internal.ErrNoContent
	}
	return &Bundle{Name: item.Filename, Items: []internal.ContentItem{*item}}, nil
}

// StoreBundle wraps every item of store together with the chat transcript.
func StoreBundle(name string, store *internal.ContentStore, chat []internal.ChatMessage) (*Bundle, error) {
	if store.Len() == 0 {
		return nil, internal.ErrNoContent
	}
	return &Bundle{Name: name, Items: store.Items, Chat: chat}, nil
}
