package export

import (
	"encoding/json"
	"io"
)

// JSONExporter writes the bundle as pretty-printed JSON
type JSONExporter struct{}

// Export writes bundle to w
func (e *JSONExporter) Export(bundle *Bundle, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(bundle)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
