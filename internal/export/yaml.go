package export

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLExporter writes the bundle as YAML. Embedded images are left out.
type YAMLExporter struct{}

// Export writes bundle to w
func (e *YAMLExporter) Export(bundle *Bundle, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	return enc.Encode(bundle)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
