package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SlidesFilename is the name given to generated slide decks.
const SlidesFilename = "notelooms_ppt.zip"

// downloadTypes maps user-facing artifact names to the backend "type" values.
var downloadTypes = map[string]string{
	"summary":           "summary",
	"notes":             "short_notes",
	"short_notes":       "short_notes",
	"mcqs":              "mcqs",
	"flashcards":        "flashcards",
	"image-description": "image_description",
	"image_description": "image_description",
	"transcript":        "transcript",
}

var downloadFormats = map[string]bool{"pdf": true, "txt": true, "docx": true}

// Exporter requests rendered files from the backend.
type Exporter struct {
	backend Backend
	store   *ContentStore
}

// NewExporter creates an exporter over store.
func NewExporter(backend Backend, store *ContentStore) *Exporter {
	return &Exporter{backend: backend, store: store}
}

// BuildDownloadRequest assembles the /download body for artifact of item.
func BuildDownloadRequest(item *ContentItem, artifact, format string) (DownloadRequest, error) {
	contentType, ok := downloadTypes[artifact]
	if !ok {
		return DownloadRequest{}, &ValidationError{Message: fmt.Sprintf("Unknown artifact %q (summary, notes, mcqs, flashcards, image-description, transcript).", artifact)}
	}
	if !downloadFormats[format] {
		return DownloadRequest{}, &ValidationError{Message: fmt.Sprintf("Unsupported format %q (pdf, txt, docx).", format)}
	}
	if contentType == "transcript" && format != "txt" {
		return DownloadRequest{}, &ValidationError{Message: "Transcripts can only be downloaded as txt."}
	}

	var content interface{}
	switch contentType {
	case "summary":
		content = item.Summary
	case "short_notes":
		content = item.ShortNotes
	case "mcqs":
		content = item.MCQs
	case "flashcards":
		content = item.Flashcards
	case "image_description":
		content = item.ImageDescription
	case "transcript":
		content = map[string]interface{}{"transcript": item.Transcript}
	}

	return DownloadRequest{Type: contentType, Format: format, Content: content}, nil
}

// Download fetches artifact of the current item rendered as format and writes it
// into outDir. It returns the written path.
func (e *Exporter) Download(ctx context.Context, artifact, format, outDir string) (string, error) {
	item := e.store.Current()
	if item == nil {
		return "", ErrNoContent
	}
	req, err := BuildDownloadRequest(item, artifact, format)
	if err != nil {
		return "", err
	}

	dl, err := e.backend.Download(ctx, req)
	if err != nil {
		return "", err
	}
	return writeDownload(dl, outDir, format)
}

// Slideshow generates a slide deck from the current item's text, summary and notes.
func (e *Exporter) Slideshow(ctx context.Context, outDir string) (string, error) {
	item := e.store.Current()
	if item == nil {
		return "", ErrNoContent
	}
	dl, err := e.backend.GenerateSlides(ctx, SlidesRequest{
		Text:    item.RawText,
		Summary: item.Summary,
		Notes:   item.ShortNotes,
	})
	if err != nil {
		return "", err
	}
	return writeDownload(dl, outDir, "ppt")
}

func writeDownload(dl *Download, outDir, format string) (string, error) {
	defer dl.Body.Close()

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", &ExportError{Format: format, Path: outDir, Err: err}
	}
	path := filepath.Join(outDir, dl.Filename)
	f, err := os.Create(path)
	if err != nil {
		return "", &ExportError{Format: format, Path: path, Err: err}
	}
	if _, err := io.Copy(f, dl.Body); err != nil {
		_ = f.Close()
		return "", &ExportError{Format: format, Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &ExportError{Format: format, Path: path, Err: err}
	}
	return path, nil
}
