package internal

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func TestBuildDownloadRequest(t *testing.T) {
	item := CreateTestContentItem("a.pdf", 2)
	item.Transcript = []TranscriptSegment{{Text: "hi", Start: 1}}

	tests := []struct {
		name     string
		artifact string
		format   string
		wantType string
		wantErr  bool
	}{
		{"summary pdf", "summary", "pdf", "summary", false},
		{"notes alias", "notes", "docx", "short_notes", false},
		{"image description alias", "image-description", "txt", "image_description", false},
		{"transcript txt", "transcript", "txt", "transcript", false},
		{"transcript pdf rejected", "transcript", "pdf", "", true},
		{"unknown artifact", "podcast", "pdf", "", true},
		{"unknown format", "summary", "epub", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := BuildDownloadRequest(&item, tt.artifact, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BuildDownloadRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if req.Type != tt.wantType || req.Format != tt.format {
				t.Errorf("request = %+v", req)
			}
		})
	}

	req, _ := BuildDownloadRequest(&item, "transcript", "txt")
	wrapped, ok := req.Content.(map[string]interface{})
	if !ok || wrapped["transcript"] == nil {
		t.Errorf("transcript content = %#v, want {transcript: segments}", req.Content)
	}
}

func TestExporter_Download(t *testing.T) {
	c, fb := newTestClient(t)
	store := NewContentStore()
	store.Append([]ContentItem{CreateTestContentItem("a.pdf", 2)})
	outDir := filepath.Join(t.TempDir(), "out")

	path, err := NewExporter(c, store).Download(context.Background(), "flashcards", "txt", outDir)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if filepath.Base(path) != "flashcards.txt" {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "flashcards rendered as txt" {
		t.Errorf("file = %q, %v", data, err)
	}

	var body struct {
		Type    string      `json:"type"`
		Content []Flashcard `json:"content"`
	}
	fb.RequestsTo("/download")[0].JSON(t, &body)
	if body.Type != "flashcards" || len(body.Content) != 2 {
		t.Errorf("request body = %+v", body)
	}
}

func TestExporter_Slideshow(t *testing.T) {
	c, fb := newTestClient(t)
	store := NewContentStore()
	store.Append([]ContentItem{CreateTestContentItem("a.pdf", 0)})

	path, err := NewExporter(c, store).Slideshow(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Slideshow() error = %v", err)
	}
	if filepath.Base(path) != SlidesFilename {
		t.Errorf("path = %q, want %s", path, SlidesFilename)
	}

	var body SlidesRequest
	fb.RequestsTo("/generate/ppt")[0].JSON(t, &body)
	if body.Text == "" || body.Summary == "" || body.Notes == "" {
		t.Errorf("request body = %+v", body)
	}
}

func TestExporter_Errors(t *testing.T) {
	c, fb := newTestClient(t)
	store := NewContentStore()
	e := NewExporter(c, store)
	ctx := context.Background()

	if _, err := e.Download(ctx, "summary", "pdf", t.TempDir()); !errors.Is(err, ErrNoContent) {
		t.Errorf("empty store error = %v, want ErrNoContent", err)
	}

	store.Append([]ContentItem{CreateTestContentItem("a.pdf", 0)})
	fb.Respond("/download", http.StatusInternalServerError, map[string]string{})
	_, err := e.Download(ctx, "summary", "pdf", t.TempDir())
	if got := UserMessage(err, MsgExportFailed); got != MsgExportFailed {
		t.Errorf("message = %q, want %q", got, MsgExportFailed)
	}
}
