package testutil

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

// minimalPDF is enough for content sniffing to report application/pdf.
const minimalPDF = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

// WritePNG writes a small solid-colour PNG into dir and returns its path.
func WritePNG(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	img := imaging.New(64, 48, color.NRGBA{R: 40, G: 120, B: 200, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("Failed to write PNG fixture %s: %v", path, err)
	}
	return path
}

// WritePDF writes a minimal PDF into dir and returns its path.
func WritePDF(t *testing.T, dir, name string) string {
	t.Helper()
	return WriteFile(t, dir, name, minimalPDF)
}

// WriteFile writes content into dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", path, err)
	}
	return path
}

// DocumentResult is the upload result the fake backend returns for one file.
func DocumentResult(filename, contentType string) map[string]interface{} {
	isImage := strings.HasPrefix(contentType, "image/")
	result := map[string]interface{}{
		"type":        "pdf",
		"filename":    filename,
		"summary":     fmt.Sprintf("**Summary** of %s", filename),
		"short_notes": "1/ **Note** one\r\n\r\n\r\n* point/two.",
		"raw_text":    "Extracted text of " + filename,
		"mcqs": []map[string]interface{}{
			{"question": "**What** is it?", "options": []string{"This", "That"}, "answer": "This"},
		},
		"flashcards": []map[string]string{
			{"front": "**Front**", "back": "Back"},
		},
	}
	if isImage {
		result["type"] = "image"
		result["is_image"] = true
		result["image_description"] = "**A** blue rectangle"
		result["base64_image"] = "data:" + contentType + ";base64,iVBORw0KGgo="
	}
	return result
}

// VideoResult is the upload result the fake backend returns for a video link.
func VideoResult(url string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "youtube",
		"filename":    url,
		"summary":     "Video summary",
		"short_notes": "Video notes",
		"raw_text":    "Transcript text",
		"youtube_id":  "abc12345678",
		"transcript": []map[string]interface{}{
			{"text": "Hello", "start": 0.0, "duration": 1.5},
			{"text": "World", "start": 75.2, "duration": 2.0},
		},
	}
}

// MCQResults builds a document result carrying n MCQs.
func MCQResults(filename string, n int) map[string]interface{} {
	result := DocumentResult(filename, "application/pdf")
	mcqs := make([]map[string]interface{}, 0, n)
	for i := 0; i < n; i++ {
		mcqs = append(mcqs, map[string]interface{}{
			"question": fmt.Sprintf("Q%d", i+1),
			"options":  []string{"a", "b", "c", "d"},
			"answer":   "a",
		})
	}
	result["mcqs"] = mcqs
	return result
}
