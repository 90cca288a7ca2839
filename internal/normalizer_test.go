package internal

import "testing"

func TestNormalizer_NormalizeBatch(t *testing.T) {
	n := NewNormalizer()
	batch := []PendingFile{
		{Kind: PendingFileKind, Path: "/tmp/a.pdf", Name: "a.pdf"},
		{Kind: PendingFileKind, Path: "/tmp/b.png", Name: "b.png"},
		{Kind: PendingLinkKind, URL: "https://youtu.be/abc12345678"},
	}
	results := []UploadResult{
		{Type: TypePDF, Filename: "a.pdf", Summary: "**Bold** summary", ShortNotes: "1/ note."},
		{Type: TypeImage, Filename: "b.png", IsImage: true},
		{Type: TypeYouTube, Filename: "https://youtu.be/abc12345678", YouTubeID: "abc12345678"},
	}

	items := n.NormalizeBatch(results, batch, 2)
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}

	doc, img, video := items[0], items[1], items[2]
	if doc.Summary != "Bold summary" {
		t.Errorf("summary = %q", doc.Summary)
	}
	if doc.ShortNotes != "note" {
		t.Errorf("notes = %q, want %q", doc.ShortNotes, "note")
	}
	if doc.MCQs == nil || doc.Flashcards == nil {
		t.Error("collections should be non-nil")
	}
	if doc.ImageDescription != imageDescriptionUnsupported {
		t.Errorf("document image description = %q", doc.ImageDescription)
	}
	if doc.SourceMeta.LocalPath != "/tmp/a.pdf" {
		t.Errorf("local path = %q", doc.SourceMeta.LocalPath)
	}
	if img.ImageDescription != imageDescriptionPending {
		t.Errorf("image description = %q", img.ImageDescription)
	}
	if video.Filename != "YouTube Video 3" {
		t.Errorf("video filename = %q, want YouTube Video 3", video.Filename)
	}
	if video.SourceMeta.YouTubeURL != "https://youtu.be/abc12345678" {
		t.Errorf("video url = %q", video.SourceMeta.YouTubeURL)
	}
}

func TestNormalizer_VideoNumberingContinues(t *testing.T) {
	n := NewNormalizer()
	results := []UploadResult{{Type: TypeYouTube}, {Type: TypeYouTube}}

	items := n.NormalizeBatch(results, nil, 0)
	if items[0].Filename != "YouTube Video 1" || items[1].Filename != "YouTube Video 2" {
		t.Errorf("filenames = %q, %q", items[0].Filename, items[1].Filename)
	}
	if got := CountVideos(items); got != 2 {
		t.Errorf("CountVideos() = %d, want 2", got)
	}
}

func TestNormalizer_Idempotent(t *testing.T) {
	n := NewNormalizer()
	res := UploadResult{
		Type:       TypePDF,
		Summary:    "**S**",
		ShortNotes: "*a*/b 1/2\r\n\r\n\r\nc.",
		Flashcards: []Flashcard{{Front: "**f**", Back: "b"}},
		MCQs:       []MCQ{CreateTestMCQ("**q**")},
	}
	first := n.NormalizeBatch([]UploadResult{res}, nil, 0)[0]

	again := UploadResult{
		Type:       first.Type,
		Summary:    first.Summary,
		ShortNotes: first.ShortNotes,
		Flashcards: first.Flashcards,
		MCQs:       first.MCQs,
	}
	second := n.NormalizeBatch([]UploadResult{again}, nil, 0)[0]

	if first.Summary != second.Summary || first.ShortNotes != second.ShortNotes {
		t.Errorf("text changed on second pass: %q/%q vs %q/%q", first.Summary, first.ShortNotes, second.Summary, second.ShortNotes)
	}
	if first.Flashcards[0] != second.Flashcards[0] || first.MCQs[0].Question != second.MCQs[0].Question {
		t.Error("collections changed on second pass")
	}
}
