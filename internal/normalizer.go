package internal

import (
	"fmt"
)

const (
	imageDescriptionPending     = "Please check the 'Image Description' tab for details."
	imageDescriptionUnsupported = "Image descriptions are only available for image files (PNG, JPG, JPEG)."
)

// UploadResult is one per-source object returned by POST /upload.
type UploadResult struct {
	Type             string              `json:"type"`
	Filename         string              `json:"filename"`
	Summary          string              `json:"summary"`
	ShortNotes       string              `json:"short_notes"`
	MCQs             []MCQ               `json:"mcqs"`
	Flashcards       []Flashcard         `json:"flashcards"`
	RawText          string              `json:"raw_text"`
	ImageDescription string              `json:"image_description"`
	Base64Image      string              `json:"base64_image"`
	IsImage          bool                `json:"is_image"`
	Transcript       []TranscriptSegment `json:"transcript"`
	YouTubeID        string              `json:"youtube_id"`
}

// Normalizer converts upload results into content items
type Normalizer struct {
	sanitizer *Sanitizer
}

// NewNormalizer creates a new Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{sanitizer: NewSanitizer()}
}

// NormalizeBatch converts a response batch into content items. batch is the pending
// list that was submitted and is used to correlate links and local paths by position.
// existingVideos is the number of video items already in the store, so new videos
// continue the "YouTube Video N" numbering.
func (n *Normalizer) NormalizeBatch(results []UploadResult, batch []PendingFile, existingVideos int) []ContentItem {
	nextVideo := existingVideos + 1
	items := make([]ContentItem, 0, len(results))

	for i, res := range results {
		var source *PendingFile
		if i < len(batch) {
			source = &batch[i]
		}

		item := n.normalizeResult(res, source)
		if res.Type == TypeYouTube {
			item.Filename = fmt.Sprintf("YouTube Video %d", nextVideo)
			nextVideo++
		}
		items = append(items, item)
	}

	return items
}

// normalizeResult converts a single result; collections are never nil.
func (n *Normalizer) normalizeResult(res UploadResult, source *PendingFile) ContentItem {
	item := ContentItem{
		Type:        res.Type,
		Filename:    res.Filename,
		Summary:     n.sanitizer.StripBold(res.Summary),
		ShortNotes:  n.sanitizer.CleanNotes(res.ShortNotes),
		MCQs:        n.sanitizer.CleanMCQs(res.MCQs),
		Flashcards:  n.sanitizer.CleanFlashcards(res.Flashcards),
		RawText:     res.RawText,
		Base64Image: res.Base64Image,
		IsImage:     res.IsImage,
		Transcript:  res.Transcript,
		YouTubeID:   res.YouTubeID,
	}

	switch {
	case res.ImageDescription != "":
		item.ImageDescription = n.sanitizer.StripBold(res.ImageDescription)
	case res.IsImage:
		item.ImageDescription = imageDescriptionPending
	default:
		item.ImageDescription = imageDescriptionUnsupported
	}

	if source != nil {
		if source.IsLink() {
			item.SourceMeta.YouTubeURL = source.URL
		} else {
			item.SourceMeta.LocalPath = source.Path
		}
	}
	if item.SourceMeta.YouTubeURL == "" && res.Type == TypeYouTube {
		item.SourceMeta.YouTubeURL = res.Filename
	}

	return item
}

// CountVideos returns how many items came from video links.
func CountVideos(items []ContentItem) int {
	count := 0
	for i := range items {
		if items[i].Kind() == SourceVideoLink {
			count++
		}
	}
	return count
}
