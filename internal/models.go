package internal

import (
	"encoding/json"
	"fmt"
)

// SourceKind classifies where a content item came from.
type SourceKind string

const (
	SourceDocument  SourceKind = "document"
	SourceImage     SourceKind = "image"
	SourceVideoLink SourceKind = "video-link"
)

// Backend "type" values.
const (
	TypeYouTube = "youtube"
	TypeImage   = "image"
	TypePDF     = "pdf"
)

// ContentItem is one processed source with all of its generated artifacts.
// Field names follow the backend wire format so items round-trip through sessions.
type ContentItem struct {
	Type             string              `json:"type" yaml:"type,omitempty"`
	Filename         string              `json:"filename" yaml:"filename,omitempty"`
	Summary          string              `json:"summary" yaml:"summary,omitempty"`
	ShortNotes       string              `json:"short_notes" yaml:"short_notes,omitempty"`
	MCQs             []MCQ               `json:"mcqs" yaml:"mcqs,omitempty"`
	Flashcards       []Flashcard         `json:"flashcards" yaml:"flashcards,omitempty"`
	RawText          string              `json:"raw_text" yaml:"raw_text,omitempty"`
	ImageDescription string              `json:"image_description" yaml:"image_description,omitempty"`
	Base64Image      string              `json:"base64_image" yaml:"-"`
	IsImage          bool                `json:"is_image" yaml:"is_image,omitempty"`
	Transcript       []TranscriptSegment `json:"transcript" yaml:"transcript,omitempty"`
	YouTubeID        string              `json:"youtube_id,omitempty" yaml:"youtube_id,omitempty"`
	SourceMeta       SourceMeta          `json:"sourceMeta" yaml:"sourceMeta,omitempty"`
}

// Kind maps the backend type onto a SourceKind.
func (c *ContentItem) Kind() SourceKind {
	switch {
	case c.Type == TypeYouTube:
		return SourceVideoLink
	case c.Type == TypeImage || c.IsImage:
		return SourceImage
	default:
		return SourceDocument
	}
}

// SourceMeta remembers where the item was uploaded from.
type SourceMeta struct {
	LocalPath  string `json:"localPath,omitempty" yaml:"localPath,omitempty"`
	YouTubeURL string `json:"youtubeUrl,omitempty" yaml:"youtubeUrl,omitempty"`
}

// Flashcard is a single question/answer card.
type Flashcard struct {
	Front string `json:"front" yaml:"front,omitempty"`
	Back  string `json:"back" yaml:"back,omitempty"`
}

// MCQOption is one lettered answer choice.
type MCQOption struct {
	Letter    string `json:"letter" yaml:"letter,omitempty"`
	Text      string `json:"text" yaml:"text,omitempty"`
	IsCorrect bool   `json:"is_correct" yaml:"is_correct,omitempty"`
}

// MCQ is a multiple-choice question.
type MCQ struct {
	ID            int         `json:"id,omitempty" yaml:"id,omitempty"`
	Question      string      `json:"question" yaml:"question,omitempty"`
	Options       []MCQOption `json:"options" yaml:"options,omitempty"`
	Answer        string      `json:"answer" yaml:"answer,omitempty"`
	CorrectAnswer string      `json:"correct_answer,omitempty" yaml:"correct_answer,omitempty"`
	Explanation   string      `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// UnmarshalJSON accepts options either as plain strings (upload results) or as
// lettered objects (generate results).
func (m *MCQ) UnmarshalJSON(data []byte) error {
	type alias MCQ
	var aux struct {
		alias
		Options json.RawMessage `json:"options"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = MCQ(aux.alias)
	m.Options = nil

	if len(aux.Options) > 0 && string(aux.Options) != "null" {
		var plain []string
		if err := json.Unmarshal(aux.Options, &plain); err == nil {
			m.Options = make([]MCQOption, 0, len(plain))
			for i, text := range plain {
				m.Options = append(m.Options, MCQOption{
					Letter:    optionLetter(i),
					Text:      text,
					IsCorrect: text == m.Answer,
				})
			}
		} else {
			var lettered []MCQOption
			if err := json.Unmarshal(aux.Options, &lettered); err != nil {
				return fmt.Errorf("failed to parse mcq options: %w", err)
			}
			m.Options = lettered
		}
	}
	if m.Options == nil {
		m.Options = []MCQOption{}
	}

	if m.CorrectAnswer == "" {
		for _, opt := range m.Options {
			if opt.IsCorrect {
				m.CorrectAnswer = opt.Letter
				break
			}
		}
	}
	return nil
}

func optionLetter(i int) string {
	return string(rune('A' + i))
}

// TranscriptSegment is one timed line of a video transcript.
type TranscriptSegment struct {
	Text     string  `json:"text" yaml:"text,omitempty"`
	Start    float64 `json:"start" yaml:"start"`
	Duration float64 `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// Timestamp formats the segment start as m:ss.
func (s TranscriptSegment) Timestamp() string {
	total := int(s.Start)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ChatMessage is one turn of the chat transcript.
type ChatMessage struct {
	Sender Sender `json:"sender" yaml:"sender,omitempty"`
	Text   string `json:"text" yaml:"text,omitempty"`
}

// UnmarshalJSON maps any non-user sender ("bot" in older transcripts) to assistant.
func (c *ChatMessage) UnmarshalJSON(data []byte) error {
	var aux struct {
		Sender string `json:"sender"`
		Text   string `json:"text"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Text = aux.Text
	if aux.Sender == string(SenderUser) {
		c.Sender = SenderUser
	} else {
		c.Sender = SenderAssistant
	}
	return nil
}

// Session is a saved snapshot of the content store and chat transcript.
type Session struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	CreatedAt     string        `json:"created_at,omitempty"`
	UpdatedAt     string        `json:"updated_at,omitempty"`
	UploadedFiles []ContentItem `json:"uploadedFiles"`
	ChatHistory   []ChatMessage `json:"chatHistory"`
}

// SessionSummary is one row of the session history listing.
type SessionSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
	FileCount int    `json:"file_count"`
	HasChat   bool   `json:"has_chat"`
}

// PendingKind distinguishes local files from pasted links.
type PendingKind string

const (
	PendingFileKind PendingKind = "file"
	PendingLinkKind PendingKind = "link"
)

// PendingFile is a selected but not yet submitted upload candidate.
type PendingFile struct {
	Kind     PendingKind `json:"kind"`
	Path     string      `json:"path,omitempty"`
	URL      string      `json:"url,omitempty"`
	Name     string      `json:"name"`
	Size     int64       `json:"size,omitempty"`
	MimeType string      `json:"mime_type,omitempty"`
	Preview  *PreviewRef `json:"preview,omitempty"`
}

// IsLink reports whether the entry is a pasted video link.
func (p *PendingFile) IsLink() bool {
	return p.Kind == PendingLinkKind
}
