package internal

import (
	"fmt"
	"time"
)

// CreateTestContentItem creates a document item with n flashcards
func CreateTestContentItem(filename string, flashcards int) ContentItem {
	cards := make([]Flashcard, 0, flashcards)
	for i := 0; i < flashcards; i++ {
		cards = append(cards, Flashcard{
			Front: fmt.Sprintf("Question %d", i+1),
			Back:  fmt.Sprintf("Answer %d", i+1),
		})
	}
	return ContentItem{
		Type:       TypePDF,
		Filename:   filename,
		Summary:    "Summary of " + filename,
		ShortNotes: "Notes for " + filename,
		MCQs:       []MCQ{},
		Flashcards: cards,
		RawText:    "Extracted text of " + filename,
		SourceMeta: SourceMeta{LocalPath: filename},
	}
}

// CreateTestMCQ creates an MCQ whose first option is correct
func CreateTestMCQ(question string) MCQ {
	return MCQ{
		Question: question,
		Options: []MCQOption{
			{Letter: "A", Text: "right", IsCorrect: true},
			{Letter: "B", Text: "wrong"},
			{Letter: "C", Text: "also wrong"},
			{Letter: "D", Text: "still wrong"},
		},
		Answer:        "right",
		CorrectAnswer: "A",
	}
}

// CreateTestSession creates a saved session holding the given items
func CreateTestSession(id string, items ...ContentItem) *Session {
	return &Session{
		ID:            id,
		Name:          "Session " + id,
		CreatedAt:     time.Now().Format(time.RFC3339),
		UploadedFiles: items,
		ChatHistory: []ChatMessage{
			{Sender: SenderUser, Text: "What is this about?"},
			{Sender: SenderAssistant, Text: "It is about testing."},
		},
	}
}
