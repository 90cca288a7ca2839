package internal

import (
	"context"
	"fmt"
)

// Artifact kinds that can be regenerated on demand.
const (
	ArtifactNotes      = "notes"
	ArtifactFlashcards = "flashcards"
	ArtifactMCQs       = "mcqs"
)

// DefaultQuestionCount is the MCQ count requested when none is given.
const DefaultQuestionCount = 10

// MaxQuestionCount is the largest MCQ count the backend honours.
const MaxQuestionCount = 20

// Generator regenerates one artifact of the selected item in place.
type Generator struct {
	backend   Backend
	store     *ContentStore
	sanitizer *Sanitizer
}

// NewGenerator creates a generator over store.
func NewGenerator(backend Backend, store *ContentStore) *Generator {
	return &Generator{backend: backend, store: store, sanitizer: NewSanitizer()}
}

// Generate regenerates artifact for the current item. count only applies to MCQs.
func (g *Generator) Generate(ctx context.Context, artifact string, count int) error {
	item := g.store.Current()
	if item == nil {
		return ErrNoContent
	}
	if item.RawText == "" {
		return ErrNoRawText
	}

	switch artifact {
	case ArtifactNotes:
		notes, err := g.backend.GenerateNotes(ctx, item.RawText)
		if err != nil {
			return err
		}
		item.ShortNotes = g.sanitizer.CleanNotes(notes)
	case ArtifactFlashcards:
		cards, err := g.backend.GenerateFlashcards(ctx, item.RawText)
		if err != nil {
			return err
		}
		item.Flashcards = g.sanitizer.CleanFlashcards(cards)
		g.store.FlashcardIndex = 0
		g.store.FlashcardCount = min(DefaultFlashcardCount, len(item.Flashcards))
	case ArtifactMCQs:
		mcqs, err := g.backend.GenerateMCQs(ctx, item.RawText, ClampQuestionCount(count))
		if err != nil {
			return err
		}
		if len(mcqs) == 0 {
			return &APIError{Op: "generate.mcqs", Message: "No MCQs could be generated for this content."}
		}
		item.MCQs = g.sanitizer.CleanMCQs(mcqs)
	default:
		return &ValidationError{Message: fmt.Sprintf("Generation for %s is not supported (use notes, flashcards or mcqs).", artifact)}
	}

	LogInfo("Generated %s for %s", artifact, item.Filename)
	return nil
}

// ClampQuestionCount keeps count within 1..MaxQuestionCount, defaulting to 10.
func ClampQuestionCount(count int) int {
	if count <= 0 {
		return DefaultQuestionCount
	}
	return min(count, MaxQuestionCount)
}
