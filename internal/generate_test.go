package internal

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestClampQuestionCount(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 10}, {-3, 10}, {1, 1}, {15, 15}, {20, 20}, {50, 20},
	}
	for _, tt := range tests {
		if got := ClampQuestionCount(tt.in); got != tt.want {
			t.Errorf("ClampQuestionCount(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestGenerator_Generate(t *testing.T) {
	tests := []struct {
		name     string
		artifact string
		count    int
		check    func(t *testing.T, store *ContentStore)
	}{
		{
			name:     "notes are sanitized",
			artifact: ArtifactNotes,
			check: func(t *testing.T, store *ContentStore) {
				if got := store.Current().ShortNotes; got != "1 Key point\n\n detail one" {
					t.Errorf("notes = %q", got)
				}
			},
		},
		{
			name:     "flashcards reset the cursor",
			artifact: ArtifactFlashcards,
			check: func(t *testing.T, store *ContentStore) {
				cards := store.Current().Flashcards
				if len(cards) != 12 || cards[0].Front != "Term 1" {
					t.Errorf("flashcards = %+v", cards)
				}
				if store.FlashcardCount != 10 || store.FlashcardIndex != 0 {
					t.Errorf("count/index = %d/%d, want 10/0", store.FlashcardCount, store.FlashcardIndex)
				}
			},
		},
		{
			name:     "mcqs clamped to twenty",
			artifact: ArtifactMCQs,
			count:    40,
			check: func(t *testing.T, store *ContentStore) {
				mcqs := store.Current().MCQs
				if len(mcqs) != 20 || mcqs[0].Question != "Question 1?" {
					t.Errorf("mcqs = %d, first %q", len(mcqs), mcqs[0].Question)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t)
			store := NewContentStore()
			store.Append([]ContentItem{CreateTestContentItem("a.pdf", 1)})
			store.FlashcardIndex = 1

			if err := NewGenerator(c, store).Generate(context.Background(), tt.artifact, tt.count); err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			tt.check(t, store)
		})
	}
}

func TestGenerator_Errors(t *testing.T) {
	c, fb := newTestClient(t)
	ctx := context.Background()
	store := NewContentStore()
	g := NewGenerator(c, store)

	if err := g.Generate(ctx, ArtifactNotes, 0); !errors.Is(err, ErrNoContent) {
		t.Errorf("empty store error = %v, want ErrNoContent", err)
	}

	item := CreateTestContentItem("a.pdf", 0)
	item.RawText = ""
	store.Append([]ContentItem{item})
	if err := g.Generate(ctx, ArtifactNotes, 0); !errors.Is(err, ErrNoRawText) {
		t.Errorf("no raw text error = %v, want ErrNoRawText", err)
	}

	store.Current().RawText = "text"
	var verr *ValidationError
	if err := g.Generate(ctx, "podcast", 0); !errors.As(err, &verr) {
		t.Errorf("unknown artifact error = %v, want ValidationError", err)
	}

	fb.Respond("/generate/mcqs", http.StatusOK, map[string]interface{}{"mcqs": []interface{}{}, "error": "Could not parse"})
	err := g.Generate(ctx, ArtifactMCQs, 5)
	if got := UserMessage(err, ""); got != "Could not parse" {
		t.Errorf("mcq error message = %q", got)
	}
	if n := len(fb.Requests()); n != 1 {
		t.Errorf("requests = %d, want 1", n)
	}
}
