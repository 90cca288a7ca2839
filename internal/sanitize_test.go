package internal

import "testing"

func TestSanitizer_CleanNotes(t *testing.T) {
	s := NewSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"asterisks", "**Key** point * detail", "Key point  detail"},
		{"slashes", "Due 12/05 and a/b", "Due 1205 and ab"},
		{"fraction keeps both digits", "Mix 3/4 cup", "Mix 34 cup"},
		{"crlf is a paragraph break", "Step one\r\nStep two", "Step one\n\nStep two"},
		{"line endings", "one\r\ntwo\rthree", "one\n\ntwo\n\nthree"},
		{"adjacent crlfs", "one\r\n\r\n\r\ntwo", "one\n\ntwo"},
		{"single newline kept", "one\ntwo", "one\ntwo"},
		{"blank line runs", "one\n\n\n\ntwo\n \n\t\nthree", "one\n\ntwo\n\nthree"},
		{"surrounding dots", "...notes here..", "notes here"},
		{"surrounding whitespace", "\n  notes  \n", "notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.CleanNotes(tt.input); got != tt.want {
				t.Errorf("CleanNotes(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizer_Idempotent(t *testing.T) {
	s := NewSanitizer()
	inputs := []string{
		"",
		"**bold** text",
		"1/ **Note** one\r\n\r\n\r\n* point/two.",
		"12/05/2024 dates / slashes //",
		". . leading dots and trailing . .",
		"a\n \n \n b\r\r\rc",
		"***nested** bold*",
		"123/456/7/",
		"Mix 3/4 cup\r\nStep two\r\n\r\n",
	}

	for _, in := range inputs {
		once := s.CleanNotes(in)
		if twice := s.CleanNotes(once); twice != once {
			t.Errorf("CleanNotes not idempotent for %q: %q then %q", in, once, twice)
		}
		bold := s.StripBold(in)
		if again := s.StripBold(bold); again != bold {
			t.Errorf("StripBold not idempotent for %q: %q then %q", in, bold, again)
		}
	}
}

func TestSanitizer_CleanMCQs(t *testing.T) {
	s := NewSanitizer()
	mcqs := []MCQ{{
		Question: "**What** is Go?",
		Options:  []MCQOption{{Letter: "A", Text: "**A language**", IsCorrect: true}},
		Answer:   "**A language**",
	}}

	got := s.CleanMCQs(mcqs)
	if got[0].Question != "What is Go?" || got[0].Options[0].Text != "A language" || got[0].Answer != "A language" {
		t.Errorf("CleanMCQs() = %+v", got[0])
	}
	if mcqs[0].Options[0].Text != "**A language**" {
		t.Error("CleanMCQs() must not modify its input")
	}
	if empty := s.CleanMCQs(nil); empty == nil {
		t.Error("CleanMCQs(nil) should return a non-nil slice")
	}
}

func TestSanitizer_CleanFlashcards(t *testing.T) {
	s := NewSanitizer()
	got := s.CleanFlashcards([]Flashcard{{Front: "**Term**", Back: "**Meaning**"}})
	if got[0].Front != "Term" || got[0].Back != "Meaning" {
		t.Errorf("CleanFlashcards() = %+v", got)
	}
	if empty := s.CleanFlashcards(nil); empty == nil {
		t.Error("CleanFlashcards(nil) should return a non-nil slice")
	}
}
