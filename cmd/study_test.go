package cmd

import (
	"strings"
	"testing"
)

func TestChatCommand(t *testing.T) {
	env := newCLIEnv(t)
	env.uploadPDF(t, "cells.pdf")

	out := env.mustRun(t, "chat")
	if !strings.Contains(out, "Assistant:") {
		t.Errorf("greeting missing: %q", out)
	}

	out = env.mustRun(t, "chat", "explain", "mitosis")
	if !strings.Contains(out, "You said: explain mitosis") {
		t.Errorf("reply = %q", out)
	}
	reqs := env.fb.RequestsTo("/chat")
	if len(reqs) != 1 {
		t.Fatalf("chat requests = %d, want 1", len(reqs))
	}
	var body struct {
		Content map[string]string `json:"content"`
	}
	reqs[0].JSON(t, &body)
	if body.Content["summary"] != "Summary of cells.pdf" {
		t.Errorf("content context = %v", body.Content)
	}

	env.fb.Fail("/chat", 500, "")
	out = env.mustRun(t, "chat", "again")
	if !strings.Contains(out, "Sorry, I couldn't process your request") {
		t.Errorf("failure reply = %q", out)
	}

	env.mustRun(t, "chat", "--clear")
	out = env.mustRun(t, "chat")
	if strings.Contains(out, "explain mitosis") {
		t.Errorf("transcript not cleared: %q", out)
	}
}

func TestGenerateCommand(t *testing.T) {
	env := newCLIEnv(t)
	if _, _, err := env.run(t, "generate", "notes"); err == nil {
		t.Error("expected error with an empty workspace")
	}
	env.uploadPDF(t, "cells.pdf")

	out := env.mustRun(t, "generate", "notes")
	if !strings.Contains(out, "Key point") || strings.Contains(out, "**") {
		t.Errorf("notes = %q", out)
	}

	env.mustRun(t, "generate", "mcqs", "--count", "50")
	var req struct {
		NumQuestions int `json:"num_questions"`
	}
	reqs := env.fb.RequestsTo("/generate/mcqs")
	if len(reqs) != 1 {
		t.Fatalf("mcq requests = %d, want 1", len(reqs))
	}
	reqs[0].JSON(t, &req)
	if req.NumQuestions != 20 {
		t.Errorf("num_questions = %d, want 20", req.NumQuestions)
	}

	if _, _, err := env.run(t, "generate", "poems"); err == nil {
		t.Error("expected error for an unknown artifact")
	}

	env.fb.Fail("/generate/flashcards", 500, "Model overloaded")
	_, _, err := env.run(t, "generate", "flashcards")
	if err == nil || err.Error() != "Model overloaded" {
		t.Errorf("generate error = %v", err)
	}
}

func TestQuizCommand(t *testing.T) {
	env := newCLIEnv(t)
	env.uploadPDF(t, "cells.pdf")

	out := env.mustRun(t, "quiz")
	if !strings.Contains(out, "What is it?") || strings.Contains(out, "✓") {
		t.Errorf("questions = %q", out)
	}

	tests := []struct {
		name    string
		answers []string
		want    []string
	}{
		{"correct", []string{"a"}, []string{"1/1 (100.0%)", "Excellent!"}},
		{"wrong", []string{"B"}, []string{"0/1 (0.0%)", "Keep practicing!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := env.mustRun(t, append([]string{"quiz"}, tt.answers...)...)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q: %q", w, out)
				}
			}
		})
	}
}

func TestQuizCommand_LetterString(t *testing.T) {
	env := newCLIEnv(t)
	env.uploadPDF(t, "cells.pdf")
	env.mustRun(t, "generate", "mcqs", "--count", "3")

	out := env.mustRun(t, "quiz", "AAB")
	if !strings.Contains(out, "2/3 (66.7%)") || !strings.Contains(out, "Good effort!") {
		t.Errorf("quiz = %q", out)
	}
}
