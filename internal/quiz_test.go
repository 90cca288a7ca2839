package internal

import "testing"

func TestGradeQuiz(t *testing.T) {
	mcqs := []MCQ{CreateTestMCQ("q1"), CreateTestMCQ("q2"), CreateTestMCQ("q3")}

	tests := []struct {
		name         string
		answers      []string
		wantCorrect  int
		wantScore    float64
		wantFeedback string
	}{
		{"all correct", []string{"A", "a", " A "}, 3, 100, "Excellent!"},
		{"two of three", []string{"A", "A", "B"}, 2, 66.7, "Good effort!"},
		{"one of three", []string{"A", "C", "D"}, 1, 33.3, "Keep practicing!"},
		{"missing answers count as wrong", []string{"A"}, 1, 33.3, "Keep practicing!"},
		{"extra answers ignored", []string{"A", "A", "A", "A"}, 3, 100, "Excellent!"},
		{"blank answers", []string{"", "", ""}, 0, 0, "Keep practicing!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GradeQuiz(mcqs, tt.answers)
			if got.Correct != tt.wantCorrect || got.Score != tt.wantScore || got.Feedback != tt.wantFeedback {
				t.Errorf("GradeQuiz() = %+v, want correct %d score %v feedback %q", got, tt.wantCorrect, tt.wantScore, tt.wantFeedback)
			}
			if got.Total != 3 {
				t.Errorf("Total = %d, want 3", got.Total)
			}
		})
	}
}

func TestQuizFeedbackBands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, "Excellent!"},
		{90, "Excellent!"},
		{89.9, "Great!"},
		{70, "Great!"},
		{50, "Good effort!"},
		{49.9, "Keep practicing!"},
	}
	for _, tt := range tests {
		if got := quizFeedback(tt.score); got != tt.want {
			t.Errorf("quizFeedback(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestGradeQuiz_Empty(t *testing.T) {
	got := GradeQuiz(nil, []string{"A"})
	if got.Total != 0 || got.Score != 0 {
		t.Errorf("GradeQuiz(nil) = %+v", got)
	}
}
