package internal

import (
	"math"
	"strings"
)

// QuizResult is the outcome of grading a set of answers.
type QuizResult struct {
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// GradeQuiz grades lettered answers against mcqs. Missing answers count as wrong;
// extra answers are ignored.
func GradeQuiz(mcqs []MCQ, answers []string) QuizResult {
	result := QuizResult{Total: len(mcqs)}
	for i, m := range mcqs {
		if i >= len(answers) {
			break
		}
		answer := strings.ToUpper(strings.TrimSpace(answers[i]))
		if answer != "" && answer == m.CorrectAnswer {
			result.Correct++
		}
	}
	if result.Total > 0 {
		score := float64(result.Correct) / float64(result.Total) * 100
		result.Score = math.Round(score*10) / 10
	}
	result.Feedback = quizFeedback(result.Score)
	return result
}

func quizFeedback(score float64) string {
	switch {
	case score >= 90:
		return "Excellent!"
	case score >= 70:
		return "Great!"
	case score >= 50:
		return "Good effort!"
	default:
		return "Keep practicing!"
	}
}
