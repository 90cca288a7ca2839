package internal

import (
	"regexp"
	"strings"
	"unicode"
)

// ReplaceRule is one literal clean-up step applied to generated text.
type ReplaceRule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// Apply runs the rule over s.
func (r ReplaceRule) Apply(s string) string {
	return r.Pattern.ReplaceAllString(s, r.Replacement)
}

var boldMarkerRules = []ReplaceRule{
	{Name: "bold", Pattern: regexp.MustCompile(`\*\*`), Replacement: ""},
}

// A CRLF, CR or blank-line run becomes a paragraph break. The second pass folds
// the runs that adjacent CRLFs leave behind so the result is stable.
var notesRules = []ReplaceRule{
	{Name: "asterisks", Pattern: regexp.MustCompile(`\*`), Replacement: ""},
	{Name: "slashes", Pattern: regexp.MustCompile(`/`), Replacement: ""},
	{Name: "date-tokens", Pattern: regexp.MustCompile(`\d{1,2}/`), Replacement: ""},
	{Name: "line-breaks", Pattern: regexp.MustCompile(`\r\n|\r|\n\s*\n`), Replacement: "\n\n"},
	{Name: "paragraphs", Pattern: regexp.MustCompile(`\n\s*\n`), Replacement: "\n\n"},
}

// Sanitizer strips presentation artifacts from backend text. Every method is
// idempotent.
type Sanitizer struct {
	bold  []ReplaceRule
	notes []ReplaceRule
}

// NewSanitizer creates a Sanitizer with the default rule set.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{bold: boldMarkerRules, notes: notesRules}
}

// StripBold removes markdown bold markers.
func (s *Sanitizer) StripBold(text string) string {
	return applyRules(text, s.bold)
}

// CleanNotes applies the notes rule set and trims surrounding dots and whitespace.
func (s *Sanitizer) CleanNotes(text string) string {
	if text == "" {
		return ""
	}
	cleaned := applyRules(text, s.notes)
	return strings.TrimFunc(cleaned, func(r rune) bool {
		return r == '.' || unicode.IsSpace(r)
	})
}

// CleanFlashcards strips bold markers from both sides of every card.
func (s *Sanitizer) CleanFlashcards(cards []Flashcard) []Flashcard {
	out := make([]Flashcard, 0, len(cards))
	for _, card := range cards {
		out = append(out, Flashcard{
			Front: s.StripBold(card.Front),
			Back:  s.StripBold(card.Back),
		})
	}
	return out
}

// CleanMCQs strips bold markers from questions, options and answers.
func (s *Sanitizer) CleanMCQs(mcqs []MCQ) []MCQ {
	out := make([]MCQ, 0, len(mcqs))
	for _, m := range mcqs {
		cleaned := m
		cleaned.Question = s.StripBold(m.Question)
		cleaned.Answer = s.StripBold(m.Answer)
		cleaned.Options = make([]MCQOption, 0, len(m.Options))
		for _, opt := range m.Options {
			opt.Text = s.StripBold(opt.Text)
			cleaned.Options = append(cleaned.Options, opt)
		}
		out = append(out, cleaned)
	}
	return out
}

func applyRules(text string, rules []ReplaceRule) string {
	for _, rule := range rules {
		text = rule.Apply(text)
	}
	return text
}
