package models

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty levels accepted for generation and stored on questions.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Question kinds. MIXED asks the model for a theoretical/numerical blend;
// the others constrain the whole batch to one style.
const (
	KindMCQ       = "MCQ"
	KindTF        = "TF"
	KindShort     = "SHORT"
	KindLong      = "LONG"
	KindNumerical = "NUMERICAL"
	KindMixed     = "MIXED"
)

type Question struct {
	ID           uuid.UUID `json:"id"`
	Text         string    `json:"text"`
	Answer       *string   `json:"answer"`
	Explanation  *string   `json:"explanation"`
	Topic        string    `json:"topic"`
	Difficulty   string    `json:"difficulty"`
	QuestionType string    `json:"question_type"`
	Marks        int       `json:"marks"`
	CreatedAt    time.Time `json:"created_at"`
}

// QuestionItem is one parsed entry from the model's JSON reply. It is
// transient; persisted records are built from it after validation.
type QuestionItem struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation"`
	Marks       int    `json:"marks"`
	Type        string `json:"type"`
}

// TopicItem is one entry from the topic-extraction call. Kind is either
// "topic" or "math".
type TopicItem struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

func ValidQuestionType(t string) bool {
	switch t {
	case KindMCQ, KindTF, KindShort, KindLong, KindNumerical, KindMixed:
		return true
	}
	return false
}
