package models

import (
	"time"
)

// Difficulty is the fixed difficulty scale for a question.
type Difficulty string

const (
	DifficultyBasic  Difficulty = "Basic"
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// DefaultDifficulty is applied when a create request omits the field.
const DefaultDifficulty = DifficultyMedium

// ValidDifficulty reports whether d is one of the fixed difficulty values.
func ValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyBasic, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// PlaceholderURL marks a problem or resource link that was never provided.
// The UI treats it as not-a-real-link, so it is stored verbatim rather than
// being normalized to an empty string.
const PlaceholderURL = "#"

// Question is a single practice problem together with the user's
// relationship to it (solved/starred/notes). Ordering among siblings is
// derived from the owner's reference list, not from Ord; Ord is kept as the
// seed-assigned position for diagnostics.
type Question struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	IsSolved    bool       `json:"is_solved" db:"is_solved"`
	IsStarred   bool       `json:"is_starred" db:"is_starred"`
	Notes       string     `json:"notes" db:"notes"`
	Difficulty  Difficulty `json:"difficulty" db:"difficulty"`
	Platform    string     `json:"platform" db:"platform"`
	ProblemURL  string     `json:"problem_url" db:"problem_url"`
	Resource    string     `json:"resource" db:"resource"`
	CompanyTags []string   `json:"company_tags" db:"company_tags"`
	Ord         int        `json:"ord" db:"ord"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// QuestionUpdate carries a partial update. Nil fields are left untouched.
type QuestionUpdate struct {
	Title       *string     `json:"title,omitempty"`
	Difficulty  *Difficulty `json:"difficulty,omitempty"`
	ProblemURL  *string     `json:"problemUrl,omitempty"`
	Platform    *string     `json:"platform,omitempty"`
	Resource    *string     `json:"resource,omitempty"`
	CompanyTags *[]string   `json:"companyTags,omitempty"`
}
