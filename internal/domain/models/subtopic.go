package models

import (
	"time"
)

// SubTopic is a grouping of questions under exactly one Topic. It never
// exists independently: the owning Topic's SubTopicRefs list is the only
// path to it.
type SubTopic struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Ord          int       `json:"ord" db:"ord"`
	QuestionRefs []string  `json:"question_refs" db:"questions"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
