package models

import (
	"time"
)

// TopicStatus tracks coarse completion state for a whole topic.
type TopicStatus string

const (
	TopicStatusPending    TopicStatus = "Pending"
	TopicStatusInProgress TopicStatus = "In Progress"
	TopicStatusCompleted  TopicStatus = "Completed"
)

// Topic is a top-level grouping of questions. SubTopicRefs and QuestionRefs
// are ordered id lists; their order is the display order and is replaced
// wholesale on reorder.
type Topic struct {
	ID           string      `json:"id" db:"id"`
	Title        string      `json:"title" db:"title"`
	Description  string      `json:"description" db:"description"`
	Status       TopicStatus `json:"status" db:"status"`
	Ord          int         `json:"ord" db:"ord"`
	SubTopicRefs []string    `json:"sub_topic_refs" db:"sub_topics"`
	QuestionRefs []string    `json:"question_refs" db:"questions"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// TopicUpdate carries a partial update. Nil fields are left untouched.
type TopicUpdate struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	Status      *TopicStatus `json:"status,omitempty"`
}
