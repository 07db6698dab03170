package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"codolio/internal/domain/models"
	"codolio/internal/service"
)

// Store keeps a local copy of the topic tree in sync with the server.
// Structural mutations ask the server first and fold the confirmed result
// into the tree; moves apply locally first and keep the local order even if
// the server rejects the request (last write wins on the next sync).
//
// All transforms are copy-on-write: branches the mutation does not touch
// keep their identity, so slices handed out earlier stay valid.
type Store struct {
	mu      sync.RWMutex
	api     *Client
	persist SnapshotStore
	logger  *slog.Logger
	topics  []models.TreeTopic
}

// NewStore creates a store. persist may not be nil; use an in-memory
// snapshot store when persistence is unwanted.
func NewStore(api *Client, persist SnapshotStore, logger *slog.Logger) *Store {
	return &Store{
		api:     api,
		persist: persist,
		logger:  logger,
		topics:  []models.TreeTopic{},
	}
}

// Hydrate loads the last saved snapshot, if any. Call before Sync so the
// tree is usable while the server is unreachable.
func (s *Store) Hydrate() error {
	topics, ok, err := s.persist.Load()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.topics = topics
	s.mu.Unlock()
	return nil
}

// Sync replaces the tree with the server's copy and saves it.
func (s *Store) Sync(ctx context.Context) error {
	topics, err := s.api.GetTopics(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = topics
	s.saveLocked()
	return nil
}

// Topics returns the current tree. The returned slice must not be mutated.
func (s *Store) Topics() []models.TreeTopic {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.TreeTopic, len(s.topics))
	copy(out, s.topics)
	return out
}

// saveLocked persists the snapshot. A persistence failure is logged, not
// surfaced: the in-memory tree is still correct.
func (s *Store) saveLocked() {
	if err := s.persist.Save(s.topics); err != nil {
		s.logger.Error("snapshot save failed", "error", err)
	}
}

// AddTopic creates a topic on the server and appends it to the tree.
func (s *Store) AddTopic(ctx context.Context, title, description string) (*models.TreeTopic, error) {
	topic, err := s.api.CreateTopic(ctx, &service.CreateTopicRequest{Title: title, Description: description})
	if err != nil {
		s.logger.Error("add topic failed", "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.TreeTopic, len(s.topics), len(s.topics)+1)
	copy(next, s.topics)
	s.topics = append(next, *topic)
	s.saveLocked()
	return topic, nil
}

// EditTopic updates a topic's title and description.
func (s *Store) EditTopic(ctx context.Context, topicID, title, description string) error {
	req := &service.UpdateTopicRequest{Title: &title, Description: &description}
	if err := s.api.UpdateTopic(ctx, topicID, req); err != nil {
		s.logger.Error("edit topic failed", "topic_id", topicID, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics, _ = mapTopic(s.topics, topicID, func(t models.TreeTopic) models.TreeTopic {
		t.Title = title
		t.Description = description
		return t
	})
	s.saveLocked()
	return nil
}

// DeleteTopic removes a topic and everything under it.
func (s *Store) DeleteTopic(ctx context.Context, topicID string) error {
	if err := s.api.DeleteTopic(ctx, topicID); err != nil {
		s.logger.Error("delete topic failed", "topic_id", topicID, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.TreeTopic, 0, len(s.topics))
	for _, t := range s.topics {
		if t.ID != topicID {
			next = append(next, t)
		}
	}
	s.topics = next
	s.saveLocked()
	return nil
}

// AddSubTopic creates a sub-topic under a topic.
func (s *Store) AddSubTopic(ctx context.Context, topicID, title string) (*models.TreeSubTopic, error) {
	sub, err := s.api.CreateSubTopic(ctx, topicID, &service.CreateSubTopicRequest{Title: title})
	if err != nil {
		s.logger.Error("add sub-topic failed", "topic_id", topicID, "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics, _ = mapTopic(s.topics, topicID, func(t models.TreeTopic) models.TreeTopic {
		subs := make([]models.TreeSubTopic, len(t.SubTopics), len(t.SubTopics)+1)
		copy(subs, t.SubTopics)
		t.SubTopics = append(subs, *sub)
		return t
	})
	s.saveLocked()
	return sub, nil
}

// EditSubTopic renames a sub-topic.
func (s *Store) EditSubTopic(ctx context.Context, topicID, subTopicID, title string) error {
	if err := s.api.UpdateSubTopic(ctx, topicID, subTopicID, &service.UpdateSubTopicRequest{Title: title}); err != nil {
		s.logger.Error("edit sub-topic failed", "sub_topic_id", subTopicID, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics, _ = mapSubTopic(s.topics, topicID, subTopicID, func(st models.TreeSubTopic) models.TreeSubTopic {
		st.Title = title
		return st
	})
	s.saveLocked()
	return nil
}

// DeleteSubTopic removes a sub-topic and its questions.
func (s *Store) DeleteSubTopic(ctx context.Context, topicID, subTopicID string) error {
	if err := s.api.DeleteSubTopic(ctx, topicID, subTopicID); err != nil {
		s.logger.Error("delete sub-topic failed", "sub_topic_id", subTopicID, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics, _ = mapTopic(s.topics, topicID, func(t models.TreeTopic) models.TreeTopic {
		subs := make([]models.TreeSubTopic, 0, len(t.SubTopics))
		for _, st := range t.SubTopics {
			if st.ID != subTopicID {
				subs = append(subs, st)
			}
		}
		t.SubTopics = subs
		return t
	})
	s.saveLocked()
	return nil
}

// AddQuestion creates a question under the owner and appends it to the
// owner's list.
func (s *Store) AddQuestion(ctx context.Context, owner models.Owner, req *service.CreateQuestionRequest) (*models.TreeQuestion, error) {
	q, err := s.api.CreateQuestion(ctx, owner, req)
	if err != nil {
		s.logger.Error("add question failed", "topic_id", owner.TopicID, "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics, _ = mapQuestions(s.topics, owner, func(qs []models.TreeQuestion) []models.TreeQuestion {
		next := make([]models.TreeQuestion, len(qs), len(qs)+1)
		copy(next, qs)
		return append(next, *q)
	})
	s.saveLocked()
	return q, nil
}

// EditQuestion applies a partial update and folds the server's copy into
// the tree.
func (s *Store) EditQuestion(ctx context.Context, owner models.Owner, questionID string, req *service.UpdateQuestionRequest) error {
	updated, err := s.api.UpdateQuestion(ctx, owner, questionID, req)
	if err != nil {
		s.logger.Error("edit question failed", "question_id", questionID, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics, _ = mapQuestion(s.topics, owner, questionID, func(models.TreeQuestion) models.TreeQuestion {
		return *updated
	})
	s.saveLocked()
	return nil
}

// DeleteQuestion removes a question from the owner's list.
func (s *Store) DeleteQuestion(ctx context.Context, owner models.Owner, questionID string) error {
	if err := s.api.DeleteQuestion(ctx, owner, questionID); err != nil {
		s.logger.Error("delete question failed", "question_id", questionID, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics, _ = mapQuestions(s.topics, owner, func(qs []models.TreeQuestion) []models.TreeQuestion {
		next := make([]models.TreeQuestion, 0, len(qs))
		for _, q := range qs {
			if q.ID != questionID {
				next = append(next, q)
			}
		}
		return next
	})
	s.saveLocked()
	return nil
}

// ToggleSolved flips a question's solved flag, taking the server's answer
// as truth.
func (s *Store) ToggleSolved(ctx context.Context, owner models.Owner, questionID string) (bool, error) {
	solved, err := s.api.ToggleSolved(ctx, owner, questionID)
	if err != nil {
		s.logger.Error("toggle solved failed", "question_id", questionID, "error", err)
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics, _ = mapQuestion(s.topics, owner, questionID, func(q models.TreeQuestion) models.TreeQuestion {
		q.IsSolved = solved
		return q
	})
	s.saveLocked()
	return solved, nil
}

// ToggleStar flips a question's starred flag.
func (s *Store) ToggleStar(ctx context.Context, owner models.Owner, questionID string) (bool, error) {
	starred, err := s.api.ToggleStarred(ctx, owner, questionID)
	if err != nil {
		s.logger.Error("toggle star failed", "question_id", questionID, "error", err)
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics, _ = mapQuestion(s.topics, owner, questionID, func(q models.TreeQuestion) models.TreeQuestion {
		q.IsStarred = starred
		return q
	})
	s.saveLocked()
	return starred, nil
}

// SetNotes replaces a question's notes.
func (s *Store) SetNotes(ctx context.Context, owner models.Owner, questionID, notes string) error {
	if err := s.api.SetNotes(ctx, owner, questionID, notes); err != nil {
		s.logger.Error("set notes failed", "question_id", questionID, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics, _ = mapQuestion(s.topics, owner, questionID, func(q models.TreeQuestion) models.TreeQuestion {
		q.Notes = notes
		return q
	})
	s.saveLocked()
	return nil
}

// MoveTopic moves a topic from one index to another. The move is applied
// locally first; a rejected request keeps the local order.
func (s *Store) MoveTopic(ctx context.Context, from, to int) error {
	s.mu.Lock()
	moved, ok := spliceTopics(s.topics, from, to)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("move topic: index out of range (%d -> %d of %d)", from, to, len(s.topics))
	}
	s.topics = moved
	ids := make([]string, len(moved))
	for i, t := range moved {
		ids[i] = t.ID
	}
	s.saveLocked()
	s.mu.Unlock()

	if err := s.api.ReorderTopics(ctx, ids); err != nil {
		s.logger.Warn("topic reorder not accepted, keeping local order", "error", err)
	}
	return nil
}

// MoveSubTopic moves a sub-topic within its topic.
func (s *Store) MoveSubTopic(ctx context.Context, topicID string, from, to int) error {
	var ids []string

	s.mu.Lock()
	next, found := mapTopic(s.topics, topicID, func(t models.TreeTopic) models.TreeTopic {
		moved, ok := spliceSubTopics(t.SubTopics, from, to)
		if !ok {
			return t
		}
		t.SubTopics = moved
		ids = make([]string, len(moved))
		for i, st := range moved {
			ids[i] = st.ID
		}
		return t
	})
	if !found {
		s.mu.Unlock()
		return fmt.Errorf("move sub-topic: topic %s not in tree", topicID)
	}
	if ids == nil {
		s.mu.Unlock()
		return fmt.Errorf("move sub-topic: index out of range (%d -> %d)", from, to)
	}
	s.topics = next
	s.saveLocked()
	s.mu.Unlock()

	if err := s.api.ReorderSubTopics(ctx, topicID, ids); err != nil {
		s.logger.Warn("sub-topic reorder not accepted, keeping local order", "topic_id", topicID, "error", err)
	}
	return nil
}

// MoveQuestion moves a question within its owner's list.
func (s *Store) MoveQuestion(ctx context.Context, owner models.Owner, from, to int) error {
	var ids []string

	s.mu.Lock()
	next, found := mapQuestions(s.topics, owner, func(qs []models.TreeQuestion) []models.TreeQuestion {
		moved, ok := spliceQuestions(qs, from, to)
		if !ok {
			return qs
		}
		ids = make([]string, len(moved))
		for i, q := range moved {
			ids[i] = q.ID
		}
		return moved
	})
	if !found {
		s.mu.Unlock()
		return fmt.Errorf("move question: owner not in tree")
	}
	if ids == nil {
		s.mu.Unlock()
		return fmt.Errorf("move question: index out of range (%d -> %d)", from, to)
	}
	s.topics = next
	s.saveLocked()
	s.mu.Unlock()

	if err := s.api.ReorderQuestions(ctx, owner, ids); err != nil {
		s.logger.Warn("question reorder not accepted, keeping local order", "error", err)
	}
	return nil
}

// ResetProgress clears every solved flag and resyncs.
func (s *Store) ResetProgress(ctx context.Context) error {
	if err := s.api.ResetProgress(ctx); err != nil {
		s.logger.Error("reset progress failed", "error", err)
		return err
	}
	return s.Sync(ctx)
}

// FullReset reseeds the server store and resyncs.
func (s *Store) FullReset(ctx context.Context) error {
	if err := s.api.FullReset(ctx); err != nil {
		s.logger.Error("full reset failed", "error", err)
		return err
	}
	return s.Sync(ctx)
}

// FullWipe deletes everything server-side and empties the local tree.
func (s *Store) FullWipe(ctx context.Context) error {
	if err := s.api.Wipe(ctx); err != nil {
		s.logger.Error("wipe failed", "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = []models.TreeTopic{}
	s.saveLocked()
	return nil
}

// Close persists the final snapshot and releases the store.
func (s *Store) Close() error {
	s.mu.Lock()
	s.saveLocked()
	s.mu.Unlock()
	return s.persist.Close()
}
