package client

import "codolio/internal/domain/models"

// Copy-on-write helpers for the cached tree. Each returns a new slice with
// the targeted branch replaced and reports whether the target was found;
// untouched branches are shared with the input.

func mapTopic(topics []models.TreeTopic, topicID string, fn func(models.TreeTopic) models.TreeTopic) ([]models.TreeTopic, bool) {
	found := false
	next := make([]models.TreeTopic, len(topics))
	for i, t := range topics {
		if t.ID == topicID {
			found = true
			next[i] = fn(t)
		} else {
			next[i] = t
		}
	}
	return next, found
}

func mapSubTopic(topics []models.TreeTopic, topicID, subTopicID string, fn func(models.TreeSubTopic) models.TreeSubTopic) ([]models.TreeTopic, bool) {
	found := false
	next, ok := mapTopic(topics, topicID, func(t models.TreeTopic) models.TreeTopic {
		subs := make([]models.TreeSubTopic, len(t.SubTopics))
		for i, st := range t.SubTopics {
			if st.ID == subTopicID {
				found = true
				subs[i] = fn(st)
			} else {
				subs[i] = st
			}
		}
		t.SubTopics = subs
		return t
	})
	return next, ok && found
}

// mapQuestions rewrites the owner's question list.
func mapQuestions(topics []models.TreeTopic, owner models.Owner, fn func([]models.TreeQuestion) []models.TreeQuestion) ([]models.TreeTopic, bool) {
	if owner.Kind == models.OwnerSubTopic {
		found := false
		next, ok := mapTopic(topics, owner.TopicID, func(t models.TreeTopic) models.TreeTopic {
			subs := make([]models.TreeSubTopic, len(t.SubTopics))
			for i, st := range t.SubTopics {
				if st.ID == owner.SubTopicID {
					found = true
					st.Questions = fn(st.Questions)
				}
				subs[i] = st
			}
			t.SubTopics = subs
			return t
		})
		return next, ok && found
	}

	return mapTopic(topics, owner.TopicID, func(t models.TreeTopic) models.TreeTopic {
		t.Questions = fn(t.Questions)
		return t
	})
}

// mapQuestion rewrites a single question in the owner's list.
func mapQuestion(topics []models.TreeTopic, owner models.Owner, questionID string, fn func(models.TreeQuestion) models.TreeQuestion) ([]models.TreeTopic, bool) {
	found := false
	next, ok := mapQuestions(topics, owner, func(qs []models.TreeQuestion) []models.TreeQuestion {
		out := make([]models.TreeQuestion, len(qs))
		for i, q := range qs {
			if q.ID == questionID {
				found = true
				out[i] = fn(q)
			} else {
				out[i] = q
			}
		}
		return out
	})
	return next, ok && found
}

// splice removes the element at from and reinserts it at to, returning a
// fresh slice. Reports false when either index is out of range.
func splice[T any](items []T, from, to int) ([]T, bool) {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return nil, false
	}

	next := make([]T, 0, len(items))
	next = append(next, items[:from]...)
	next = append(next, items[from+1:]...)

	moved := items[from]
	next = append(next[:to], append([]T{moved}, next[to:]...)...)
	return next, true
}

func spliceTopics(topics []models.TreeTopic, from, to int) ([]models.TreeTopic, bool) {
	return splice(topics, from, to)
}

func spliceSubTopics(subs []models.TreeSubTopic, from, to int) ([]models.TreeSubTopic, bool) {
	return splice(subs, from, to)
}

func spliceQuestions(qs []models.TreeQuestion, from, to int) ([]models.TreeQuestion, bool) {
	return splice(qs, from, to)
}
