package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codolio/internal/domain/models"
)

func TestSplice(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		from int
		to   int
		want []string
		ok   bool
	}{
		{"forward", []string{"a", "b", "c", "d"}, 0, 2, []string{"b", "c", "a", "d"}, true},
		{"backward", []string{"a", "b", "c", "d"}, 3, 1, []string{"a", "d", "b", "c"}, true},
		{"same index", []string{"a", "b"}, 1, 1, []string{"a", "b"}, true},
		{"single element", []string{"a"}, 0, 0, []string{"a"}, true},
		{"from out of range", []string{"a", "b"}, 2, 0, nil, false},
		{"to out of range", []string{"a", "b"}, 0, 2, nil, false},
		{"negative", []string{"a", "b"}, -1, 0, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := splice(tt.in, tt.from, tt.to)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSpliceDoesNotMutateInput(t *testing.T) {
	in := []string{"a", "b", "c"}
	_, ok := splice(in, 0, 2)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, in)
}

func TestMapQuestionCopyOnWrite(t *testing.T) {
	tree := sampleTree()
	owner := models.SubTopicOwner("t1", "s1")

	next, found := mapQuestion(tree, owner, "q2", func(q models.TreeQuestion) models.TreeQuestion {
		q.IsStarred = true
		return q
	})
	require.True(t, found)
	assert.True(t, next[0].SubTopics[0].Questions[1].IsStarred)

	// The input tree is untouched.
	assert.False(t, tree[0].SubTopics[0].Questions[1].IsStarred)
}

func TestMapQuestionMissingTargets(t *testing.T) {
	tree := sampleTree()

	_, found := mapQuestion(tree, models.SubTopicOwner("t1", "s1"), "q9", func(q models.TreeQuestion) models.TreeQuestion {
		return q
	})
	assert.False(t, found)

	_, found = mapQuestion(tree, models.SubTopicOwner("t1", "s9"), "q1", func(q models.TreeQuestion) models.TreeQuestion {
		return q
	})
	assert.False(t, found)

	_, found = mapQuestion(tree, models.TopicOwner("t9"), "q1", func(q models.TreeQuestion) models.TreeQuestion {
		return q
	})
	assert.False(t, found)
}

func TestMapQuestionsTopicDirect(t *testing.T) {
	tree := sampleTree()
	owner := models.TopicOwner("t1")

	next, found := mapQuestions(tree, owner, func(qs []models.TreeQuestion) []models.TreeQuestion {
		return append(qs, models.TreeQuestion{ID: "q4", Title: "Merge Intervals"})
	})
	require.True(t, found)
	assert.Len(t, next[0].Questions, 1)
	assert.Empty(t, tree[0].Questions)
}

func TestMapSubTopicRename(t *testing.T) {
	tree := sampleTree()

	next, found := mapSubTopic(tree, "t1", "s1", func(st models.TreeSubTopic) models.TreeSubTopic {
		st.Title = "Fundamentals"
		return st
	})
	require.True(t, found)
	assert.Equal(t, "Fundamentals", next[0].SubTopics[0].Title)
	assert.Equal(t, "Basics", tree[0].SubTopics[0].Title)
}
