package service

import (
	"context"
	"errors"
	"testing"

	"codolio/internal/domain"
	"codolio/internal/domain/models"
)

func TestCreateSubTopicDefaultsTitle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	topic, _ := f.topics.CreateTopic(ctx, &CreateTopicRequest{Title: "Trees"})

	sub, err := f.subTopics.CreateSubTopic(ctx, topic.ID, &CreateSubTopicRequest{})
	if err != nil {
		t.Fatalf("CreateSubTopic: %v", err)
	}
	if sub.Title != "New Sub-Topic" {
		t.Errorf("title = %q, want %q", sub.Title, "New Sub-Topic")
	}
	if sub.Questions == nil {
		t.Error("questions must be empty, not nil")
	}

	stored, _ := f.topicRepo.GetByID(ctx, topic.ID)
	if len(stored.SubTopicRefs) != 1 || stored.SubTopicRefs[0] != sub.ID {
		t.Errorf("parent refs = %v, want [%s]", stored.SubTopicRefs, sub.ID)
	}
}

func TestCreateSubTopicMissingParent(t *testing.T) {
	f := newFixture(t)
	_, err := f.subTopics.CreateSubTopic(context.Background(), "missing", &CreateSubTopicRequest{Title: "BST"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteSubTopicCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	topic, _ := f.topics.CreateTopic(ctx, &CreateTopicRequest{Title: "Trees"})
	sub, _ := f.subTopics.CreateSubTopic(ctx, topic.ID, &CreateSubTopicRequest{Title: "BST"})
	q, _ := f.questions.CreateQuestion(ctx, models.SubTopicOwner(topic.ID, sub.ID), &CreateQuestionRequest{Title: "Validate BST"})

	if err := f.subTopics.DeleteSubTopic(ctx, topic.ID, sub.ID); err != nil {
		t.Fatalf("DeleteSubTopic: %v", err)
	}

	if _, err := f.subTopicRepo.GetByID(ctx, sub.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("sub-topic still readable: %v", err)
	}
	if _, err := f.questionRepo.GetByID(ctx, q.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("owned question still readable: %v", err)
	}
	stored, _ := f.topicRepo.GetByID(ctx, topic.ID)
	if len(stored.SubTopicRefs) != 0 {
		t.Errorf("parent refs = %v, want empty", stored.SubTopicRefs)
	}
}

func TestDeleteSubTopicMissingRecordStillCleansRef(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	topic, _ := f.topics.CreateTopic(ctx, &CreateTopicRequest{Title: "Trees"})
	sub, _ := f.subTopics.CreateSubTopic(ctx, topic.ID, &CreateSubTopicRequest{Title: "BST"})

	// record vanished but the parent still points at it
	if err := f.subTopicRepo.Delete(ctx, sub.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if err := f.subTopics.DeleteSubTopic(ctx, topic.ID, sub.ID); err != nil {
		t.Fatalf("DeleteSubTopic: %v", err)
	}
	stored, _ := f.topicRepo.GetByID(ctx, topic.ID)
	if len(stored.SubTopicRefs) != 0 {
		t.Errorf("parent refs = %v, want empty", stored.SubTopicRefs)
	}
}

func TestUpdateSubTopicRequiresTitle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	topic, _ := f.topics.CreateTopic(ctx, &CreateTopicRequest{Title: "Trees"})
	sub, _ := f.subTopics.CreateSubTopic(ctx, topic.ID, &CreateSubTopicRequest{Title: "BST"})

	_, err := f.subTopics.UpdateSubTopic(ctx, sub.ID, &UpdateSubTopicRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}

	renamed, err := f.subTopics.UpdateSubTopic(ctx, sub.ID, &UpdateSubTopicRequest{Title: "Balanced Trees"})
	if err != nil {
		t.Fatalf("UpdateSubTopic: %v", err)
	}
	if renamed.Title != "Balanced Trees" {
		t.Errorf("title = %q", renamed.Title)
	}
}

func TestReorderSubTopics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	topic, _ := f.topics.CreateTopic(ctx, &CreateTopicRequest{Title: "Trees"})
	a, _ := f.subTopics.CreateSubTopic(ctx, topic.ID, &CreateSubTopicRequest{Title: "A"})
	b, _ := f.subTopics.CreateSubTopic(ctx, topic.ID, &CreateSubTopicRequest{Title: "B"})

	if err := f.subTopics.ReorderSubTopics(ctx, topic.ID, []string{b.ID, a.ID}); err != nil {
		t.Fatalf("ReorderSubTopics: %v", err)
	}
	stored, _ := f.topicRepo.GetByID(ctx, topic.ID)
	if stored.SubTopicRefs[0] != b.ID || stored.SubTopicRefs[1] != a.ID {
		t.Errorf("refs = %v", stored.SubTopicRefs)
	}

	err := f.subTopics.ReorderSubTopics(ctx, topic.ID, []string{a.ID})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}
