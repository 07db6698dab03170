package seed

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"codolio/internal/domain/models"
	"codolio/internal/domain/repositories"
	"codolio/internal/platforms"
)

// Default labels for entries whose sheet row omits a grouping field.
const (
	DefaultTopicLabel    = "General"
	DefaultSubTopicLabel = "Miscellaneous"
	DefaultTitle         = "Untitled Question"
)

// TopicGroup is one topic's worth of regrouped sheet entries, sub-topics in
// first-seen order.
type TopicGroup struct {
	Title     string
	SubGroups []SubGroup
}

// SubGroup is one sub-topic's question list in sheet order.
type SubGroup struct {
	Title     string
	Questions []SheetQuestion
}

// Group regroups a flat question list by topic label then sub-topic label,
// preserving first-seen order at both levels.
func Group(questions []SheetQuestion) []TopicGroup {
	groups := []TopicGroup{}
	topicIndex := map[string]int{}

	for _, q := range questions {
		topicTitle := q.Topic
		if topicTitle == "" {
			topicTitle = DefaultTopicLabel
		}
		subTopicTitle := q.SubTopic
		if subTopicTitle == "" {
			subTopicTitle = DefaultSubTopicLabel
		}

		ti, ok := topicIndex[topicTitle]
		if !ok {
			ti = len(groups)
			topicIndex[topicTitle] = ti
			groups = append(groups, TopicGroup{Title: topicTitle})
		}

		group := &groups[ti]
		si := -1
		for i := range group.SubGroups {
			if group.SubGroups[i].Title == subTopicTitle {
				si = i
				break
			}
		}
		if si < 0 {
			si = len(group.SubGroups)
			group.SubGroups = append(group.SubGroups, SubGroup{Title: subTopicTitle})
		}

		group.SubGroups[si].Questions = append(group.SubGroups[si].Questions, q)
	}

	return groups
}

// Summary counts the records a pipeline run created.
type Summary struct {
	Topics    int
	SubTopics int
	Questions int
}

// Pipeline creates records from a sheet in dependency order: each topic,
// then its sub-topics, then their questions. It does not clear the store
// first; running it twice without a clear duplicates everything, so both
// callers (cmd/seed and the full-reset operation) wipe before running.
type Pipeline struct {
	topicRepo    repositories.TopicRepository
	subTopicRepo repositories.SubTopicRepository
	questionRepo repositories.QuestionRepository
	registry     *platforms.Registry
	logger       *slog.Logger
}

// NewPipeline creates a seed pipeline
func NewPipeline(
	topicRepo repositories.TopicRepository,
	subTopicRepo repositories.SubTopicRepository,
	questionRepo repositories.QuestionRepository,
	registry *platforms.Registry,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		topicRepo:    topicRepo,
		subTopicRepo: subTopicRepo,
		questionRepo: questionRepo,
		registry:     registry,
		logger:       logger,
	}
}

// Run regroups the sheet and creates every record. Ordinals are 1-based in
// first-seen order within each group; platforms outside the registry are
// coerced to "other".
func (p *Pipeline) Run(ctx context.Context, sheet *Sheet) (*Summary, error) {
	runID := uuid.NewString()
	groups := Group(sheet.Data.Questions)
	summary := &Summary{}

	p.logger.Info("seed run started", "run_id", runID, "entries", len(sheet.Data.Questions))

	topicOrd := 1
	for _, group := range groups {
		topic := &models.Topic{
			Title:        group.Title,
			Description:  "Questions for " + group.Title,
			Status:       models.TopicStatusPending,
			Ord:          topicOrd,
			SubTopicRefs: []string{},
			QuestionRefs: []string{},
		}
		topicOrd++
		if err := p.topicRepo.Create(ctx, topic); err != nil {
			return summary, err
		}
		summary.Topics++
		p.logger.Info("seeding topic", "title", topic.Title, "sub_topics", len(group.SubGroups))

		subTopicRefs := []string{}
		subTopicOrd := 1
		for _, sub := range group.SubGroups {
			subTopic := &models.SubTopic{
				Title:        sub.Title,
				Ord:          subTopicOrd,
				QuestionRefs: []string{},
			}
			subTopicOrd++
			if err := p.subTopicRepo.Create(ctx, subTopic); err != nil {
				return summary, err
			}
			summary.SubTopics++

			questionRefs := []string{}
			questionOrd := 1
			for _, entry := range sub.Questions {
				question := p.buildQuestion(entry, questionOrd)
				questionOrd++
				if err := p.questionRepo.Create(ctx, question); err != nil {
					return summary, err
				}
				summary.Questions++
				questionRefs = append(questionRefs, question.ID)
			}

			if err := p.subTopicRepo.ReplaceQuestionRefs(ctx, subTopic.ID, questionRefs); err != nil {
				return summary, err
			}
			subTopicRefs = append(subTopicRefs, subTopic.ID)
		}

		if err := p.topicRepo.ReplaceSubTopicRefs(ctx, topic.ID, subTopicRefs); err != nil {
			return summary, err
		}
	}

	p.logger.Info("seed complete",
		"run_id", runID,
		"topics", summary.Topics,
		"sub_topics", summary.SubTopics,
		"questions", summary.Questions,
	)
	return summary, nil
}

func (p *Pipeline) buildQuestion(entry SheetQuestion, ord int) *models.Question {
	title := entry.Title
	if title == "" {
		title = entry.QuestionID.Name
	}
	if title == "" {
		title = DefaultTitle
	}

	difficulty := models.Difficulty(entry.QuestionID.Difficulty)
	if !models.ValidDifficulty(difficulty) {
		difficulty = models.DefaultDifficulty
	}

	platform := entry.QuestionID.Platform
	if !p.registry.Known(platform) {
		platform = platforms.Other
	}

	tags := entry.QuestionID.CompanyTags
	if tags == nil {
		tags = []string{}
	}

	problemURL := entry.QuestionID.ProblemURL
	if problemURL == "" {
		problemURL = models.PlaceholderURL
	}
	resource := entry.Resource
	if resource == "" {
		resource = models.PlaceholderURL
	}

	return &models.Question{
		Title:       title,
		IsSolved:    false,
		Difficulty:  difficulty,
		Platform:    platform,
		ProblemURL:  problemURL,
		Resource:    resource,
		CompanyTags: tags,
		Ord:         ord,
	}
}
