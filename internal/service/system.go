package service

import (
	"context"
	"log/slog"
	"math"

	"codolio/internal/domain/models"
	"codolio/internal/domain/repositories"
	"codolio/internal/seed"
)

// SystemService owns the whole-store operations: progress reset, wipe,
// destructive rebuild from the seed sheet, and aggregate stats.
type SystemService interface {
	// ResetProgress clears every solved flag and nothing else.
	ResetProgress(ctx context.Context) error

	// FullReset wipes all records and rebuilds them from the sheet at
	// sheetPath. The wipe and the rebuild run in one transaction.
	FullReset(ctx context.Context, sheetPath string) (*seed.Summary, error)

	// Wipe deletes every record without reseeding.
	Wipe(ctx context.Context) error

	// Stats aggregates solved counts over the whole tree.
	Stats(ctx context.Context) (*models.Stats, error)
}

type systemService struct {
	topicRepo    repositories.TopicRepository
	subTopicRepo repositories.SubTopicRepository
	questionRepo repositories.QuestionRepository
	txManager    repositories.TransactionManager
	treeService  TreeService
	pipeline     *seed.Pipeline
	logger       *slog.Logger
}

// NewSystemService creates a new system service
func NewSystemService(
	topicRepo repositories.TopicRepository,
	subTopicRepo repositories.SubTopicRepository,
	questionRepo repositories.QuestionRepository,
	txManager repositories.TransactionManager,
	treeService TreeService,
	pipeline *seed.Pipeline,
	logger *slog.Logger,
) SystemService {
	return &systemService{
		topicRepo:    topicRepo,
		subTopicRepo: subTopicRepo,
		questionRepo: questionRepo,
		txManager:    txManager,
		treeService:  treeService,
		pipeline:     pipeline,
		logger:       logger,
	}
}

func (s *systemService) ResetProgress(ctx context.Context) error {
	if err := s.questionRepo.ClearAllSolved(ctx); err != nil {
		return err
	}
	s.logger.Info("progress reset")
	return nil
}

func (s *systemService) FullReset(ctx context.Context, sheetPath string) (*seed.Summary, error) {
	sheet, err := seed.LoadSheet(sheetPath)
	if err != nil {
		return nil, err
	}

	var summary *seed.Summary
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.wipe(txCtx); err != nil {
			return err
		}
		summary, err = s.pipeline.Run(txCtx, sheet)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("full reset complete",
		"topics", summary.Topics,
		"sub_topics", summary.SubTopics,
		"questions", summary.Questions,
	)
	return summary, nil
}

func (s *systemService) Wipe(ctx context.Context) error {
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.wipe(txCtx)
	})
	if err != nil {
		return err
	}
	s.logger.Info("store wiped")
	return nil
}

// wipe deletes children before parents so an interrupted run never leaves a
// question whose owner is already gone.
func (s *systemService) wipe(ctx context.Context) error {
	if err := s.questionRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.subTopicRepo.DeleteAll(ctx); err != nil {
		return err
	}
	return s.topicRepo.DeleteAll(ctx)
}

func (s *systemService) Stats(ctx context.Context) (*models.Stats, error) {
	tree, err := s.treeService.GetTree(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.Stats{Topics: len(tree)}
	tally := func(questions []models.TreeQuestion) {
		for _, q := range questions {
			stats.Questions++
			if q.IsSolved {
				stats.Solved++
			}
		}
	}
	for _, topic := range tree {
		tally(topic.Questions)
		for _, st := range topic.SubTopics {
			tally(st.Questions)
		}
	}

	if stats.Questions > 0 {
		stats.Progress = int(math.Round(float64(stats.Solved) / float64(stats.Questions) * 100))
	}
	return stats, nil
}
