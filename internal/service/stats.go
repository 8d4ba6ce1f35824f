package service

import (
	"context"

	"github.com/Astemirdum/ebook-service/internal/model"
	"github.com/Astemirdum/ebook-service/internal/repository"
	"go.uber.org/zap"
)

type StatsService struct {
	log  *zap.Logger
	repo repository.StatsRepository
}

func NewStatsService(repo repository.StatsRepository, log *zap.Logger) *StatsService {
	return &StatsService{
		log:  log,
		repo: repo,
	}
}

func (s *StatsService) RecordEvent(ctx context.Context, ev model.BorrowEvent) error {
	return s.repo.InsertEvent(ctx, ev)
}

func (s *StatsService) ListEvents(ctx context.Context, bookID string) ([]model.BorrowEventRow, error) {
	return s.repo.ListEvents(ctx, bookID)
}
