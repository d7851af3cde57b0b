package service

import (
	"context"
	"time"

	"farewell-wall-be/internal/dto"
	"farewell-wall-be/internal/pkg/apperror"
	"farewell-wall-be/internal/repository/unitofwork"
	"farewell-wall-be/pkg/stats"
)

const recentWindowDays = 7

type IStatsService interface {
	// GetStats computes the aggregate report over every session and message.
	// A read failure fails the whole report; there are no partial zeros.
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
}

type statsService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewStatsService(uowFactory unitofwork.RepositoryFactory) IStatsService {
	return &statsService{uowFactory: uowFactory}
}

func (s *statsService) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.SessionRepository().FindAll(ctx)
	if err != nil {
		return nil, apperror.NewStore(err)
	}
	messages, err := uow.MessageRepository().FindAll(ctx)
	if err != nil {
		return nil, apperror.NewStore(err)
	}

	textStats := stats.TextStats(messages)
	overview := stats.Overview(sessions, messages)
	daily := stats.DailyActivity(messages, recentWindowDays)

	return &dto.StatsResponse{
		Overview:     overview,
		TextAnalysis: textStats,
		SessionsData: stats.SessionBreakdown(sessions, messages),
		RecentActivity: dto.RecentActivity{
			Last7Days:      overview.RecentMessages,
			DailyBreakdown: daily,
		},
		TopAuthors:      stats.TopAuthors(messages, 10),
		TipDistribution: textStats.TipCounts,
		Timeline:        stats.Timeline(messages, daily),
		GeneratedAt:     time.Now(),
	}, nil
}
