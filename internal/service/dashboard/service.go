package dashboard

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Paudel3101/meditrack/internal/model"
	"github.com/Paudel3101/meditrack/internal/repository"
	apperrors "github.com/Paudel3101/meditrack/pkg/errors"
	"github.com/Paudel3101/meditrack/pkg/logger"
	"github.com/Paudel3101/meditrack/pkg/metrics"
)

const (
	statsCacheKey = "dashboard_stats"
	statsCacheTTL = 30 * time.Second
)

// Service serves the dashboard aggregates. Stats are cached briefly;
// the dashboard tolerates data a few seconds old and the underlying
// query touches three tables.
type Service interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
	RecentAppointments(ctx context.Context) ([]*model.AppointmentDetail, error)
}

type service struct {
	repo   repository.DashboardRepository
	cache  *gocache.Cache
	logger *logger.Logger
}

func NewService(repo repository.DashboardRepository, log *logger.Logger) Service {
	return &service{
		repo:   repo,
		cache:  gocache.New(statsCacheTTL, time.Minute),
		logger: log,
	}
}

func (s *service) Stats(ctx context.Context) (*model.DashboardStats, error) {
	if cached, found := s.cache.Get(statsCacheKey); found {
		metrics.DashboardCacheHits.WithLabelValues("hit").Inc()
		return cached.(*model.DashboardStats), nil
	}
	metrics.DashboardCacheHits.WithLabelValues("miss").Inc()

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.cache.Set(statsCacheKey, stats, statsCacheTTL)
	return stats, nil
}

func (s *service) RecentAppointments(ctx context.Context) ([]*model.AppointmentDetail, error) {
	appts, err := s.repo.RecentAppointments(ctx, 10)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return appts, nil
}
