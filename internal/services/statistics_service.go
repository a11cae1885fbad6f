package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Iwakk225/SIP-FAS-sub000/internal/logger"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/models"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/region"
)

const (
	statsCacheKey = "sipfas:stats:summary"
	statsCacheTTL = time.Minute
)

// StatisticsService is a read-only consumer of report rows for dashboards.
type StatisticsService interface {
	// Summarize counts reports per status and per region and computes
	// week/month/year deltas against the preceding window.
	Summarize(ctx context.Context) (*models.StatisticsSummary, error)
}

// statisticsService is the concrete implementation of StatisticsService.
// The redis client is optional; nil disables summary caching.
type statisticsService struct {
	db    *gorm.DB
	cache *redis.Client
	log   logger.Logger
	now   func() time.Time
}

// NewStatisticsService injects the *gorm.DB dependency and an optional
// redis cache and returns a StatisticsService instance ready for use.
func NewStatisticsService(db *gorm.DB, cache *redis.Client, log logger.Logger) StatisticsService {
	return &statisticsService{db: db, cache: cache, log: log, now: time.Now}
}

func (s *statisticsService) Summarize(ctx context.Context) (*models.StatisticsSummary, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	var reports []models.Report
	if err := s.db.WithContext(ctx).Find(&reports).Error; err != nil {
		return nil, err
	}

	summary := &models.StatisticsSummary{
		Total:    int64(len(reports)),
		ByStatus: map[string]int64{},
		ByRegion: map[string]int64{},
	}
	for _, st := range []models.ReportStatus{
		models.StatusPending, models.StatusValidated, models.StatusInProgress,
		models.StatusCompleted, models.StatusRejected,
	} {
		summary.ByStatus[string(st)] = 0
	}
	for _, l := range region.Labels() {
		summary.ByRegion[string(l)] = 0
	}

	for i := range reports {
		summary.ByStatus[string(reports[i].Status)]++
		summary.ByRegion[string(region.Classify(reports[i].Location))]++
	}

	now := s.now()
	summary.WeekDeltaPct = deltaPct(reports, now, 7*24*time.Hour)
	summary.MonthDeltaPct = deltaPct(reports, now, 30*24*time.Hour)
	summary.YearDeltaPct = deltaPct(reports, now, 365*24*time.Hour)

	s.toCache(ctx, summary)
	return summary, nil
}

// deltaPct compares the report count in [now-window, now) against the
// preceding window of the same length: (current - previous) / previous * 100,
// 0 when the previous window is empty.
func deltaPct(reports []models.Report, now time.Time, window time.Duration) float64 {
	currentStart := now.Add(-window)
	previousStart := now.Add(-2 * window)

	var current, previous int64
	for i := range reports {
		created := reports[i].CreatedAt
		switch {
		case !created.Before(currentStart) && created.Before(now):
			current++
		case !created.Before(previousStart) && created.Before(currentStart):
			previous++
		}
	}

	if previous == 0 {
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

func (s *statisticsService) fromCache(ctx context.Context) *models.StatisticsSummary {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("stats cache read failed", zap.Error(err))
		}
		return nil
	}
	var summary models.StatisticsSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil
	}
	return &summary
}

func (s *statisticsService) toCache(ctx context.Context, summary *models.StatisticsSummary) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
		s.log.Warn("stats cache write failed", zap.Error(err))
	}
}
