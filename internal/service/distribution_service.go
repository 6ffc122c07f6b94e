package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/arts-admin-api/internal/dto"
	"github.com/noah-isme/arts-admin-api/internal/formatter"
	"github.com/noah-isme/arts-admin-api/internal/models"
	appErrors "github.com/noah-isme/arts-admin-api/pkg/errors"
)

const distributionCachePattern = "dashboard:*"

type distributionRepository interface {
	ByCampus(ctx context.Context, filter models.DistributionFilter) ([]models.DistributionRow, error)
	ByCollege(ctx context.Context, filter models.DistributionFilter) ([]models.DistributionRow, error)
	ByCulturalGroup(ctx context.Context) ([]models.DistributionRow, error)
}

// DistributionService aggregates active student artists for the dashboard charts.
type DistributionService struct {
	repo     distributionRepository
	cache    *CacheService
	metrics  *MetricsService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewDistributionService constructs a DistributionService. cache and metrics may be nil.
func NewDistributionService(repo distributionRepository, cache *CacheService, metrics *MetricsService, cacheTTL time.Duration, logger *zap.Logger) *DistributionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DistributionService{repo: repo, cache: cache, metrics: metrics, cacheTTL: cacheTTL, logger: logger}
}

// Campus returns the per-campus share of active students, reporting whether it came from cache.
func (s *DistributionService) Campus(ctx context.Context, search string) (*dto.CampusDistributionResponse, bool, error) {
	search = strings.TrimSpace(search)
	key := cacheKey("campus", search, "")

	var cached dto.CampusDistributionResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	start := time.Now()
	rows, err := s.repo.ByCampus(ctx, models.DistributionFilter{Search: search})
	s.metrics.ObserveDBQuery("campus_distribution", time.Since(start))
	if err != nil {
		return nil, false, appErrors.Internal(err, "Failed to load campus distribution")
	}

	resp := &dto.CampusDistributionResponse{
		Success:            true,
		CampusDistribution: make([]dto.CampusShare, 0, len(rows)),
		SearchApplied:      search != "",
	}
	for _, row := range rows {
		resp.TotalStudents += row.Count
		resp.CampusDistribution = append(resp.CampusDistribution, dto.CampusShare{
			Campus:     row.Label,
			Count:      row.Count,
			Percentage: formatter.Round2(row.Percentage),
		})
	}

	s.cache.Set(ctx, key, resp, s.cacheTTL)
	return resp, false, nil
}

// College returns the per-college share of active students, optionally within one campus.
func (s *DistributionService) College(ctx context.Context, search, campus string) (*dto.CollegeDistributionResponse, bool, error) {
	search = strings.TrimSpace(search)
	campus = strings.TrimSpace(campus)
	key := cacheKey("college", search, campus)

	var cached dto.CollegeDistributionResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	start := time.Now()
	rows, err := s.repo.ByCollege(ctx, models.DistributionFilter{Search: search, Campus: campus})
	s.metrics.ObserveDBQuery("college_distribution", time.Since(start))
	if err != nil {
		return nil, false, appErrors.Internal(err, "Failed to load college distribution")
	}

	resp := &dto.CollegeDistributionResponse{
		Success:             true,
		CollegeDistribution: make([]dto.CollegeShare, 0, len(rows)),
		SearchApplied:       search != "",
		Campus:              campus,
	}
	if resp.Campus == "" {
		resp.Campus = "all"
	}
	for _, row := range rows {
		resp.TotalStudents += row.Count
		resp.CollegeDistribution = append(resp.CollegeDistribution, dto.CollegeShare{
			College:    row.Label,
			Count:      row.Count,
			Percentage: formatter.Round2(row.Percentage),
		})
	}

	s.cache.Set(ctx, key, resp, s.cacheTTL)
	return resp, false, nil
}

// CulturalGroups counts active students per cultural group, unassigned students included.
func (s *DistributionService) CulturalGroups(ctx context.Context) (*dto.GroupDistributionResponse, bool, error) {
	key := cacheKey("groups", "", "")

	var cached dto.GroupDistributionResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	start := time.Now()
	rows, err := s.repo.ByCulturalGroup(ctx)
	s.metrics.ObserveDBQuery("group_distribution", time.Since(start))
	if err != nil {
		return nil, false, appErrors.Internal(err, "Failed to load cultural group distribution")
	}

	resp := &dto.GroupDistributionResponse{Success: true, GroupDistribution: make([]dto.GroupShare, 0, len(rows))}
	for _, row := range rows {
		resp.TotalStudents += row.Count
		resp.GroupDistribution = append(resp.GroupDistribution, dto.GroupShare{GroupName: row.Label, Count: row.Count})
	}

	s.cache.Set(ctx, key, resp, s.cacheTTL)
	return resp, false, nil
}

// InvalidateDistributions drops every cached distribution.
func (s *DistributionService) InvalidateDistributions(ctx context.Context) {
	s.cache.Invalidate(ctx, distributionCachePattern)
}

func cacheKey(kind, search, campus string) string {
	return fmt.Sprintf("dashboard:%s:%s:%s", kind, url.QueryEscape(strings.ToLower(search)), url.QueryEscape(strings.ToLower(campus)))
}
