package service

import (
	"context"
	"time"

	"github.com/noah-isme/arts-admin-api/internal/dto"
	"github.com/noah-isme/arts-admin-api/internal/formatter"
	"github.com/noah-isme/arts-admin-api/internal/models"
	appErrors "github.com/noah-isme/arts-admin-api/pkg/errors"
)

type repairRepository interface {
	List(ctx context.Context, filter models.RepairFilter) ([]models.RepairItem, int, error)
}

// RepairService lists inventory items flagged for repair.
type RepairService struct {
	repo    repairRepository
	metrics *MetricsService
}

// NewRepairService constructs a RepairService.
func NewRepairService(repo repairRepository, metrics *MetricsService) *RepairService {
	return &RepairService{repo: repo, metrics: metrics}
}

// List returns one page of repair items, newest report first.
func (s *RepairService) List(ctx context.Context, filter models.RepairFilter) (*dto.RepairListResponse, error) {
	start := time.Now()
	rows, total, err := s.repo.List(ctx, filter)
	s.metrics.ObserveDBQuery("repair_list", time.Since(start))
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to load repair items")
	}

	resp := &dto.RepairListResponse{
		Success: true,
		Items:   make([]dto.RepairItemView, 0, len(rows)),
		Pagination: dto.RepairPagination{
			CurrentPage: filter.Page.Page,
			TotalPages:  filter.Page.TotalPages(total),
			TotalItems:  total,
			PerPage:     filter.Page.Limit,
		},
	}
	for _, row := range rows {
		resp.Items = append(resp.Items, dto.RepairItemView{
			ItemID:       row.ItemID,
			ItemName:     row.ItemName,
			Category:     formatter.Capitalize(formatter.OrDefault(row.Category, "")),
			Quantity:     row.Quantity,
			RepairStatus: row.RepairStatus,
			DateReported: formatter.Date(row.DateReported),
			ReportedBy:   formatter.OrDefault(row.ReporterName, formatter.SystemReporter),
			Notes:        formatter.OrDefault(row.Notes, ""),
		})
	}
	return resp, nil
}
