package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/arts-admin-api/internal/dto"
	"github.com/noah-isme/arts-admin-api/internal/formatter"
	"github.com/noah-isme/arts-admin-api/internal/models"
	appErrors "github.com/noah-isme/arts-admin-api/pkg/errors"
	"github.com/noah-isme/arts-admin-api/pkg/export"
)

type borrowingRepository interface {
	List(ctx context.Context, filter models.BorrowingFilter) ([]models.BorrowingRequest, int, error)
	All(ctx context.Context, filter models.BorrowingFilter) ([]models.BorrowingRequest, error)
}

// Renderer turns a dataset into a downloadable document.
type Renderer interface {
	ContentType() string
	Extension() string
	Render(data export.Dataset) ([]byte, error)
}

// ExportFile is a rendered report ready to stream.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

var borrowingColumns = []export.Column{
	{Key: "id", Title: "ID", Weight: 0.6},
	{Key: "student_name", Title: "Student", Weight: 2},
	{Key: "student_email", Title: "Email", Weight: 2.4},
	{Key: "item_name", Title: "Item", Weight: 2},
	{Key: "start_date", Title: "Start", Weight: 1.4},
	{Key: "end_date", Title: "End", Weight: 1.4},
	{Key: "status", Title: "Status"},
	{Key: "created_at", Title: "Requested", Weight: 1.8},
}

// BorrowingService lists and exports costume and equipment borrowing requests.
type BorrowingService struct {
	repo      borrowingRepository
	renderers map[string]Renderer
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewBorrowingService constructs a BorrowingService with CSV and PDF exporters.
func NewBorrowingService(repo borrowingRepository, metrics *MetricsService, logger *zap.Logger) *BorrowingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BorrowingService{
		repo: repo,
		renderers: map[string]Renderer{
			"csv": export.NewCSVExporter(),
			"pdf": export.NewPDFExporter(),
		},
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// List returns one page of borrowing requests.
func (s *BorrowingService) List(ctx context.Context, filter models.BorrowingFilter) (*dto.BorrowingListResponse, error) {
	start := time.Now()
	rows, total, err := s.repo.List(ctx, filter)
	s.metrics.ObserveDBQuery("borrowing_list", time.Since(start))
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to load borrowing requests")
	}

	resp := &dto.BorrowingListResponse{
		Success: true,
		Data:    make([]dto.BorrowingRequestView, 0, len(rows)),
		Pagination: dto.BorrowingPagination{
			CurrentPage:   filter.Page.Page,
			TotalPages:    filter.Page.TotalPages(total),
			TotalRequests: total,
			Limit:         filter.Page.Limit,
		},
	}
	for _, row := range rows {
		resp.Data = append(resp.Data, borrowingView(row))
	}
	return resp, nil
}

// Export renders every matching request in the requested format ("csv" or "pdf").
func (s *BorrowingService) Export(ctx context.Context, filter models.BorrowingFilter, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Unsupported export format")
	}

	rows, err := s.repo.All(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to export borrowing requests")
	}

	data := export.Dataset{Title: "Borrowing Requests", Columns: borrowingColumns, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		view := borrowingView(row)
		data.Rows = append(data.Rows, map[string]string{
			"id":            fmt.Sprint(view.ID),
			"student_name":  view.StudentName,
			"student_email": view.StudentEmail,
			"item_name":     view.ItemName,
			"start_date":    view.StartDate,
			"end_date":      view.EndDate,
			"status":        view.Status,
			"created_at":    view.CreatedAt,
		})
	}

	body, err := renderer.Render(data)
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to export borrowing requests")
	}
	s.logger.Info("borrowing export rendered", zap.String("format", format), zap.Int("rows", len(rows)))

	return &ExportFile{
		Filename:    fmt.Sprintf("borrowing-requests-%s.%s", s.now().Format("20060102-150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Data:        body,
	}, nil
}

func borrowingView(row models.BorrowingRequest) dto.BorrowingRequestView {
	return dto.BorrowingRequestView{
		ID:           row.ID,
		StudentName:  formatter.OrDefault(row.StudentName, formatter.UnknownStudent),
		StudentEmail: formatter.OrDefault(row.StudentEmail, ""),
		ItemName:     formatter.OrDefault(row.ItemName, formatter.UnspecifiedItem),
		StartDate:    formatter.Date(row.StartDate),
		EndDate:      formatter.Date(row.EndDate),
		Status:       row.Status,
		CreatedAt:    formatter.DateTime(&row.CreatedAt),
	}
}
