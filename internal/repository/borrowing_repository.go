package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/arts-admin-api/internal/models"
	"github.com/noah-isme/arts-admin-api/pkg/querybuilder"
)

// BorrowingRepository reads borrowing requests.
type BorrowingRepository struct {
	db *sqlx.DB
}

// NewBorrowingRepository constructs a BorrowingRepository.
func NewBorrowingRepository(db *sqlx.DB) *BorrowingRepository {
	return &BorrowingRepository{db: db}
}

func borrowingPredicates(filter models.BorrowingFilter) *querybuilder.Builder {
	return querybuilder.New().
		Equals("status", filter.Status).
		Search(filter.Search, "student_name", "student_email", "item_name")
}

// List returns a page of requests, newest first, and the total matching count.
func (r *BorrowingRepository) List(ctx context.Context, filter models.BorrowingFilter) ([]models.BorrowingRequest, int, error) {
	b := borrowingPredicates(filter)
	limit, limitArgs := filter.Page.SQL()
	query := `SELECT id, student_name, student_email, item_name, start_date, end_date, status, created_at
        FROM borrowing_requests` + b.Clause() + ` ORDER BY created_at DESC, id DESC` + limit

	requests := []models.BorrowingRequest{}
	if err := r.db.SelectContext(ctx, &requests, r.db.Rebind(query), append(b.Args(), limitArgs...)...); err != nil {
		return nil, 0, fmt.Errorf("list borrowing requests: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind("SELECT COUNT(*) FROM borrowing_requests"+b.Clause()), b.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count borrowing requests: %w", err)
	}
	return requests, total, nil
}

// All returns every matching request for export, ignoring pagination.
func (r *BorrowingRepository) All(ctx context.Context, filter models.BorrowingFilter) ([]models.BorrowingRequest, error) {
	b := borrowingPredicates(filter)
	query := `SELECT id, student_name, student_email, item_name, start_date, end_date, status, created_at
        FROM borrowing_requests` + b.Clause() + ` ORDER BY created_at DESC, id DESC`

	requests := []models.BorrowingRequest{}
	if err := r.db.SelectContext(ctx, &requests, r.db.Rebind(query), b.Args()...); err != nil {
		return nil, fmt.Errorf("export borrowing requests: %w", err)
	}
	return requests, nil
}
