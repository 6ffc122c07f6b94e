package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/arts-admin-api/internal/models"
	"github.com/noah-isme/arts-admin-api/pkg/querybuilder"
)

// RepairRepository reads items flagged for repair.
type RepairRepository struct {
	db *sqlx.DB
}

// NewRepairRepository constructs a RepairRepository.
func NewRepairRepository(db *sqlx.DB) *RepairRepository {
	return &RepairRepository{db: db}
}

// List returns a page of repair items with the reporting student's name, most recently reported first.
func (r *RepairRepository) List(ctx context.Context, filter models.RepairFilter) ([]models.RepairItem, int, error) {
	b := querybuilder.New().
		Equals("i.repair_status", filter.RepairStatus).
		Search(filter.Search, "i.item_name", "i.category", "i.notes")

	limit, limitArgs := filter.Page.SQL()
	query := `SELECT i.item_id, i.item_name, i.category, i.quantity, i.repair_status, i.date_reported, i.notes,
        NULLIF(TRIM(CONCAT(COALESCE(s.first_name, ''), ' ', COALESCE(s.last_name, ''))), '') AS reporter_name
        FROM repair_items i
        LEFT JOIN student_artists s ON s.id = i.reported_by` + b.Clause() + `
        ORDER BY i.date_reported DESC, i.item_id DESC` + limit

	items := []models.RepairItem{}
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), append(b.Args(), limitArgs...)...); err != nil {
		return nil, 0, fmt.Errorf("list repair items: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind("SELECT COUNT(*) FROM repair_items i"+b.Clause()), b.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count repair items: %w", err)
	}
	return items, total, nil
}
