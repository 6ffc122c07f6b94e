package models

import (
	"time"

	"github.com/noah-isme/arts-admin-api/pkg/querybuilder"
)

// RepairItem is an inventory item flagged for repair.
type RepairItem struct {
	ItemID       int64      `db:"item_id"`
	ItemName     string     `db:"item_name"`
	Category     *string    `db:"category"`
	Quantity     int        `db:"quantity"`
	RepairStatus string     `db:"repair_status"`
	DateReported *time.Time `db:"date_reported"`
	ReporterName *string    `db:"reporter_name"`
	Notes        *string    `db:"notes"`
}

// RepairFilter narrows the repair listing.
type RepairFilter struct {
	RepairStatus string
	Search       string
	Page         querybuilder.Page
}
