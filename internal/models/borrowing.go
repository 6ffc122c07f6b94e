package models

import (
	"time"

	"github.com/noah-isme/arts-admin-api/pkg/querybuilder"
)

// BorrowingRequest is a student's request to borrow costumes or equipment.
type BorrowingRequest struct {
	ID           int64      `db:"id"`
	StudentName  *string    `db:"student_name"`
	StudentEmail *string    `db:"student_email"`
	ItemName     *string    `db:"item_name"`
	StartDate    *time.Time `db:"start_date"`
	EndDate      *time.Time `db:"end_date"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
}

// BorrowingFilter narrows the borrowing listing.
type BorrowingFilter struct {
	Status string
	Search string
	Page   querybuilder.Page
}
