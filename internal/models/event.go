package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/noah-isme/arts-admin-api/pkg/querybuilder"
)

// EventStatusPublished is the only status assigned by the back-office.
const EventStatusPublished = "published"

// StringList is stored as a JSON array column.
type StringList []string

// Value implements driver.Valuer. A nil list is stored as [].
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	raw, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan string list: unsupported type %T", src)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("scan string list: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}

// Event is a scheduled cultural activity. Venue holds the creator's campus.
type Event struct {
	ID             int64      `db:"id"`
	Title          string     `db:"title"`
	Description    string     `db:"description"`
	StartDate      time.Time  `db:"start_date"`
	EndDate        time.Time  `db:"end_date"`
	Location       string     `db:"location"`
	Venue          *string    `db:"venue"`
	Category       string     `db:"category"`
	CulturalGroups StringList `db:"cultural_groups"`
	Status         string     `db:"status"`
	CreatedBy      *int64     `db:"created_by"`
	ImagePath      *string    `db:"image_path"`
	CreatedAt      time.Time  `db:"created_at"`
}

// EventFilter narrows the event listing.
type EventFilter struct {
	Status   string
	Category string
	Search   string
	Page     querybuilder.Page
}
