package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/arts-admin-api/internal/models"
	"github.com/noah-isme/arts-admin-api/pkg/querybuilder"
)

const eventColumns = `id, title, description, start_date, end_date, location, venue, category, cultural_groups, status, created_by, image_path, created_at`

// EventRepository manages events and their announcements.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts the event and stores the generated id on it.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	if event.CulturalGroups == nil {
		event.CulturalGroups = models.StringList{}
	}
	const query = `INSERT INTO events (title, description, start_date, end_date, location, venue, category, cultural_groups, status, created_by, image_path, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	id, err := insertID(ctx, r.db, query,
		event.Title, event.Description, event.StartDate, event.EndDate, event.Location, event.Venue, event.Category,
		event.CulturalGroups, event.Status, event.CreatedBy, event.ImagePath, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.ID = id
	return nil
}

// FindByID fetches one event. sql.ErrNoRows is returned untouched when absent.
func (r *EventRepository) FindByID(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	query := r.db.Rebind(fmt.Sprintf(`SELECT %s FROM events WHERE id = ?`, eventColumns))
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// List returns a page of events, newest start date first, and the total matching count.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	b := querybuilder.New().
		Equals("status", filter.Status).
		Equals("category", filter.Category).
		Search(filter.Search, "title", "description", "location")

	limit, limitArgs := filter.Page.SQL()
	query := fmt.Sprintf(`SELECT %s FROM events%s ORDER BY start_date DESC, id DESC%s`, eventColumns, b.Clause(), limit)

	events := []models.Event{}
	if err := r.db.SelectContext(ctx, &events, r.db.Rebind(query), append(b.Args(), limitArgs...)...); err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind("SELECT COUNT(*) FROM events"+b.Clause()), b.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	return events, total, nil
}

// DeleteWithAnnouncements removes the event's announcements and then the event in one transaction and returns
// how many announcements went with it. ErrNoRowsAffected means the event row was already gone; nothing is
// committed in that case.
func (r *EventRepository) DeleteWithAnnouncements(ctx context.Context, id int64) (announcements int64, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete event transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM announcements WHERE event_id = ?`), id)
	if err != nil {
		return 0, fmt.Errorf("delete event announcements: %w", err)
	}
	if announcements, err = res.RowsAffected(); err != nil {
		return 0, fmt.Errorf("delete event announcements rows: %w", err)
	}

	res, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM events WHERE id = ?`), id)
	if err != nil {
		return 0, fmt.Errorf("delete event: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete event rows: %w", err)
	}
	if deleted == 0 {
		err = ErrNoRowsAffected
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete event: %w", err)
	}
	return announcements, nil
}
