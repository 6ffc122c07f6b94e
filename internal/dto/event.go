package dto

import "time"

// DeleteEventRequest selects the event to delete.
type DeleteEventRequest struct {
	EventID int64 `json:"event_id" validate:"required,gt=0"`
}

// CreateEventResponse reports the new event id.
type CreateEventResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	EventID int64  `json:"event_id"`
}

// EventView is an event with display-ready dates and a signed image URL.
type EventView struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	StartDate      string     `json:"start_date"`
	EndDate        string     `json:"end_date"`
	Location       string     `json:"location"`
	Venue          string     `json:"venue"`
	Category       string     `json:"category"`
	CulturalGroups []string   `json:"cultural_groups"`
	Status         string     `json:"status"`
	ImageURL       string     `json:"image_url,omitempty"`
	ImageExpiresAt *time.Time `json:"image_expires_at,omitempty"`
	CreatedAt      string     `json:"created_at"`
}

// EventPagination is the pagination block of the event listing.
type EventPagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalEvents int `json:"total_events"`
	Limit       int `json:"limit"`
}

// EventListResponse is the event listing payload.
type EventListResponse struct {
	Success    bool            `json:"success"`
	Events     []EventView     `json:"events"`
	Pagination EventPagination `json:"pagination"`
}
