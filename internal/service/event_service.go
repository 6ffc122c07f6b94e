package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/arts-admin-api/internal/dto"
	"github.com/noah-isme/arts-admin-api/internal/formatter"
	"github.com/noah-isme/arts-admin-api/internal/models"
	"github.com/noah-isme/arts-admin-api/internal/repository"
	appErrors "github.com/noah-isme/arts-admin-api/pkg/errors"
	"github.com/noah-isme/arts-admin-api/pkg/storage"
)

const eventImagePrefix = "uploads/events"

var (
	eventDateLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05", "2006-01-02 15:04", "2006-01-02"}
	imageExtensions  = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}
)

type eventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id int64) (*models.Event, error)
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error)
	DeleteWithAnnouncements(ctx context.Context, id int64) (int64, error)
}

type imageRemover interface {
	ScheduleRemoval(key string)
}

// CreateEventInput carries the submitted event form.
type CreateEventInput struct {
	Title          string
	Description    string
	StartDate      string
	EndDate        string
	Location       string
	Municipality   string
	Category       string
	CulturalGroups []string
	Image          *ImageUpload
}

// ImageUpload is an optional image attached to an event form.
type ImageUpload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// EventServiceConfig tunes image handling.
type EventServiceConfig struct {
	MaxUploadBytes int64
	ImageURLPrefix string
}

// EventService creates, lists and deletes events and serves their images.
type EventService struct {
	repo    eventRepository
	store   storage.ObjectStore
	signer  *storage.SignedURLSigner
	cleaner imageRemover
	cfg     EventServiceConfig
	logger  *zap.Logger
}

// NewEventService constructs an EventService.
func NewEventService(repo eventRepository, store storage.ObjectStore, signer *storage.SignedURLSigner, cleaner imageRemover, cfg EventServiceConfig, logger *zap.Logger) *EventService {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 5 * 1024 * 1024
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, store: store, signer: signer, cleaner: cleaner, cfg: cfg, logger: logger}
}

// Create validates the form, stores the optional image and inserts a published event on behalf of the caller.
func (s *EventService) Create(ctx context.Context, auth *models.AuthContext, in CreateEventInput) (int64, error) {
	if auth == nil || !auth.IsAuthenticated {
		return 0, appErrors.ErrUnauthorized
	}
	required := []string{in.Title, in.Description, in.StartDate, in.EndDate, in.Location, in.Municipality, in.Category}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return 0, appErrors.Clone(appErrors.ErrValidation, "All required fields must be filled")
		}
	}

	start, err := parseEventDate(in.StartDate)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "Invalid start date format")
	}
	end, err := parseEventDate(in.EndDate)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "Invalid end date format")
	}
	if start.After(end) {
		return 0, appErrors.Clone(appErrors.ErrValidation, "Start date cannot be after end date")
	}

	event := &models.Event{
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
		StartDate:      start,
		EndDate:        end,
		Location:       fmt.Sprintf("%s, %s", strings.TrimSpace(in.Location), strings.TrimSpace(in.Municipality)),
		Category:       strings.TrimSpace(in.Category),
		CulturalGroups: normaliseGroups(in.CulturalGroups),
		Status:         models.EventStatusPublished,
		CreatedBy:      &auth.UserID,
	}
	if campus := strings.TrimSpace(auth.Campus); campus != "" {
		event.Venue = &campus
	}

	if in.Image != nil {
		key, err := s.saveImage(ctx, in.Image)
		if err != nil {
			return 0, err
		}
		event.ImagePath = &key
	}

	if err := s.repo.Create(ctx, event); err != nil {
		if event.ImagePath != nil {
			s.scheduleRemoval(*event.ImagePath)
		}
		return 0, appErrors.Internal(err, "Failed to create event")
	}
	s.logger.Info("event created", zap.Int64("event_id", event.ID), zap.Int64("user_id", auth.UserID))
	return event.ID, nil
}

// List returns one page of events with signed image URLs.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) (*dto.EventListResponse, error) {
	events, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to load events")
	}

	resp := &dto.EventListResponse{
		Success: true,
		Events:  make([]dto.EventView, 0, len(events)),
		Pagination: dto.EventPagination{
			CurrentPage: filter.Page.Page,
			TotalPages:  filter.Page.TotalPages(total),
			TotalEvents: total,
			Limit:       filter.Page.Limit,
		},
	}
	for i := range events {
		resp.Events = append(resp.Events, s.view(&events[i]))
	}
	return resp, nil
}

// Delete removes the event and its announcements in one transaction, then schedules image removal.
func (s *EventService) Delete(ctx context.Context, req dto.DeleteEventRequest) (string, error) {
	if req.EventID <= 0 {
		return "", appErrors.Clone(appErrors.ErrValidation, "Event ID is required")
	}

	event, err := s.repo.FindByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "Event not found")
		}
		return "", appErrors.Internal(err, "Failed to delete event")
	}

	announcements, err := s.repo.DeleteWithAnnouncements(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "Event not found")
		}
		return "", appErrors.Internal(err, "Failed to delete event")
	}

	if event.ImagePath != nil {
		s.scheduleRemoval(imageKey(*event.ImagePath))
	}
	s.logger.Info("event deleted", zap.Int64("event_id", req.EventID), zap.Int64("announcements", announcements))

	message := "Event deleted successfully."
	if announcements > 0 {
		message += fmt.Sprintf(" Also deleted %d related announcement(s).", announcements)
	}
	return message, nil
}

// OpenImage resolves a signed image token to the stored file and its content type.
func (s *EventService) OpenImage(ctx context.Context, token string) (io.ReadCloser, string, error) {
	key, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "Image link expired")
		}
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "Image not found")
	}
	rc, err := s.store.Open(ctx, key)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "Image not found")
	}
	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return rc, contentType, nil
}

func (s *EventService) saveImage(ctx context.Context, img *ImageUpload) (string, error) {
	ext := strings.ToLower(path.Ext(img.Filename))
	if !imageExtensions[ext] {
		return "", appErrors.Clone(appErrors.ErrValidation, "Unsupported image type")
	}
	if img.Size > s.cfg.MaxUploadBytes {
		return "", appErrors.Clone(appErrors.ErrValidation, "Image exceeds the maximum upload size")
	}
	key := fmt.Sprintf("%s/%s%s", eventImagePrefix, uuid.NewString(), ext)
	saved, err := s.store.Save(ctx, key, io.LimitReader(img.Reader, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return "", appErrors.Internal(err, "Failed to store event image")
	}
	return saved, nil
}

func (s *EventService) scheduleRemoval(key string) {
	if s.cleaner == nil || key == "" {
		return
	}
	s.cleaner.ScheduleRemoval(key)
}

func (s *EventService) view(e *models.Event) dto.EventView {
	view := dto.EventView{
		ID:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		StartDate:      formatter.DateTime(&e.StartDate),
		EndDate:        formatter.DateTime(&e.EndDate),
		Location:       e.Location,
		Venue:          formatter.OrDefault(e.Venue, ""),
		Category:       e.Category,
		CulturalGroups: []string(e.CulturalGroups),
		Status:         e.Status,
		CreatedAt:      formatter.DateTime(&e.CreatedAt),
	}
	if view.CulturalGroups == nil {
		view.CulturalGroups = []string{}
	}
	if e.ImagePath == nil || s.signer == nil {
		return view
	}
	key := imageKey(*e.ImagePath)
	if key == "" {
		return view
	}
	token, expiresAt, err := s.signer.Generate(key)
	if err != nil {
		s.logger.Warn("sign event image failed", zap.Int64("event_id", e.ID), zap.Error(err))
		return view
	}
	view.ImageURL = strings.TrimRight(s.cfg.ImageURLPrefix, "/") + "/" + token
	view.ImageExpiresAt = &expiresAt
	return view
}

func parseEventDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range eventDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}

func normaliseGroups(groups []string) models.StringList {
	out := models.StringList{}
	seen := make(map[string]bool, len(groups))
	for _, g := range groups {
		g = strings.TrimSpace(g)
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}

// imageKey maps a stored image_path, including relative paths written by older uploads, to a storage key.
func imageKey(stored string) string {
	key := strings.ReplaceAll(strings.TrimSpace(stored), "\\", "/")
	for {
		trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.TrimPrefix(key, "/"), "./"), "../")
		if trimmed == key {
			break
		}
		key = trimmed
	}
	cleaned, err := storage.CleanKey(key)
	if err != nil {
		return ""
	}
	return cleaned
}
