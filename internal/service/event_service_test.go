package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/arts-admin-api/internal/dto"
	"github.com/noah-isme/arts-admin-api/internal/models"
	"github.com/noah-isme/arts-admin-api/internal/repository"
	appErrors "github.com/noah-isme/arts-admin-api/pkg/errors"
	"github.com/noah-isme/arts-admin-api/pkg/querybuilder"
	"github.com/noah-isme/arts-admin-api/pkg/storage"
)

type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}}
}

func (m *memoryStore) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return key, nil
}

func (m *memoryStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memoryStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

type fakeEventRepo struct {
	events        map[int64]*models.Event
	announcements map[int64]int64
	nextID        int64
	createErr     error
	deleteErr     error
	created       []*models.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[int64]*models.Event{}, announcements: map[int64]int64{}, nextID: 1}
}

func (f *fakeEventRepo) Create(ctx context.Context, event *models.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = f.nextID
	f.nextID++
	f.events[event.ID] = event
	f.created = append(f.created, event)
	return nil
}

func (f *fakeEventRepo) FindByID(ctx context.Context, id int64) (*models.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return e, nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	out := make([]models.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, *e)
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) DeleteWithAnnouncements(ctx context.Context, id int64) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	if _, ok := f.events[id]; !ok {
		return 0, repository.ErrNoRowsAffected
	}
	n := f.announcements[id]
	delete(f.events, id)
	delete(f.announcements, id)
	return n, nil
}

type recordingRemover struct {
	keys []string
}

func (r *recordingRemover) ScheduleRemoval(key string) {
	r.keys = append(r.keys, key)
}

func headAuth() *models.AuthContext {
	return &models.AuthContext{IsAuthenticated: true, UserID: 7, Role: models.RoleHead, Campus: "Pablo Borbon"}
}

func validEventInput() CreateEventInput {
	return CreateEventInput{
		Title:          "Kultura Fest",
		Description:    "Annual showcase",
		StartDate:      "2025-09-01T09:00",
		EndDate:        "2025-09-02",
		Location:       "Gymnasium",
		Municipality:   "Batangas City",
		Category:       "festival",
		CulturalGroups: []string{" Melophiles ", "", "Melophiles", "Dulaang Batangan"},
	}
}

func newTestEventService(repo *fakeEventRepo, store storage.ObjectStore, remover imageRemover) *EventService {
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	return NewEventService(repo, store, signer, remover, EventServiceConfig{MaxUploadBytes: 1024, ImageURLPrefix: "/api/v1/events/image/"}, nil)
}

func TestEventServiceCreate(t *testing.T) {
	repo := newFakeEventRepo()
	store := newMemoryStore()
	svc := newTestEventService(repo, store, &recordingRemover{})

	in := validEventInput()
	in.Image = &ImageUpload{Filename: "poster.PNG", Size: 4, Reader: strings.NewReader("png!")}
	id, err := svc.Create(context.Background(), headAuth(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	event := repo.created[0]
	assert.Equal(t, "Gymnasium, Batangas City", event.Location)
	assert.Equal(t, models.EventStatusPublished, event.Status)
	require.NotNil(t, event.Venue)
	assert.Equal(t, "Pablo Borbon", *event.Venue)
	require.NotNil(t, event.CreatedBy)
	assert.Equal(t, int64(7), *event.CreatedBy)
	assert.Equal(t, models.StringList{"Melophiles", "Dulaang Batangan"}, event.CulturalGroups)
	assert.Equal(t, 9, event.StartDate.Hour())

	require.NotNil(t, event.ImagePath)
	assert.True(t, strings.HasPrefix(*event.ImagePath, "uploads/events/"))
	assert.True(t, strings.HasSuffix(*event.ImagePath, ".png"))
	assert.True(t, store.has(*event.ImagePath))
}

func TestEventServiceCreateWithoutGroups(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newTestEventService(repo, newMemoryStore(), nil)

	in := validEventInput()
	in.CulturalGroups = nil
	_, err := svc.Create(context.Background(), headAuth(), in)
	require.NoError(t, err)
	assert.Equal(t, models.StringList{}, repo.created[0].CulturalGroups)
	assert.Nil(t, repo.created[0].ImagePath)
}

func TestEventServiceCreateValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*CreateEventInput)
		message string
	}{
		{"missing title", func(in *CreateEventInput) { in.Title = " " }, "All required fields must be filled"},
		{"missing municipality", func(in *CreateEventInput) { in.Municipality = "" }, "All required fields must be filled"},
		{"bad date", func(in *CreateEventInput) { in.StartDate = "09/01/2025" }, "Invalid start date format"},
		{"start after end", func(in *CreateEventInput) { in.StartDate = "2025-09-03"; in.EndDate = "2025-09-02T23:59" }, "Start date cannot be after end date"},
		{"bad image type", func(in *CreateEventInput) {
			in.Image = &ImageUpload{Filename: "payload.exe", Size: 1, Reader: strings.NewReader("x")}
		}, "Unsupported image type"},
		{"image too large", func(in *CreateEventInput) {
			in.Image = &ImageUpload{Filename: "big.jpg", Size: 4096, Reader: strings.NewReader("x")}
		}, "Image exceeds the maximum upload size"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeEventRepo()
			store := newMemoryStore()
			svc := newTestEventService(repo, store, nil)

			in := validEventInput()
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), headAuth(), in)
			assert.ErrorIs(t, err, appErrors.ErrValidation)
			assert.Equal(t, tc.message, appErrors.FromError(err).Message)
			assert.Empty(t, repo.created)
			assert.Empty(t, store.objects)
		})
	}
}

func TestEventServiceCreateFailureSchedulesImageRemoval(t *testing.T) {
	repo := newFakeEventRepo()
	repo.createErr = errors.New("insert failed")
	remover := &recordingRemover{}
	svc := newTestEventService(repo, newMemoryStore(), remover)

	in := validEventInput()
	in.Image = &ImageUpload{Filename: "poster.jpg", Size: 1, Reader: strings.NewReader("x")}
	_, err := svc.Create(context.Background(), headAuth(), in)
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	require.Len(t, remover.keys, 1)
	assert.True(t, strings.HasPrefix(remover.keys[0], "uploads/events/"))
}

func TestEventServiceCreateRequiresSession(t *testing.T) {
	svc := newTestEventService(newFakeEventRepo(), newMemoryStore(), nil)
	_, err := svc.Create(context.Background(), &models.AuthContext{}, validEventInput())
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestEventServiceDeleteWithAnnouncementsAndImage(t *testing.T) {
	repo := newFakeEventRepo()
	image := "../uploads/events/old.jpg"
	repo.events[5] = &models.Event{ID: 5, Title: "Recital", ImagePath: &image}
	repo.announcements[5] = 2
	remover := &recordingRemover{}
	svc := newTestEventService(repo, newMemoryStore(), remover)

	msg, err := svc.Delete(context.Background(), dto.DeleteEventRequest{EventID: 5})
	require.NoError(t, err)
	assert.Equal(t, "Event deleted successfully. Also deleted 2 related announcement(s).", msg)
	assert.Equal(t, []string{"uploads/events/old.jpg"}, remover.keys)

	_, err = svc.Delete(context.Background(), dto.DeleteEventRequest{EventID: 5})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, "Event not found", appErrors.FromError(err).Message)
}

func TestEventServiceDeleteWithoutAnnouncements(t *testing.T) {
	repo := newFakeEventRepo()
	repo.events[6] = &models.Event{ID: 6}
	remover := &recordingRemover{}
	svc := newTestEventService(repo, newMemoryStore(), remover)

	msg, err := svc.Delete(context.Background(), dto.DeleteEventRequest{EventID: 6})
	require.NoError(t, err)
	assert.Equal(t, "Event deleted successfully.", msg)
	assert.Empty(t, remover.keys)
}

func TestEventServiceDeleteFailureKeepsImage(t *testing.T) {
	repo := newFakeEventRepo()
	image := "uploads/events/keep.jpg"
	repo.events[8] = &models.Event{ID: 8, ImagePath: &image}
	repo.deleteErr = errors.New("tx aborted")
	remover := &recordingRemover{}
	svc := newTestEventService(repo, newMemoryStore(), remover)

	_, err := svc.Delete(context.Background(), dto.DeleteEventRequest{EventID: 8})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.Empty(t, remover.keys)
}

func TestEventServiceListSignsImages(t *testing.T) {
	repo := newFakeEventRepo()
	image := "uploads/events/a.png"
	start := time.Date(2025, time.September, 1, 9, 0, 0, 0, time.UTC)
	repo.events[1] = &models.Event{ID: 1, Title: "Fest", StartDate: start, EndDate: start, ImagePath: &image, CulturalGroups: models.StringList{"Melophiles"}}
	store := newMemoryStore()
	_, err := store.Save(context.Background(), image, strings.NewReader("img"))
	require.NoError(t, err)
	svc := newTestEventService(repo, store, nil)

	resp, err := svc.List(context.Background(), models.EventFilter{Page: querybuilder.NewPage(1, 10)})
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	view := resp.Events[0]
	assert.Equal(t, "Sep 1, 2025 9:00 AM", view.StartDate)
	assert.Equal(t, []string{"Melophiles"}, view.CulturalGroups)
	require.True(t, strings.HasPrefix(view.ImageURL, "/api/v1/events/image/"))
	require.NotNil(t, view.ImageExpiresAt)

	token := strings.TrimPrefix(view.ImageURL, "/api/v1/events/image/")
	rc, contentType, err := svc.OpenImage(context.Background(), token)
	require.NoError(t, err)
	defer rc.Close() //nolint:errcheck
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "img", string(body))
	assert.Equal(t, "image/png", contentType)

	_, _, err = svc.OpenImage(context.Background(), "forged.token.value")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestImageKeyNormalisesLegacyPaths(t *testing.T) {
	assert.Equal(t, "uploads/events/a.jpg", imageKey("../uploads/events/a.jpg"))
	assert.Equal(t, "uploads/events/a.jpg", imageKey("/uploads/events/a.jpg"))
	assert.Equal(t, "uploads/a.jpg", imageKey(`.\uploads\a.jpg`))
	assert.Equal(t, "", imageKey("   "))
}
