package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/arts-admin-api/internal/dto"
	"github.com/noah-isme/arts-admin-api/internal/middleware"
	"github.com/noah-isme/arts-admin-api/internal/models"
	"github.com/noah-isme/arts-admin-api/internal/service"
	appErrors "github.com/noah-isme/arts-admin-api/pkg/errors"
)

type fakeAuthSrv struct {
	loggedOut bool
}

func (f *fakeAuthSrv) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, *models.AuthContext, error) {
	if req.Password != "secret" {
		return nil, nil, appErrors.ErrInvalidCredentials
	}
	auth := &models.AuthContext{IsAuthenticated: true, UserID: 1, Email: req.Email, Role: models.RoleHead}
	return &models.LoginResult{AccessToken: "token", ExpiresIn: 60, User: auth.Info()}, auth, nil
}

func (f *fakeAuthSrv) Logout(ctx context.Context, auth models.AuthContext, ip, userAgent string) {
	f.loggedOut = true
}

type fakeBorrowingSrv struct{}

func (fakeBorrowingSrv) List(ctx context.Context, filter models.BorrowingFilter) (*dto.BorrowingListResponse, error) {
	return &dto.BorrowingListResponse{Success: true, Data: []dto.BorrowingRequestView{}, Pagination: dto.BorrowingPagination{CurrentPage: filter.Page.Page, Limit: filter.Page.Limit}}, nil
}

func (fakeBorrowingSrv) Export(ctx context.Context, filter models.BorrowingFilter, format string) (*service.ExportFile, error) {
	return &service.ExportFile{Filename: "borrowing.csv", ContentType: "text/csv; charset=utf-8", Data: []byte("ID\n")}, nil
}

type fakeRepairSrv struct{}

func (fakeRepairSrv) List(ctx context.Context, filter models.RepairFilter) (*dto.RepairListResponse, error) {
	return &dto.RepairListResponse{Success: true, Items: []dto.RepairItemView{}}, nil
}

type fakeDistributionSrv struct{ hit bool }

func (f fakeDistributionSrv) Campus(ctx context.Context, search string) (*dto.CampusDistributionResponse, bool, error) {
	return &dto.CampusDistributionResponse{Success: true, CampusDistribution: []dto.CampusShare{{Campus: "Lipa", Count: 2, Percentage: 100}}, TotalStudents: 2, SearchApplied: search != ""}, f.hit, nil
}

func (f fakeDistributionSrv) College(ctx context.Context, search, campus string) (*dto.CollegeDistributionResponse, bool, error) {
	return &dto.CollegeDistributionResponse{Success: true, Campus: "all"}, f.hit, nil
}

func (f fakeDistributionSrv) CulturalGroups(ctx context.Context) (*dto.GroupDistributionResponse, bool, error) {
	return &dto.GroupDistributionResponse{Success: true}, f.hit, nil
}

type fakeStudentSrv struct{}

func (fakeStudentSrv) Profile(ctx context.Context, req dto.StudentProfileRequest) (*dto.StudentProfileView, error) {
	if req.StudentID != 1 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Student not found")
	}
	return &dto.StudentProfileView{ID: 1, FullName: "Ana Reyes", DesiredCulturalGroup: "Melophiles"}, nil
}

func (fakeStudentSrv) UpdateCulturalGroup(ctx context.Context, req dto.UpdateCulturalGroupRequest) (string, error) {
	if req.StudentID == 2 {
		return "", appErrors.Clone(appErrors.ErrConflict, "Cannot update cultural group for a suspended student")
	}
	return "Cultural group updated successfully", nil
}

type fakeEventSrv struct {
	created service.CreateEventInput
	auth    *models.AuthContext
	image   []byte
}

func (f *fakeEventSrv) Create(ctx context.Context, auth *models.AuthContext, in service.CreateEventInput) (int64, error) {
	f.created = in
	f.auth = auth
	if in.Image != nil {
		f.image, _ = io.ReadAll(in.Image.Reader)
	}
	if strings.TrimSpace(in.Title) == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, "All required fields must be filled")
	}
	return 42, nil
}

func (f *fakeEventSrv) List(ctx context.Context, filter models.EventFilter) (*dto.EventListResponse, error) {
	return &dto.EventListResponse{Success: true, Events: []dto.EventView{}}, nil
}

func (f *fakeEventSrv) Delete(ctx context.Context, req dto.DeleteEventRequest) (string, error) {
	if req.EventID != 5 {
		return "", appErrors.Clone(appErrors.ErrNotFound, "Event not found")
	}
	return "Event deleted successfully. Also deleted 2 related announcement(s).", nil
}

func (f *fakeEventSrv) OpenImage(ctx context.Context, token string) (io.ReadCloser, string, error) {
	if token != "valid" {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "Image not found")
	}
	return io.NopCloser(strings.NewReader("png")), "image/png", nil
}

type memoryAudit struct {
	logs []*models.AuditLog
}

func (m *memoryAudit) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.logs = append(m.logs, log)
	return nil
}

type testApp struct {
	router *gin.Engine
	events *fakeEventSrv
	auth   *fakeAuthSrv
	audit  *memoryAudit
}

func buildTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	policy, err := middleware.NewPolicy(middleware.DefaultPolicies, "/login", nil, nil)
	require.NoError(t, err)

	app := &testApp{router: gin.New(), events: &fakeEventSrv{}, auth: &fakeAuthSrv{}, audit: &memoryAudit{}}
	app.router.Use(func(c *gin.Context) {
		auth := &models.AuthContext{}
		if role := c.GetHeader("X-Test-Role"); role != "" {
			auth = &models.AuthContext{IsAuthenticated: true, UserID: 7, Role: models.UserRole(role), Campus: "Pablo Borbon"}
		}
		c.Set(middleware.ContextAuthKey, auth)
		c.Next()
	})

	RegisterRoutes(app.router, RouteConfig{
		APIPrefix:    "/api/v1",
		LoginPath:    "/login",
		Policy:       policy,
		Audit:        app.audit,
		LoginLimiter: middleware.NewRateLimiter(100, time.Minute),
	}, Handlers{
		Auth:      NewAuthHandler(app.auth, nil, nil),
		Borrowing: NewBorrowingHandler(fakeBorrowingSrv{}),
		Repairs:   NewRepairHandler(fakeRepairSrv{}),
		Dashboard: NewDashboardHandler(fakeDistributionSrv{hit: true}),
		Students:  NewStudentHandler(fakeStudentSrv{}),
		Events:    NewEventHandler(app.events, 1024),
		Pages:     NewPageHandler(t.TempDir()),
		Metrics:   NewMetricsHandler(service.NewMetricsService()),
	})
	return app
}

func (a *testApp) do(method, target, role, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if role != "" {
		req.Header.Set("X-Test-Role", role)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRoutesRequireSession(t *testing.T) {
	app := buildTestApp(t)

	for _, target := range []string{"/api/v1/borrowing-requests", "/api/v1/repair-items", "/api/v1/dashboard/campus-distribution", "/api/v1/events"} {
		rec := app.do(http.MethodGet, target, "", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		assert.Equal(t, false, decodeBody(t, rec)["success"], target)
	}
}

func TestRoutesWrongMethodIsJSON405(t *testing.T) {
	app := buildTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/events/delete", "head", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Method not allowed", body["message"])

	rec = app.do(http.MethodGet, "/api/v1/nothing", "head", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutesListingsForReadOnlyRoles(t *testing.T) {
	app := buildTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/borrowing-requests?page=0&limit=500", "central", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pagination := decodeBody(t, rec)["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["current_page"])
	assert.Equal(t, float64(100), pagination["limit"])

	rec = app.do(http.MethodGet, "/api/v1/dashboard/campus-distribution?search=ana", "admin", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get(middleware.CacheHeader))
	assert.Equal(t, true, decodeBody(t, rec)["searchApplied"])

	rec = app.do(http.MethodGet, "/api/v1/borrowing-requests/export?format=csv", "staff", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "borrowing.csv")
}

func TestRoutesCreateEventMultipart(t *testing.T) {
	app := buildTestApp(t)

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for key, value := range map[string]string{
		"title": "Kultura Fest", "description": "Showcase", "start_date": "2025-09-01", "end_date": "2025-09-02",
		"location": "Gym", "municipality": "Lipa", "category": "festival",
	} {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.WriteField("cultural_groups[]", "Melophiles"))
	require.NoError(t, writer.WriteField("cultural_groups[]", "Dulaang Batangan"))
	part, err := writer.CreateFormFile("image", "poster.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	rec := app.do(http.MethodPost, "/api/v1/events", "head", writer.FormDataContentType(), buf)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(42), body["event_id"])

	assert.Equal(t, []string{"Melophiles", "Dulaang Batangan"}, app.events.created.CulturalGroups)
	assert.Equal(t, "png-bytes", string(app.events.image))
	assert.Equal(t, "Pablo Borbon", app.events.auth.Campus)

	require.Len(t, app.audit.logs, 1)
	assert.Equal(t, models.AuditActionEventCreate, app.audit.logs[0].Action)
	require.NotNil(t, app.audit.logs[0].ResourceID)
	assert.Equal(t, "42", *app.audit.logs[0].ResourceID)
}

func TestRoutesCreateEventURLEncodedValidation(t *testing.T) {
	app := buildTestApp(t)

	form := url.Values{"description": {"x"}}
	rec := app.do(http.MethodPost, "/api/v1/events", "staff", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "All required fields must be filled", decodeBody(t, rec)["message"])
	assert.Empty(t, app.audit.logs)
}

func TestRoutesCreateEventForbiddenForCentral(t *testing.T) {
	app := buildTestApp(t)

	rec := app.do(http.MethodPost, "/api/v1/events", "central", "application/x-www-form-urlencoded", strings.NewReader("title=x"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, app.events.created.Title)
}

func TestRoutesDeleteEvent(t *testing.T) {
	app := buildTestApp(t)

	rec := app.do(http.MethodPost, "/api/v1/events/delete", "head", "application/json", strings.NewReader(`{"event_id":5}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Event deleted successfully. Also deleted 2 related announcement(s).", decodeBody(t, rec)["message"])

	rec = app.do(http.MethodPost, "/api/v1/events/delete", "head", "application/json", strings.NewReader(`{"event_id":6}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodPost, "/api/v1/events/delete", "head", "application/json", strings.NewReader(`{"event_id":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON payload", decodeBody(t, rec)["message"])

	require.Len(t, app.audit.logs, 1)
	assert.Equal(t, models.AuditActionEventDelete, app.audit.logs[0].Action)
}

func TestRoutesStudents(t *testing.T) {
	app := buildTestApp(t)

	rec := app.do(http.MethodPost, "/api/v1/students/profile", "admin", "application/json", strings.NewReader(`{"student_id":1}`))
	require.Equal(t, http.StatusOK, rec.Code)
	student := decodeBody(t, rec)["student"].(map[string]interface{})
	assert.Equal(t, "Melophiles", student["desired_cultural_group"])

	rec = app.do(http.MethodPost, "/api/v1/students/profile", "admin", "application/json", strings.NewReader(`{"student_id":9}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodPost, "/api/v1/students/cultural-group", "staff", "application/json", strings.NewReader(`{"student_id":2,"cultural_group":"Melophiles"}`))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, app.audit.logs)

	rec = app.do(http.MethodPost, "/api/v1/students/cultural-group", "admin", "application/json", strings.NewReader(`{"student_id":1,"cultural_group":"Melophiles"}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodPost, "/api/v1/students/cultural-group", "head", "application/json", strings.NewReader(`{"student_id":1,"cultural_group":"Melophiles"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, app.audit.logs, 1)
	assert.Equal(t, models.AuditActionCulturalGroupUpdate, app.audit.logs[0].Action)
}

func TestRoutesEventImage(t *testing.T) {
	app := buildTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/events/image/valid", "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "png", rec.Body.String())

	rec = app.do(http.MethodGet, "/api/v1/events/image/forged", "", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutesAuth(t *testing.T) {
	app := buildTestApp(t)

	rec := app.do(http.MethodPost, "/api/v1/auth/login", "", "application/json", strings.NewReader(`{"email":"head@example.com","password":"secret"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "token", decodeBody(t, rec)["access_token"])

	rec = app.do(http.MethodPost, "/api/v1/auth/login", "", "application/json", strings.NewReader(`{"email":"head@example.com","password":"wrong"}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodGet, "/api/v1/auth/session", "staff", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["authenticated"])

	rec = app.do(http.MethodPost, "/api/v1/auth/logout", "staff", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, app.auth.loggedOut)
}

func TestRoutesAdminPagesRedirect(t *testing.T) {
	app := buildTestApp(t)

	rec := app.do(http.MethodGet, "/admin/events", "", "", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = app.do(http.MethodGet, "/admin/events", "head", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutesHealth(t *testing.T) {
	app := buildTestApp(t)

	rec := app.do(http.MethodGet, "/health", "", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(http.MethodGet, "/ready", "", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(http.MethodGet, "/metrics", "", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "arts_admin_")
}
