package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/arts-admin-api/pkg/config"
)

func testConfig() config.SessionConfig {
	return config.SessionConfig{
		CookieName: "test_session",
		HashKey:    "0123456789abcdef0123456789abcdef",
		BlockKey:   "abcdef0123456789",
	}
}

func TestManagerRoundTrip(t *testing.T) {
	m, err := NewManager(testConfig(), time.Hour)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Write(rec, Data{UserID: "7", Email: "head@example.com", Role: "head", Campus: "Pablo Borbon"}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}

	data, err := m.Read(req)
	require.NoError(t, err)
	assert.Equal(t, "7", data.UserID)
	assert.Equal(t, "head", data.Role)
	assert.Equal(t, "Pablo Borbon", data.Campus)
	assert.NotZero(t, data.IssuedAt)
}

func TestManagerRejectsTamperedCookie(t *testing.T) {
	m, err := NewManager(testConfig(), time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: "forged"})

	_, err = m.Read(req)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManagerMissingCookie(t *testing.T) {
	m, err := NewManager(testConfig(), time.Hour)
	require.NoError(t, err)

	_, err = m.Read(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManagerClearExpiresCookie(t *testing.T) {
	m, err := NewManager(testConfig(), time.Hour)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "test_session", cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestNewManagerValidatesKeys(t *testing.T) {
	cfg := testConfig()
	cfg.HashKey = "short"
	_, err := NewManager(cfg, time.Hour)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.BlockKey = "bad"
	_, err = NewManager(cfg, time.Hour)
	assert.Error(t, err)
}
