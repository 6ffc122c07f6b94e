package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/noah-isme/arts-admin-api/pkg/config"
)

// ErrNoSession is returned when the request carries no usable session cookie.
var ErrNoSession = errors.New("no session")

// Data is the signed payload stored in the browser cookie.
type Data struct {
	UserID   string `json:"uid"`
	Email    string `json:"email"`
	FullName string `json:"name"`
	Role     string `json:"role"`
	Campus   string `json:"campus"`
	IssuedAt int64  `json:"iat"`
}

// Manager signs, reads and clears the session cookie.
type Manager struct {
	codec  *securecookie.SecureCookie
	name   string
	secure bool
	maxAge time.Duration
	now    func() time.Time
}

// NewManager builds a cookie manager. The block key is optional; when present it must be 16, 24 or 32 bytes.
func NewManager(cfg config.SessionConfig, maxAge time.Duration) (*Manager, error) {
	if len(cfg.HashKey) < 32 {
		return nil, fmt.Errorf("session hash key must be at least 32 bytes")
	}
	var blockKey []byte
	if cfg.BlockKey != "" {
		switch len(cfg.BlockKey) {
		case 16, 24, 32:
			blockKey = []byte(cfg.BlockKey)
		default:
			return nil, fmt.Errorf("session block key must be 16, 24 or 32 bytes")
		}
	}
	if maxAge <= 0 {
		maxAge = 8 * time.Hour
	}
	name := cfg.CookieName
	if name == "" {
		name = "arts_admin_session"
	}

	codec := securecookie.New([]byte(cfg.HashKey), blockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(maxAge.Seconds()))

	return &Manager{codec: codec, name: name, secure: cfg.Secure, maxAge: maxAge, now: time.Now}, nil
}

// Name returns the cookie name.
func (m *Manager) Name() string {
	return m.name
}

// Write signs data and sets the cookie on w.
func (m *Manager) Write(w http.ResponseWriter, data Data) error {
	if data.IssuedAt == 0 {
		data.IssuedAt = m.now().Unix()
	}
	encoded, err := m.codec.Encode(m.name, data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read verifies the cookie on r and returns its payload.
func (m *Manager) Read(r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(m.name)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}
	var data Data
	if err := m.codec.Decode(m.name, cookie.Value, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	if data.UserID == "" || data.Role == "" {
		return nil, ErrNoSession
	}
	return &data, nil
}

// Clear expires the cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
