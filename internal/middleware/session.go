package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/arts-admin-api/internal/models"
	"github.com/noah-isme/arts-admin-api/pkg/session"
)

// ContextAuthKey is the gin context key holding the request's *models.AuthContext.
const ContextAuthKey = "authContext"

type tokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// Session resolves who is calling, from a Bearer token or the session cookie, and stores it on the context.
// It never aborts; Authorize decides what an anonymous caller may reach.
func Session(tokens tokenValidator, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := &models.AuthContext{}
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if claims, err := tokens.ValidateToken(token); err == nil {
				auth = &models.AuthContext{
					IsAuthenticated: true,
					UserID:          claims.UserID,
					Email:           claims.Email,
					FullName:        claims.FullName,
					Role:            claims.Role,
					Campus:          claims.Campus,
				}
			}
		} else if sessions != nil {
			if data, err := sessions.Read(c.Request); err == nil {
				auth = fromSession(data)
			}
		}
		c.Set(ContextAuthKey, auth)
		c.Next()
	}
}

// CurrentAuth returns the caller resolved by Session. Missing values yield an anonymous context.
func CurrentAuth(c *gin.Context) *models.AuthContext {
	if value, ok := c.Get(ContextAuthKey); ok {
		if auth, ok := value.(*models.AuthContext); ok && auth != nil {
			return auth
		}
	}
	return &models.AuthContext{}
}

// SessionData converts an authenticated caller into the cookie payload.
func SessionData(auth *models.AuthContext) session.Data {
	return session.Data{
		UserID:   strconv.FormatInt(auth.UserID, 10),
		Email:    auth.Email,
		FullName: auth.FullName,
		Role:     string(auth.Role),
		Campus:   auth.Campus,
	}
}

func fromSession(data *session.Data) *models.AuthContext {
	id, err := strconv.ParseInt(data.UserID, 10, 64)
	role := models.UserRole(data.Role)
	if err != nil || !role.Valid() {
		return &models.AuthContext{}
	}
	return &models.AuthContext{
		IsAuthenticated: true,
		UserID:          id,
		Email:           data.Email,
		FullName:        data.FullName,
		Role:            role,
		Campus:          data.Campus,
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
