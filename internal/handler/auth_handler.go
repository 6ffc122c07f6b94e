package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/arts-admin-api/internal/dto"
	"github.com/noah-isme/arts-admin-api/internal/middleware"
	"github.com/noah-isme/arts-admin-api/internal/models"
	appErrors "github.com/noah-isme/arts-admin-api/pkg/errors"
	"github.com/noah-isme/arts-admin-api/pkg/response"
	"github.com/noah-isme/arts-admin-api/pkg/session"
)

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, *models.AuthContext, error)
	Logout(ctx context.Context, auth models.AuthContext, ip, userAgent string)
}

// AuthHandler signs administrators in and out.
type AuthHandler struct {
	service  authService
	sessions *session.Manager
	logger   *zap.Logger
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService, sessions *session.Manager, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{service: svc, sessions: sessions, logger: logger}
}

// Login godoc
// @Summary Authenticate administrator
// @Description Checks email and password, sets the session cookie and returns a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} response.Failure
// @Failure 401 {object} response.Failure
// @Failure 429 {object} response.Failure
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid login payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	res, auth, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.sessions != nil {
		if err := h.sessions.Write(c.Writer, middleware.SessionData(auth)); err != nil {
			h.logger.Error("session cookie write failed", zap.Error(err))
			response.Error(c, appErrors.Internal(err, ""))
			return
		}
	}

	response.JSON(c, http.StatusOK, dto.LoginResponse{
		Success:     true,
		Message:     "Login successful",
		AccessToken: res.AccessToken,
		ExpiresIn:   res.ExpiresIn,
		User:        res.User,
	})
}

// Logout godoc
// @Summary Sign out
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Message
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	auth := middleware.CurrentAuth(c)
	h.service.Logout(c.Request.Context(), *auth, c.ClientIP(), c.GetHeader("User-Agent"))
	if h.sessions != nil {
		h.sessions.Clear(c.Writer)
	}
	response.OK(c, "Logged out successfully")
}

// Session godoc
// @Summary Current session
// @Description Reports whether the caller is signed in and returns a CSRF token for form posts
// @Tags Authentication
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	auth := middleware.CurrentAuth(c)
	resp := dto.SessionResponse{
		Success:       true,
		Authenticated: auth.IsAuthenticated,
		CSRFToken:     middleware.CSRFToken(c),
	}
	if auth.IsAuthenticated {
		info := auth.Info()
		resp.User = &info
	}
	response.JSON(c, http.StatusOK, resp)
}
