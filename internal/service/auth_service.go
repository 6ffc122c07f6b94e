package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/arts-admin-api/internal/models"
	appErrors "github.com/noah-isme/arts-admin-api/pkg/errors"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	UpdateLastLogin(ctx context.Context, id int64, ts time.Time) error
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
}

// AuthService signs administrators in and validates their bearer tokens.
type AuthService struct {
	repo      authUserRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.AccessTokenExpiry <= 0 {
		config.AccessTokenExpiry = 8 * time.Hour
	}
	return &AuthService{repo: repo, validator: validate, logger: logger, config: config, now: time.Now}
}

// Login checks credentials and issues an access token. The returned AuthContext is what the caller stores in the
// session cookie.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, *models.AuthContext, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "email and password are required")
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.ErrInvalidCredentials
		}
		return nil, nil, appErrors.Internal(err, "failed to fetch user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, appErrors.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, nil, appErrors.ErrInactiveAccount
	}
	if !user.Role.Valid() {
		s.logger.Warn("login rejected for unknown role", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
		return nil, nil, appErrors.ErrUnauthorized
	}

	auth := &models.AuthContext{
		IsAuthenticated: true,
		UserID:          user.ID,
		Email:           user.Email,
		FullName:        user.FullName,
		Role:            user.Role,
		Campus:          user.CampusName(),
	}
	token, issuedAt, err := s.generateAccessToken(auth)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to create access token")
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, issuedAt); err != nil {
		s.logger.Warn("failed to update last login", zap.Error(err))
	}
	s.audit(ctx, auth, models.AuditActionLogin, req.IP, req.UserAgent)

	return &models.LoginResult{
		AccessToken: token,
		ExpiresIn:   int64(s.config.AccessTokenExpiry.Seconds()),
		IssuedAt:    issuedAt,
		User:        auth.Info(),
	}, auth, nil
}

// Logout records the sign-out. Tokens are stateless; the caller clears the cookie.
func (s *AuthService) Logout(ctx context.Context, auth models.AuthContext, ip, userAgent string) {
	if !auth.IsAuthenticated {
		return
	}
	s.audit(ctx, &auth, models.AuditActionLogout, ip, userAgent)
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}
	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || !claims.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) generateAccessToken(auth *models.AuthContext) (string, time.Time, error) {
	now := s.now().UTC()
	claims := models.JWTClaims{
		UserID:   auth.UserID,
		Role:     auth.Role,
		Email:    auth.Email,
		FullName: auth.FullName,
		Campus:   auth.Campus,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(auth.UserID, 10),
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenExpiry)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.AccessTokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, now, nil
}

func (s *AuthService) audit(ctx context.Context, auth *models.AuthContext, action, ip, userAgent string) {
	userID := auth.UserID
	resourceID := strconv.FormatInt(auth.UserID, 10)
	if err := s.repo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &userID,
		Action:     action,
		Resource:   "auth",
		ResourceID: &resourceID,
		NewValues:  []byte(`{"status":"success"}`),
		IPAddress:  ip,
		UserAgent:  userAgent,
	}); err != nil {
		s.logger.Warn("failed to record auth audit log", zap.String("action", action), zap.Error(err))
	}
}
