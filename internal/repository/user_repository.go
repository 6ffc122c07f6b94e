package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/arts-admin-api/internal/models"
)

// UserRepository provides database access for back-office accounts and the audit trail.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns an admin user by email address, case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	const query = `SELECT id, email, password_hash, full_name, role, campus, active, last_login, created_at
        FROM admin_users WHERE LOWER(email) = ? LIMIT 1`
	var user models.AdminUser
	if err := r.db.GetContext(ctx, &user, r.db.Rebind(query), strings.ToLower(strings.TrimSpace(email))); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLastLogin stamps the login time.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int64, ts time.Time) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE admin_users SET last_login = ? WHERE id = ?`), ts, id); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// CreateAuditLog persists an audit trail entry.
func (r *UserRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_logs (user_id, action, resource, resource_id, new_values, ip_address, user_agent, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	var values interface{}
	if len(log.NewValues) > 0 {
		values = string(log.NewValues)
	}
	id, err := insertID(ctx, r.db, query, log.UserID, log.Action, log.Resource, log.ResourceID, values, log.IPAddress, log.UserAgent, log.CreatedAt)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	log.ID = id
	return nil
}
