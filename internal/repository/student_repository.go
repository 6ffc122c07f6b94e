package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/arts-admin-api/internal/models"
)

// StudentRepository manages persistence for student artist records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindStatus returns the membership status of a student. sql.ErrNoRows is returned untouched when absent.
func (r *StudentRepository) FindStatus(ctx context.Context, id int64) (models.StudentStatus, error) {
	var status models.StudentStatus
	if err := r.db.GetContext(ctx, &status, r.db.Rebind(`SELECT status FROM student_artists WHERE id = ?`), id); err != nil {
		return "", err
	}
	return status, nil
}

// UpdateCulturalGroup assigns group (nil clears it) to an active student and returns the matched row count.
// The status predicate keeps a student suspended between lookup and update untouched.
func (r *StudentRepository) UpdateCulturalGroup(ctx context.Context, id int64, group *string) (int64, error) {
	const query = `UPDATE student_artists SET cultural_group = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), group, id, models.StudentStatusActive)
	if err != nil {
		return 0, fmt.Errorf("update cultural group: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update cultural group rows: %w", err)
	}
	return affected, nil
}

// Profile loads a student together with their latest application, matched by sr_code or email.
func (r *StudentRepository) Profile(ctx context.Context, id int64) (*models.StudentProfile, error) {
	const query = `SELECT s.id, s.sr_code, s.first_name, s.middle_name, s.last_name, s.email, s.campus, s.college,
        s.cultural_group, s.status, s.created_at,
        a.program, a.year_level, a.performance_type, a.created_at AS application_date
        FROM student_artists s
        LEFT JOIN applications a ON a.id = (
            SELECT a2.id FROM applications a2
            WHERE a2.sr_code = s.sr_code OR a2.email = s.email
            ORDER BY a2.created_at DESC, a2.id DESC LIMIT 1
        )
        WHERE s.id = ?`
	var profile models.StudentProfile
	if err := r.db.GetContext(ctx, &profile, r.db.Rebind(query), id); err != nil {
		return nil, err
	}
	return &profile, nil
}
