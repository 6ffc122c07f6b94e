package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/arts-admin-api/internal/models"
	"github.com/noah-isme/arts-admin-api/pkg/querybuilder"
)

var studentSearchColumns = []string{"first_name", "middle_name", "last_name", "email", "sr_code", "campus", "college"}

// DistributionRepository aggregates active student artists by campus, college and cultural group.
type DistributionRepository struct {
	db *sqlx.DB
}

// NewDistributionRepository constructs a DistributionRepository.
func NewDistributionRepository(db *sqlx.DB) *DistributionRepository {
	return &DistributionRepository{db: db}
}

func activeStudents(filter models.DistributionFilter) *querybuilder.Builder {
	return querybuilder.New().
		Equals("status", string(models.StudentStatusActive)).
		Equals("campus", filter.Campus).
		Search(filter.Search, studentSearchColumns...)
}

// ByCampus counts active students per campus. Percentages are relative to the same filtered population.
func (r *DistributionRepository) ByCampus(ctx context.Context, filter models.DistributionFilter) ([]models.DistributionRow, error) {
	filter.Campus = ""
	return r.percentages(ctx, "campus", activeStudents(filter))
}

// ByCollege counts active students per college, optionally within one campus.
func (r *DistributionRepository) ByCollege(ctx context.Context, filter models.DistributionFilter) ([]models.DistributionRow, error) {
	return r.percentages(ctx, "college", activeStudents(filter))
}

// ByCulturalGroup counts active students per group; blank and NULL groups are reported as Unassigned.
func (r *DistributionRepository) ByCulturalGroup(ctx context.Context) ([]models.DistributionRow, error) {
	const label = "COALESCE(NULLIF(cultural_group, ''), 'Unassigned')"
	b := activeStudents(models.DistributionFilter{})
	query := fmt.Sprintf(`SELECT %s AS label, COUNT(*) AS count, 0 AS percentage
        FROM student_artists WHERE %s GROUP BY %s ORDER BY count DESC, label ASC`, label, b.Predicates(), label)

	var rows []models.DistributionRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), b.Args()...); err != nil {
		return nil, fmt.Errorf("cultural group distribution: %w", err)
	}
	return rows, nil
}

// percentages groups by column; the subquery total and the outer WHERE share one predicate set so args bind twice.
func (r *DistributionRepository) percentages(ctx context.Context, column string, b *querybuilder.Builder) ([]models.DistributionRow, error) {
	label := fmt.Sprintf("COALESCE(NULLIF(%s, ''), 'Unspecified')", column)
	predicates := b.Predicates()
	query := fmt.Sprintf(`SELECT %s AS label, COUNT(*) AS count,
        COUNT(*) * 100.0 / (SELECT COUNT(*) FROM student_artists WHERE %s) AS percentage
        FROM student_artists WHERE %s GROUP BY %s ORDER BY count DESC, label ASC`, label, predicates, predicates, label)

	var rows []models.DistributionRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), b.Twice()...); err != nil {
		return nil, fmt.Errorf("%s distribution: %w", column, err)
	}
	return rows, nil
}
