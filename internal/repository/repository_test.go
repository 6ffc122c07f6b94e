package repository

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	return newRepoMockWithDriver(t, "sqlmock")
}

// newRepoMockWithDriver names the driver so sqlx rebinds placeholders the way it would in production.
func newRepoMockWithDriver(t *testing.T, driver string) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, driver), mock, func() { db.Close() }
}

func strPtr(s string) *string { return &s }
