package database

import (
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/noah-isme/arts-admin-api/pkg/config"
)

// Open returns a configured client for the driver named in cfg. Queries written with `?` placeholders are
// rebound per driver by sqlx.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	driver, dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// DSN builds the driver name and connection string.
func DSN(cfg config.DatabaseConfig) (string, string, error) {
	switch cfg.Driver {
	case "", config.DriverPostgres:
		return config.DriverPostgres, fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.SSLMode,
		), nil
	case config.DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		mc.DBName = cfg.Name
		mc.ParseTime = true
		mc.Loc = time.UTC
		// Report matched rather than changed rows so a repeated identical UPDATE still counts as applied.
		mc.ClientFoundRows = true
		return config.DriverMySQL, mc.FormatDSN(), nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
