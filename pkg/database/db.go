// Package database owns the process-wide gorm connection.
//
// The entry point opens one Database and hands it to every repository and
// service that needs it; nothing in the module reaches for a global handle.
//
//	db, err := database.Open(config.DatabaseDriver(), config.DatabaseDSN())
//	defer db.Close()
package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps a *gorm.DB with explicit lifecycle and transaction helpers.
type Database struct {
	conn *gorm.DB
}

// Open builds the dialector for driver, opens the pool and verifies it with
// a ping. The returned handle must be closed by the caller.
func Open(driver, dsn string) (*Database, error) {
	dialector, err := buildDialector(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: build dialector: %w", err)
	}

	conn, err := gorm.Open(dialector, Config())
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("database: get sql.DB: %w", err)
	}

	if driver == "sqlite" {
		// SQLite serialises writers; a single connection avoids SQLITE_BUSY
		// and keeps in-memory databases alive for the life of the pool.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return New(conn)
}

// New wraps an existing gorm connection, e.g. one built over go-sqlmock.
func New(conn *gorm.DB) (*Database, error) {
	if err := RegisterMetrics(conn); err != nil {
		return nil, fmt.Errorf("database: register metrics: %w", err)
	}
	return &Database{conn: conn}, nil
}

// Config is the gorm configuration shared by Open and test harnesses.
func Config() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // use pkg/logger, not GORM's own
		TranslateError: true,
	}
}

// Conn returns the connection bound to ctx.
func (d *Database) Conn(ctx context.Context) *gorm.DB {
	return d.conn.WithContext(ctx)
}

// Transaction runs fn inside a single database transaction. Returning an
// error from fn rolls everything back.
func (d *Database) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.conn.WithContext(ctx).Transaction(fn)
}

// Ping checks that the pool can still reach the server.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying pool.
func (d *Database) Close() error {
	sqlDB, err := d.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlserver":
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", driver)
	}
}
