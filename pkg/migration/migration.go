// Package migration provides a batched database migration runner.
//
// Usage (in database/migrations):
//
//	func init() {
//	    migration.Register("20260101000000_create_products_table", &CreateProductsTable{})
//	}
//
//	type CreateProductsTable struct{}
//	func (m *CreateProductsTable) Up(db *gorm.DB) error {
//	    return db.AutoMigrate(&models.Product{})
//	}
//	func (m *CreateProductsTable) Down(db *gorm.DB) error {
//	    return db.Migrator().DropTable("products")
//	}
//
// Run from CLI:
//
//	storefront migrate             // run all pending
//	storefront migrate:rollback    // rollback last batch
package migration

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	// Up applies the migration.
	Up(db *gorm.DB) error
	// Down reverses the migration.
	Down(db *gorm.DB) error
}

// migrationRecord is the GORM model stored in the tracking table.
type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "schema_migrations" }

// ------------------- Registry -------------------

type registeredMigration struct {
	name string
	m    Migration
}

var registry []registeredMigration

// Register adds a migration to the global registry.
// name should be a timestamp-prefixed string, e.g. "20260101000000_create_products_table".
func Register(name string, m Migration) {
	registry = append(registry, registeredMigration{name: name, m: m})
}

// ------------------- Runner -------------------

// Runner executes and tracks migrations.
type Runner struct {
	db         *gorm.DB
	out        io.Writer
	migrations []registeredMigration
}

// New creates a Runner over every registered migration. Progress lines are
// written to out.
func New(db *gorm.DB, out io.Writer) *Runner {
	return newRunner(db, out, registry)
}

func newRunner(db *gorm.DB, out io.Writer, ms []registeredMigration) *Runner {
	sorted := append([]registeredMigration(nil), ms...)
	// Timestamps sort lexicographically.
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })
	return &Runner{db: db, out: out, migrations: sorted}
}

// EnsureTable creates the tracking table if it does not exist.
func (r *Runner) EnsureTable() error {
	return r.db.AutoMigrate(&migrationRecord{})
}

// Pending returns the migrations that have not yet been run.
func (r *Runner) Pending() ([]registeredMigration, error) {
	ran, err := r.ranByName()
	if err != nil {
		return nil, err
	}

	var pending []registeredMigration
	for _, reg := range r.migrations {
		if _, ok := ran[reg.name]; !ok {
			pending = append(pending, reg)
		}
	}
	return pending, nil
}

// Run executes all pending migrations in a single batch. Each migration and
// its tracking row commit together.
func (r *Runner) Run() error {
	if err := r.EnsureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	pending, err := r.Pending()
	if err != nil {
		return fmt.Errorf("migration: fetch pending: %w", err)
	}

	if len(pending) == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return nil
	}

	batch, err := r.lastBatch()
	if err != nil {
		return err
	}
	batch++

	for _, reg := range pending {
		logger.Info("migration: running", "name", reg.name)
		fmt.Fprintf(r.out, "  ▶ Migrating: %s\n", reg.name)

		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := reg.m.Up(tx); err != nil {
				return fmt.Errorf("migration: %s up: %w", reg.name, err)
			}
			if err := tx.Create(&migrationRecord{Name: reg.name, Batch: batch}).Error; err != nil {
				return fmt.Errorf("migration: record %s: %w", reg.name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(r.out, "  ✅ Migrated:  %s\n", reg.name)
	}

	logger.Info("migration: done", "ran", len(pending), "batch", batch)
	return nil
}

// Rollback reverses all migrations from the most recent batch.
func (r *Runner) Rollback() error {
	if err := r.EnsureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	last, err := r.lastBatch()
	if err != nil {
		return err
	}
	if last == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return nil
	}

	var records []migrationRecord
	if err := r.db.Where("batch = ?", last).Order("id desc").Find(&records).Error; err != nil {
		return err
	}

	byName := make(map[string]Migration, len(r.migrations))
	for _, reg := range r.migrations {
		byName[reg.name] = reg.m
	}

	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return fmt.Errorf("migration: cannot rollback %s: not registered", rec.Name)
		}

		fmt.Fprintf(r.out, "  ◀ Rolling back: %s\n", rec.Name)
		logger.Info("migration: rolling back", "name", rec.Name)

		if err := m.Down(r.db); err != nil {
			return fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.db.Delete(&rec).Error; err != nil {
			return err
		}

		fmt.Fprintf(r.out, "  ✅ Rolled back:  %s\n", rec.Name)
	}

	return nil
}

// Status prints all migrations and whether each has been run.
func (r *Runner) Status() error {
	if err := r.EnsureTable(); err != nil {
		return err
	}

	ran, err := r.ranByName()
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "%-60s  %-8s  %s\n", "Migration", "Status", "Batch")
	fmt.Fprintln(r.out, strings.Repeat("─", 80))
	for _, reg := range r.migrations {
		if rec, ok := ran[reg.name]; ok {
			fmt.Fprintf(r.out, "%-60s  %-8s  %d\n", reg.name, "Ran", rec.Batch)
		} else {
			fmt.Fprintf(r.out, "%-60s  %-8s  -\n", reg.name, "Pending")
		}
	}
	return nil
}

func (r *Runner) ranByName() (map[string]migrationRecord, error) {
	var ran []migrationRecord
	if err := r.db.Find(&ran).Error; err != nil {
		return nil, err
	}

	out := make(map[string]migrationRecord, len(ran))
	for _, rec := range ran {
		out[rec.Name] = rec
	}
	return out, nil
}

func (r *Runner) lastBatch() (int, error) {
	var maxBatch struct{ Max int }
	err := r.db.Model(&migrationRecord{}).Select("COALESCE(MAX(batch), 0) as max").Scan(&maxBatch).Error
	if err != nil {
		return 0, fmt.Errorf("migration: read batch: %w", err)
	}
	return maxBatch.Max, nil
}
