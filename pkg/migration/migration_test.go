package migration

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type note struct {
	ID   uint
	Body string
}

type tag struct {
	ID   uint
	Name string
}

type createTable struct{ model any }

func (m createTable) Up(db *gorm.DB) error { return db.AutoMigrate(m.model) }
func (m createTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(m.model)
}

type failing struct{}

func (failing) Up(*gorm.DB) error   { return errors.New("nope") }
func (failing) Down(*gorm.DB) error { return nil }

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestRunner_RunRollbackStatus(t *testing.T) {
	db := openDB(t)
	var out bytes.Buffer

	// Registered out of order; the runner sorts by name.
	r := newRunner(db, &out, []registeredMigration{
		{name: "20260101000001_create_tags", m: createTable{&tag{}}},
		{name: "20260101000000_create_notes", m: createTable{&note{}}},
	})

	require.NoError(t, r.Run())
	assert.True(t, db.Migrator().HasTable(&note{}))
	assert.True(t, db.Migrator().HasTable(&tag{}))
	assert.Less(t, bytes.Index(out.Bytes(), []byte("create_notes")), bytes.Index(out.Bytes(), []byte("create_tags")))

	pending, err := r.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)

	out.Reset()
	require.NoError(t, r.Run())
	assert.Contains(t, out.String(), "Nothing to migrate.")

	out.Reset()
	require.NoError(t, r.Status())
	assert.Contains(t, out.String(), "Ran")

	require.NoError(t, r.Rollback())
	assert.False(t, db.Migrator().HasTable(&note{}))
	assert.False(t, db.Migrator().HasTable(&tag{}))

	out.Reset()
	require.NoError(t, r.Rollback())
	assert.Contains(t, out.String(), "Nothing to roll back.")
}

func TestRunner_BatchesAreIndependent(t *testing.T) {
	db := openDB(t)
	var out bytes.Buffer

	first := newRunner(db, &out, []registeredMigration{
		{name: "001_notes", m: createTable{&note{}}},
	})
	require.NoError(t, first.Run())

	second := newRunner(db, &out, []registeredMigration{
		{name: "001_notes", m: createTable{&note{}}},
		{name: "002_tags", m: createTable{&tag{}}},
	})
	require.NoError(t, second.Run())

	require.NoError(t, second.Rollback())
	assert.True(t, db.Migrator().HasTable(&note{}), "batch 1 survives rollback of batch 2")
	assert.False(t, db.Migrator().HasTable(&tag{}))
}

func TestRunner_FailedMigrationIsNotRecorded(t *testing.T) {
	db := openDB(t)
	r := newRunner(db, &bytes.Buffer{}, []registeredMigration{
		{name: "001_broken", m: failing{}},
	})

	err := r.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "001_broken up")

	pending, err := r.Pending()
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
