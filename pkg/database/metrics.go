package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

const startedAtKey = "storefront:started_at"

// RegisterMetrics hooks gorm's callback chain so every statement lands in
// the storefront_db_query_duration_seconds histogram.
func RegisterMetrics(db *gorm.DB) error {
	cb := db.Callback()

	hooks := []struct {
		op     string
		before func(name string, fn func(*gorm.DB)) error
		after  func(name string, fn func(*gorm.DB)) error
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, h := range hooks {
		if err := h.before("metrics:before_"+h.op, markStart); err != nil {
			return err
		}
		if err := h.after("metrics:after_"+h.op, observe(h.op)); err != nil {
			return err
		}
	}
	return nil
}

func markStart(db *gorm.DB) {
	db.InstanceSet(startedAtKey, time.Now())
}

func observe(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(startedAtKey)
		if !ok {
			return
		}
		if start, ok := v.(time.Time); ok {
			metrics.ObserveDBQuery(op, start)
		}
	}
}
