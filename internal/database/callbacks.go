package database

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

const queryStartKey = "metrics:query_start"

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats sql.DBStats)
}

// RegisterMetricsCallbacks times every select/insert/update/delete and reports it per table
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	cb := db.Callback()
	register(cb.Query().Before("gorm:query"), cb.Query().After("gorm:query"), "select", recorder)
	register(cb.Create().Before("gorm:create"), cb.Create().After("gorm:create"), "insert", recorder)
	register(cb.Update().Before("gorm:update"), cb.Update().After("gorm:update"), "update", recorder)
	register(cb.Delete().Before("gorm:delete"), cb.Delete().After("gorm:delete"), "delete", recorder)
}

// callbackRegisterer is satisfied by gorm's Before/After callback builders
type callbackRegisterer interface {
	Register(name string, fn func(*gorm.DB)) error
}

func register(before, after callbackRegisterer, operation string, recorder MetricsRecorder) {
	_ = before.Register("metrics:"+operation+"_before", func(db *gorm.DB) {
		db.InstanceSet(queryStartKey, time.Now())
	})
	_ = after.Register("metrics:"+operation+"_after", func(db *gorm.DB) {
		startTime, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		recorder.RecordDBQuery(operation, table, time.Since(startTime.(time.Time)), db.Error)
	})
}

// StartDBStatsCollector publishes connection pool stats every interval until done is closed
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder, interval time.Duration) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
