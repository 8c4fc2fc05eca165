package metrics

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// UpdateDBStats publishes a connection pool snapshot.
// sql.DBStats wait counters are cumulative; only their growth is added.
func (m *Metrics) UpdateDBStats(stats sql.DBStats) {
	m.safeExecute("UpdateDBStats", func() {
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
		m.DBConnectionsMax.Set(float64(stats.MaxOpenConnections))

		m.poolMu.Lock()
		defer m.poolMu.Unlock()
		if grown := stats.WaitCount - m.lastWaitCount; grown > 0 {
			m.DBConnectionWaitTotal.Add(float64(grown))
		}
		if grown := stats.WaitDuration - m.lastWaitDuration; grown > 0 {
			m.DBConnectionWaitDuration.Add(grown.Seconds())
		}
		m.lastWaitCount = stats.WaitCount
		m.lastWaitDuration = stats.WaitDuration
	})
}

// RecordDBQuery records one GORM operation against a table.
// Lookups that find no row are not query errors.
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute("RecordDBQuery", func() {
		operation = strings.ToLower(operation)
		m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())

		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			m.DBQueryErrors.WithLabelValues(operation, table).Inc()
		}
	})
}
