package metrics

// Save triggers
const (
	TriggerExplicit = "explicit"
	TriggerAutosave = "autosave"
	TriggerToggle   = "toggle"
)

// Export destinations
const (
	ExportInline = "inline"
	ExportS3     = "s3"
)

// IncrementConfigurationCreated increments configuration creation counter
func (m *Metrics) IncrementConfigurationCreated() {
	m.safeExecute("IncrementConfigurationCreated", func() {
		m.ConfigurationCreatedTotal.Inc()
	})
}

// IncrementConfigurationSaved counts a persisted save by what triggered it
func (m *Metrics) IncrementConfigurationSaved(trigger string) {
	m.safeExecute("IncrementConfigurationSaved", func() {
		m.ConfigurationSavedTotal.WithLabelValues(trigger).Inc()
	})
}

func (m *Metrics) IncrementConfigurationCompleted() {
	m.safeExecute("IncrementConfigurationCompleted", func() {
		m.ConfigurationCompletedTotal.Inc()
	})
}

func (m *Metrics) IncrementConfigurationLocked() {
	m.safeExecute("IncrementConfigurationLocked", func() {
		m.ConfigurationLockedTotal.Inc()
	})
}

func (m *Metrics) IncrementConfigurationDuplicated() {
	m.safeExecute("IncrementConfigurationDuplicated", func() {
		m.ConfigurationDuplicatedTotal.Inc()
	})
}

// IncrementConfigurationExported counts an export by destination (inline or s3)
func (m *Metrics) IncrementConfigurationExported(destination string) {
	m.safeExecute("IncrementConfigurationExported", func() {
		m.ConfigurationExportedTotal.WithLabelValues(destination).Inc()
	})
}

// IncrementSaveRejected counts a refused save, reason is an error code such as CONFIGURATION_LOCKED
func (m *Metrics) IncrementSaveRejected(reason string) {
	m.safeExecute("IncrementSaveRejected", func() {
		m.SaveRejectedTotal.WithLabelValues(reason).Inc()
	})
}

// RecordSnapshotCache records a snapshot cache hit or miss
func (m *Metrics) RecordSnapshotCache(hit bool) {
	m.safeExecute("RecordSnapshotCache", func() {
		result := "miss"
		if hit {
			result = "hit"
		}
		m.SnapshotCacheTotal.WithLabelValues(result).Inc()
	})
}

// SetConfigurationsTotal sets total configurations gauge
func (m *Metrics) SetConfigurationsTotal(count int64) {
	m.safeExecute("SetConfigurationsTotal", func() {
		m.ConfigurationsTotal.Set(float64(count))
	})
}

// SetConfigurationsLocked sets locked configurations gauge
func (m *Metrics) SetConfigurationsLocked(count int64) {
	m.safeExecute("SetConfigurationsLocked", func() {
		m.ConfigurationsLocked.Set(float64(count))
	})
}

// SetOrphanedSelections sets orphaned selections gauge
func (m *Metrics) SetOrphanedSelections(count int64) {
	m.safeExecute("SetOrphanedSelections", func() {
		m.OrphanedSelections.Set(float64(count))
	})
}
