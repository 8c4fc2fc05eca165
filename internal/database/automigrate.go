package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"project-config-api/internal/domain"
)

// models in dependency order: catalog, then projects, then configurations
var models = []schema.Tabler{
	&domain.PriceTable{},
	&domain.Category{},
	&domain.Item{},
	&domain.ItemVariation{},
	&domain.PriceTableEntry{},
	&domain.ConstructionProject{},
	&domain.ProjectRoom{},
	&domain.ProjectBathroom{},
	&domain.Configuration{},
	&domain.ConfigurationItem{},
}

// constraints GORM tags cannot express. Both postgres and sqlite accept partial indexes.
var constraints = []struct {
	name string
	sql  string
}{
	{
		name: "uq_price_tables_active_year",
		sql:  "CREATE UNIQUE INDEX IF NOT EXISTS uq_price_tables_active_year ON price_tables (year) WHERE is_active",
	},
}

// AutoMigrate creates or updates every table in one call
func AutoMigrate(db *gorm.DB) error {
	all := make([]interface{}, len(models))
	for i, m := range models {
		all[i] = m
	}
	if err := db.AutoMigrate(all...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return applyConstraints(db)
}

// SafeAutoMigrate migrates table by table so a failure names the table.
// Existing tables only receive added columns and indexes.
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()
	created := 0

	for _, m := range models {
		existed := migrator.HasTable(m)
		if err := db.AutoMigrate(m); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.TableName()),
				zap.Bool("table_existed", existed),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.TableName(), err)
		}
		if !existed {
			created++
			logger.Info("Created table", zap.String("table", m.TableName()))
		}
	}

	if err := applyConstraints(db); err != nil {
		logger.Error("Failed to apply constraints", zap.Error(err))
		return err
	}

	logger.Info("Auto-migration completed",
		zap.Int("tables", len(models)),
		zap.Int("created", created),
	)
	return nil
}

// SafeAutoMigrateWithRetry retries SafeAutoMigrate with a linear backoff (1s, 2s, ...)
func SafeAutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = SafeAutoMigrate(db, logger); err == nil {
			return nil
		}
		if attempt == maxRetries {
			break
		}
		backoff := time.Duration(attempt) * time.Second
		logger.Warn("Migration attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)
		time.Sleep(backoff)
	}
	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}

func applyConstraints(db *gorm.DB) error {
	for _, c := range constraints {
		if err := db.Exec(c.sql).Error; err != nil {
			return fmt.Errorf("failed to apply %s: %w", c.name, err)
		}
	}
	return nil
}
