package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type indexDef struct {
	table   string
	name    string
	columns string
}

// listIndexes back the ORDER BY clauses of the list views.
var listIndexes = []indexDef{
	{"announcements", "idx_announcements_pinned_published", "pinned DESC, published_at DESC"},
	{"schedule_events", "idx_schedule_events_date_start", "date, start_time"},
	{"attendance", "idx_attendance_date", "date"},
	{"reflections", "idx_reflections_date", "date"},
	{"documents", "idx_documents_required_created", "is_required DESC, created_at DESC"},
	{"documents", "idx_documents_category", "category"},
}

// AddIndexes adds the list-ordering indexes that AutoMigrate cannot express.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()
	for _, idx := range listIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("Index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("Created index", zap.String("index", idx.name), zap.String("table", idx.table))
	}

	return nil
}

// MigrateDatabase runs AutoMigrate followed by AddIndexes.
func MigrateDatabase(db *gorm.DB, log *zap.Logger) error {
	if err := Migrate(db, log); err != nil {
		return err
	}
	if err := AddIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}
	return nil
}
