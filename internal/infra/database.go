package infra

import (
	"time"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and migrates the
// write-model schema (categories, products, inventory transactions). The
// unique and foreign-key constraints declared on the models are what back
// the duplicate-key and referential-protection errors surfaced by the
// repositories.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Map pg error codes onto gorm.ErrDuplicatedKey / ErrForeignKeyViolated
		// so the repositories can translate them into sentinels.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.LedgerEntry{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
