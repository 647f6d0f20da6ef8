package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const migrateLockID int64 = 58120417

// Schema describes what a service needs migrated at startup.
type Schema struct {
	Models []any
	// Statements run after AutoMigrate, e.g. partial unique indexes.
	Statements []string
}

// Open connects to Postgres and migrates schema under an advisory lock so
// that replicas starting together do not race.
func Open(dsn string, schema Schema) (*gorm.DB, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := withMigrationLock(db, func(tx *gorm.DB) error {
		if len(schema.Models) > 0 {
			if err := tx.AutoMigrate(schema.Models...); err != nil {
				return fmt.Errorf("auto migrate: %w", err)
			}
		}
		for _, stmt := range schema.Statements {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("migrate statement: %w", err)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return db, nil
}

func withMigrationLock(db *gorm.DB, fn func(*gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("open sql conn: %w", err)
	}
	defer conn.Close()
	if err := execAdvisory(ctx, conn, "SELECT pg_advisory_lock($1)", migrateLockID); err != nil {
		return fmt.Errorf("acquire migrate lock: %w", err)
	}
	defer func() {
		_ = execAdvisory(context.Background(), conn, "SELECT pg_advisory_unlock($1)", migrateLockID)
	}()
	return fn(db)
}

func execAdvisory(ctx context.Context, conn *sql.Conn, query string, lockID int64) error {
	_, err := conn.ExecContext(ctx, query, lockID)
	return err
}

// ErrDuplicate is returned by service stores when a write would break a
// uniqueness rule. In-memory stores return it directly; GORM stores convert
// gorm.ErrDuplicatedKey into it.
var ErrDuplicate = errors.New("duplicate key")

// IsDuplicate reports a unique-constraint violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate) || errors.Is(err, gorm.ErrDuplicatedKey)
}

// TranslateDuplicate maps gorm.ErrDuplicatedKey to ErrDuplicate and passes
// other errors through.
func TranslateDuplicate(err error) error {
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// IsNotFound reports gorm's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
