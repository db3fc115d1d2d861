package database

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"starwars/internal/domain"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// DefaultURL is the file-backed store used when DATABASE_URL is unset.
	DefaultURL = "/tmp/test.db"
)

// Options tunes Connect. The zero value is fine for tests.
type Options struct {
	Logger gormlogger.Interface
}

// NormalizeURL resolves a DATABASE_URL into a driver name and a DSN that driver accepts.
// postgres:// is rewritten to postgresql://, sqlite:/// URLs become plain paths and
// sqlite DSNs always get foreign key enforcement switched on.
func NormalizeURL(raw string) (driver, dsn string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultURL
	}

	if strings.HasPrefix(raw, "postgres://") {
		raw = "postgresql://" + strings.TrimPrefix(raw, "postgres://")
	}
	if strings.HasPrefix(raw, "postgresql://") {
		return DriverPostgres, raw
	}

	if strings.HasPrefix(raw, "sqlite:///") {
		raw = strings.TrimPrefix(raw, "sqlite:///")
	} else if strings.HasPrefix(raw, "sqlite://") {
		raw = strings.TrimPrefix(raw, "sqlite://")
	}

	sep := "?"
	if strings.Contains(raw, "?") {
		sep = "&"
	}
	if !strings.Contains(raw, "foreign_keys") {
		raw += sep + "_pragma=foreign_keys(1)"
	}
	return DriverSQLite, raw
}

// Connect opens the store behind rawURL with default options.
func Connect(rawURL string) (*gorm.DB, error) {
	return ConnectWithOptions(rawURL, Options{})
}

func ConnectWithOptions(rawURL string, opts Options) (*gorm.DB, error) {
	driver, dsn := NormalizeURL(rawURL)

	cfg := &gorm.Config{TranslateError: true}
	if opts.Logger != nil {
		cfg.Logger = opts.Logger
	} else {
		cfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	if driver == DriverPostgres {
		logrus.Info("Connecting to PostgreSQL...")
		db, err := gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, nil
	}

	logrus.WithField("dsn", dsn).Info("Using SQLite")
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// A single connection keeps :memory: databases alive and avoids SQLITE_BUSY on writes.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the user, planet, character and favorite tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Planet{},
		&domain.Character{},
		&domain.Favorite{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
