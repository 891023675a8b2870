package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pennywise/internal/config"
	"pennywise/internal/logger"
	"pennywise/internal/models"
)

// Config holds database configuration
type Config struct {
	Driver string
	URL    string
	Logger gormlogger.Interface
}

// NewConfig derives the database configuration from the application config.
func NewConfig(appConfig *config.Config) Config {
	return Config{
		Driver: appConfig.DBDriver,
		URL:    appConfig.DatabaseURL,
		Logger: logger.Gorm(appConfig.Env),
	}
}

func (c Config) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case config.DriverPostgres:
		return postgres.New(postgres.Config{DSN: c.URL}), nil
	case config.DriverSQLite:
		return sqlite.Open(c.URL), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// Manager handles database operations
type Manager struct {
	db     *gorm.DB
	config Config
}

// NewManager opens a database connection for the configured driver.
func NewManager(cfg Config) (*Manager, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{
		// Unique index violations surface as gorm.ErrDuplicatedKey.
		TranslateError: true,
	}
	if cfg.Logger != nil {
		gormConfig.Logger = cfg.Logger
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if cfg.Driver == config.DriverSQLite {
		// SQLite allows a single writer; serialise through one connection.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Manager{db: db, config: cfg}, nil
}

// Migrate brings the schema up to date. PostgreSQL uses the versioned SQL
// migrations; SQLite, used for local runs, is migrated from the models.
func (m *Manager) Migrate() error {
	logger.Get().Info("Running database migrations...")

	if m.config.Driver == config.DriverPostgres {
		return runSQLMigrations(m.config.URL)
	}

	if err := m.db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	logger.Get().Info("Database auto-migration completed successfully")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
