package postgres

import (
	"fmt"
	"time"

	"callcenter/internal/adapters/out/postgres/memberrepo"
	"callcenter/internal/adapters/out/postgres/orderrepo"
	"callcenter/internal/adapters/out/postgres/sessionrepo"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionSettings describes how to reach the PostgreSQL server.
type ConnectionSettings struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the settings as a libpq key/value connection string.
func (s ConnectionSettings) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.DBName, s.SSLMode,
	)
}

// Open connects to PostgreSQL and configures the pool.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Migrate creates or updates the members, call_sessions and orders tables.
// Members come first because sessions reference them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&memberrepo.MemberDTO{},
		&sessionrepo.SessionDTO{},
		&orderrepo.OrderDTO{},
	)
}
