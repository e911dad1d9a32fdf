package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CardEntry is one row of the card catalog table.
type CardEntry struct {
	SetID      string `gorm:"column:set_id;primaryKey"`
	Number     string `gorm:"column:card_number;primaryKey"`
	ProviderID string `gorm:"column:provider_id"`
	Name       string `gorm:"column:name"`
}

// TableName maps the model to the catalog table.
func (CardEntry) TableName() string { return "card_catalog" }

// DBLookup resolves provider IDs from a MySQL catalog table.
type DBLookup struct {
	db *gorm.DB
}

// NewDBLookup wraps an existing connection.
func NewDBLookup(db *gorm.DB) *DBLookup {
	return &DBLookup{db: db}
}

// Connect establishes the catalog database connection.
func Connect(cfg Config) (*gorm.DB, error) {
	// Special characters in the password must be URL encoded for the DSN.
	userInfo := url.UserPassword(cfg.User, cfg.Password).String()

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	dsn := fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		userInfo, cfg.Host, cfg.Port, cfg.Name, timeout, timeout, timeout)

	// Suppress GORM logging; the application logger owns all output.
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to catalog database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping catalog database: %w", err)
	}

	return db, nil
}

// ProviderID looks up the provider-internal ID for one card.
func (l *DBLookup) ProviderID(ctx context.Context, setID, number string) (string, error) {
	var entry CardEntry
	err := l.db.WithContext(ctx).
		Where("set_id = ? AND card_number = ?", setID, number).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUnknownCard
		}
		return "", fmt.Errorf("catalog query failed: %w", err)
	}
	if entry.ProviderID == "" {
		return "", ErrUnknownCard
	}
	return entry.ProviderID, nil
}
