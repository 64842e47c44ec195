package mapping

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// ProcessedAuction is one handled-auction marker row.
type ProcessedAuction struct {
	AuctionID string    `gorm:"primaryKey;size:64"`
	HandledAt time.Time `gorm:"autoCreateTime"`
}

type dbStore struct {
	db *gorm.DB
}

func newDBStore(cfg Config, logger *zap.Logger) (*dbStore, error) {
	// Suppress GORM logging; the worker logger is the single output.
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var db *gorm.DB
	var err error
	switch cfg.Backend {
	case "mysql":
		userInfo := url.UserPassword(cfg.User, cfg.Password).String()
		port := cfg.Port
		if port <= 0 {
			port = 3306
		}
		dsn := fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			userInfo, cfg.Host, port, cfg.Name)
		db, err = gorm.Open(mysql.Open(dsn), gormConfig)
	default:
		db, err = gorm.Open(sqlite.Open(cfg.Path), gormConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open mapping database: %w", err)
	}

	if err := db.AutoMigrate(&ProcessedAuction{}); err != nil {
		return nil, fmt.Errorf("failed to migrate mapping database: %w", err)
	}

	logger.Info("Set database store as auctions mapping",
		zap.String("backend", cfg.Backend),
	)
	return &dbStore{db: db}, nil
}

// NewDBStoreFrom wraps an existing gorm connection. Used by tests.
func NewDBStoreFrom(db *gorm.DB) Store {
	return &dbStore{db: db}
}

func (s *dbStore) Has(ctx context.Context, key string) (bool, error) {
	var row ProcessedAuction
	err := s.db.WithContext(ctx).First(&row, "auction_id = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *dbStore) Put(ctx context.Context, key string) error {
	row := ProcessedAuction{AuctionID: key, HandledAt: time.Now()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}
