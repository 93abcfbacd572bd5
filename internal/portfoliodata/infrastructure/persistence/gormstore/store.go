// Package gormstore implements the storage contracts on top of GORM. The
// engine is chosen by the dialector the *gorm.DB was opened with (mysql,
// postgres or sqlite, see pkg/db), so one adapter serves every supported
// relational engine.
package gormstore

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/domain"
	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/infrastructure/persistence"
)

// Store satisfies AssetRepository, MarketDataRepository and
// TransactionRepository against a relational engine.
type Store struct {
	db *gorm.DB
}

// New wraps an opened gorm handle. The handle is assumed to be owned by a
// single logical caller; concurrent sharing needs external coordination.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the tables backing the store.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(
		&AssetModel{},
		&TickerModel{},
		&QuoteModel{},
		&RoundingDigitsModel{},
		&persistence.TransactionRecord{},
	)
}

// notFound translates an engine lookup failure into the NotFound kind.
func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", domain.ErrNotFound, what, id)
	}
	return fmt.Errorf("%w: %s %d: %v", domain.ErrNotFound, what, id, err)
}

// notFoundUnstored rejects an update on an entity that never got an id.
func notFoundUnstored(what string) error {
	return fmt.Errorf("%w: %s not yet stored", domain.ErrNotFound, what)
}

// insertFailed translates an engine write failure into the InsertFailed
// kind.
func insertFailed(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrInsertFailed, err)
}
