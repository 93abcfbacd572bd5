package gormstore

import (
	"context"

	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/domain"
	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/infrastructure/persistence"
)

func (s *Store) InsertTransaction(ctx context.Context, transaction *domain.Transaction) (uint, error) {
	record := persistence.EncodeTransaction(transaction)
	record.ID = 0
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return 0, insertFailed(err)
	}
	return record.ID, nil
}

func (s *Store) GetTransaction(ctx context.Context, id uint) (*domain.Transaction, error) {
	var record persistence.TransactionRecord
	if err := s.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, notFound(err, "transaction", id)
	}
	return record.Decode()
}

func (s *Store) GetAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var records []persistence.TransactionRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	transactions := make([]domain.Transaction, len(records))
	for i := range records {
		t, err := records[i].Decode()
		if err != nil {
			return nil, err
		}
		transactions[i] = *t
	}
	return transactions, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, transaction *domain.Transaction) error {
	if transaction.ID == 0 {
		return notFoundUnstored("transaction")
	}
	db := s.db.WithContext(ctx)
	var existing persistence.TransactionRecord
	if err := db.First(&existing, transaction.ID).Error; err != nil {
		return notFound(err, "transaction", transaction.ID)
	}
	if err := db.Save(persistence.EncodeTransaction(transaction)).Error; err != nil {
		return insertFailed(err)
	}
	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&persistence.TransactionRecord{}, id).Error; err != nil {
		return insertFailed(err)
	}
	return nil
}
