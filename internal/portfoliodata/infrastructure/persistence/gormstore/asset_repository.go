package gormstore

import (
	"context"

	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/domain"
)

func (s *Store) InsertAsset(ctx context.Context, asset *domain.Asset) (uint, error) {
	model := toAssetModel(asset)
	model.ID = 0
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		return 0, insertFailed(err)
	}
	return model.ID, nil
}

// FindAssetID resolves by ISIN first, then WKN, then name. ISIN and WKN
// identify an instrument globally, the name is merely descriptive, so only
// the strongest identifier the asset carries is consulted.
func (s *Store) FindAssetID(ctx context.Context, asset *domain.Asset) (uint, bool) {
	query := s.db.WithContext(ctx).Model(&AssetModel{})
	switch {
	case asset.ISIN != "":
		query = query.Where("isin = ?", asset.ISIN)
	case asset.WKN != "":
		query = query.Where("wkn = ?", asset.WKN)
	default:
		query = query.Where("name = ?", asset.Name)
	}

	var model AssetModel
	if err := query.First(&model).Error; err != nil {
		return 0, false
	}
	return model.ID, true
}

func (s *Store) GetAsset(ctx context.Context, id uint) (*domain.Asset, error) {
	var model AssetModel
	if err := s.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, notFound(err, "asset", id)
	}
	return toAsset(&model), nil
}

func (s *Store) GetAllAssets(ctx context.Context) ([]domain.Asset, error) {
	var models []AssetModel
	if err := s.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	assets := make([]domain.Asset, len(models))
	for i := range models {
		assets[i] = *toAsset(&models[i])
	}
	return assets, nil
}

func (s *Store) UpdateAsset(ctx context.Context, asset *domain.Asset) error {
	if asset.ID == 0 {
		return notFoundUnstored("asset")
	}
	db := s.db.WithContext(ctx)
	var existing AssetModel
	if err := db.First(&existing, asset.ID).Error; err != nil {
		return notFound(err, "asset", asset.ID)
	}
	if err := db.Save(toAssetModel(asset)).Error; err != nil {
		return insertFailed(err)
	}
	return nil
}

func (s *Store) DeleteAsset(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&AssetModel{}, id).Error; err != nil {
		return insertFailed(err)
	}
	return nil
}
