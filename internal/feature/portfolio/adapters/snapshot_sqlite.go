// Package adapters provides persistence implementations for the portfolio feature.
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"wealthwise_gateway/internal/feature/portfolio/domain/entity"
	"wealthwise_gateway/internal/feature/portfolio/usecase"
)

type snapshotSQLite struct {
	db *gorm.DB
}

var _ usecase.SnapshotRepository = (*snapshotSQLite)(nil)

// NewSnapshotRepository creates a sqlite-backed SnapshotRepository.
func NewSnapshotRepository(db *gorm.DB) *snapshotSQLite {
	return &snapshotSQLite{db: db}
}

// HoldingModel is the persistence model for one snapshotted holding.
// Position preserves the dashboard ordering across restarts.
type HoldingModel struct {
	ID            string `gorm:"primaryKey;size:64"`
	Position      int    `gorm:"not null"`
	AssetType     string `gorm:"size:16;not null"`
	Symbol        string `gorm:"size:32;not null"`
	Quantity      float64 `gorm:"not null"`
	PurchasePrice float64 `gorm:"not null"`
	UpdatedAt     time.Time
}

func (HoldingModel) TableName() string {
	return "holdings_snapshot"
}

func toModel(h entity.Holding, pos int) HoldingModel {
	return HoldingModel{
		ID:            h.ID,
		Position:      pos,
		AssetType:     string(h.AssetType),
		Symbol:        h.Symbol,
		Quantity:      h.Quantity,
		PurchasePrice: h.PurchasePrice,
	}
}

func toEntity(m HoldingModel) entity.Holding {
	return entity.Holding{
		ID:            m.ID,
		AssetType:     entity.AssetType(m.AssetType),
		Symbol:        m.Symbol,
		Quantity:      m.Quantity,
		PurchasePrice: m.PurchasePrice,
	}
}

// Replace overwrites the snapshot with the given sequence. The previous rows
// are always discarded, mirroring the store's replace-all semantics.
func (r *snapshotSQLite) Replace(ctx context.Context, holdings []entity.Holding) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&HoldingModel{}).Error; err != nil {
			return err
		}
		if len(holdings) == 0 {
			return nil
		}
		models := make([]HoldingModel, 0, len(holdings))
		for i, h := range holdings {
			models = append(models, toModel(h, i))
		}
		return tx.Create(&models).Error
	})
}

// Load returns the snapshotted sequence in its original order.
func (r *snapshotSQLite) Load(ctx context.Context) ([]entity.Holding, error) {
	var models []HoldingModel
	if err := r.db.WithContext(ctx).Order("position asc").Find(&models).Error; err != nil {
		return nil, err
	}
	holdings := make([]entity.Holding, 0, len(models))
	for _, m := range models {
		holdings = append(holdings, toEntity(m))
	}
	return holdings, nil
}
