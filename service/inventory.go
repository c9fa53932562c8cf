package service

import (
	"gorm.io/gorm"

	"github.com/rice-apps/rice-bikes-go/models"
)

// adjustStock applies a signed delta as a single atomic column update.
// Negative stock is allowed; the shop reconciles on the next count.
func adjustStock(db *gorm.DB, itemID uint, delta int) error {
	err := db.Model(&models.Item{}).
		Where("id = ?", itemID).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta)).Error
	if err != nil {
		return Internal(err, "failed to adjust stock for item %d", itemID)
	}
	return nil
}

// AdjustItemStock is the manual ledger entry point. Managed items have no
// tracked stock.
func (s *Service) AdjustItemStock(itemID uint, delta int) (*models.Item, error) {
	item, err := s.getItem(itemID)
	if err != nil {
		return nil, err
	}
	if item.Managed {
		return nil, Forbidden("stock is not tracked for managed item %q", item.Name)
	}
	if err := adjustStock(s.db, itemID, delta); err != nil {
		return nil, err
	}
	return s.getItem(itemID)
}

// LowStockItems lists sellable items at or below their warning threshold.
func (s *Service) LowStockItems() ([]models.Item, error) {
	var items []models.Item
	err := s.db.
		Where("managed = ? AND disabled = ? AND stock <= warning_stock", false, false).
		Order("stock ASC").
		Find(&items).Error
	if err != nil {
		return nil, Internal(err, "failed to list low stock items")
	}
	return items, nil
}
