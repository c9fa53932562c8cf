package service

import (
	"github.com/shopspring/decimal"

	"github.com/rice-apps/rice-bikes-go/models"
)

// taxEpsilon keeps rounding residue from materializing as a tax line.
var taxEpsilon = decimal.NewFromFloat(0.001)

// unitPrice picks the price an item sells at on this transaction. A custom
// price is honored only for used items; employee transactions pay wholesale
// times the configured multiplier when a wholesale cost is known.
func (s *Service) unitPrice(trx *models.Transaction, item *models.Item, customPrice *decimal.Decimal) decimal.Decimal {
	if customPrice != nil && item.Condition == models.ItemConditionUsed {
		return *customPrice
	}
	if trx.Employee && item.WholesaleCost.IsPositive() {
		return item.WholesaleCost.Mul(s.cfg.EmployeePriceMultiplier).Round(2)
	}
	return item.StandardPrice
}

// AddItem attaches an item to a transaction at the resolved price, then
// rederives the tax line. The line is durable before tax is touched.
func (s *Service) AddItem(transactionID, itemID uint, customPrice *decimal.Decimal, actorID uint) (*models.Transaction, error) {
	actor, err := s.requireUser(actorID)
	if err != nil {
		return nil, err
	}
	trx, err := s.getTransaction(transactionID, "Items.Item")
	if err != nil {
		return nil, err
	}
	item, err := s.getItem(itemID)
	if err != nil {
		return nil, err
	}

	price := s.unitPrice(trx, item, customPrice)
	line := models.TransactionItem{TransactionID: trx.ID, ItemID: item.ID, Price: price}
	if err := s.db.Create(&line).Error; err != nil {
		return nil, Internal(err, "failed to attach item %d to transaction %d", itemID, transactionID)
	}
	line.Item = *item
	trx.Items = append(trx.Items, line)
	trx.TotalCost = trx.TotalCost.Add(price)
	if err := s.db.Model(trx).Update("total_cost", trx.TotalCost).Error; err != nil {
		return nil, Internal(err, "failed to update transaction %d total", transactionID)
	}

	if err := s.recalculateTax(trx); err != nil {
		return nil, err
	}
	if err := s.logAction(trx.ID, actor.ID, "Added Item %s", item.Name); err != nil {
		return nil, err
	}
	return s.loadTransaction(trx.ID)
}

// RemoveItem takes one line off a transaction and rederives tax. Managed
// lines belong to the system and stay put.
func (s *Service) RemoveItem(transactionID, lineID uint, actorID uint) (*models.Transaction, error) {
	actor, err := s.requireUser(actorID)
	if err != nil {
		return nil, err
	}
	trx, err := s.getTransaction(transactionID, "Items.Item")
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, line := range trx.Items {
		if line.ID == lineID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, NotFound("item line %d not found on transaction %d", lineID, transactionID)
	}
	line := trx.Items[idx]
	if line.Item.Managed {
		return nil, Forbidden("%s cannot be removed from a transaction", line.Item.Name)
	}

	if err := s.db.Delete(&models.TransactionItem{}, line.ID).Error; err != nil {
		return nil, Internal(err, "failed to remove item line %d", line.ID)
	}
	trx.Items = append(trx.Items[:idx], trx.Items[idx+1:]...)
	trx.TotalCost = trx.TotalCost.Sub(line.Price)
	if err := s.db.Model(trx).Update("total_cost", trx.TotalCost).Error; err != nil {
		return nil, Internal(err, "failed to update transaction %d total", transactionID)
	}

	if err := s.recalculateTax(trx); err != nil {
		return nil, err
	}
	if err := s.logAction(trx.ID, actor.ID, "Deleted Item %s", line.Item.Name); err != nil {
		return nil, err
	}
	return s.loadTransaction(trx.ID)
}

// recalculateTax drops any existing tax line, refunds it from the total, and
// appends a fresh one at the configured rate truncated to cents. Transactions
// created before the tax start date are never taxed. The caller's trx must
// have Items loaded; the slice and total are updated in place.
func (s *Service) recalculateTax(trx *models.Transaction) error {
	if trx.DateCreated.Before(s.cfg.TaxStartDate) {
		return nil
	}
	taxItem, err := s.taxItem()
	if err != nil {
		return err
	}

	kept := trx.Items[:0]
	for _, line := range trx.Items {
		if line.ItemID == taxItem.ID {
			if err := s.db.Delete(&models.TransactionItem{}, line.ID).Error; err != nil {
				return Internal(err, "failed to remove tax line %d", line.ID)
			}
			trx.TotalCost = trx.TotalCost.Sub(line.Price)
			continue
		}
		kept = append(kept, line)
	}
	trx.Items = kept

	tax := s.cfg.TaxRate.Mul(trx.TotalCost).Truncate(2)
	if tax.GreaterThan(taxEpsilon) {
		line := models.TransactionItem{TransactionID: trx.ID, ItemID: taxItem.ID, Price: tax}
		if err := s.db.Create(&line).Error; err != nil {
			return Internal(err, "failed to add tax line to transaction %d", trx.ID)
		}
		line.Item = *taxItem
		trx.Items = append(trx.Items, line)
		trx.TotalCost = trx.TotalCost.Add(tax)
	}

	if err := s.db.Model(trx).Update("total_cost", trx.TotalCost).Error; err != nil {
		return Internal(err, "failed to update transaction %d total", trx.ID)
	}
	return nil
}

func (s *Service) taxItem() (*models.Item, error) {
	var item models.Item
	err := s.db.Where("name = ? AND managed = ?", s.cfg.TaxItemName, true).First(&item).Error
	if err != nil {
		return nil, Internal(err, "tax item %q is not seeded", s.cfg.TaxItemName)
	}
	return &item, nil
}
