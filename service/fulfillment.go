package service

import (
	"github.com/rice-apps/rice-bikes-go/models"
)

// FulfillOrderRequests prices the requested item onto each listed
// transaction (one unit per entry, duplicates welcome) and drops the request
// reference from the transaction. A missing transaction aborts the remainder;
// work already persisted stays.
func (s *Service) FulfillOrderRequests(requestID uint, transactionIDs []uint) error {
	req, err := s.getOrderRequest(requestID, "Item")
	if err != nil {
		return err
	}
	if req.ItemID == nil || req.Item == nil {
		return BadRequest("order request %d has no item to fulfill", req.ID)
	}

	for _, id := range transactionIDs {
		trx, err := s.getTransaction(id)
		if err != nil {
			return err
		}

		price := s.unitPrice(trx, req.Item, nil)
		line := models.TransactionItem{TransactionID: trx.ID, ItemID: *req.ItemID, Price: price}
		if err := s.db.Create(&line).Error; err != nil {
			return Internal(err, "failed to attach item %d to transaction %d", *req.ItemID, trx.ID)
		}
		if err := s.db.Model(trx).Association("OrderRequests").Delete(&models.OrderRequest{ID: req.ID}); err != nil {
			return Internal(err, "failed to detach order request %d from transaction %d", req.ID, trx.ID)
		}
		trx.TotalCost = trx.TotalCost.Add(price)
		if err := s.db.Model(trx).Update("total_cost", trx.TotalCost).Error; err != nil {
			return Internal(err, "failed to update transaction %d total", trx.ID)
		}
	}
	return nil
}

// UnfulfillOrderRequests reverses fulfillment: removes one line matching the
// requested item from each listed transaction, restores the request
// reference, and refunds the rule price from the total.
func (s *Service) UnfulfillOrderRequests(requestID uint, transactionIDs []uint) error {
	req, err := s.getOrderRequest(requestID, "Item")
	if err != nil {
		return err
	}
	if req.ItemID == nil || req.Item == nil {
		return BadRequest("order request %d has no item to unfulfill", req.ID)
	}

	for _, id := range transactionIDs {
		trx, err := s.getTransaction(id, "Items")
		if err != nil {
			return err
		}

		for i, line := range trx.Items {
			if line.ItemID != *req.ItemID {
				continue
			}
			if err := s.db.Delete(&models.TransactionItem{}, line.ID).Error; err != nil {
				return Internal(err, "failed to remove item line %d", line.ID)
			}
			trx.Items = append(trx.Items[:i], trx.Items[i+1:]...)
			trx.TotalCost = trx.TotalCost.Sub(s.unitPrice(trx, req.Item, nil))
			if err := s.db.Model(trx).Update("total_cost", trx.TotalCost).Error; err != nil {
				return Internal(err, "failed to update transaction %d total", trx.ID)
			}
			break
		}
		if err := s.db.Model(trx).Association("OrderRequests").Append(&models.OrderRequest{ID: req.ID}); err != nil {
			return Internal(err, "failed to reattach order request %d to transaction %d", req.ID, trx.ID)
		}
	}
	return nil
}
