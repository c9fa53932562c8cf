package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rice-apps/rice-bikes-go/models"
)

func (s *Service) CreateOrder(supplier string) (*models.Order, error) {
	if supplier == "" {
		return nil, BadRequest("supplier is required")
	}
	order := models.Order{
		Supplier:    supplier,
		Status:      models.OrderStatusInCart,
		DateCreated: time.Now().UTC(),
	}
	if err := s.db.Create(&order).Error; err != nil {
		return nil, Internal(err, "failed to create order")
	}
	return s.loadOrder(order.ID)
}

// SetOrderStatus moves an order through In Cart, Ordered and Completed.
// Entering Completed receives every line into stock and fulfills its
// transactions; leaving Completed reverses both. Line request statuses
// mirror the order on every transition.
func (s *Service) SetOrderStatus(orderID uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, BadRequest("invalid order status %q", status)
	}
	order, err := s.getOrder(orderID, "Items.Item", "Items.Transactions")
	if err != nil {
		return nil, err
	}
	if order.Status == status {
		return s.loadOrder(order.ID)
	}
	prev := order.Status
	now := time.Now().UTC()

	if prev == models.OrderStatusCompleted {
		for _, req := range order.Items {
			if req.ItemID != nil {
				if err := adjustStock(s.db, *req.ItemID, -req.Quantity); err != nil {
					return nil, err
				}
			}
			if err := s.UnfulfillOrderRequests(req.ID, transactionIDs(req.Transactions)); err != nil {
				return nil, err
			}
		}
	}
	if status == models.OrderStatusCompleted {
		for _, req := range order.Items {
			if req.ItemID != nil {
				if err := adjustStock(s.db, *req.ItemID, req.Quantity); err != nil {
					return nil, err
				}
			}
			if err := s.FulfillOrderRequests(req.ID, transactionIDs(req.Transactions)); err != nil {
				return nil, err
			}
		}
	}

	updates := map[string]interface{}{"status": status}
	switch status {
	case models.OrderStatusInCart:
		updates["date_submitted"] = nil
		updates["date_completed"] = nil
	case models.OrderStatusOrdered:
		updates["date_submitted"] = now
		updates["date_completed"] = nil
	case models.OrderStatusCompleted:
		updates["date_completed"] = now
		if order.DateSubmitted == nil {
			updates["date_submitted"] = now
		}
	}
	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return nil, Internal(err, "failed to update order %d status", order.ID)
	}
	err = s.db.Model(&models.OrderRequest{}).
		Where("order_id = ?", order.ID).
		Update("status", string(status)).Error
	if err != nil {
		return nil, Internal(err, "failed to sync request statuses for order %d", order.ID)
	}
	return s.loadOrder(order.ID)
}

// AssociateOrderRequest puts a request on an order and grows the order total
// by wholesale cost times quantity. A request can sit on at most one order.
func (s *Service) AssociateOrderRequest(orderID, requestID uint) (*models.Order, error) {
	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusCompleted {
		return nil, Forbidden("order %d is completed", order.ID)
	}
	req, err := s.getOrderRequest(requestID, "Item")
	if err != nil {
		return nil, err
	}
	if req.OrderID != nil {
		return nil, Forbidden("order request %d is already on an order", req.ID)
	}
	if req.ItemID == nil || req.Item == nil {
		return nil, BadRequest("order request %d has no item", req.ID)
	}
	if req.Quantity < 1 {
		return nil, BadRequest("order request %d has no quantity", req.ID)
	}

	updates := map[string]interface{}{"order_id": order.ID, "status": string(order.Status)}
	if err := s.db.Model(req).Updates(updates).Error; err != nil {
		return nil, Internal(err, "failed to place order request %d on order %d", req.ID, order.ID)
	}
	lineTotal := req.Item.WholesaleCost.Mul(decimal.NewFromInt(int64(req.Quantity)))
	order.TotalPrice = order.TotalPrice.Add(lineTotal)
	if err := s.db.Model(order).Update("total_price", order.TotalPrice).Error; err != nil {
		return nil, Internal(err, "failed to update order %d total", order.ID)
	}
	return s.loadOrder(order.ID)
}

// DisassociateOrderRequest takes a request off an order, shrinking the total
// by the same amount association added.
func (s *Service) DisassociateOrderRequest(orderID, requestID uint) (*models.Order, error) {
	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusCompleted {
		return nil, Forbidden("order %d is completed", order.ID)
	}
	req, err := s.getOrderRequest(requestID, "Item")
	if err != nil {
		return nil, err
	}
	if req.OrderID == nil || *req.OrderID != order.ID {
		return nil, BadRequest("order request %d is not on order %d", req.ID, order.ID)
	}

	updates := map[string]interface{}{"order_id": nil, "status": models.OrderRequestStatusNotOrdered}
	if err := s.db.Model(req).Updates(updates).Error; err != nil {
		return nil, Internal(err, "failed to remove order request %d from order %d", req.ID, order.ID)
	}
	if req.Item != nil {
		lineTotal := req.Item.WholesaleCost.Mul(decimal.NewFromInt(int64(req.Quantity)))
		order.TotalPrice = order.TotalPrice.Sub(lineTotal)
		if err := s.db.Model(order).Update("total_price", order.TotalPrice).Error; err != nil {
			return nil, Internal(err, "failed to update order %d total", order.ID)
		}
	}
	return s.loadOrder(order.ID)
}

// SetFreightCharge replaces the freight charge, applying only the delta to
// the order total so line prices are never recomputed.
func (s *Service) SetFreightCharge(orderID uint, freight decimal.Decimal) (*models.Order, error) {
	if freight.IsNegative() {
		return nil, BadRequest("freight charge cannot be negative")
	}
	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}

	delta := freight.Sub(order.FreightCharge)
	updates := map[string]interface{}{
		"freight_charge": freight,
		"total_price":    order.TotalPrice.Add(delta),
	}
	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return nil, Internal(err, "failed to update order %d freight", order.ID)
	}
	return s.loadOrder(order.ID)
}

// DeleteOrder frees its requests back to Not Ordered. Completed orders have
// already moved stock and priced transactions, so they stay.
func (s *Service) DeleteOrder(orderID uint) error {
	order, err := s.getOrder(orderID)
	if err != nil {
		return err
	}
	if order.Status == models.OrderStatusCompleted {
		return Forbidden("completed orders cannot be deleted")
	}

	updates := map[string]interface{}{"order_id": nil, "status": models.OrderRequestStatusNotOrdered}
	if err := s.db.Model(&models.OrderRequest{}).Where("order_id = ?", order.ID).Updates(updates).Error; err != nil {
		return Internal(err, "failed to release order requests for order %d", order.ID)
	}
	if err := s.db.Delete(&models.Order{}, order.ID).Error; err != nil {
		return Internal(err, "failed to delete order %d", order.ID)
	}
	return nil
}

func transactionIDs(trxs []models.Transaction) []uint {
	ids := make([]uint, 0, len(trxs))
	for _, t := range trxs {
		ids = append(ids, t.ID)
	}
	return ids
}
