package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rice-apps/rice-bikes-go/models"
)

type CreateOrderRequestInput struct {
	Request       string
	ItemID        *uint
	Quantity      int
	Notes         string
	TransactionID uint
}

// CreateOrderRequest records a need for an item. With a transaction id it is
// linked to that transaction in the same breath.
func (s *Service) CreateOrderRequest(in CreateOrderRequestInput, actorID uint) (*models.OrderRequest, error) {
	if in.Request == "" && in.ItemID == nil {
		return nil, BadRequest("request text or an item is required")
	}
	if in.Quantity < 0 {
		return nil, BadRequest("quantity cannot be negative")
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.ItemID != nil {
		if _, err := s.getItem(*in.ItemID); err != nil {
			return nil, err
		}
	}

	req := models.OrderRequest{
		Request:     in.Request,
		ItemID:      in.ItemID,
		Quantity:    in.Quantity,
		Status:      models.OrderRequestStatusNotOrdered,
		Notes:       in.Notes,
		DateCreated: time.Now().UTC(),
	}
	if err := s.db.Create(&req).Error; err != nil {
		return nil, Internal(err, "failed to create order request")
	}

	if in.TransactionID != 0 {
		if _, err := s.AddOrderRequest(in.TransactionID, req.ID, actorID); err != nil {
			return nil, err
		}
	}
	return s.getOrderRequest(req.ID, "Item", "Transactions")
}

type UpdateOrderRequestInput struct {
	Request  *string
	Quantity *int
	ItemID   *uint
	Notes    *string
	Supplier *string
}

// UpdateOrderRequest edits a request. Quantity or item changes on a request
// already sitting on an order move the order total by the difference.
func (s *Service) UpdateOrderRequest(requestID uint, in UpdateOrderRequestInput) (*models.OrderRequest, error) {
	req, err := s.getOrderRequest(requestID, "Item")
	if err != nil {
		return nil, err
	}

	newItem := req.Item
	newQuantity := req.Quantity
	updates := map[string]interface{}{}

	if in.Quantity != nil {
		if *in.Quantity < 1 {
			return nil, BadRequest("quantity must be positive")
		}
		newQuantity = *in.Quantity
		updates["quantity"] = newQuantity
	}
	if in.ItemID != nil {
		item, err := s.getItem(*in.ItemID)
		if err != nil {
			return nil, err
		}
		newItem = item
		updates["item_id"] = item.ID
	}
	if in.Request != nil {
		updates["request"] = *in.Request
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}
	if in.Supplier != nil {
		updates["supplier"] = *in.Supplier
	}
	if len(updates) == 0 {
		return req, nil
	}

	if err := s.db.Model(req).Updates(updates).Error; err != nil {
		return nil, Internal(err, "failed to update order request %d", req.ID)
	}

	if req.OrderID != nil {
		delta := lineContribution(newItem, newQuantity).Sub(lineContribution(req.Item, req.Quantity))
		if !delta.IsZero() {
			order, err := s.getOrder(*req.OrderID)
			if err != nil {
				return nil, err
			}
			if err := s.db.Model(order).Update("total_price", order.TotalPrice.Add(delta)).Error; err != nil {
				return nil, Internal(err, "failed to update order %d total", order.ID)
			}
		}
	}
	return s.getOrderRequest(req.ID, "Item", "Transactions")
}

// DeleteOrderRequest removes a request not currently on an order, unlinking
// it from its transactions first.
func (s *Service) DeleteOrderRequest(requestID uint) error {
	req, err := s.getOrderRequest(requestID)
	if err != nil {
		return err
	}
	if req.OrderID != nil {
		return Forbidden("order request %d is on an order", req.ID)
	}

	if err := s.db.Model(req).Association("Transactions").Clear(); err != nil {
		return Internal(err, "failed to unlink order request %d from transactions", req.ID)
	}
	if err := s.db.Delete(&models.OrderRequest{}, req.ID).Error; err != nil {
		return Internal(err, "failed to delete order request %d", req.ID)
	}
	return nil
}

func lineContribution(item *models.Item, quantity int) decimal.Decimal {
	if item == nil {
		return decimal.Zero
	}
	return item.WholesaleCost.Mul(decimal.NewFromInt(int64(quantity)))
}
