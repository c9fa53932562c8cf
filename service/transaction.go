package service

import (
	"strings"
	"time"

	"github.com/rice-apps/rice-bikes-go/models"
)

type CreateTransactionInput struct {
	TransactionType string
	Description     string
	CustomerID      uint
	FirstName       string
	LastName        string
	Email           string
}

// CreateTransaction opens a transaction for an existing or inline customer.
// When the customer email's local part matches a user account the
// transaction gets employee pricing.
func (s *Service) CreateTransaction(in CreateTransactionInput, actorID uint) (*models.Transaction, error) {
	actor, err := s.requireUser(actorID)
	if err != nil {
		return nil, err
	}
	if in.TransactionType == "" {
		return nil, BadRequest("transaction type is required")
	}

	var customer models.Customer
	if in.CustomerID != 0 {
		if err := s.db.First(&customer, in.CustomerID).Error; err != nil {
			return nil, wrapDB(err, "customer", in.CustomerID)
		}
	} else {
		if in.Email == "" || in.FirstName == "" || in.LastName == "" {
			return nil, BadRequest("customer name and email are required")
		}
		customer = models.Customer{FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}
		if err := s.db.Create(&customer).Error; err != nil {
			return nil, Internal(err, "failed to create customer")
		}
	}

	trx := models.Transaction{
		TransactionType: in.TransactionType,
		CustomerID:      customer.ID,
		Description:     in.Description,
		Employee:        s.isEmployeeEmail(customer.Email),
		DateCreated:     time.Now().UTC(),
	}
	if err := s.db.Create(&trx).Error; err != nil {
		return nil, Internal(err, "failed to create transaction")
	}
	if err := s.logAction(trx.ID, actor.ID, "Created Transaction"); err != nil {
		return nil, err
	}
	return s.loadTransaction(trx.ID)
}

func (s *Service) isEmployeeEmail(email string) bool {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return false
	}
	var cnt int64
	s.db.Model(&models.User{}).Where("username = ?", local).Count(&cnt)
	return cnt > 0
}

// SetComplete closes or reopens a transaction. Closing is blocked while
// order requests are pending and decrements stock once per non-managed item
// line; reopening puts the stock back. Repeated sets of the same value do
// nothing.
func (s *Service) SetComplete(transactionID uint, complete bool, actorID uint) (*models.Transaction, error) {
	actor, err := s.requireUser(actorID)
	if err != nil {
		return nil, err
	}
	trx, err := s.getTransaction(transactionID, "Items.Item", "OrderRequests")
	if err != nil {
		return nil, err
	}
	if trx.Complete == complete {
		return s.loadTransaction(trx.ID)
	}

	if complete {
		if len(trx.OrderRequests) > 0 {
			return nil, Forbidden("transaction %d has pending order requests", trx.ID)
		}
		for _, line := range trx.Items {
			if line.Item.Managed {
				continue
			}
			if err := adjustStock(s.db, line.ItemID, -1); err != nil {
				return nil, err
			}
		}
		updates := map[string]interface{}{
			"complete":       true,
			"date_completed": time.Now().UTC(),
			"urgent":         false,
		}
		if err := s.db.Model(trx).Updates(updates).Error; err != nil {
			return nil, Internal(err, "failed to complete transaction %d", trx.ID)
		}
		if err := s.logAction(trx.ID, actor.ID, "Completed Transaction"); err != nil {
			return nil, err
		}
	} else {
		for _, line := range trx.Items {
			if line.Item.Managed {
				continue
			}
			if err := adjustStock(s.db, line.ItemID, 1); err != nil {
				return nil, err
			}
		}
		if err := s.db.Model(trx).Update("complete", false).Error; err != nil {
			return nil, Internal(err, "failed to reopen transaction %d", trx.ID)
		}
		if err := s.logAction(trx.ID, actor.ID, "Reopened Transaction"); err != nil {
			return nil, err
		}
	}
	return s.loadTransaction(trx.ID)
}

// MarkPaid toggles payment. Paying forces complete without the stock side
// effect (that belongs to the complete/reopen transition alone); unpaying
// leaves complete and stock untouched. The second return reports whether
// this call moved the transaction into paid, so the caller can send the
// receipt.
func (s *Service) MarkPaid(transactionID uint, paid bool, actorID uint) (*models.Transaction, bool, error) {
	actor, err := s.requireUser(actorID)
	if err != nil {
		return nil, false, err
	}
	trx, err := s.getTransaction(transactionID)
	if err != nil {
		return nil, false, err
	}

	becamePaid := paid && !trx.IsPaid
	if paid {
		updates := map[string]interface{}{"is_paid": true, "complete": true}
		if err := s.db.Model(trx).Updates(updates).Error; err != nil {
			return nil, false, Internal(err, "failed to mark transaction %d paid", trx.ID)
		}
		if err := s.logAction(trx.ID, actor.ID, "Marked Transaction as paid"); err != nil {
			return nil, false, err
		}
	} else {
		if err := s.db.Model(trx).Update("is_paid", false).Error; err != nil {
			return nil, false, Internal(err, "failed to mark transaction %d waiting", trx.ID)
		}
		if err := s.logAction(trx.ID, actor.ID, "Marked Transaction as waiting"); err != nil {
			return nil, false, err
		}
	}

	loaded, err := s.loadTransaction(trx.ID)
	if err != nil {
		return nil, false, err
	}
	return loaded, becamePaid, nil
}

// AddRepair attaches a repair at its current price.
func (s *Service) AddRepair(transactionID, repairID uint, actorID uint) (*models.Transaction, error) {
	actor, err := s.requireUser(actorID)
	if err != nil {
		return nil, err
	}
	trx, err := s.getTransaction(transactionID)
	if err != nil {
		return nil, err
	}
	repair, err := s.getRepair(repairID)
	if err != nil {
		return nil, err
	}

	line := models.TransactionRepair{TransactionID: trx.ID, RepairID: repair.ID, Price: repair.Price}
	if err := s.db.Create(&line).Error; err != nil {
		return nil, Internal(err, "failed to attach repair %d to transaction %d", repairID, transactionID)
	}
	trx.TotalCost = trx.TotalCost.Add(repair.Price)
	if err := s.db.Model(trx).Update("total_cost", trx.TotalCost).Error; err != nil {
		return nil, Internal(err, "failed to update transaction %d total", trx.ID)
	}
	if err := s.logAction(trx.ID, actor.ID, "Added Repair %s", repair.Name); err != nil {
		return nil, err
	}
	return s.loadTransaction(trx.ID)
}

// RemoveRepair detaches a repair line, refunding its attach-time price.
func (s *Service) RemoveRepair(transactionID, lineID uint, actorID uint) (*models.Transaction, error) {
	actor, err := s.requireUser(actorID)
	if err != nil {
		return nil, err
	}
	trx, err := s.getTransaction(transactionID, "Repairs.Repair")
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, line := range trx.Repairs {
		if line.ID == lineID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, NotFound("repair line %d not found on transaction %d", lineID, transactionID)
	}
	line := trx.Repairs[idx]

	if err := s.db.Delete(&models.TransactionRepair{}, line.ID).Error; err != nil {
		return nil, Internal(err, "failed to remove repair line %d", line.ID)
	}
	trx.TotalCost = trx.TotalCost.Sub(line.Price)
	if err := s.db.Model(trx).Update("total_cost", trx.TotalCost).Error; err != nil {
		return nil, Internal(err, "failed to update transaction %d total", trx.ID)
	}
	if err := s.logAction(trx.ID, actor.ID, "Deleted Repair %s", line.Repair.Name); err != nil {
		return nil, err
	}
	return s.loadTransaction(trx.ID)
}

// SetRepairCompleted flips the done flag on one repair line.
func (s *Service) SetRepairCompleted(transactionID, lineID uint, completed bool, actorID uint) (*models.Transaction, error) {
	actor, err := s.requireUser(actorID)
	if err != nil {
		return nil, err
	}
	trx, err := s.getTransaction(transactionID, "Repairs.Repair")
	if err != nil {
		return nil, err
	}

	var line *models.TransactionRepair
	for i := range trx.Repairs {
		if trx.Repairs[i].ID == lineID {
			line = &trx.Repairs[i]
			break
		}
	}
	if line == nil {
		return nil, NotFound("repair line %d not found on transaction %d", lineID, transactionID)
	}

	if err := s.db.Model(line).Update("completed", completed).Error; err != nil {
		return nil, Internal(err, "failed to update repair line %d", line.ID)
	}
	verb := "Completed"
	if !completed {
		verb = "Reopened"
	}
	if err := s.logAction(trx.ID, actor.ID, "%s Repair %s", verb, line.Repair.Name); err != nil {
		return nil, err
	}
	return s.loadTransaction(trx.ID)
}

type AttachBikeInput struct {
	BikeID      uint
	Make        string
	Model       string
	Description string
}

func (s *Service) AttachBike(transactionID uint, in AttachBikeInput, actorID uint) (*models.Transaction, error) {
	actor, err := s.requireUser(actorID)
	if err != nil {
		return nil, err
	}
	trx, err := s.getTransaction(transactionID)
	if err != nil {
		return nil, err
	}

	var bike models.Bike
	if in.BikeID != 0 {
		if err := s.db.First(&bike, in.BikeID).Error; err != nil {
			return nil, wrapDB(err, "bike", in.BikeID)
		}
	} else {
		if in.Make == "" || in.Model == "" {
			return nil, BadRequest("bike make and model are required")
		}
		bike = models.Bike{Make: in.Make, Model: in.Model, Description: in.Description}
		if err := s.db.Create(&bike).Error; err != nil {
			return nil, Internal(err, "failed to create bike")
		}
	}

	if err := s.db.Model(trx).Association("Bikes").Append(&bike); err != nil {
		return nil, Internal(err, "failed to attach bike %d to transaction %d", bike.ID, trx.ID)
	}
	if err := s.logAction(trx.ID, actor.ID, "Added Bike %s %s", bike.Make, bike.Model); err != nil {
		return nil, err
	}
	return s.loadTransaction(trx.ID)
}

func (s *Service) DetachBike(transactionID, bikeID uint, actorID uint) (*models.Transaction, error) {
	actor, err := s.requireUser(actorID)
	if err != nil {
		return nil, err
	}
	trx, err := s.getTransaction(transactionID)
	if err != nil {
		return nil, err
	}
	var bike models.Bike
	if err := s.db.First(&bike, bikeID).Error; err != nil {
		return nil, wrapDB(err, "bike", bikeID)
	}

	if err := s.db.Model(trx).Association("Bikes").Delete(&bike); err != nil {
		return nil, Internal(err, "failed to detach bike %d from transaction %d", bikeID, trx.ID)
	}
	if err := s.logAction(trx.ID, actor.ID, "Deleted Bike %s %s", bike.Make, bike.Model); err != nil {
		return nil, err
	}
	return s.loadTransaction(trx.ID)
}

// AddOrderRequest links an existing order request to an open transaction.
func (s *Service) AddOrderRequest(transactionID, requestID uint, actorID uint) (*models.Transaction, error) {
	actor, err := s.requireUser(actorID)
	if err != nil {
		return nil, err
	}
	trx, err := s.getTransaction(transactionID)
	if err != nil {
		return nil, err
	}
	if trx.Complete {
		return nil, Forbidden("cannot add order requests to a completed transaction")
	}
	req, err := s.getOrderRequest(requestID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(trx).Association("OrderRequests").Append(&models.OrderRequest{ID: req.ID}); err != nil {
		return nil, Internal(err, "failed to link order request %d to transaction %d", req.ID, trx.ID)
	}
	if err := s.logAction(trx.ID, actor.ID, "Added Order Request %s", req.Request); err != nil {
		return nil, err
	}
	return s.loadTransaction(trx.ID)
}

func (s *Service) RemoveOrderRequest(transactionID, requestID uint, actorID uint) (*models.Transaction, error) {
	actor, err := s.requireUser(actorID)
	if err != nil {
		return nil, err
	}
	trx, err := s.getTransaction(transactionID)
	if err != nil {
		return nil, err
	}
	req, err := s.getOrderRequest(requestID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(trx).Association("OrderRequests").Delete(&models.OrderRequest{ID: req.ID}); err != nil {
		return nil, Internal(err, "failed to unlink order request %d from transaction %d", req.ID, trx.ID)
	}
	if err := s.logAction(trx.ID, actor.ID, "Removed Order Request %s", req.Request); err != nil {
		return nil, err
	}
	return s.loadTransaction(trx.ID)
}

// DeleteTransaction removes a transaction after stripping it from every
// order request that references it, so fulfillment never chases a dead id.
func (s *Service) DeleteTransaction(transactionID uint) error {
	trx, err := s.getTransaction(transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Model(trx).Association("OrderRequests").Clear(); err != nil {
		return Internal(err, "failed to unlink order requests from transaction %d", trx.ID)
	}
	if err := s.db.Model(trx).Association("Bikes").Clear(); err != nil {
		return Internal(err, "failed to unlink bikes from transaction %d", trx.ID)
	}
	if err := s.db.Where("transaction_id = ?", trx.ID).Delete(&models.TransactionItem{}).Error; err != nil {
		return Internal(err, "failed to delete item lines for transaction %d", trx.ID)
	}
	if err := s.db.Where("transaction_id = ?", trx.ID).Delete(&models.TransactionRepair{}).Error; err != nil {
		return Internal(err, "failed to delete repair lines for transaction %d", trx.ID)
	}
	if err := s.db.Where("transaction_id = ?", trx.ID).Delete(&models.Action{}).Error; err != nil {
		return Internal(err, "failed to delete actions for transaction %d", trx.ID)
	}
	if err := s.db.Delete(&models.Transaction{}, trx.ID).Error; err != nil {
		return Internal(err, "failed to delete transaction %d", trx.ID)
	}
	return nil
}
