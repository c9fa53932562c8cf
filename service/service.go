package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rice-apps/rice-bikes-go/config"
	"github.com/rice-apps/rice-bikes-go/models"
)

// Service implements the shop workflows: transaction pricing and lifecycle,
// order fulfillment, and the inventory ledger. Every step is its own durable
// write (find, mutate, save); multi-entity workflows run sequentially and
// surface the first error without compensation.
type Service struct {
	db  *gorm.DB
	cfg config.ShopSettings
}

func New(db *gorm.DB, cfg config.ShopSettings) *Service {
	return &Service{db: db, cfg: cfg}
}

// ===== loaders =====

func (s *Service) getTransaction(id uint, preloads ...string) (*models.Transaction, error) {
	q := s.db
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var trx models.Transaction
	if err := q.First(&trx, id).Error; err != nil {
		return nil, wrapDB(err, "transaction", id)
	}
	return &trx, nil
}

// loadTransaction returns the full aggregate the API serves, actions newest
// first.
func (s *Service) loadTransaction(id uint) (*models.Transaction, error) {
	var trx models.Transaction
	err := s.db.
		Preload("Customer").
		Preload("Items.Item").
		Preload("Repairs.Repair").
		Preload("Bikes").
		Preload("OrderRequests.Item").
		Preload("Actions", func(db *gorm.DB) *gorm.DB {
			return db.Order("actions.created_at DESC, actions.id DESC")
		}).
		Preload("Actions.User").
		First(&trx, id).Error
	if err != nil {
		return nil, wrapDB(err, "transaction", id)
	}
	return &trx, nil
}

// GetTransaction serves the full aggregate to the API layer.
func (s *Service) GetTransaction(id uint) (*models.Transaction, error) {
	return s.loadTransaction(id)
}

// GetOrder serves an order with its requests and their transactions.
func (s *Service) GetOrder(id uint) (*models.Order, error) {
	return s.loadOrder(id)
}

func (s *Service) getItem(id uint) (*models.Item, error) {
	var item models.Item
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, wrapDB(err, "item", id)
	}
	return &item, nil
}

func (s *Service) getRepair(id uint) (*models.Repair, error) {
	var repair models.Repair
	if err := s.db.First(&repair, id).Error; err != nil {
		return nil, wrapDB(err, "repair", id)
	}
	return &repair, nil
}

func (s *Service) getOrder(id uint, preloads ...string) (*models.Order, error) {
	q := s.db
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var order models.Order
	if err := q.First(&order, id).Error; err != nil {
		return nil, wrapDB(err, "order", id)
	}
	return &order, nil
}

func (s *Service) loadOrder(id uint) (*models.Order, error) {
	return s.getOrder(id, "Items.Item", "Items.Transactions")
}

func (s *Service) getOrderRequest(id uint, preloads ...string) (*models.OrderRequest, error) {
	q := s.db
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var req models.OrderRequest
	if err := q.First(&req, id).Error; err != nil {
		return nil, wrapDB(err, "order request", id)
	}
	return &req, nil
}

// ===== action log =====

// requireUser resolves the acting user for a logged mutation. A zero id is a
// caller mistake, an unresolvable one a missing record.
func (s *Service) requireUser(userID uint) (*models.User, error) {
	if userID == 0 {
		return nil, BadRequest("user id is required")
	}
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, wrapDB(err, "user", userID)
	}
	return &user, nil
}

func (s *Service) logAction(transactionID, userID uint, format string, args ...any) error {
	action := models.Action{
		TransactionID: transactionID,
		UserID:        userID,
		Description:   fmt.Sprintf(format, args...),
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.db.Create(&action).Error; err != nil {
		return Internal(err, "failed to record action on transaction %d", transactionID)
	}
	return nil
}
