package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rice-apps/rice-bikes-go/config"
	"github.com/rice-apps/rice-bikes-go/models"
)

func testSettings() config.ShopSettings {
	return config.ShopSettings{
		TaxRate:                 decimal.NewFromFloat(0.0825),
		TaxStartDate:            time.Date(2017, 9, 1, 0, 0, 0, 0, time.UTC),
		TaxItemName:             "Sales Tax",
		EmployeePriceMultiplier: decimal.NewFromFloat(1.1),
	}
}

// newTestDB opens an isolated in-memory database. The pool is pinned to one
// connection so every query sees the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Item{},
		&models.Repair{},
		&models.Bike{},
		&models.Transaction{},
		&models.TransactionItem{},
		&models.TransactionRepair{},
		&models.Action{},
		&models.Order{},
		&models.OrderRequest{},
		&models.EmailRecord{},
	))
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	return newTestServiceWith(t, testSettings())
}

func newTestServiceWith(t *testing.T, cfg config.ShopSettings) (*Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Item{
		Name:     cfg.TaxItemName,
		Category: "System",
		Managed:  true,
		Hidden:   true,
	}).Error)
	return New(db, cfg), db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "x",
		Active:       true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedItem(t *testing.T, db *gorm.DB, name, standard, wholesale string, stock int) *models.Item {
	t.Helper()
	item := models.Item{
		Name:          name,
		Category:      "Components",
		Condition:     models.ItemConditionNew,
		StandardPrice: dec(standard),
		WholesaleCost: dec(wholesale),
		Stock:         stock,
	}
	require.NoError(t, db.Create(&item).Error)
	return &item
}

func seedRepair(t *testing.T, db *gorm.DB, name, price string) *models.Repair {
	t.Helper()
	repair := models.Repair{Name: name, Price: dec(price)}
	require.NoError(t, db.Create(&repair).Error)
	return &repair
}

func newTransaction(t *testing.T, svc *Service, actorID uint, email string) *models.Transaction {
	t.Helper()
	trx, err := svc.CreateTransaction(CreateTransactionInput{
		TransactionType: "repair",
		FirstName:       "Sammy",
		LastName:        "Owl",
		Email:           email,
	}, actorID)
	require.NoError(t, err)
	return trx
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// sumLines adds up every item and repair line on the transaction.
func sumLines(trx *models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, line := range trx.Items {
		total = total.Add(line.Price)
	}
	for _, line := range trx.Repairs {
		total = total.Add(line.Price)
	}
	return total
}

func itemStock(t *testing.T, db *gorm.DB, itemID uint) int {
	t.Helper()
	var item models.Item
	require.NoError(t, db.First(&item, itemID).Error)
	return item.Stock
}

func requireServiceError(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	svcErr, ok := err.(*Error)
	require.True(t, ok, "expected *service.Error, got %T: %v", err, err)
	require.Equal(t, status, svcErr.Status)
}
