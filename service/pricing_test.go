package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rice-apps/rice-bikes-go/config"
	"github.com/rice-apps/rice-bikes-go/models"
)

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func findLine(t *testing.T, trx *models.Transaction, itemID uint) *models.TransactionItem {
	t.Helper()
	for i := range trx.Items {
		if trx.Items[i].ItemID == itemID {
			return &trx.Items[i]
		}
	}
	t.Fatalf("no line for item %d on transaction %d", itemID, trx.ID)
	return nil
}

func taxLines(trx *models.Transaction) []models.TransactionItem {
	var lines []models.TransactionItem
	for _, line := range trx.Items {
		if line.Item.Managed {
			lines = append(lines, line)
		}
	}
	return lines
}

func requireTotalMatchesLines(t *testing.T, trx *models.Transaction) {
	t.Helper()
	lines := sumLines(trx)
	require.True(t, trx.TotalCost.Equal(lines),
		"total_cost %s does not match line sum %s", trx.TotalCost, lines)
}

func TestAddRemove_TotalAlwaysMatchesLines(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")
	tube := seedItem(t, db, "Inner Tube", "8.00", "3.50", 10)
	chain := seedItem(t, db, "Chain", "25.99", "14.00", 4)
	tuneUp := seedRepair(t, db, "Tune Up", "45.00")

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	requireTotalMatchesLines(t, trx)

	trx, err := svc.AddItem(trx.ID, tube.ID, nil, mechanic.ID)
	require.NoError(t, err)
	requireTotalMatchesLines(t, trx)

	trx, err = svc.AddItem(trx.ID, chain.ID, nil, mechanic.ID)
	require.NoError(t, err)
	requireTotalMatchesLines(t, trx)

	trx, err = svc.AddRepair(trx.ID, tuneUp.ID, mechanic.ID)
	require.NoError(t, err)
	requireTotalMatchesLines(t, trx)

	trx, err = svc.RemoveItem(trx.ID, findLine(t, trx, tube.ID).ID, mechanic.ID)
	require.NoError(t, err)
	requireTotalMatchesLines(t, trx)

	require.Len(t, trx.Repairs, 1)
	trx, err = svc.RemoveRepair(trx.ID, trx.Repairs[0].ID, mechanic.ID)
	require.NoError(t, err)
	requireTotalMatchesLines(t, trx)
}

func TestAddItem_TaxedSaleThenRemoval(t *testing.T) {
	cfg := testSettings()
	cfg.TaxRate = dec("0.08")
	svc, db := newTestServiceWith(t, cfg)
	mechanic := seedUser(t, db, "mechanic")
	item := seedItem(t, db, "Fender Set", "10.00", "4.00", 3)

	trx, err := svc.CreateTransaction(CreateTransactionInput{
		TransactionType: "retail",
		FirstName:       "A",
		LastName:        "Customer",
		Email:           "a@x.com",
	}, mechanic.ID)
	require.NoError(t, err)

	trx, err = svc.AddItem(trx.ID, item.ID, nil, mechanic.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.80", trx.TotalCost.StringFixed(2))
	require.Len(t, trx.Items, 2)
	require.Len(t, taxLines(trx), 1)
	assert.Equal(t, "0.80", taxLines(trx)[0].Price.StringFixed(2))

	trx, err = svc.RemoveItem(trx.ID, findLine(t, trx, item.ID).ID, mechanic.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.00", trx.TotalCost.StringFixed(2))
	assert.Empty(t, trx.Items)
}

func TestRecalculateTax_Idempotent(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")
	item := seedItem(t, db, "Saddle", "32.50", "18.00", 2)

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	trx, err := svc.AddItem(trx.ID, item.ID, nil, mechanic.ID)
	require.NoError(t, err)
	wantTotal := trx.TotalCost

	loaded, err := svc.getTransaction(trx.ID, "Items.Item")
	require.NoError(t, err)
	require.NoError(t, svc.recalculateTax(loaded))
	require.NoError(t, svc.recalculateTax(loaded))

	trx, err = svc.GetTransaction(trx.ID)
	require.NoError(t, err)
	assert.True(t, trx.TotalCost.Equal(wantTotal), "total drifted from %s to %s", wantTotal, trx.TotalCost)
	assert.Len(t, taxLines(trx), 1)
	requireTotalMatchesLines(t, trx)
}

func TestAddItem_NoTaxBeforeStartDate(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")
	item := seedItem(t, db, "Grips", "12.00", "5.00", 6)

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	backdated := time.Date(2016, 3, 14, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("id = ?", trx.ID).
		Update("date_created", backdated).Error)

	trx, err := svc.AddItem(trx.ID, item.ID, nil, mechanic.ID)
	require.NoError(t, err)
	assert.Equal(t, "12.00", trx.TotalCost.StringFixed(2))
	require.Len(t, trx.Items, 1)
	assert.Empty(t, taxLines(trx))
}

func TestRemoveItem_ManagedLineForbidden(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")
	item := seedItem(t, db, "Pedals", "20.00", "9.00", 5)

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	trx, err := svc.AddItem(trx.ID, item.ID, nil, mechanic.ID)
	require.NoError(t, err)
	require.Len(t, taxLines(trx), 1)

	_, err = svc.RemoveItem(trx.ID, taxLines(trx)[0].ID, mechanic.ID)
	requireServiceError(t, err, http.StatusForbidden)

	trx, err = svc.GetTransaction(trx.ID)
	require.NoError(t, err)
	assert.Len(t, taxLines(trx), 1)
}

func TestAddItem_EmployeeWholesalePricing(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db, "jdoe")
	mechanic := seedUser(t, db, "mechanic")
	item := seedItem(t, db, "Derailleur", "20.00", "10.00", 3)

	trx := newTransaction(t, svc, mechanic.ID, "jdoe@rice.edu")
	require.True(t, trx.Employee)

	trx, err := svc.AddItem(trx.ID, item.ID, nil, mechanic.ID)
	require.NoError(t, err)
	assert.Equal(t, "11.00", findLine(t, trx, item.ID).Price.StringFixed(2))
}

func TestAddItem_EmployeeWithoutWholesaleCostPaysStandard(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db, "jdoe")
	mechanic := seedUser(t, db, "mechanic")
	item := seedItem(t, db, "Donated Rack", "15.00", "0", 1)

	trx := newTransaction(t, svc, mechanic.ID, "jdoe@rice.edu")
	trx, err := svc.AddItem(trx.ID, item.ID, nil, mechanic.ID)
	require.NoError(t, err)
	assert.Equal(t, "15.00", findLine(t, trx, item.ID).Price.StringFixed(2))
}

func TestAddItem_CustomPriceOnlyHonoredForUsedItems(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")

	usedWheel := models.Item{
		Name:          "Used Rear Wheel",
		Condition:     models.ItemConditionUsed,
		StandardPrice: dec("40.00"),
		WholesaleCost: dec("0"),
		Stock:         1,
	}
	require.NoError(t, db.Create(&usedWheel).Error)
	newWheel := seedItem(t, db, "Rear Wheel", "55.00", "30.00", 2)

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")

	trx, err := svc.AddItem(trx.ID, usedWheel.ID, decPtr("22.50"), mechanic.ID)
	require.NoError(t, err)
	assert.Equal(t, "22.50", findLine(t, trx, usedWheel.ID).Price.StringFixed(2))

	trx, err = svc.AddItem(trx.ID, newWheel.ID, decPtr("22.50"), mechanic.ID)
	require.NoError(t, err)
	assert.Equal(t, "55.00", findLine(t, trx, newWheel.ID).Price.StringFixed(2))
}

func TestAddItem_UsedCustomPriceBeatsEmployeePricing(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db, "jdoe")
	mechanic := seedUser(t, db, "mechanic")

	used := models.Item{
		Name:          "Used Stem",
		Condition:     models.ItemConditionUsed,
		StandardPrice: dec("18.00"),
		WholesaleCost: dec("9.00"),
		Stock:         1,
	}
	require.NoError(t, db.Create(&used).Error)

	trx := newTransaction(t, svc, mechanic.ID, "jdoe@rice.edu")
	require.True(t, trx.Employee)

	trx, err := svc.AddItem(trx.ID, used.ID, decPtr("5.55"), mechanic.ID)
	require.NoError(t, err)
	assert.Equal(t, "5.55", findLine(t, trx, used.ID).Price.StringFixed(2))
}

func TestRecalculateTax_TruncatesToCents(t *testing.T) {
	cfg := config.ShopSettings{
		TaxRate:                 dec("0.0825"),
		TaxStartDate:            time.Date(2017, 9, 1, 0, 0, 0, 0, time.UTC),
		TaxItemName:             "Sales Tax",
		EmployeePriceMultiplier: dec("1.1"),
	}
	svc, db := newTestServiceWith(t, cfg)
	mechanic := seedUser(t, db, "mechanic")
	item := seedItem(t, db, "Cable Kit", "9.99", "4.10", 8)

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	trx, err := svc.AddItem(trx.ID, item.ID, nil, mechanic.ID)
	require.NoError(t, err)

	// 9.99 * 0.0825 = 0.824175, kept as 0.82 rather than rounded up.
	require.Len(t, taxLines(trx), 1)
	assert.Equal(t, "0.82", taxLines(trx)[0].Price.StringFixed(2))
	assert.Equal(t, "10.81", trx.TotalCost.StringFixed(2))
}
