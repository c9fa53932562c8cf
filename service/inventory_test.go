package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rice-apps/rice-bikes-go/models"
)

func TestAdjustItemStock(t *testing.T) {
	svc, db := newTestService(t)
	item := seedItem(t, db, "Tube", "8.00", "3.50", 2)

	updated, err := svc.AdjustItemStock(item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Stock)

	// Oversold stock goes negative rather than failing.
	updated, err = svc.AdjustItemStock(item.ID, -9)
	require.NoError(t, err)
	assert.Equal(t, -2, updated.Stock)
}

func TestAdjustItemStock_ManagedForbidden(t *testing.T) {
	svc, db := newTestService(t)

	var taxItem models.Item
	require.NoError(t, db.Where("managed = ?", true).First(&taxItem).Error)

	_, err := svc.AdjustItemStock(taxItem.ID, 1)
	requireServiceError(t, err, http.StatusForbidden)
}

func TestLowStockItems(t *testing.T) {
	svc, db := newTestService(t)

	low := models.Item{Name: "Tube", StandardPrice: dec("8.00"), Stock: 1, WarningStock: 3}
	require.NoError(t, db.Create(&low).Error)
	atThreshold := models.Item{Name: "Chain", StandardPrice: dec("25.99"), Stock: 2, WarningStock: 2}
	require.NoError(t, db.Create(&atThreshold).Error)
	healthy := models.Item{Name: "Tire", StandardPrice: dec("20.00"), Stock: 10, WarningStock: 2}
	require.NoError(t, db.Create(&healthy).Error)
	retired := models.Item{Name: "Old Rim", StandardPrice: dec("5.00"), Stock: 0, WarningStock: 1, Disabled: true}
	require.NoError(t, db.Create(&retired).Error)

	items, err := svc.LowStockItems()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Tube", items[0].Name)
	assert.Equal(t, "Chain", items[1].Name)
}
