package service

import (
	"fmt"
	"net/http"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rice-apps/rice-bikes-go/models"
)

// lineKeys flattens the item lines into a comparable, order-independent form.
func lineKeys(trx *models.Transaction) []string {
	keys := make([]string, 0, len(trx.Items))
	for _, line := range trx.Items {
		keys = append(keys, fmt.Sprintf("%d@%s", line.ItemID, line.Price.StringFixed(2)))
	}
	sort.Strings(keys)
	return keys
}

func seedLinkedRequest(t *testing.T, svc *Service, actorID uint, itemID uint, qty int, trxIDs ...uint) *models.OrderRequest {
	t.Helper()
	req, err := svc.CreateOrderRequest(CreateOrderRequestInput{
		Request:  "needed part",
		ItemID:   &itemID,
		Quantity: qty,
	}, actorID)
	require.NoError(t, err)
	for _, id := range trxIDs {
		_, err := svc.AddOrderRequest(id, req.ID, actorID)
		require.NoError(t, err)
	}
	return req
}

func TestFulfill_PricesPerTransactionRule(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")
	seedUser(t, db, "jdoe")
	item := seedItem(t, db, "Shifter", "7.50", "5.00", 0)

	regular := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	employee := newTransaction(t, svc, mechanic.ID, "jdoe@rice.edu")
	req := seedLinkedRequest(t, svc, mechanic.ID, item.ID, 2, regular.ID, employee.ID)

	require.NoError(t, svc.FulfillOrderRequests(req.ID, []uint{regular.ID, employee.ID}))

	regular, err := svc.GetTransaction(regular.ID)
	require.NoError(t, err)
	require.Len(t, regular.Items, 1)
	assert.Equal(t, "7.50", regular.Items[0].Price.StringFixed(2))
	assert.Equal(t, "7.50", regular.TotalCost.StringFixed(2))
	assert.Empty(t, regular.OrderRequests)

	employee, err = svc.GetTransaction(employee.ID)
	require.NoError(t, err)
	require.Len(t, employee.Items, 1)
	assert.Equal(t, "5.50", employee.Items[0].Price.StringFixed(2))
	assert.Empty(t, employee.OrderRequests)
}

func TestFulfill_DoesNotRecalculateTax(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")
	sold := seedItem(t, db, "Fork", "10.00", "6.00", 1)
	requested := seedItem(t, db, "Headset", "5.00", "2.00", 0)

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	trx, err := svc.AddItem(trx.ID, sold.ID, nil, mechanic.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.82", trx.TotalCost.StringFixed(2))

	req := seedLinkedRequest(t, svc, mechanic.ID, requested.ID, 1, trx.ID)
	require.NoError(t, svc.FulfillOrderRequests(req.ID, []uint{trx.ID}))

	trx, err = svc.GetTransaction(trx.ID)
	require.NoError(t, err)
	// The tax line still reflects the pre-fulfillment subtotal.
	require.Len(t, taxLines(trx), 1)
	assert.Equal(t, "0.82", taxLines(trx)[0].Price.StringFixed(2))
	assert.Equal(t, "15.82", trx.TotalCost.StringFixed(2))
}

func TestFulfillUnfulfill_RoundTrip(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")
	sold := seedItem(t, db, "Tire", "20.00", "9.00", 2)
	requested := seedItem(t, db, "Tube", "8.00", "3.50", 0)

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	trx, err := svc.AddItem(trx.ID, sold.ID, nil, mechanic.ID)
	require.NoError(t, err)
	req := seedLinkedRequest(t, svc, mechanic.ID, requested.ID, 1, trx.ID)

	before, err := svc.GetTransaction(trx.ID)
	require.NoError(t, err)
	beforeKeys := lineKeys(before)

	require.NoError(t, svc.FulfillOrderRequests(req.ID, []uint{trx.ID}))
	mid, err := svc.GetTransaction(trx.ID)
	require.NoError(t, err)
	assert.Len(t, mid.Items, len(before.Items)+1)
	assert.Empty(t, mid.OrderRequests)

	require.NoError(t, svc.UnfulfillOrderRequests(req.ID, []uint{trx.ID}))
	after, err := svc.GetTransaction(trx.ID)
	require.NoError(t, err)

	assert.Equal(t, beforeKeys, lineKeys(after))
	assert.True(t, after.TotalCost.Equal(before.TotalCost),
		"total %s did not return to %s", after.TotalCost, before.TotalCost)
	require.Len(t, after.OrderRequests, 1)
	assert.Equal(t, req.ID, after.OrderRequests[0].ID)
}

func TestFulfill_DuplicateTransactionEntries(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")
	item := seedItem(t, db, "Cable", "3.00", "1.00", 0)

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	req := seedLinkedRequest(t, svc, mechanic.ID, item.ID, 2, trx.ID)

	require.NoError(t, svc.FulfillOrderRequests(req.ID, []uint{trx.ID, trx.ID}))

	trx, err := svc.GetTransaction(trx.ID)
	require.NoError(t, err)
	assert.Len(t, trx.Items, 2)
	assert.Equal(t, "6.00", trx.TotalCost.StringFixed(2))
}

func TestFulfill_PartialFailurePersists(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")
	item := seedItem(t, db, "Rim", "30.00", "15.00", 0)

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	req := seedLinkedRequest(t, svc, mechanic.ID, item.ID, 1, trx.ID)

	err := svc.FulfillOrderRequests(req.ID, []uint{trx.ID, 9999})
	requireServiceError(t, err, http.StatusNotFound)

	trx, loadErr := svc.GetTransaction(trx.ID)
	require.NoError(t, loadErr)
	assert.Len(t, trx.Items, 1)
	assert.Equal(t, "30.00", trx.TotalCost.StringFixed(2))
}

func TestFulfill_RequiresItem(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	req, err := svc.CreateOrderRequest(CreateOrderRequestInput{
		Request:       "mystery part",
		Quantity:      1,
		TransactionID: trx.ID,
	}, mechanic.ID)
	require.NoError(t, err)

	err = svc.FulfillOrderRequests(req.ID, []uint{trx.ID})
	requireServiceError(t, err, http.StatusBadRequest)
}
