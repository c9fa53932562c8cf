package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rice-apps/rice-bikes-go/models"
)

func TestCreateTransaction_EmployeeDetection(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")
	seedUser(t, db, "jdoe")

	cases := []struct {
		email    string
		employee bool
	}{
		{"jdoe@rice.edu", true},
		{"visitor@rice.edu", false},
		{"noatsign", false},
		{"@rice.edu", false},
	}
	for _, tc := range cases {
		trx, err := svc.CreateTransaction(CreateTransactionInput{
			TransactionType: "repair",
			FirstName:       "Some",
			LastName:        "Customer",
			Email:           tc.email,
		}, mechanic.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.employee, trx.Employee, "email %q", tc.email)
	}
}

func TestCreateTransaction_ExistingCustomer(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")
	seedUser(t, db, "pat")
	customer := models.Customer{FirstName: "Pat", LastName: "Smith", Email: "pat@rice.edu"}
	require.NoError(t, db.Create(&customer).Error)

	trx, err := svc.CreateTransaction(CreateTransactionInput{
		TransactionType: "retail",
		CustomerID:      customer.ID,
	}, mechanic.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, trx.Customer.ID)
	assert.True(t, trx.Employee)

	var cnt int64
	db.Model(&models.Customer{}).Count(&cnt)
	assert.EqualValues(t, 1, cnt)
}

func TestCreateTransaction_ActorValidation(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db, "mechanic")

	in := CreateTransactionInput{
		TransactionType: "repair",
		FirstName:       "Some",
		LastName:        "Customer",
		Email:           "some@x.com",
	}

	_, err := svc.CreateTransaction(in, 0)
	requireServiceError(t, err, http.StatusBadRequest)

	_, err = svc.CreateTransaction(in, 4242)
	requireServiceError(t, err, http.StatusNotFound)
}

func TestSetComplete_BlockedWhilePendingOrderRequests(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")
	item := seedItem(t, db, "Brake Pads", "14.00", "6.00", 5)

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	trx, err := svc.AddItem(trx.ID, item.ID, nil, mechanic.ID)
	require.NoError(t, err)

	req, err := svc.CreateOrderRequest(CreateOrderRequestInput{
		Request:       "26in tube",
		Quantity:      1,
		TransactionID: trx.ID,
	}, mechanic.ID)
	require.NoError(t, err)

	_, err = svc.SetComplete(trx.ID, true, mechanic.ID)
	requireServiceError(t, err, http.StatusForbidden)

	_, err = svc.RemoveOrderRequest(trx.ID, req.ID, mechanic.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Transaction{}).
		Where("id = ?", trx.ID).
		Update("urgent", true).Error)

	trx, err = svc.SetComplete(trx.ID, true, mechanic.ID)
	require.NoError(t, err)
	assert.True(t, trx.Complete)
	assert.NotNil(t, trx.DateCompleted)
	assert.False(t, trx.Urgent)
	assert.Equal(t, 4, itemStock(t, db, item.ID))
}

func TestSetComplete_DecrementsOncePerLine(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")
	item := seedItem(t, db, "Spoke", "1.50", "0.40", 30)

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	trx, err := svc.AddItem(trx.ID, item.ID, nil, mechanic.ID)
	require.NoError(t, err)
	trx, err = svc.AddItem(trx.ID, item.ID, nil, mechanic.ID)
	require.NoError(t, err)
	require.Len(t, taxLines(trx), 1)

	_, err = svc.SetComplete(trx.ID, true, mechanic.ID)
	require.NoError(t, err)
	assert.Equal(t, 28, itemStock(t, db, item.ID))

	// The managed tax line never moves stock.
	var taxItem models.Item
	require.NoError(t, db.Where("managed = ?", true).First(&taxItem).Error)
	assert.Equal(t, 0, taxItem.Stock)
}

func TestSetComplete_ReopenRestoresStock(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")
	item := seedItem(t, db, "Kickstand", "11.00", "5.00", 5)

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	trx, err := svc.AddItem(trx.ID, item.ID, nil, mechanic.ID)
	require.NoError(t, err)

	trx, err = svc.SetComplete(trx.ID, true, mechanic.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, itemStock(t, db, item.ID))

	trx, err = svc.SetComplete(trx.ID, false, mechanic.ID)
	require.NoError(t, err)
	assert.False(t, trx.Complete)
	assert.NotNil(t, trx.DateCompleted)
	assert.Equal(t, 5, itemStock(t, db, item.ID))
}

func TestSetComplete_RepeatedSetIsNoOp(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")
	item := seedItem(t, db, "Bell", "6.00", "2.00", 5)

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	_, err := svc.AddItem(trx.ID, item.ID, nil, mechanic.ID)
	require.NoError(t, err)

	_, err = svc.SetComplete(trx.ID, true, mechanic.ID)
	require.NoError(t, err)
	_, err = svc.SetComplete(trx.ID, true, mechanic.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, itemStock(t, db, item.ID))
}

func TestMarkPaid_ForcesCompleteWithoutTouchingStock(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")
	item := seedItem(t, db, "Basket", "24.00", "11.00", 5)

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	_, err := svc.AddItem(trx.ID, item.ID, nil, mechanic.ID)
	require.NoError(t, err)

	trx, becamePaid, err := svc.MarkPaid(trx.ID, true, mechanic.ID)
	require.NoError(t, err)
	assert.True(t, becamePaid)
	assert.True(t, trx.IsPaid)
	assert.True(t, trx.Complete)
	assert.Equal(t, 5, itemStock(t, db, item.ID))

	_, becamePaid, err = svc.MarkPaid(trx.ID, true, mechanic.ID)
	require.NoError(t, err)
	assert.False(t, becamePaid)

	trx, becamePaid, err = svc.MarkPaid(trx.ID, false, mechanic.ID)
	require.NoError(t, err)
	assert.False(t, becamePaid)
	assert.False(t, trx.IsPaid)
	assert.True(t, trx.Complete)
	assert.Equal(t, 5, itemStock(t, db, item.ID))
}

func TestRepairLines_SnapshotPriceAndToggle(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")
	tuneUp := seedRepair(t, db, "Tune Up", "45.00")

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	trx, err := svc.AddRepair(trx.ID, tuneUp.ID, mechanic.ID)
	require.NoError(t, err)
	assert.Equal(t, "45.00", trx.TotalCost.StringFixed(2))
	require.Len(t, trx.Repairs, 1)
	lineID := trx.Repairs[0].ID

	trx, err = svc.SetRepairCompleted(trx.ID, lineID, true, mechanic.ID)
	require.NoError(t, err)
	assert.True(t, trx.Repairs[0].Completed)

	trx, err = svc.SetRepairCompleted(trx.ID, lineID, false, mechanic.ID)
	require.NoError(t, err)
	assert.False(t, trx.Repairs[0].Completed)

	// A catalog price change never reprices a line already on the transaction.
	require.NoError(t, db.Model(&models.Repair{}).
		Where("id = ?", tuneUp.ID).
		Update("price", dec("60.00")).Error)

	trx, err = svc.RemoveRepair(trx.ID, lineID, mechanic.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.00", trx.TotalCost.StringFixed(2))
	assert.Empty(t, trx.Repairs)
}

func TestDeleteTransaction_UnlinksOrderRequests(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	req, err := svc.CreateOrderRequest(CreateOrderRequestInput{
		Request:       "700c wheel",
		Quantity:      1,
		TransactionID: trx.ID,
	}, mechanic.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(trx.ID))

	_, err = svc.GetTransaction(trx.ID)
	requireServiceError(t, err, http.StatusNotFound)

	survivor, err := svc.getOrderRequest(req.ID, "Transactions")
	require.NoError(t, err)
	assert.Empty(t, survivor.Transactions)

	var actionCount int64
	db.Model(&models.Action{}).Where("transaction_id = ?", trx.ID).Count(&actionCount)
	assert.EqualValues(t, 0, actionCount)
}

func TestActions_LoggedNewestFirst(t *testing.T) {
	svc, db := newTestService(t)
	mechanic := seedUser(t, db, "mechanic")
	item := seedItem(t, db, "Chain", "25.99", "14.00", 4)
	tuneUp := seedRepair(t, db, "Tune Up", "45.00")

	trx := newTransaction(t, svc, mechanic.ID, "sammy@rice.edu")
	_, err := svc.AddItem(trx.ID, item.ID, nil, mechanic.ID)
	require.NoError(t, err)
	trx, err = svc.AddRepair(trx.ID, tuneUp.ID, mechanic.ID)
	require.NoError(t, err)

	require.Len(t, trx.Actions, 3)
	assert.Equal(t, "Added Repair Tune Up", trx.Actions[0].Description)
	assert.Equal(t, "Added Item Chain", trx.Actions[1].Description)
	assert.Equal(t, "Created Transaction", trx.Actions[2].Description)
	for _, action := range trx.Actions {
		assert.Equal(t, mechanic.ID, action.UserID)
		assert.Equal(t, "mechanic", action.User.Username)
	}
}
