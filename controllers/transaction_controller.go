package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rice-apps/rice-bikes-go/config"
	"github.com/rice-apps/rice-bikes-go/mailer"
	"github.com/rice-apps/rice-bikes-go/models"
	"github.com/rice-apps/rice-bikes-go/service"
	"github.com/rice-apps/rice-bikes-go/utils"
)

func CreateTransaction(c *gin.Context) {
	var input struct {
		TransactionType string `json:"transaction_type" binding:"required"`
		Description     string `json:"description"`
		CustomerID      uint   `json:"customer_id"`
		Customer        struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Email     string `json:"email"`
		} `json:"customer"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	trx, err := svc.CreateTransaction(service.CreateTransactionInput{
		TransactionType: input.TransactionType,
		Description:     input.Description,
		CustomerID:      input.CustomerID,
		FirstName:       input.Customer.FirstName,
		LastName:        input.Customer.LastName,
		Email:           input.Customer.Email,
	}, currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "transaction created", trx)
}

func GetAllTransactions(c *gin.Context) {
	q := config.DB.
		Preload("Customer").
		Preload("Items.Item").
		Preload("Repairs.Repair").
		Preload("Bikes").
		Preload("OrderRequests.Item").
		Order("date_created DESC")

	for param, column := range map[string]string{
		"complete":      "complete",
		"is_paid":       "is_paid",
		"urgent":        "urgent",
		"refurb":        "refurb",
		"employee":      "employee",
		"waiting_email": "waiting_email",
	} {
		if v := c.Query(param); v != "" {
			q = q.Where(column+" = ?", v == "true")
		}
	}
	if v := c.Query("customer_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			q = q.Where("customer_id = ?", id)
		}
	}
	if v := c.Query("transaction_type"); v != "" {
		q = q.Where("transaction_type = ?", v)
	}

	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	offset := 0
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}

	var trxs []models.Transaction
	if err := q.Limit(limit).Offset(offset).Find(&trxs).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list transactions", err)
		return
	}
	utils.Success(c, "transactions", trxs)
}

func GetTransactionByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	trx, err := svc.GetTransaction(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "transaction", trx)
}

// UpdateTransaction handles the thin flag and description edits that carry
// no side effects.
func UpdateTransaction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var trx models.Transaction
	if err := config.DB.First(&trx, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "transaction not found", nil)
		return
	}

	var input struct {
		TransactionType *string `json:"transaction_type"`
		Description     *string `json:"description"`
		Urgent          *bool   `json:"urgent"`
		Refurb          *bool   `json:"refurb"`
		WaitingEmail    *bool   `json:"waiting_email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	updates := map[string]interface{}{}
	if input.TransactionType != nil {
		updates["transaction_type"] = *input.TransactionType
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Urgent != nil {
		updates["urgent"] = *input.Urgent
	}
	if input.Refurb != nil {
		updates["refurb"] = *input.Refurb
	}
	if input.WaitingEmail != nil {
		updates["waiting_email"] = *input.WaitingEmail
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&trx).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "failed to update transaction", err)
			return
		}
	}

	loaded, err := svc.GetTransaction(trx.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "transaction updated", loaded)
}

func DeleteTransaction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := svc.DeleteTransaction(id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "transaction deleted", nil)
}

// CompleteTransaction closes or reopens a transaction. Closing tells the
// customer their bike is ready.
func CompleteTransaction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input struct {
		Complete *bool `json:"complete" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	trx, err := svc.SetComplete(id, *input.Complete, currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if *input.Complete && trx.Customer.Email != "" {
		mail.SendAsync(mailer.TemplatePickup, trx.Customer.Email,
			"Your bike is ready for pickup", mailer.PickupFromTransaction(trx))
	}
	utils.Success(c, "transaction updated", trx)
}

// MarkTransactionPaid toggles payment and sends the receipt the first time a
// transaction turns paid.
func MarkTransactionPaid(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input struct {
		IsPaid *bool `json:"is_paid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	trx, becamePaid, err := svc.MarkPaid(id, *input.IsPaid, currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if becamePaid && trx.Customer.Email != "" {
		mail.SendAsync(mailer.TemplateReceipt, trx.Customer.Email,
			"Your Rice Bikes receipt", mailer.ReceiptFromTransaction(trx))
	} else if becamePaid {
		logger.Warn("receipt skipped, customer has no email",
			zap.Uint("transaction_id", trx.ID))
	}
	utils.Success(c, "transaction updated", trx)
}

func AddTransactionItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input struct {
		ItemID      uint     `json:"item_id" binding:"required"`
		CustomPrice *float64 `json:"custom_price"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	var customPrice *decimal.Decimal
	if input.CustomPrice != nil {
		p := decimal.NewFromFloat(*input.CustomPrice)
		customPrice = &p
	}

	trx, err := svc.AddItem(id, input.ItemID, customPrice, currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "item added", trx)
}

func RemoveTransactionItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	lineID, ok := parseID(c, "lineId")
	if !ok {
		return
	}

	trx, err := svc.RemoveItem(id, lineID, currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "item removed", trx)
}

func AddTransactionRepair(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input struct {
		RepairID uint `json:"repair_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	trx, err := svc.AddRepair(id, input.RepairID, currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "repair added", trx)
}

func RemoveTransactionRepair(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	lineID, ok := parseID(c, "lineId")
	if !ok {
		return
	}

	trx, err := svc.RemoveRepair(id, lineID, currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "repair removed", trx)
}

func SetTransactionRepairCompleted(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	lineID, ok := parseID(c, "lineId")
	if !ok {
		return
	}
	var input struct {
		Completed *bool `json:"completed" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	trx, err := svc.SetRepairCompleted(id, lineID, *input.Completed, currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "repair updated", trx)
}

func AttachTransactionBike(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input struct {
		BikeID      uint   `json:"bike_id"`
		Make        string `json:"make"`
		Model       string `json:"model"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	trx, err := svc.AttachBike(id, service.AttachBikeInput{
		BikeID:      input.BikeID,
		Make:        input.Make,
		Model:       input.Model,
		Description: input.Description,
	}, currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "bike attached", trx)
}

func DetachTransactionBike(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	bikeID, ok := parseID(c, "bikeId")
	if !ok {
		return
	}

	trx, err := svc.DetachBike(id, bikeID, currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "bike detached", trx)
}

func AddTransactionOrderRequest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input struct {
		OrderRequestID uint `json:"order_request_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	trx, err := svc.AddOrderRequest(id, input.OrderRequestID, currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "order request linked", trx)
}

func RemoveTransactionOrderRequest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	requestID, ok := parseID(c, "requestId")
	if !ok {
		return
	}

	trx, err := svc.RemoveOrderRequest(id, requestID, currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "order request unlinked", trx)
}
