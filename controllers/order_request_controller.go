package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rice-apps/rice-bikes-go/config"
	"github.com/rice-apps/rice-bikes-go/models"
	"github.com/rice-apps/rice-bikes-go/service"
	"github.com/rice-apps/rice-bikes-go/utils"
)

func CreateOrderRequest(c *gin.Context) {
	var input struct {
		Request       string `json:"request"`
		ItemID        *uint  `json:"item_id"`
		Quantity      int    `json:"quantity"`
		Notes         string `json:"notes"`
		TransactionID uint   `json:"transaction_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	req, err := svc.CreateOrderRequest(service.CreateOrderRequestInput{
		Request:       input.Request,
		ItemID:        input.ItemID,
		Quantity:      input.Quantity,
		Notes:         input.Notes,
		TransactionID: input.TransactionID,
	}, currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "order request created", req)
}

func GetAllOrderRequests(c *gin.Context) {
	q := config.DB.
		Preload("Item").
		Preload("Transactions").
		Order("date_created DESC")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if c.Query("unordered") == "true" {
		q = q.Where("order_id IS NULL")
	}
	if v := c.Query("item_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			q = q.Where("item_id = ?", id)
		}
	}

	var reqs []models.OrderRequest
	if err := q.Find(&reqs).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list order requests", err)
		return
	}
	utils.Success(c, "order requests", reqs)
}

func GetOrderRequestByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.OrderRequest
	err := config.DB.
		Preload("Item").
		Preload("Transactions").
		First(&req, id).Error
	if err != nil {
		utils.Error(c, http.StatusNotFound, "order request not found", nil)
		return
	}
	utils.Success(c, "order request", req)
}

func UpdateOrderRequest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input struct {
		Request  *string `json:"request"`
		Quantity *int    `json:"quantity"`
		ItemID   *uint   `json:"item_id"`
		Notes    *string `json:"notes"`
		Supplier *string `json:"supplier"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	req, err := svc.UpdateOrderRequest(id, service.UpdateOrderRequestInput{
		Request:  input.Request,
		Quantity: input.Quantity,
		ItemID:   input.ItemID,
		Notes:    input.Notes,
		Supplier: input.Supplier,
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "order request updated", req)
}

func DeleteOrderRequest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := svc.DeleteOrderRequest(id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "order request deleted", nil)
}
