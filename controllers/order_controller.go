package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rice-apps/rice-bikes-go/config"
	"github.com/rice-apps/rice-bikes-go/models"
	"github.com/rice-apps/rice-bikes-go/utils"
)

func CreateOrder(c *gin.Context) {
	var input struct {
		Supplier string `json:"supplier" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	order, err := svc.CreateOrder(input.Supplier)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "order created", order)
}

func GetAllOrders(c *gin.Context) {
	q := config.DB.
		Preload("Items.Item").
		Order("date_created DESC")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if supplier := c.Query("supplier"); supplier != "" {
		q = q.Where("supplier ILIKE ?", "%"+supplier+"%")
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list orders", err)
		return
	}
	utils.Success(c, "orders", orders)
}

func GetOrderByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := svc.GetOrder(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "order", order)
}

// UpdateOrder covers the thin edits: supplier and tracking number.
func UpdateOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var order models.Order
	if err := config.DB.First(&order, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "order not found", nil)
		return
	}

	var input struct {
		Supplier       *string `json:"supplier"`
		TrackingNumber *string `json:"tracking_number"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	updates := map[string]interface{}{}
	if input.Supplier != nil {
		updates["supplier"] = *input.Supplier
	}
	if input.TrackingNumber != nil {
		updates["tracking_number"] = *input.TrackingNumber
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&order).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "failed to update order", err)
			return
		}
	}

	loaded, err := svc.GetOrder(order.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "order updated", loaded)
}

func SetOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	order, err := svc.SetOrderStatus(id, models.OrderStatus(input.Status))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "order status updated", order)
}

func SetOrderFreightCharge(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input struct {
		FreightCharge *float64 `json:"freight_charge" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	order, err := svc.SetFreightCharge(id, decimal.NewFromFloat(*input.FreightCharge))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "freight charge updated", order)
}

func SetOrderTrackingNumber(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input struct {
		TrackingNumber string `json:"tracking_number"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	var order models.Order
	if err := config.DB.First(&order, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "order not found", nil)
		return
	}
	if err := config.DB.Model(&order).Update("tracking_number", input.TrackingNumber).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to update tracking number", err)
		return
	}

	loaded, err := svc.GetOrder(order.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "tracking number updated", loaded)
}

func AssociateOrderRequest(c *gin.Context) {
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

	order, err := svc.AssociateOrderRequest(id, input.OrderRequestID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "order request added", order)
}

func DisassociateOrderRequest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	requestID, ok := parseID(c, "requestId")
	if !ok {
		return
	}

	order, err := svc.DisassociateOrderRequest(id, requestID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "order request removed", order)
}

func DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := svc.DeleteOrder(id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "order deleted", nil)
}
