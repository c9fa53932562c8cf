package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rice-apps/rice-bikes-go/config"
	"github.com/rice-apps/rice-bikes-go/models"
	"github.com/rice-apps/rice-bikes-go/utils"
)

func CreateItem(c *gin.Context) {
	var input struct {
		Name          string  `json:"name" binding:"required"`
		UPC           string  `json:"upc"`
		Category      string  `json:"category"`
		Brand         string  `json:"brand"`
		Condition     string  `json:"condition"`
		StandardPrice float64 `json:"standard_price"`
		WholesaleCost float64 `json:"wholesale_cost"`
		Stock         int     `json:"stock"`
		WarningStock  int     `json:"warning_stock"`
		DesiredStock  int     `json:"desired_stock"`
		Hidden        bool    `json:"hidden"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	condition := models.ItemCondition(input.Condition)
	if condition == "" {
		condition = models.ItemConditionNew
	}
	if condition != models.ItemConditionNew && condition != models.ItemConditionUsed {
		utils.Error(c, http.StatusBadRequest, "condition must be New or Used", nil)
		return
	}

	item := models.Item{
		Name:          input.Name,
		UPC:           input.UPC,
		Category:      input.Category,
		Brand:         input.Brand,
		Condition:     condition,
		StandardPrice: decimal.NewFromFloat(input.StandardPrice),
		WholesaleCost: decimal.NewFromFloat(input.WholesaleCost),
		Stock:         input.Stock,
		WarningStock:  input.WarningStock,
		DesiredStock:  input.DesiredStock,
		Hidden:        input.Hidden,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to create item", err)
		return
	}
	utils.Success(c, "item created", item)
}

func GetAllItems(c *gin.Context) {
	q := config.DB.Where("disabled = ?", false).Order("name ASC")
	if c.Query("include_hidden") != "true" {
		q = q.Where("hidden = ?", false)
	}
	if c.Query("include_managed") != "true" {
		q = q.Where("managed = ?", false)
	}
	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR upc ILIKE ? OR brand ILIKE ?", like, like, like)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if upc := c.Query("upc"); upc != "" {
		q = q.Where("upc = ?", upc)
	}

	var items []models.Item
	if err := q.Find(&items).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list items", err)
		return
	}
	utils.Success(c, "items", items)
}

func GetLowStockItems(c *gin.Context) {
	items, err := svc.LowStockItems()
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "low stock items", items)
}

func GetItemByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var item models.Item
	if err := config.DB.First(&item, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "item not found", nil)
		return
	}
	utils.Success(c, "item", item)
}

func UpdateItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var item models.Item
	if err := config.DB.First(&item, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "item not found", nil)
		return
	}

	var input struct {
		Name          *string  `json:"name"`
		UPC           *string  `json:"upc"`
		Category      *string  `json:"category"`
		Brand         *string  `json:"brand"`
		Condition     *string  `json:"condition"`
		StandardPrice *float64 `json:"standard_price"`
		WholesaleCost *float64 `json:"wholesale_cost"`
		WarningStock  *int     `json:"warning_stock"`
		DesiredStock  *int     `json:"desired_stock"`
		Hidden        *bool    `json:"hidden"`
		Disabled      *bool    `json:"disabled"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.UPC != nil {
		updates["upc"] = *input.UPC
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Brand != nil {
		updates["brand"] = *input.Brand
	}
	if input.Condition != nil {
		condition := models.ItemCondition(*input.Condition)
		if condition != models.ItemConditionNew && condition != models.ItemConditionUsed {
			utils.Error(c, http.StatusBadRequest, "condition must be New or Used", nil)
			return
		}
		updates["condition"] = condition
	}
	if input.StandardPrice != nil {
		updates["standard_price"] = decimal.NewFromFloat(*input.StandardPrice)
	}
	if input.WholesaleCost != nil {
		updates["wholesale_cost"] = decimal.NewFromFloat(*input.WholesaleCost)
	}
	if input.WarningStock != nil {
		updates["warning_stock"] = *input.WarningStock
	}
	if input.DesiredStock != nil {
		updates["desired_stock"] = *input.DesiredStock
	}
	if input.Hidden != nil {
		updates["hidden"] = *input.Hidden
	}
	if input.Disabled != nil {
		updates["disabled"] = *input.Disabled
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&item).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "failed to update item", err)
			return
		}
	}

	config.DB.First(&item, item.ID)
	utils.Success(c, "item updated", item)
}

// UpdateItemStock applies a signed delta through the inventory ledger.
func UpdateItemStock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	item, err := svc.AdjustItemStock(id, input.Delta)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, "stock adjusted", item)
}

// DeleteItem disables rather than removes: line items keep their history.
func DeleteItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var item models.Item
	if err := config.DB.First(&item, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "item not found", nil)
		return
	}
	if item.Managed {
		utils.Error(c, http.StatusForbidden, "managed items cannot be deleted", nil)
		return
	}
	if err := config.DB.Model(&item).Update("disabled", true).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to disable item", err)
		return
	}
	utils.Success(c, "item disabled", item)
}
