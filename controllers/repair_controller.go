package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rice-apps/rice-bikes-go/config"
	"github.com/rice-apps/rice-bikes-go/models"
	"github.com/rice-apps/rice-bikes-go/utils"
)

func CreateRepair(c *gin.Context) {
	var input struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	repair := models.Repair{
		Name:        input.Name,
		Description: input.Description,
		Price:       decimal.NewFromFloat(input.Price),
	}
	if err := config.DB.Create(&repair).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to create repair", err)
		return
	}
	utils.Success(c, "repair created", repair)
}

func GetAllRepairs(c *gin.Context) {
	q := config.DB.Order("name ASC")
	if c.Query("include_disabled") != "true" {
		q = q.Where("disabled = ?", false)
	}

	var repairs []models.Repair
	if err := q.Find(&repairs).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list repairs", err)
		return
	}
	utils.Success(c, "repairs", repairs)
}

func GetRepairByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var repair models.Repair
	if err := config.DB.First(&repair, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "repair not found", nil)
		return
	}
	utils.Success(c, "repair", repair)
}

func UpdateRepair(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var repair models.Repair
	if err := config.DB.First(&repair, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "repair not found", nil)
		return
	}

	var input struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Disabled    *bool    `json:"disabled"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		updates["price"] = decimal.NewFromFloat(*input.Price)
	}
	if input.Disabled != nil {
		updates["disabled"] = *input.Disabled
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&repair).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "failed to update repair", err)
			return
		}
	}

	config.DB.First(&repair, repair.ID)
	utils.Success(c, "repair updated", repair)
}

// DeleteRepair disables the repair so transaction history stays priced.
func DeleteRepair(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var repair models.Repair
	if err := config.DB.First(&repair, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "repair not found", nil)
		return
	}
	if err := config.DB.Model(&repair).Update("disabled", true).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to disable repair", err)
		return
	}
	utils.Success(c, "repair disabled", repair)
}
