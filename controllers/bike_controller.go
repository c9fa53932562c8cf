package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rice-apps/rice-bikes-go/config"
	"github.com/rice-apps/rice-bikes-go/models"
	"github.com/rice-apps/rice-bikes-go/utils"
)

func CreateBike(c *gin.Context) {
	var input struct {
		Make        string `json:"make" binding:"required"`
		Model       string `json:"model" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	bike := models.Bike{
		Make:        input.Make,
		Model:       input.Model,
		Description: input.Description,
	}
	if err := config.DB.Create(&bike).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to create bike", err)
		return
	}
	utils.Success(c, "bike created", bike)
}

func GetAllBikes(c *gin.Context) {
	var bikes []models.Bike
	if err := config.DB.Order("make ASC, model ASC").Find(&bikes).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list bikes", err)
		return
	}
	utils.Success(c, "bikes", bikes)
}

func GetBikeByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var bike models.Bike
	if err := config.DB.First(&bike, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "bike not found", nil)
		return
	}
	utils.Success(c, "bike", bike)
}

func UpdateBike(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var bike models.Bike
	if err := config.DB.First(&bike, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "bike not found", nil)
		return
	}

	var input struct {
		Make        *string `json:"make"`
		Model       *string `json:"model"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	updates := map[string]interface{}{}
	if input.Make != nil {
		updates["make"] = *input.Make
	}
	if input.Model != nil {
		updates["model"] = *input.Model
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&bike).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "failed to update bike", err)
			return
		}
	}

	config.DB.First(&bike, bike.ID)
	utils.Success(c, "bike updated", bike)
}

func DeleteBike(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var bike models.Bike
	if err := config.DB.First(&bike, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "bike not found", nil)
		return
	}

	if err := config.DB.Exec("DELETE FROM transaction_bikes WHERE bike_id = ?", bike.ID).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to unlink bike", err)
		return
	}
	if err := config.DB.Delete(&bike).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to delete bike", err)
		return
	}
	utils.Success(c, "bike deleted", nil)
}
