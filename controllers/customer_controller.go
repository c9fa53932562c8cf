package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rice-apps/rice-bikes-go/config"
	"github.com/rice-apps/rice-bikes-go/models"
	"github.com/rice-apps/rice-bikes-go/utils"
)

func CreateCustomer(c *gin.Context) {
	var input struct {
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	customer := models.Customer{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	}
	if err := config.DB.Create(&customer).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to create customer", err)
		return
	}
	utils.Success(c, "customer created", customer)
}

func GetAllCustomers(c *gin.Context) {
	q := config.DB.Order("last_name ASC, first_name ASC")
	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var customers []models.Customer
	if err := q.Find(&customers).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list customers", err)
		return
	}
	utils.Success(c, "customers", customers)
}

func GetCustomerByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var customer models.Customer
	if err := config.DB.First(&customer, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "customer not found", nil)
		return
	}
	utils.Success(c, "customer", customer)
}

func UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var customer models.Customer
	if err := config.DB.First(&customer, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "customer not found", nil)
		return
	}

	var input struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Email     *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	updates := map[string]interface{}{}
	if input.FirstName != nil {
		updates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		updates["last_name"] = *input.LastName
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&customer).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "failed to update customer", err)
			return
		}
	}

	config.DB.First(&customer, customer.ID)
	utils.Success(c, "customer updated", customer)
}

func DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var customer models.Customer
	if err := config.DB.First(&customer, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "customer not found", nil)
		return
	}

	var cnt int64
	config.DB.Model(&models.Transaction{}).Where("customer_id = ?", customer.ID).Count(&cnt)
	if cnt > 0 {
		utils.Error(c, http.StatusForbidden, "customer has transactions", nil)
		return
	}

	if err := config.DB.Delete(&customer).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to delete customer", err)
		return
	}
	utils.Success(c, "customer deleted", nil)
}
