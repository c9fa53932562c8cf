package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/rice-apps/rice-bikes-go/config"
	"github.com/rice-apps/rice-bikes-go/models"
	"github.com/rice-apps/rice-bikes-go/utils"
)

func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("username ASC").Find(&users).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list users", err)
		return
	}
	utils.Success(c, "users", users)
}

func GetUserByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "user not found", nil)
		return
	}
	utils.Success(c, "user", user)
}

// CreateUser adds a shop account directly, with admin grantable at creation.
func CreateUser(c *gin.Context) {
	var input struct {
		Username  string `json:"username" binding:"required"`
		Password  string `json:"password" binding:"required"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Admin     bool   `json:"admin"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}
	user := models.User{
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hash),
		Admin:        input.Admin,
		Active:       true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			utils.Error(c, http.StatusBadRequest, "username already taken", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "failed to create user", err)
		return
	}

	utils.Success(c, "user created", user)
}

func UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "user not found", nil)
		return
	}

	var input struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Admin     *bool   `json:"admin"`
		Active    *bool   `json:"active"`
		Password  *string `json:"password"`
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
	if input.Admin != nil {
		updates["admin"] = *input.Admin
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "failed to hash password", err)
			return
		}
		updates["password_hash"] = string(hash)
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "failed to update user", err)
			return
		}
	}

	config.DB.First(&user, user.ID)
	utils.Success(c, "user updated", user)
}

// DeleteUser deactivates instead of deleting: users stay resolvable from the
// action log.
func DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "user not found", nil)
		return
	}
	if err := config.DB.Model(&user).Update("active", false).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to deactivate user", err)
		return
	}
	utils.Success(c, "user deactivated", user)
}
