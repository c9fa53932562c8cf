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

func Register(c *gin.Context) {
	var input struct {
		Username  string `json:"username" binding:"required"`
		Password  string `json:"password" binding:"required"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	var existing models.User
	if err := config.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		utils.Error(c, http.StatusBadRequest, "username already taken", nil)
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
		Active:       true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		// The existence check above can race with a concurrent register.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			utils.Error(c, http.StatusBadRequest, "username already taken", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "failed to create user", err)
		return
	}

	utils.Success(c, "registered", user)
}

func Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	var user models.User
	if err := config.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		utils.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if !user.Active {
		utils.Error(c, http.StatusUnauthorized, "account is deactivated", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		utils.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Admin)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"token":   token,
		"user":    user,
	})
}
