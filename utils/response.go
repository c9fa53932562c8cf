package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rice-apps/rice-bikes-go/service"
)

func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    data,
	})
}

func Error(c *gin.Context, status int, message string, err error) {
	resp := gin.H{"message": message}
	if err != nil {
		resp["error"] = err.Error()
	}
	c.JSON(status, resp)
}

// HandleError maps a workflow failure onto the response envelope. Errors
// without a recognized class are internal.
func HandleError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		Error(c, svcErr.Status, svcErr.Message, svcErr.Unwrap())
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		Error(c, http.StatusNotFound, "record not found", err)
		return
	}
	Error(c, http.StatusInternalServerError, "internal server error", err)
}
