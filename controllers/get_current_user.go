package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rice-apps/rice-bikes-go/utils"
)

// currentUserID pulls the acting user from the claims the auth middleware
// stored. Zero means no usable identity; the service layer rejects that on
// logged mutations.
func currentUserID(c *gin.Context) uint {
	v, ok := c.Get("user_id")
	if !ok {
		return 0
	}
	id, ok := v.(uint)
	if !ok {
		return 0
	}
	return id
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		utils.Error(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return uint(id), true
}
