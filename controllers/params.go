package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

var errInvalidID = errors.New("invalid id")

// pathID reads a positive integer route parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.Error(errInvalidID).SetType(gin.ErrorTypeBind)
		return 0, false
	}
	return uint(id), true
}

func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		c.Error(err).SetType(gin.ErrorTypeBind)
		return false
	}
	return true
}
