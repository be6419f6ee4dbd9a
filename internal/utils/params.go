package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetIDParam parses a positive integer path parameter.
func GetIDParam(ctx *gin.Context, name string) (uint, error) {
	idStr := ctx.Param(name)

	if idStr == "" {
		return 0, errors.New("missing " + name)
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil {
		return 0, errors.New("invalid " + name)
	}

	return uint(id), nil
}
