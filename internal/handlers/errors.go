package handlers

import (
	"errors"
	"net/http"

	"github.com/CauaGLS/Projeto-de-TCC/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondServiceError maps business errors to HTTP statuses. These are
// request-scoped outcomes, never retried here; transaction conflicts were
// already retried inside the persistence layer.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrAccessDenied):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, services.ErrAlreadyInFamily),
		errors.Is(err, services.ErrCreatorHasMembers),
		errors.Is(err, services.ErrCannotRemoveSelf):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logrus.WithField("error", err.Error()).Error("Unhandled service error")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
