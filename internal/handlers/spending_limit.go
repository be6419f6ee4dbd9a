package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CauaGLS/Projeto-de-TCC/db"
	"github.com/CauaGLS/Projeto-de-TCC/internal/models"
	"github.com/CauaGLS/Projeto-de-TCC/internal/utils"
)

type SetSpendingLimitRequest struct {
	Value decimal.Decimal `json:"value" binding:"required"`
}

type SpendingLimitResponse struct {
	ID    uint            `json:"id"`
	Value decimal.Decimal `json:"value"`
}

// GetSpendingLimit returns null when the user never set a limit; the
// absence of a limit is a normal state, not an error.
func GetSpendingLimit(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var limit models.SpendingLimit
	if err := db.DB.Where("user_id = ?", userID).First(&limit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusOK, nil)
			return
		}

		logrus.WithError(err).Error("Failed to load spending limit")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, SpendingLimitResponse{ID: limit.ID, Value: limit.Value})
}

func SetSpendingLimit(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req SetSpendingLimitRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Value.IsNegative() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Value must not be negative"})
		return
	}

	limit := models.SpendingLimit{UserID: userID, Value: req.Value}

	err = db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&limit).Error

	if err != nil {
		logrus.WithError(err).Error("Failed to set spending limit")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.Where("user_id = ?", userID).First(&limit).Error; err != nil {
		logrus.WithError(err).Error("Failed to reload spending limit")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, SpendingLimitResponse{ID: limit.ID, Value: limit.Value})
}

// DeleteSpendingLimit is idempotent: removing an absent limit still
// succeeds.
func DeleteSpendingLimit(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if err := db.DB.Where("user_id = ?", userID).Delete(&models.SpendingLimit{}).Error; err != nil {
		logrus.WithError(err).Error("Failed to delete spending limit")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
