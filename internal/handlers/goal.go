package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/CauaGLS/Projeto-de-TCC/db"
	"github.com/CauaGLS/Projeto-de-TCC/internal/models"
	"github.com/CauaGLS/Projeto-de-TCC/internal/services"
	"github.com/CauaGLS/Projeto-de-TCC/internal/types"
	"github.com/CauaGLS/Projeto-de-TCC/internal/utils"
)

type CreateGoalRequest struct {
	Title       string          `json:"title" binding:"required,max=100"`
	TargetValue decimal.Decimal `json:"target_value" binding:"required"`
	Deadline    *string         `json:"deadline"`
	Shared      bool            `json:"shared"`
}

type UpdateGoalRequest struct {
	Title       *string          `json:"title"`
	TargetValue *decimal.Decimal `json:"target_value"`
	Deadline    *string          `json:"deadline"`
	Shared      *bool            `json:"shared"`
}

type AddGoalRecordRequest struct {
	Title string               `json:"title"`
	Value decimal.Decimal      `json:"value" binding:"required"`
	Type  types.GoalRecordType `json:"type" binding:"required"`
}

func GetGoals(ctx *gin.Context) {
	scope, ok := resolveRequestScope(ctx)

	if !ok {
		return
	}

	var goals []models.Goal
	err := services.ScopedGoals(db.DB, scope).
		Preload("Records", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC, id ASC")
		}).
		Order("created_at DESC").
		Find(&goals).Error

	if err != nil {
		logrus.WithError(err).Error("Failed to list goals")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	resp := make([]GoalResponse, 0, len(goals))
	for i := range goals {
		resp = append(resp, toGoalResponse(&goals[i]))
	}

	ctx.JSON(http.StatusOK, resp)
}

func CreateGoal(ctx *gin.Context) {
	scope, ok := resolveRequestScope(ctx)

	if !ok {
		return
	}

	var req CreateGoalRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.TargetValue.IsNegative() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Target value must not be negative"})
		return
	}

	deadline, err := parseDate(req.Deadline)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal := models.Goal{
		UserID:      scope.UserID,
		Title:       req.Title,
		TargetValue: req.TargetValue,
		Deadline:    deadline,
	}

	if req.Shared && scope.Shared() {
		goal.FamilyID = scope.FamilyID
	}

	if err := db.DB.Create(&goal).Error; err != nil {
		logrus.WithError(err).Error("Failed to create goal")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	notifyScope(scope)

	ctx.JSON(http.StatusCreated, toGoalResponse(&goal))
}

func GetGoal(ctx *gin.Context) {
	scope, ok := resolveRequestScope(ctx)

	if !ok {
		return
	}

	goalID, err := utils.GetIDParam(ctx, "goal_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID"})
		return
	}

	goal, err := services.AuthorizeGoal(db.DB, scope, goalID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toGoalResponse(goal))
}

// UpdateGoal never touches CurrentValue: progress only moves through the
// goal's records.
func UpdateGoal(ctx *gin.Context) {
	scope, ok := resolveRequestScope(ctx)

	if !ok {
		return
	}

	goalID, err := utils.GetIDParam(ctx, "goal_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID"})
		return
	}

	var req UpdateGoalRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := services.AuthorizeGoal(db.DB, scope, goalID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}

	if req.TargetValue != nil {
		if req.TargetValue.IsNegative() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Target value must not be negative"})
			return
		}
		goal.TargetValue = *req.TargetValue
	}

	if req.Deadline != nil {
		deadline, err := parseDate(req.Deadline)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		goal.Deadline = deadline
	}

	if req.Shared != nil {
		if *req.Shared && scope.Shared() {
			goal.FamilyID = scope.FamilyID
		} else {
			goal.FamilyID = nil
		}
	}

	err = db.DB.Model(goal).Updates(map[string]interface{}{
		"title":        goal.Title,
		"target_value": goal.TargetValue,
		"deadline":     goal.Deadline,
		"family_id":    goal.FamilyID,
	}).Error

	if err != nil {
		logrus.WithError(err).Error("Failed to update goal")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	notifyScope(scope)

	ctx.JSON(http.StatusOK, toGoalResponse(goal))
}

func DeleteGoal(ctx *gin.Context) {
	scope, ok := resolveRequestScope(ctx)

	if !ok {
		return
	}

	goalID, err := utils.GetIDParam(ctx, "goal_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID"})
		return
	}

	goal, err := services.AuthorizeGoal(db.DB, scope, goalID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	if err := db.DB.Select("Records").Delete(goal).Error; err != nil {
		logrus.WithError(err).Error("Failed to delete goal")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	notifyScope(scope)

	ctx.Status(http.StatusNoContent)
}

func AddGoalRecord(ctx *gin.Context) {
	scope, ok := resolveRequestScope(ctx)

	if !ok {
		return
	}

	goalID, err := utils.GetIDParam(ctx, "goal_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID"})
		return
	}

	var req AddGoalRecordRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Type.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record type"})
		return
	}

	if _, err := services.AuthorizeGoal(db.DB, scope, goalID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	goal, err := services.AddGoalRecord(db.DB, goalID, req.Title, req.Value, req.Type)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	notifyScope(scope)

	ctx.JSON(http.StatusCreated, toGoalResponse(goal))
}
