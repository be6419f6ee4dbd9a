package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/CauaGLS/Projeto-de-TCC/db"
	"github.com/CauaGLS/Projeto-de-TCC/internal/cache"
	"github.com/CauaGLS/Projeto-de-TCC/internal/models"
	"github.com/CauaGLS/Projeto-de-TCC/internal/services"
	"github.com/CauaGLS/Projeto-de-TCC/internal/storage"
	"github.com/CauaGLS/Projeto-de-TCC/internal/types"
	"github.com/CauaGLS/Projeto-de-TCC/internal/utils"
)

const financeCacheTTL = 60 * time.Second

type CreateFinanceRequest struct {
	Title       string               `json:"title" binding:"required,max=50"`
	Value       decimal.Decimal      `json:"value" binding:"required"`
	Category    string               `json:"category" binding:"required,max=45"`
	Type        types.FinanceType    `json:"type"`
	Status      types.FinanceStatus  `json:"status"`
	DueDate     *string              `json:"due_date"`
	PaymentDate *string              `json:"payment_date"`
	Shared      bool                 `json:"shared"`
}

type UpdateFinanceRequest struct {
	Title       *string              `json:"title"`
	Value       *decimal.Decimal     `json:"value"`
	Category    *string              `json:"category"`
	Type        *types.FinanceType   `json:"type"`
	Status      *types.FinanceStatus `json:"status"`
	DueDate     *string              `json:"due_date"`
	PaymentDate *string              `json:"payment_date"`
	Shared      *bool                `json:"shared"`
}

// financeCacheKey is per user, never per family: each member's list mixes
// the shared records with that member's private ones, so members can never
// share a cache entry.
func financeCacheKey(userID uint) string {
	return fmt.Sprintf("finances:user:%d", userID)
}

// invalidateFinanceCache drops every member's cached list. A mutation to a
// shared record changes what each member sees, and a private mutation only
// has the owner in scope.
func invalidateFinanceCache(ctx *gin.Context, scope services.Scope) {
	if !cache.Enabled() {
		return
	}

	keys := make([]string, 0, len(scope.MemberIDs))
	for _, memberID := range scope.MemberIDs {
		keys = append(keys, financeCacheKey(memberID))
	}

	if err := cache.Delete(ctx.Request.Context(), keys...); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate finance cache")
	}
}

func notifyScope(scope services.Scope) {
	BroadcastRefresh(scope.ChannelKey())
}

func resolveRequestScope(ctx *gin.Context) (services.Scope, bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return services.Scope{}, false
	}

	scope, err := services.ResolveScope(db.DB, userID)

	if err != nil {
		logrus.WithError(err).Error("Failed to resolve scope")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return services.Scope{}, false
	}

	return scope, true
}

func GetFinances(ctx *gin.Context) {
	scope, ok := resolveRequestScope(ctx)

	if !ok {
		return
	}

	cacheKey := financeCacheKey(scope.UserID)

	var cached []FinanceResponse
	if hit, err := cache.Get(ctx.Request.Context(), cacheKey, &cached); err != nil {
		logrus.WithError(err).Warn("Finance cache read failed")
	} else if hit {
		ctx.JSON(http.StatusOK, cached)
		return
	}

	var finances []models.Finance
	err := services.ScopedFinances(db.DB, scope).
		Preload("CreatedBy").
		Preload("Attachments").
		Order("created_at DESC").
		Find(&finances).Error

	if err != nil {
		logrus.WithError(err).Error("Failed to list finances")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	resp := make([]FinanceResponse, 0, len(finances))
	for i := range finances {
		resp = append(resp, toFinanceResponse(&finances[i]))
	}

	if err := cache.Set(ctx.Request.Context(), cacheKey, resp, financeCacheTTL); err != nil {
		logrus.WithError(err).Warn("Finance cache write failed")
	}

	ctx.JSON(http.StatusOK, resp)
}

func CreateFinance(ctx *gin.Context) {
	scope, ok := resolveRequestScope(ctx)

	if !ok {
		return
	}

	var req CreateFinanceRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Type == "" {
		req.Type = types.FinanceTypeExpense
	}

	if req.Status == "" {
		req.Status = types.FinanceStatusPending
	}

	if !req.Type.Valid() || !req.Status.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type or status"})
		return
	}

	dueDate, err := parseDate(req.DueDate)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	paymentDate, err := parseDate(req.PaymentDate)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	finance := models.Finance{
		Title:       req.Title,
		Value:       req.Value,
		Category:    req.Category,
		Type:        req.Type,
		Status:      req.Status,
		DueDate:     dueDate,
		PaymentDate: paymentDate,
		CreatedByID: scope.UserID,
	}

	if req.Shared && scope.Shared() {
		finance.FamilyID = scope.FamilyID
	}

	services.ApplyFinanceLifecycle(&finance, time.Now())

	if err := db.DB.Create(&finance).Error; err != nil {
		logrus.WithError(err).Error("Failed to create finance")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.Preload("CreatedBy").First(&finance, finance.ID).Error; err != nil {
		logrus.WithError(err).Error("Failed to reload finance")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	invalidateFinanceCache(ctx, scope)
	notifyScope(scope)

	ctx.JSON(http.StatusCreated, toFinanceResponse(&finance))
}

func GetFinance(ctx *gin.Context) {
	scope, ok := resolveRequestScope(ctx)

	if !ok {
		return
	}

	financeID, err := utils.GetIDParam(ctx, "finance_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid finance ID"})
		return
	}

	finance, err := services.AuthorizeFinance(db.DB, scope, financeID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toFinanceResponse(finance))
}

func UpdateFinance(ctx *gin.Context) {
	scope, ok := resolveRequestScope(ctx)

	if !ok {
		return
	}

	financeID, err := utils.GetIDParam(ctx, "finance_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid finance ID"})
		return
	}

	var req UpdateFinanceRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	finance, err := services.AuthorizeFinance(db.DB, scope, financeID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	if req.Title != nil {
		finance.Title = *req.Title
	}

	if req.Value != nil {
		finance.Value = *req.Value
	}

	if req.Category != nil {
		finance.Category = *req.Category
	}

	if req.Type != nil {
		if !req.Type.Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type"})
			return
		}
		finance.Type = *req.Type
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		finance.Status = *req.Status
	}

	if req.DueDate != nil {
		dueDate, err := parseDate(req.DueDate)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		finance.DueDate = dueDate
	}

	if req.PaymentDate != nil {
		paymentDate, err := parseDate(req.PaymentDate)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		finance.PaymentDate = paymentDate
	}

	if req.Shared != nil {
		if *req.Shared && scope.Shared() {
			finance.FamilyID = scope.FamilyID
		} else {
			finance.FamilyID = nil
		}
	}

	services.ApplyFinanceLifecycle(finance, time.Now())

	if err := db.DB.Save(finance).Error; err != nil {
		logrus.WithError(err).Error("Failed to update finance")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	invalidateFinanceCache(ctx, scope)
	notifyScope(scope)

	ctx.JSON(http.StatusOK, toFinanceResponse(finance))
}

func DeleteFinance(ctx *gin.Context) {
	scope, ok := resolveRequestScope(ctx)

	if !ok {
		return
	}

	financeID, err := utils.GetIDParam(ctx, "finance_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid finance ID"})
		return
	}

	finance, err := services.AuthorizeFinance(db.DB, scope, financeID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	for _, attachment := range finance.Attachments {
		if err := storage.Default.Delete(attachment.StorageKey); err != nil {
			logrus.WithError(err).WithField("attachment_id", attachment.ID).Warn("Failed to delete attachment file")
		}
	}

	if err := db.DB.Select("Attachments").Delete(finance).Error; err != nil {
		logrus.WithError(err).Error("Failed to delete finance")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	invalidateFinanceCache(ctx, scope)
	notifyScope(scope)

	ctx.Status(http.StatusNoContent)
}
