package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/CauaGLS/Projeto-de-TCC/db"
	"github.com/CauaGLS/Projeto-de-TCC/internal/cache"
	"github.com/CauaGLS/Projeto-de-TCC/internal/models"
	"github.com/CauaGLS/Projeto-de-TCC/internal/services"
	"github.com/CauaGLS/Projeto-de-TCC/internal/types"
	"github.com/CauaGLS/Projeto-de-TCC/internal/utils"
)

type CreateFamilyRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

type JoinFamilyRequest struct {
	Code string `json:"code" binding:"required"`
}

type FamilyResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedBy uint      `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func toFamilyResponse(family *models.Family) FamilyResponse {
	return FamilyResponse{
		ID:        family.ID,
		Name:      family.Name,
		Code:      family.Code,
		CreatedBy: family.CreatedByID,
		CreatedAt: family.CreatedAt,
	}
}

// dropFamilyCaches clears the finance list cache of every current member
// plus the users passed explicitly (someone who just left no longer shows
// up in the membership query but still holds a stale entry).
func dropFamilyCaches(ctx *gin.Context, familyID uint, userIDs ...uint) {
	if !cache.Enabled() {
		return
	}

	var memberIDs []uint
	if err := db.DB.Model(&models.FamilyMembership{}).
		Where("family_id = ?", familyID).
		Pluck("user_id", &memberIDs).Error; err != nil {
		logrus.WithError(err).Warn("Failed to load members for cache invalidation")
	}

	keys := make([]string, 0, len(memberIDs)+len(userIDs))
	for _, id := range append(memberIDs, userIDs...) {
		keys = append(keys, financeCacheKey(id))
	}

	if err := cache.Delete(ctx.Request.Context(), keys...); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate finance cache")
	}
}

func GetFamily(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	family, err := services.GetFamilyForUser(db.DB, userID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toFamilyResponse(family))
}

func GetFamilyUsers(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	users, err := services.ListFamilyUsers(db.DB, userID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	resp := make([]types.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, *toUserResponse(&users[i]))
	}

	ctx.JSON(http.StatusOK, resp)
}

func CreateFamily(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req CreateFamilyRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	family, err := services.CreateFamily(db.DB, userID, req.Name)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	dropFamilyCaches(ctx, family.ID, userID)

	logrus.WithFields(logrus.Fields{"family_id": family.ID, "user_id": userID}).Info("Family created")

	ctx.JSON(http.StatusCreated, toFamilyResponse(family))
}

func JoinFamily(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req JoinFamilyRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	family, err := services.JoinFamily(db.DB, user.ID, req.Code)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	dropFamilyCaches(ctx, family.ID, user.ID)
	BroadcastRefresh(fmt.Sprintf("family:%d", family.ID))

	if family.CreatedByID != user.ID {
		var creator models.User
		if err := db.DB.First(&creator, family.CreatedByID).Error; err == nil {
			go services.NotifyMemberJoined(context.Background(), creator.Email, creator.Name, user.Name, family.Name)
		}
	}

	ctx.JSON(http.StatusOK, toFamilyResponse(family))
}

func LeaveFamily(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	family, err := services.GetFamilyForUser(db.DB, userID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	if err := services.LeaveFamily(db.DB, userID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	dropFamilyCaches(ctx, family.ID, userID)
	BroadcastRefresh(fmt.Sprintf("family:%d", family.ID))

	ctx.Status(http.StatusNoContent)
}

func RemoveFamilyMember(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	targetID, err := utils.GetIDParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	family, err := services.GetFamilyForUser(db.DB, userID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	if err := services.RemoveMember(db.DB, userID, targetID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	dropFamilyCaches(ctx, family.ID, targetID)
	BroadcastRefresh(fmt.Sprintf("family:%d", family.ID))
	BroadcastRefresh(fmt.Sprintf("user:%d", targetID))

	ctx.Status(http.StatusNoContent)
}
