package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/CauaGLS/Projeto-de-TCC/db"
	"github.com/CauaGLS/Projeto-de-TCC/internal/models"
	"github.com/CauaGLS/Projeto-de-TCC/internal/services"
	"github.com/CauaGLS/Projeto-de-TCC/internal/storage"
	"github.com/CauaGLS/Projeto-de-TCC/internal/utils"
)

const maxAttachmentSize = 10 << 20

func UploadFinanceAttachments(ctx *gin.Context) {
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

	form, err := ctx.MultipartForm()

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Multipart form is required"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}

	if len(files) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "At least one file is required"})
		return
	}

	for _, fileHeader := range files {
		if fileHeader.Size > maxAttachmentSize {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10MB limit"})
			return
		}
	}

	created := make([]AttachmentResponse, 0, len(files))

	for _, fileHeader := range files {
		file, err := fileHeader.Open()

		if err != nil {
			logrus.WithError(err).Error("Failed to open uploaded file")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		key, url, err := storage.Default.Save(fileHeader.Filename, file)
		file.Close()

		if err != nil {
			logrus.WithError(err).Error("Failed to store attachment")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		attachment := models.FinanceAttachment{
			FinanceID:   finance.ID,
			Name:        fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			StorageKey:  key,
			FileURL:     url,
			CreatedByID: scope.UserID,
		}

		if err := db.DB.Create(&attachment).Error; err != nil {
			logrus.WithError(err).Error("Failed to create attachment")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		created = append(created, toAttachmentResponse(attachment))
	}

	invalidateFinanceCache(ctx, scope)
	notifyScope(scope)

	ctx.JSON(http.StatusCreated, created)
}

func DeleteFinanceAttachment(ctx *gin.Context) {
	scope, ok := resolveRequestScope(ctx)

	if !ok {
		return
	}

	attachmentID, err := utils.GetIDParam(ctx, "attachment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment ID"})
		return
	}

	attachment, err := services.AuthorizeAttachment(db.DB, scope, attachmentID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	if err := storage.Default.Delete(attachment.StorageKey); err != nil {
		logrus.WithError(err).WithField("attachment_id", attachment.ID).Warn("Failed to delete attachment file")
	}

	if err := db.DB.Delete(&models.FinanceAttachment{}, attachment.ID).Error; err != nil {
		logrus.WithError(err).Error("Failed to delete attachment")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	invalidateFinanceCache(ctx, scope)
	notifyScope(scope)

	ctx.Status(http.StatusNoContent)
}
