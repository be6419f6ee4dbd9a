package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/CauaGLS/Projeto-de-TCC/internal/models"
	"github.com/CauaGLS/Projeto-de-TCC/internal/services"
	"github.com/CauaGLS/Projeto-de-TCC/internal/types"
)

type FinanceResponse struct {
	ID          uint                 `json:"id"`
	Title       string               `json:"title"`
	Value       decimal.Decimal      `json:"value"`
	Category    string               `json:"category"`
	Type        types.FinanceType    `json:"type"`
	Status      types.FinanceStatus  `json:"status"`
	DueDate     *string              `json:"due_date"`
	PaymentDate *string              `json:"payment_date"`
	CreatedBy   *types.UserResponse  `json:"created_by,omitempty"`
	FamilyID    *uint                `json:"family_id"`
	Attachments []AttachmentResponse `json:"attachments,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type AttachmentResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	FileURL     string    `json:"file_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type GoalRecordResponse struct {
	ID        uint                 `json:"id"`
	Title     string               `json:"title"`
	Value     decimal.Decimal      `json:"value"`
	Type      types.GoalRecordType `json:"type"`
	CreatedAt time.Time            `json:"created_at"`
}

type GoalResponse struct {
	ID           uint                 `json:"id"`
	Title        string               `json:"title"`
	TargetValue  decimal.Decimal      `json:"target_value"`
	CurrentValue decimal.Decimal      `json:"current_value"`
	Progress     float64              `json:"progress"`
	Deadline     *string              `json:"deadline"`
	UserID       uint                 `json:"user_id"`
	FamilyID     *uint                `json:"family_id"`
	Records      []GoalRecordResponse `json:"records"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func toUserResponse(user *models.User) *types.UserResponse {
	if user == nil || user.ID == 0 {
		return nil
	}

	return &types.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Image: user.Image,
	}
}

func toAttachmentResponse(a models.FinanceAttachment) AttachmentResponse {
	return AttachmentResponse{
		ID:          a.ID,
		Name:        a.Name,
		ContentType: a.ContentType,
		Size:        a.Size,
		FileURL:     a.FileURL,
		CreatedAt:   a.CreatedAt,
	}
}

func toFinanceResponse(finance *models.Finance) FinanceResponse {
	resp := FinanceResponse{
		ID:          finance.ID,
		Title:       finance.Title,
		Value:       finance.Value,
		Category:    finance.Category,
		Type:        finance.Type,
		Status:      finance.Status,
		DueDate:     formatDate(finance.DueDate),
		PaymentDate: formatDate(finance.PaymentDate),
		CreatedBy:   toUserResponse(&finance.CreatedBy),
		FamilyID:    finance.FamilyID,
		CreatedAt:   finance.CreatedAt,
		UpdatedAt:   finance.UpdatedAt,
	}

	for _, attachment := range finance.Attachments {
		resp.Attachments = append(resp.Attachments, toAttachmentResponse(attachment))
	}

	return resp
}

func toGoalResponse(goal *models.Goal) GoalResponse {
	resp := GoalResponse{
		ID:           goal.ID,
		Title:        goal.Title,
		TargetValue:  goal.TargetValue,
		CurrentValue: goal.CurrentValue,
		Progress:     services.GoalProgress(goal),
		Deadline:     formatDate(goal.Deadline),
		UserID:       goal.UserID,
		FamilyID:     goal.FamilyID,
		Records:      []GoalRecordResponse{},
		CreatedAt:    goal.CreatedAt,
		UpdatedAt:    goal.UpdatedAt,
	}

	for _, record := range goal.Records {
		resp.Records = append(resp.Records, GoalRecordResponse{
			ID:        record.ID,
			Title:     record.Title,
			Value:     record.Value,
			Type:      record.Type,
			CreatedAt: record.CreatedAt,
		})
	}

	return resp
}
