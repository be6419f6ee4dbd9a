package services

import (
	"errors"
	"fmt"

	"github.com/CauaGLS/Projeto-de-TCC/internal/models"
	"gorm.io/gorm"
)

// Allows is the access rule shared by every owned resource: the requester
// owns it, or it was attributed to the family the requester currently
// belongs to.
func (s Scope) Allows(ownerID uint, familyID *uint) bool {
	if ownerID == s.UserID {
		return true
	}

	if familyID != nil && s.FamilyID != nil && *familyID == *s.FamilyID {
		return true
	}

	return false
}

// AuthorizeFinance loads a finance record and checks the requester's scope
// against it. Missing rows return ErrNotFound; rows outside the scope
// return ErrAccessDenied.
func AuthorizeFinance(gdb *gorm.DB, scope Scope, financeID uint) (*models.Finance, error) {
	var finance models.Finance

	if err := gdb.Preload("CreatedBy").Preload("Attachments").First(&finance, financeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load finance: %w", err)
	}

	if !scope.Allows(finance.CreatedByID, finance.FamilyID) {
		return nil, ErrAccessDenied
	}

	return &finance, nil
}

// AuthorizeGoal loads a goal with its ordered records and checks scope.
func AuthorizeGoal(gdb *gorm.DB, scope Scope, goalID uint) (*models.Goal, error) {
	var goal models.Goal

	err := gdb.Preload("Records", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at ASC, id ASC")
	}).First(&goal, goalID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}

	if !scope.Allows(goal.UserID, goal.FamilyID) {
		return nil, ErrAccessDenied
	}

	return &goal, nil
}

// AuthorizeAttachment checks scope against the attachment's parent finance.
func AuthorizeAttachment(gdb *gorm.DB, scope Scope, attachmentID uint) (*models.FinanceAttachment, error) {
	var attachment models.FinanceAttachment

	if err := gdb.Preload("Finance").First(&attachment, attachmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load attachment: %w", err)
	}

	if !scope.Allows(attachment.Finance.CreatedByID, attachment.Finance.FamilyID) {
		return nil, ErrAccessDenied
	}

	return &attachment, nil
}

// ScopedFinances applies the visibility filter for list queries: records
// the requester owns plus records attributed to the requester's family.
func ScopedFinances(gdb *gorm.DB, scope Scope) *gorm.DB {
	query := gdb.Model(&models.Finance{})

	if scope.FamilyID != nil {
		return query.Where("created_by_id = ? OR family_id = ?", scope.UserID, *scope.FamilyID)
	}

	return query.Where("created_by_id = ?", scope.UserID)
}

// ScopedGoals is the goal counterpart of ScopedFinances.
func ScopedGoals(gdb *gorm.DB, scope Scope) *gorm.DB {
	query := gdb.Model(&models.Goal{})

	if scope.FamilyID != nil {
		return query.Where("user_id = ? OR family_id = ?", scope.UserID, *scope.FamilyID)
	}

	return query.Where("user_id = ?", scope.UserID)
}
