package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/CauaGLS/Projeto-de-TCC/db"
	"github.com/CauaGLS/Projeto-de-TCC/internal/models"
	"gorm.io/gorm"
)

const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 6
	maxCodeTries = 10
)

// GenerateFamilyCode returns a short join code over an alphabet without
// ambiguous characters (0/O, 1/I).
func GenerateFamilyCode() (string, error) {
	buf := make([]byte, codeLength)

	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}

	return string(buf), nil
}

// CreateFamily creates a family with the requester as creator and sole
// initial member. Users already in a family cannot create another one.
func CreateFamily(gdb *gorm.DB, userID uint, name string) (*models.Family, error) {
	var family models.Family

	err := db.InTransaction(gdb, func(tx *gorm.DB) error {
		var membership models.FamilyMembership

		err := tx.Where("user_id = ?", userID).First(&membership).Error
		if err == nil {
			return ErrAlreadyInFamily
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check membership: %w", err)
		}

		code, err := uniqueFamilyCode(tx)
		if err != nil {
			return err
		}

		family = models.Family{
			Name:        name,
			Code:        code,
			CreatedByID: userID,
		}

		if err := tx.Create(&family).Error; err != nil {
			return fmt.Errorf("failed to create family: %w", err)
		}

		if err := tx.Create(&models.FamilyMembership{
			UserID:   userID,
			FamilyID: family.ID,
		}).Error; err != nil {
			return fmt.Errorf("failed to add creator membership: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &family, nil
}

func uniqueFamilyCode(tx *gorm.DB) (string, error) {
	for i := 0; i < maxCodeTries; i++ {
		code, err := GenerateFamilyCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate family code: %w", err)
		}

		var count int64
		if err := tx.Model(&models.Family{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check code uniqueness: %w", err)
		}

		if count == 0 {
			return code, nil
		}
	}

	return "", errors.New("could not generate a unique family code")
}

// GetFamilyForUser returns the family the user currently belongs to.
func GetFamilyForUser(gdb *gorm.DB, userID uint) (*models.Family, error) {
	var membership models.FamilyMembership

	err := gdb.Preload("Family").Where("user_id = ?", userID).First(&membership).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load membership: %w", err)
	}

	return &membership.Family, nil
}

// ListFamilyUsers returns every member of the user's family, oldest first.
func ListFamilyUsers(gdb *gorm.DB, userID uint) ([]models.User, error) {
	family, err := GetFamilyForUser(gdb, userID)
	if err != nil {
		return nil, err
	}

	var users []models.User

	if err := gdb.Joins("JOIN family_memberships ON family_memberships.user_id = users.id").
		Where("family_memberships.family_id = ?", family.ID).
		Order("family_memberships.created_at ASC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load family users: %w", err)
	}

	return users, nil
}

// JoinFamily adds the requester to the family owning the code. Codes match
// case-insensitively; an unknown code is not found. Joining the family the
// user already belongs to is a no-op, but members of another family must
// leave it first.
func JoinFamily(gdb *gorm.DB, userID uint, code string) (*models.Family, error) {
	var family models.Family

	err := db.InTransaction(gdb, func(tx *gorm.DB) error {
		err := db.LockForUpdate(tx).
			Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
			First(&family).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load family: %w", err)
		}

		var membership models.FamilyMembership

		err = tx.Where("user_id = ?", userID).First(&membership).Error
		if err == nil {
			if membership.FamilyID == family.ID {
				return nil // already a member
			}
			return ErrAlreadyInFamily
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check membership: %w", err)
		}

		if err := tx.Create(&models.FamilyMembership{
			UserID:   userID,
			FamilyID: family.ID,
		}).Error; err != nil {
			return fmt.Errorf("failed to join family: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &family, nil
}

// LeaveFamily removes the requester's membership. The creator may only
// leave as the last member, and doing so deletes the family; the member
// count is evaluated under the family row lock so a concurrent join cannot
// slip past the check.
func LeaveFamily(gdb *gorm.DB, userID uint) error {
	return db.InTransaction(gdb, func(tx *gorm.DB) error {
		var membership models.FamilyMembership

		err := tx.Where("user_id = ?", userID).First(&membership).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load membership: %w", err)
		}

		var family models.Family

		if err := db.LockForUpdate(tx).First(&family, membership.FamilyID).Error; err != nil {
			return fmt.Errorf("failed to lock family: %w", err)
		}

		if family.CreatedByID == userID {
			var members int64

			if err := tx.Model(&models.FamilyMembership{}).
				Where("family_id = ?", family.ID).
				Count(&members).Error; err != nil {
				return fmt.Errorf("failed to count members: %w", err)
			}

			if members > 1 {
				return ErrCreatorHasMembers
			}

			// Last member out: the family goes with them, memberships
			// cascade and the join code dies.
			if err := tx.Where("family_id = ?", family.ID).
				Delete(&models.FamilyMembership{}).Error; err != nil {
				return fmt.Errorf("failed to delete memberships: %w", err)
			}

			if err := tx.Delete(&family).Error; err != nil {
				return fmt.Errorf("failed to delete family: %w", err)
			}

			return nil
		}

		if err := tx.Delete(&membership).Error; err != nil {
			return fmt.Errorf("failed to leave family: %w", err)
		}

		return nil
	})
}

// RemoveMember lets the family creator remove another member. Creators
// must use LeaveFamily for themselves; removing a user who is not a member
// of the creator's family is not found.
func RemoveMember(gdb *gorm.DB, requesterID, targetUserID uint) error {
	return db.InTransaction(gdb, func(tx *gorm.DB) error {
		var membership models.FamilyMembership

		err := tx.Where("user_id = ?", requesterID).First(&membership).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load membership: %w", err)
		}

		var family models.Family

		if err := db.LockForUpdate(tx).First(&family, membership.FamilyID).Error; err != nil {
			return fmt.Errorf("failed to lock family: %w", err)
		}

		if family.CreatedByID != requesterID {
			return ErrAccessDenied
		}

		if targetUserID == requesterID {
			return ErrCannotRemoveSelf
		}

		var target models.FamilyMembership

		err = tx.Where("user_id = ? AND family_id = ?", targetUserID, family.ID).
			First(&target).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load target membership: %w", err)
		}

		if err := tx.Delete(&target).Error; err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}

		return nil
	})
}
