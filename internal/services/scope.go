package services

import (
	"errors"
	"fmt"

	"github.com/CauaGLS/Projeto-de-TCC/internal/models"
	"gorm.io/gorm"
)

// Scope is the set of users whose shared records the requester may see:
// the requester alone, or every current member of the requester's family.
type Scope struct {
	UserID    uint
	FamilyID  *uint
	MemberIDs []uint
}

// ResolveScope looks up the requester's family membership. Having no
// membership is the normal solo case, not an error.
func ResolveScope(gdb *gorm.DB, userID uint) (Scope, error) {
	var membership models.FamilyMembership

	err := gdb.Where("user_id = ?", userID).First(&membership).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Scope{UserID: userID, MemberIDs: []uint{userID}}, nil
	}

	if err != nil {
		return Scope{}, fmt.Errorf("failed to resolve scope: %w", err)
	}

	var memberIDs []uint

	if err := gdb.Model(&models.FamilyMembership{}).
		Where("family_id = ?", membership.FamilyID).
		Order("created_at ASC").
		Pluck("user_id", &memberIDs).Error; err != nil {
		return Scope{}, fmt.Errorf("failed to load family members: %w", err)
	}

	familyID := membership.FamilyID

	return Scope{
		UserID:    userID,
		FamilyID:  &familyID,
		MemberIDs: memberIDs,
	}, nil
}

// Shared reports whether the scope spans a family.
func (s Scope) Shared() bool {
	return s.FamilyID != nil
}

// ChannelKey identifies the websocket/cache channel all members of this
// scope share.
func (s Scope) ChannelKey() string {
	if s.FamilyID != nil {
		return fmt.Sprintf("family:%d", *s.FamilyID)
	}

	return fmt.Sprintf("user:%d", s.UserID)
}
