package handlers

import (
	"testing"

	"github.com/CauaGLS/Projeto-de-TCC/internal/services"
)

// Two members of the same family must never share a finance list cache
// entry: each member's list includes their own private records.
func TestFinanceCacheKeyIsPerUser(t *testing.T) {
	familyID := uint(7)

	memberA := services.Scope{UserID: 1, FamilyID: &familyID}
	memberB := services.Scope{UserID: 2, FamilyID: &familyID}

	keyA := financeCacheKey(memberA.UserID)
	keyB := financeCacheKey(memberB.UserID)

	if keyA == keyB {
		t.Errorf("family co-members share cache key %q", keyA)
	}

	solo := services.Scope{UserID: 1}

	if got := financeCacheKey(solo.UserID); got != keyA {
		t.Errorf("same user got different keys in and out of a family: %q vs %q", got, keyA)
	}
}
