package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/CauaGLS/Projeto-de-TCC/internal/models"
	"github.com/CauaGLS/Projeto-de-TCC/internal/types"
)

func TestScopeAllows(t *testing.T) {
	familyA := uint(1)
	familyB := uint(2)

	tests := []struct {
		name     string
		scope    Scope
		ownerID  uint
		familyID *uint
		want     bool
	}{
		{name: "owner always allowed", scope: Scope{UserID: 10}, ownerID: 10, familyID: nil, want: true},
		{name: "stranger denied", scope: Scope{UserID: 10}, ownerID: 20, familyID: nil, want: false},
		{name: "co-member allowed on shared record", scope: Scope{UserID: 10, FamilyID: &familyA}, ownerID: 20, familyID: &familyA, want: true},
		{name: "other family denied", scope: Scope{UserID: 10, FamilyID: &familyA}, ownerID: 20, familyID: &familyB, want: false},
		{name: "private record of co-member denied", scope: Scope{UserID: 10, FamilyID: &familyA}, ownerID: 20, familyID: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scope.Allows(tt.ownerID, tt.familyID); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAuthorizeFinance(t *testing.T) {
	gdb := newTestDB(t)
	owner := createTestUser(t, gdb, "owner")
	member := createTestUser(t, gdb, "member")
	stranger := createTestUser(t, gdb, "stranger")

	family, err := CreateFamily(gdb, owner.ID, "Silva")

	if err != nil {
		t.Fatalf("CreateFamily failed: %v", err)
	}

	if _, err := JoinFamily(gdb, member.ID, family.Code); err != nil {
		t.Fatalf("JoinFamily failed: %v", err)
	}

	shared := models.Finance{
		Title:       "Mercado",
		Value:       decimal.RequireFromString("250.40"),
		Category:    "Alimentação",
		Type:        types.FinanceTypeExpense,
		Status:      types.FinanceStatusPending,
		CreatedByID: owner.ID,
		FamilyID:    &family.ID,
	}

	private := models.Finance{
		Title:       "Presente",
		Value:       decimal.RequireFromString("99.90"),
		Category:    "Outros",
		Type:        types.FinanceTypeExpense,
		Status:      types.FinanceStatusPending,
		CreatedByID: owner.ID,
	}

	if err := gdb.Create(&shared).Error; err != nil {
		t.Fatalf("failed to create finance: %v", err)
	}
	if err := gdb.Create(&private).Error; err != nil {
		t.Fatalf("failed to create finance: %v", err)
	}

	ownerScope, _ := ResolveScope(gdb, owner.ID)
	memberScope, _ := ResolveScope(gdb, member.ID)
	strangerScope, _ := ResolveScope(gdb, stranger.ID)

	if _, err := AuthorizeFinance(gdb, ownerScope, shared.ID); err != nil {
		t.Errorf("owner should access own record: %v", err)
	}

	if _, err := AuthorizeFinance(gdb, memberScope, shared.ID); err != nil {
		t.Errorf("co-member should access shared record: %v", err)
	}

	if _, err := AuthorizeFinance(gdb, memberScope, private.ID); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("co-member must not access private record, got %v", err)
	}

	if _, err := AuthorizeFinance(gdb, strangerScope, shared.ID); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("stranger must be denied, got %v", err)
	}

	if _, err := AuthorizeFinance(gdb, ownerScope, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing record must be not found, got %v", err)
	}
}

func TestScopedFinances(t *testing.T) {
	gdb := newTestDB(t)
	owner := createTestUser(t, gdb, "owner")
	member := createTestUser(t, gdb, "member")
	stranger := createTestUser(t, gdb, "stranger")

	family, err := CreateFamily(gdb, owner.ID, "Silva")

	if err != nil {
		t.Fatalf("CreateFamily failed: %v", err)
	}

	if _, err := JoinFamily(gdb, member.ID, family.Code); err != nil {
		t.Fatalf("JoinFamily failed: %v", err)
	}

	finances := []models.Finance{
		{Title: "Shared", Value: decimal.New(1, 0), Category: "c", Type: types.FinanceTypeExpense, Status: types.FinanceStatusPending, CreatedByID: owner.ID, FamilyID: &family.ID},
		{Title: "Owner private", Value: decimal.New(1, 0), Category: "c", Type: types.FinanceTypeExpense, Status: types.FinanceStatusPending, CreatedByID: owner.ID},
		{Title: "Member private", Value: decimal.New(1, 0), Category: "c", Type: types.FinanceTypeExpense, Status: types.FinanceStatusPending, CreatedByID: member.ID},
		{Title: "Stranger private", Value: decimal.New(1, 0), Category: "c", Type: types.FinanceTypeExpense, Status: types.FinanceStatusPending, CreatedByID: stranger.ID},
	}

	for i := range finances {
		if err := gdb.Create(&finances[i]).Error; err != nil {
			t.Fatalf("failed to create finance: %v", err)
		}
	}

	tests := []struct {
		name   string
		userID uint
		want   int
	}{
		{name: "owner sees shared plus own private", userID: owner.ID, want: 2},
		{name: "member sees shared plus own private", userID: member.ID, want: 2},
		{name: "stranger sees only own", userID: stranger.ID, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, err := ResolveScope(gdb, tt.userID)

			if err != nil {
				t.Fatalf("ResolveScope failed: %v", err)
			}

			var got []models.Finance
			if err := ScopedFinances(gdb, scope).Find(&got).Error; err != nil {
				t.Fatalf("list failed: %v", err)
			}

			if len(got) != tt.want {
				t.Errorf("got %d records, want %d", len(got), tt.want)
			}
		})
	}
}

func TestAuthorizeGoalLoadsOrderedRecords(t *testing.T) {
	gdb := newTestDB(t)
	owner := createTestUser(t, gdb, "owner")

	goal := models.Goal{
		UserID:      owner.ID,
		Title:       "Reserva",
		TargetValue: decimal.RequireFromString("1000"),
	}

	if err := gdb.Create(&goal).Error; err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}

	for _, value := range []string{"10", "20", "30"} {
		if _, err := AddGoalRecord(gdb, goal.ID, "", decimal.RequireFromString(value), types.GoalRecordTypeAdd); err != nil {
			t.Fatalf("AddGoalRecord failed: %v", err)
		}
	}

	scope, _ := ResolveScope(gdb, owner.ID)

	got, err := AuthorizeGoal(gdb, scope, goal.ID)

	if err != nil {
		t.Fatalf("AuthorizeGoal failed: %v", err)
	}

	if len(got.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(got.Records))
	}

	for i := 1; i < len(got.Records); i++ {
		if got.Records[i].ID < got.Records[i-1].ID {
			t.Error("records are not in insertion order")
		}
	}
}
