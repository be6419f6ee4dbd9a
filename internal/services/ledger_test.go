package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/CauaGLS/Projeto-de-TCC/internal/models"
	"github.com/CauaGLS/Projeto-de-TCC/internal/types"
)

func record(value string, recordType types.GoalRecordType) models.GoalRecord {
	return models.GoalRecord{
		Value: decimal.RequireFromString(value),
		Type:  recordType,
	}
}

func TestSumGoalRecords(t *testing.T) {
	tests := []struct {
		name    string
		records []models.GoalRecord
		want    string
	}{
		{
			name:    "empty ledger",
			records: nil,
			want:    "0",
		},
		{
			name: "additions accumulate",
			records: []models.GoalRecord{
				record("100.50", types.GoalRecordTypeAdd),
				record("49.50", types.GoalRecordTypeAdd),
			},
			want: "150",
		},
		{
			name: "withdrawals subtract",
			records: []models.GoalRecord{
				record("200", types.GoalRecordTypeAdd),
				record("75.25", types.GoalRecordTypeWithdraw),
			},
			want: "124.75",
		},
		{
			name: "balance can go negative",
			records: []models.GoalRecord{
				record("50", types.GoalRecordTypeAdd),
				record("80", types.GoalRecordTypeWithdraw),
			},
			want: "-30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SumGoalRecords(tt.records)
			want := decimal.RequireFromString(tt.want)

			if !got.Equal(want) {
				t.Errorf("got %s, want %s", got, want)
			}
		})
	}
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  string
		want    float64
	}{
		{name: "partial progress", current: "400", target: "1000", want: 40},
		{name: "complete", current: "1000", target: "1000", want: 100},
		{name: "over target is not clamped", current: "1500", target: "1000", want: 150},
		{name: "negative balance", current: "-100", target: "1000", want: -10},
		{name: "zero target", current: "500", target: "0", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := models.Goal{
				CurrentValue: decimal.RequireFromString(tt.current),
				TargetValue:  decimal.RequireFromString(tt.target),
			}

			if got := GoalProgress(&goal); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddGoalRecordReconcilesBalance(t *testing.T) {
	gdb := newTestDB(t)
	user := createTestUser(t, gdb, "owner")

	goal := models.Goal{
		UserID:      user.ID,
		Title:       "Viagem",
		TargetValue: decimal.RequireFromString("1000"),
	}

	if err := gdb.Create(&goal).Error; err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}

	got, err := AddGoalRecord(gdb, goal.ID, "Primeiro aporte", decimal.RequireFromString("300"), types.GoalRecordTypeAdd)

	if err != nil {
		t.Fatalf("AddGoalRecord failed: %v", err)
	}

	if !got.CurrentValue.Equal(decimal.RequireFromString("300")) {
		t.Errorf("after addition got %s, want 300", got.CurrentValue)
	}

	got, err = AddGoalRecord(gdb, goal.ID, "", decimal.RequireFromString("120"), types.GoalRecordTypeWithdraw)

	if err != nil {
		t.Fatalf("AddGoalRecord failed: %v", err)
	}

	if !got.CurrentValue.Equal(decimal.RequireFromString("180")) {
		t.Errorf("after withdrawal got %s, want 180", got.CurrentValue)
	}

	if len(got.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(got.Records))
	}
}

func TestAddGoalRecordDefaultsTitle(t *testing.T) {
	gdb := newTestDB(t)
	user := createTestUser(t, gdb, "owner")

	goal := models.Goal{
		UserID:      user.ID,
		Title:       "Reserva",
		TargetValue: decimal.RequireFromString("500"),
	}

	if err := gdb.Create(&goal).Error; err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}

	got, err := AddGoalRecord(gdb, goal.ID, "", decimal.RequireFromString("50"), types.GoalRecordTypeAdd)

	if err != nil {
		t.Fatalf("AddGoalRecord failed: %v", err)
	}

	if want := "Adicionar em Reserva"; got.Records[0].Title != want {
		t.Errorf("got title %q, want %q", got.Records[0].Title, want)
	}
}

func TestAddGoalRecordStoresAbsoluteValue(t *testing.T) {
	gdb := newTestDB(t)
	user := createTestUser(t, gdb, "owner")

	goal := models.Goal{
		UserID:      user.ID,
		Title:       "Reserva",
		TargetValue: decimal.RequireFromString("500"),
	}

	if err := gdb.Create(&goal).Error; err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}

	got, err := AddGoalRecord(gdb, goal.ID, "Saque", decimal.RequireFromString("-40"), types.GoalRecordTypeWithdraw)

	if err != nil {
		t.Fatalf("AddGoalRecord failed: %v", err)
	}

	if !got.Records[0].Value.Equal(decimal.RequireFromString("40")) {
		t.Errorf("got stored value %s, want 40", got.Records[0].Value)
	}

	if !got.CurrentValue.Equal(decimal.RequireFromString("-40")) {
		t.Errorf("got balance %s, want -40", got.CurrentValue)
	}
}

func TestAddGoalRecordHealsDriftedBalance(t *testing.T) {
	gdb := newTestDB(t)
	user := createTestUser(t, gdb, "owner")

	goal := models.Goal{
		UserID:      user.ID,
		Title:       "Reserva",
		TargetValue: decimal.RequireFromString("500"),
	}

	if err := gdb.Create(&goal).Error; err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}

	if _, err := AddGoalRecord(gdb, goal.ID, "", decimal.RequireFromString("100"), types.GoalRecordTypeAdd); err != nil {
		t.Fatalf("AddGoalRecord failed: %v", err)
	}

	// Corrupt the stored balance behind the ledger's back.
	if err := gdb.Model(&models.Goal{}).Where("id = ?", goal.ID).
		Update("current_value", decimal.RequireFromString("999")).Error; err != nil {
		t.Fatalf("failed to corrupt balance: %v", err)
	}

	got, err := AddGoalRecord(gdb, goal.ID, "", decimal.RequireFromString("25"), types.GoalRecordTypeAdd)

	if err != nil {
		t.Fatalf("AddGoalRecord failed: %v", err)
	}

	if !got.CurrentValue.Equal(decimal.RequireFromString("125")) {
		t.Errorf("got balance %s, want 125 recomputed from the full ledger", got.CurrentValue)
	}
}
