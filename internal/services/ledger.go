package services

import (
	"fmt"

	"github.com/CauaGLS/Projeto-de-TCC/db"
	"github.com/CauaGLS/Projeto-de-TCC/internal/models"
	"github.com/CauaGLS/Projeto-de-TCC/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SumGoalRecords recomputes a goal's balance from its full ledger:
// additions count positive, withdrawals negative.
func SumGoalRecords(records []models.GoalRecord) decimal.Decimal {
	total := decimal.Zero

	for _, record := range records {
		if record.Type == types.GoalRecordTypeWithdraw {
			total = total.Sub(record.Value)
		} else {
			total = total.Add(record.Value)
		}
	}

	return total
}

// GoalProgress is current/target as a percentage. A zero target yields 0;
// the result is intentionally unclamped and may exceed 100 or go negative.
func GoalProgress(goal *models.Goal) float64 {
	if goal.TargetValue.IsZero() {
		return 0
	}

	progress, _ := goal.CurrentValue.
		Div(goal.TargetValue).
		Mul(decimal.NewFromInt(100)).
		Float64()

	return progress
}

// AddGoalRecord appends a ledger record and reconciles the goal's balance
// in the same transaction. The goal row is locked for the duration of
// insert-then-recompute so concurrent insertions against the same goal
// cannot both recompute from a stale record set; the recomputation reads
// the complete ledger, which also heals any prior drift. Serialization
// conflicts are retried by the transaction wrapper.
func AddGoalRecord(gdb *gorm.DB, goalID uint, title string, value decimal.Decimal, recordType types.GoalRecordType) (*models.Goal, error) {
	err := db.InTransaction(gdb, func(tx *gorm.DB) error {
		var goal models.Goal

		if err := db.LockForUpdate(tx).First(&goal, goalID).Error; err != nil {
			return fmt.Errorf("failed to lock goal: %w", err)
		}

		recordTitle := title
		if recordTitle == "" {
			recordTitle = fmt.Sprintf("%s em %s", recordType, goal.Title)
		}

		record := models.GoalRecord{
			GoalID: goal.ID,
			Title:  recordTitle,
			Value:  value.Abs(),
			Type:   recordType,
		}

		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create goal record: %w", err)
		}

		var records []models.GoalRecord

		if err := tx.Where("goal_id = ?", goal.ID).Find(&records).Error; err != nil {
			return fmt.Errorf("failed to load goal records: %w", err)
		}

		goal.CurrentValue = SumGoalRecords(records)

		if err := tx.Model(&goal).Update("current_value", goal.CurrentValue).Error; err != nil {
			return fmt.Errorf("failed to reconcile goal: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	var goal models.Goal

	if err := gdb.Preload("Records", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at ASC, id ASC")
	}).First(&goal, goalID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload goal: %w", err)
	}

	return &goal, nil
}
