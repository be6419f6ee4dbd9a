package services

import (
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/CauaGLS/Projeto-de-TCC/internal/models"
	"github.com/CauaGLS/Projeto-de-TCC/internal/types"
)

func dateOf(year int, month time.Month, day int) *datatypes.Date {
	d := datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
	return &d
}

func TestApplyFinanceLifecycle(t *testing.T) {
	today := time.Date(2024, time.June, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		status     types.FinanceStatus
		dueDate    *datatypes.Date
		wantStatus types.FinanceStatus
	}{
		{
			name:       "pending past due becomes overdue",
			status:     types.FinanceStatusPending,
			dueDate:    dateOf(2024, time.January, 1),
			wantStatus: types.FinanceStatusOverdue,
		},
		{
			name:       "pending due today stays pending",
			status:     types.FinanceStatusPending,
			dueDate:    dateOf(2024, time.June, 1),
			wantStatus: types.FinanceStatusPending,
		},
		{
			name:       "pending with future due date stays pending",
			status:     types.FinanceStatusPending,
			dueDate:    dateOf(2024, time.December, 31),
			wantStatus: types.FinanceStatusPending,
		},
		{
			name:       "pending without due date stays pending",
			status:     types.FinanceStatusPending,
			dueDate:    nil,
			wantStatus: types.FinanceStatusPending,
		},
		{
			name:       "paid past due stays paid",
			status:     types.FinanceStatusPaid,
			dueDate:    dateOf(2024, time.January, 1),
			wantStatus: types.FinanceStatusPaid,
		},
		{
			name:       "overdue stays overdue",
			status:     types.FinanceStatusOverdue,
			dueDate:    dateOf(2024, time.January, 1),
			wantStatus: types.FinanceStatusOverdue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finance := models.Finance{
				Status:  tt.status,
				DueDate: tt.dueDate,
			}

			ApplyFinanceLifecycle(&finance, today)

			if finance.Status != tt.wantStatus {
				t.Errorf("got status %q, want %q", finance.Status, tt.wantStatus)
			}
		})
	}
}

func TestApplyFinanceLifecycleComparesCalendarDays(t *testing.T) {
	// Due dates are stored as UTC midnights; the server clock may run in
	// any zone. Due "today" must stay pending even west of UTC.
	saoPaulo := time.FixedZone("UTC-3", -3*60*60)

	finance := models.Finance{
		Status:  types.FinanceStatusPending,
		DueDate: dateOf(2024, time.June, 1),
	}

	ApplyFinanceLifecycle(&finance, time.Date(2024, time.June, 1, 10, 0, 0, 0, saoPaulo))

	if finance.Status != types.FinanceStatusPending {
		t.Errorf("due today must stay pending, got %q", finance.Status)
	}

	finance = models.Finance{
		Status:  types.FinanceStatusPending,
		DueDate: dateOf(2024, time.May, 31),
	}

	ApplyFinanceLifecycle(&finance, time.Date(2024, time.June, 1, 10, 0, 0, 0, saoPaulo))

	if finance.Status != types.FinanceStatusOverdue {
		t.Errorf("due yesterday must become overdue, got %q", finance.Status)
	}
}

func TestApplyFinanceLifecycleClearsPaymentDateWhenPending(t *testing.T) {
	finance := models.Finance{
		Status:      types.FinanceStatusPending,
		PaymentDate: dateOf(2024, time.May, 10),
	}

	ApplyFinanceLifecycle(&finance, time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC))

	if finance.PaymentDate != nil {
		t.Error("expected payment date to be cleared for a pending record")
	}
}

func TestApplyFinanceLifecycleKeepsPaymentDateWhenPaid(t *testing.T) {
	paidOn := dateOf(2024, time.May, 10)
	finance := models.Finance{
		Status:      types.FinanceStatusPaid,
		PaymentDate: paidOn,
	}

	ApplyFinanceLifecycle(&finance, time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC))

	if finance.PaymentDate != paidOn {
		t.Error("expected payment date to survive for a paid record")
	}
}
