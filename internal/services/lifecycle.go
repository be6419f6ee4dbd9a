package services

import (
	"time"

	"github.com/CauaGLS/Projeto-de-TCC/internal/models"
	"github.com/CauaGLS/Projeto-de-TCC/internal/types"
)

// ApplyFinanceLifecycle applies the status rules before every persist,
// create and update alike. It is deterministic in (status, due date, today):
//
//   - pending records never carry a payment date;
//   - a record past its due date becomes overdue unless it is already paid
//     or overdue. Paid records never transition automatically, and nothing
//     transitions out of overdue except an explicit status from the client.
//
// A pending record can cross its due date between saves, so the function
// must run on every write, not only at creation.
func ApplyFinanceLifecycle(finance *models.Finance, today time.Time) {
	if finance.Status == types.FinanceStatusPending {
		finance.PaymentDate = nil
	}

	if finance.DueDate == nil {
		return
	}

	if finance.Status == types.FinanceStatusPaid || finance.Status == types.FinanceStatusOverdue {
		return
	}

	due := time.Time(*finance.DueDate)
	if calendarDay(due).Before(calendarDay(today)) {
		finance.Status = types.FinanceStatusOverdue
	}
}

// calendarDay normalizes to the value's own year/month/day in a single
// location, so a date stored in UTC and a wall clock in another zone
// compare by calendar day rather than by instant.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
