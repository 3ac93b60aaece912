package services

import (
	"math"
	"time"
)

// budgetService evaluates a user's spending against their monthly budget.
type budgetService struct {
	users   UserServicer
	reports ReportServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(users UserServicer, reports ReportServicer) BudgetServicer {
	return &budgetService{users: users, reports: reports}
}

// EvaluateBudget derives progress and over/under status from an expense total
// and a monthly budget, both in cents. The progress percentage is capped at
// 100 for progress-bar rendering; the over-budget comparison is not.
func EvaluateBudget(totalExpenses, monthlyBudget int64) BudgetStatus {
	status := BudgetStatus{
		MonthlyBudget: monthlyBudget,
		TotalExpenses: totalExpenses,
	}

	if totalExpenses > monthlyBudget {
		status.Overage = totalExpenses - monthlyBudget
	}

	// Zero budget means no budget is set; progress and status stay unset.
	if monthlyBudget <= 0 {
		return status
	}

	status.ProgressPercentage = math.Min(float64(totalExpenses)/float64(monthlyBudget)*100, 100)
	if totalExpenses > monthlyBudget {
		status.Status = BudgetStatusOverBudget
	} else {
		status.Status = BudgetStatusOnTrack
	}
	return status
}

// GetBudgetStatus evaluates the user's monthly budget against the current
// calendar month's expenses.
func (s *budgetService) GetBudgetStatus(userID uint) (*BudgetStatus, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	periodEnd := periodStart.AddDate(0, 1, -1)
	periodEnd = time.Date(periodEnd.Year(), periodEnd.Month(), periodEnd.Day(), 23, 59, 59, 999999999, now.Location())

	summary, err := s.reports.GetSummary(userID, DateRange{From: &periodStart, To: &periodEnd})
	if err != nil {
		return nil, err
	}

	status := EvaluateBudget(summary.TotalExpenses, user.MonthlyBudget)
	return &status, nil
}
