package services

import (
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// reportService computes read-only aggregations over a user's transactions.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// GetSummary groups the user's transactions by type and sums the amounts.
// Bounds of the date range are inclusive and independently optional. Types
// with no matching transactions contribute zero.
func (s *reportService) GetSummary(userID uint, rng DateRange) (*Summary, error) {
	var rows []struct {
		Type  models.TransactionType
		Total int64
	}

	q := s.db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ?", userID)
	if rng.From != nil {
		q = q.Where("date >= ?", *rng.From)
	}
	if rng.To != nil {
		q = q.Where("date <= ?", *rng.To)
	}

	if err := q.Group("type").Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &Summary{}
	for _, row := range rows {
		switch row.Type {
		case models.TransactionTypeIncome:
			summary.TotalIncome = row.Total
		case models.TransactionTypeExpense:
			summary.TotalExpenses = row.Total
		}
	}
	summary.NetSavings = summary.TotalIncome - summary.TotalExpenses

	return summary, nil
}

// GetCategoryBreakdown groups the user's expense transactions by category,
// ordered by descending total. Ties break on category name so the order is
// deterministic.
func (s *reportService) GetCategoryBreakdown(userID uint) ([]CategoryTotal, error) {
	breakdown := make([]CategoryTotal, 0)
	if err := s.db.Model(&models.Transaction{}).
		Select("category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("user_id = ? AND type = ?", userID, models.TransactionTypeExpense).
		Group("category").
		Order("total DESC, category ASC").
		Scan(&breakdown).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return breakdown, nil
}
