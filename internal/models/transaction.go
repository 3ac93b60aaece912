package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Category is the closed set of transaction categories. Adding a category is
// a data-model change: the validator and any category-derived logic read from
// this single enumeration.
type Category string

const (
	CategoryGroceries      Category = "Groceries"
	CategoryEntertainment  Category = "Entertainment"
	CategoryUtilities      Category = "Utilities"
	CategoryFoodAndDrinks  Category = "Food & Drinks"
	CategoryTransportation Category = "Transportation"
	CategoryIncome         Category = "Income"
	CategoryOther          Category = "Other"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryGroceries,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryFoodAndDrinks,
	CategoryTransportation,
	CategoryIncome,
	CategoryOther,
}

// IsValidCategory reports whether c is in the category set.
func IsValidCategory(c Category) bool {
	for _, valid := range Categories {
		if c == valid {
			return true
		}
	}
	return false
}

// IsValidTransactionType reports whether t is income or expense.
func IsValidTransactionType(t TransactionType) bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a financial transaction in the system. Amounts are
// stored in minor currency units (cents) and are never negative. A
// transaction belongs to exactly one user; ownership never changes.
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index:idx_transactions_user_date;index:idx_transactions_user_category" json:"user_id"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Description string          `gorm:"size:200;not null" json:"description"`
	Category    Category        `gorm:"size:30;not null;index:idx_transactions_user_category" json:"category"`
	Type        TransactionType `gorm:"size:10;not null" json:"type"`
	Date        time.Time       `gorm:"not null;index:idx_transactions_user_date,sort:desc" json:"date"`
}
