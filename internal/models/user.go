package models

import "time"

// User represents the user model in the database. The monthly budget is
// stored in minor currency units (cents); zero means no budget is set.
type User struct {
	Base
	Username         string     `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	Password         string     `gorm:"not null" json:"-"`
	Currency         string     `gorm:"size:3;not null;default:USD" json:"currency"`
	Language         string     `gorm:"size:5;not null;default:en" json:"language"`
	MonthlyBudget    int64      `gorm:"type:bigint;not null;default:0" json:"monthly_budget"`
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	RefreshTokenHash string     `gorm:"size:64" json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}
