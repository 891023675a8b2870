package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

const (
	// MaxNoteLength is the longest note a transaction may carry.
	MaxNoteLength = 100
)

// MinAmount is the smallest amount a transaction may record.
var MinAmount = decimal.New(1, -2)

// Transaction represents a single income or expense entry
type Transaction struct {
	Base
	UserID     string          `gorm:"type:uuid;not null;index:idx_transactions_user_date"`
	Type       TransactionType `gorm:"size:16;not null"`
	CategoryID string          `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Note       string          `gorm:"size:100"`
	Date       time.Time       `gorm:"not null;index:idx_transactions_user_date"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

// BeforeSave enforces the column-level rules before any insert or update.
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	t.Note = strings.TrimSpace(t.Note)

	if !t.Type.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Transaction type must be income or expense.")
	}
	if t.Amount.LessThan(MinAmount) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be at least 0.01.")
	}
	if utf8.RuneCountInString(t.Note) > MaxNoteLength {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Note must be at most 100 characters.")
	}
	return nil
}
