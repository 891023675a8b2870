package services

import (
	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// RecentTransactionsLimit caps the dashboard's recent transactions list.
const RecentTransactionsLimit = 10

// transactionService handles transaction-related business logic.
type transactionService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, categoryService CategoryServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		categoryService: categoryService,
	}
}

// CreateTransaction records an income or expense against one of the user's categories.
// The amount is only checked against the storage minimum enforced by the model.
func (s *transactionService) CreateTransaction(userID string, input CreateTransactionInput) (*models.Transaction, error) {
	if input.Type == "" || input.CategoryID == "" || input.Date.IsZero() {
		return nil, apperrors.ErrInvalidInput
	}
	if !input.Type.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Transaction type must be income or expense.")
	}

	// The category must exist, belong to the user and match the transaction type
	category, err := s.categoryService.GetCategoryByID(userID, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if models.TransactionType(category.Type) != input.Type {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category does not match the transaction type.")
	}

	transaction := &models.Transaction{
		UserID:     userID,
		Type:       input.Type,
		CategoryID: category.ID,
		Amount:     input.Amount,
		Note:       input.Note,
		Date:       input.Date,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, dbError(err, nil, nil)
	}
	transaction.Category = category

	return transaction, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	if !validID(transactionID) {
		return nil, apperrors.ErrTransactionNotFound
	}

	var transaction models.Transaction
	if err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", transactionID, userID).
		First(&transaction).Error; err != nil {
		return nil, dbError(err, apperrors.ErrTransactionNotFound, nil)
	}
	return &transaction, nil
}

// DeleteTransaction permanently removes a transaction owned by the user
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(&models.Transaction{}, "id = ? AND user_id = ?", transaction.ID, userID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListUserTransactions returns every transaction of the user, newest first.
func (s *transactionService) ListUserTransactions(userID string) ([]models.Transaction, error) {
	return s.list(userID, 0)
}

// ListRecentTransactions returns at most limit transactions of the user, newest first.
func (s *transactionService) ListRecentTransactions(userID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = RecentTransactionsLimit
	}
	return s.list(userID, limit)
}

func (s *transactionService) list(userID string, limit int) ([]models.Transaction, error) {
	q := s.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC").
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	transactions := []models.Transaction{}
	if err := q.Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}
