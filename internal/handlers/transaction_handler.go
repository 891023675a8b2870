package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
	"pennywise/internal/services"
	"pennywise/internal/session"
)

const (
	dashboardPath = "/dashboard"

	// dateLayout is the value format of an HTML date input.
	dateLayout = "2006-01-02"
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest is the form posted from the dashboard
type CreateTransactionRequest struct {
	Type       models.TransactionType `form:"type" binding:"required,transaction_type"`
	CategoryID string                 `form:"category" binding:"required"`
	Amount     string                 `form:"amount" binding:"required"`
	Note       string                 `form:"note"`
	Date       string                 `form:"date" binding:"required"`
}

// CreateTransaction records a transaction and returns to the dashboard
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		redirectWithError(c, err, "/login")
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithError(c, apperrors.ErrInvalidInput, dashboardPath)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		redirectWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be a number."), dashboardPath)
		return
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		redirectWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Date must be a valid date."), dashboardPath)
		return
	}

	_, err = h.transactionService.CreateTransaction(userID, services.CreateTransactionInput{
		Type:       req.Type,
		CategoryID: req.CategoryID,
		Amount:     amount,
		Note:       req.Note,
		Date:       date,
	})
	if err != nil {
		redirectWithError(c, err, dashboardPath)
		return
	}

	redirectWithFlash(c, session.FlashSuccess, "Transaction added successfully.", dashboardPath)
}

// DeleteTransaction removes one of the user's transactions
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		redirectWithError(c, err, "/login")
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, c.Param("id")); err != nil {
		redirectWithError(c, err, dashboardPath)
		return
	}

	redirectWithFlash(c, session.FlashSuccess, "Transaction deleted successfully.", dashboardPath)
}
