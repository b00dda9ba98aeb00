package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swiftline/payments-portal/internal/middleware"
	"github.com/swiftline/payments-portal/internal/models"
	"github.com/swiftline/payments-portal/internal/service"
	"github.com/swiftline/payments-portal/internal/shared"
)

// Workflow defines the transaction operations used by TransactionHandler.
type Workflow interface {
	Create(ctx context.Context, in service.CreateTransactionInput) (*models.Transaction, error)
	Verify(ctx context.Context, id string) (*models.Transaction, error)
	SubmitToSwift(ctx context.Context, id string) (*models.Transaction, error)
	List(ctx context.Context) ([]models.Transaction, error)
}

type TransactionHandler struct {
	workflow Workflow
}

type CreatePaymentRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"required,len=3"`
	Provider    string  `json:"provider" validate:"required"`
	SwiftCode   string  `json:"swiftCode" validate:"omitempty,bic"`
	AccountInfo string  `json:"accountInfo"`
}

func NewTransactionHandler(workflow Workflow) *TransactionHandler {
	return &TransactionHandler{workflow: workflow}
}

// CreatePayment stores a payment instruction for the authenticated user. The
// owner comes from the session token, not the request body.
func (h *TransactionHandler) CreatePayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Missing token")
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	_, err := h.workflow.Create(c.Request.Context(), service.CreateTransactionInput{
		UserID:      userID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Provider:    req.Provider,
		SwiftCode:   req.SwiftCode,
		AccountInfo: req.AccountInfo,
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Transaction failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Transaction stored securely"})
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	txs, err := h.workflow.List(c.Request.Context())
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	c.JSON(http.StatusOK, txs)
}

func (h *TransactionHandler) VerifyTransaction(c *gin.Context) {
	tx, err := h.workflow.Verify(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, shared.ErrTransactionNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Transaction not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Verification failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction verified", "tx": tx})
}

func (h *TransactionHandler) SubmitTransaction(c *gin.Context) {
	tx, err := h.workflow.SubmitToSwift(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrTransactionNotFound):
			middleware.RespondWithError(c, http.StatusNotFound, "Transaction not found")
		case errors.Is(err, shared.ErrNotVerified):
			middleware.RespondWithError(c, http.StatusBadRequest, "Transaction must be verified before submission")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Submission failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction submitted to SWIFT", "tx": tx})
}
