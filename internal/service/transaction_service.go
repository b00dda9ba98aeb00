package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/swiftline/payments-portal/internal/events"
	"github.com/swiftline/payments-portal/internal/models"
)

// TransactionStore is the persistence surface the workflow needs. The flag
// transitions are atomic single-document updates in the implementation.
type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	List(ctx context.Context) ([]models.Transaction, error)
	MarkVerified(ctx context.Context, id string) (*models.Transaction, error)
	MarkSubmitted(ctx context.Context, id string) (*models.Transaction, error)
}

// TransactionService drives the Created -> Verified -> Submitted workflow.
type TransactionService struct {
	store     TransactionStore
	publisher EventPublisher
	logger    *zap.Logger
}

func NewTransactionService(store TransactionStore, publisher EventPublisher, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

type CreateTransactionInput struct {
	UserID      string
	Amount      float64
	Currency    string
	Provider    string
	SwiftCode   string
	AccountInfo string
}

// Create stores a new payment instruction with both workflow flags false. The
// owner is the authenticated session subject, never a client-supplied id.
func (s *TransactionService) Create(ctx context.Context, in CreateTransactionInput) (*models.Transaction, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("amount must be greater than zero")
	}

	tx := &models.Transaction{
		UserID:      in.UserID,
		Amount:      in.Amount,
		Currency:    in.Currency,
		Provider:    in.Provider,
		SwiftCode:   in.SwiftCode,
		AccountInfo: in.AccountInfo,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.store.Create(ctx, tx); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TransactionCreated, events.TransactionCreatedEvent{
		TransactionID: tx.ID.Hex(),
		UserID:        tx.UserID,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Provider:      tx.Provider,
	})
	return tx, nil
}

// Verify marks a transaction verified. Re-verifying is a no-op success.
func (s *TransactionService) Verify(ctx context.Context, id string) (*models.Transaction, error) {
	tx, err := s.store.MarkVerified(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TransactionVerified, events.TransactionVerifiedEvent{TransactionID: tx.ID.Hex()})
	return tx, nil
}

// SubmitToSwift marks a verified transaction as forwarded for settlement.
// The store rejects the transition when verified is still false.
func (s *TransactionService) SubmitToSwift(ctx context.Context, id string) (*models.Transaction, error) {
	tx, err := s.store.MarkSubmitted(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TransactionSubmitted, events.TransactionSubmittedEvent{TransactionID: tx.ID.Hex()})
	return tx, nil
}

// List returns every transaction, unfiltered, in storage order.
func (s *TransactionService) List(ctx context.Context) ([]models.Transaction, error) {
	return s.store.List(ctx)
}

func (s *TransactionService) publish(ctx context.Context, eventType string, data any) {
	if err := s.publisher.Publish(ctx, events.TransactionEventsStream, eventType, data); err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}
