package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/swiftline/payments-portal/internal/models"
	"github.com/swiftline/payments-portal/internal/shared"
)

const transactionsCollection = "transactions"

// TransactionRepository persists payment instructions. Both workflow flags
// are flipped with atomic single-document updates; there is no
// read-modify-write anywhere, so two concurrent admin actions on the same
// transaction cannot lose an update.
type TransactionRepository struct {
	col *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{col: db.Collection(transactionsCollection)}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	res, err := r.col.InsertOne(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		tx.ID = oid
	}
	return nil
}

// List returns all transactions in storage order.
func (r *TransactionRepository) List(ctx context.Context) ([]models.Transaction, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer cur.Close(ctx)

	var txs []models.Transaction
	if err := cur.All(ctx, &txs); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return txs, nil
}

// MarkVerified sets the verified flag and returns the updated document.
// Verifying an already-verified transaction is a no-op success.
func (r *TransactionRepository) MarkVerified(ctx context.Context, id string) (*models.Transaction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, shared.ErrTransactionNotFound
	}

	var tx models.Transaction
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"verified": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&tx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, shared.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to verify transaction: %w", err)
	}
	return &tx, nil
}

// MarkSubmitted flips submittedToSwift only when verified is already true.
// The precondition rides in the update filter, so the check and the write are
// one atomic operation.
func (r *TransactionRepository) MarkSubmitted(ctx context.Context, id string) (*models.Transaction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, shared.ErrTransactionNotFound
	}

	var tx models.Transaction
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "verified": true},
		bson.M{"$set": bson.M{"submittedToSwift": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&tx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// No match: either the transaction doesn't exist or it isn't
		// verified yet.
		ferr := r.col.FindOne(ctx, bson.M{"_id": oid}).Err()
		if errors.Is(ferr, mongo.ErrNoDocuments) {
			return nil, shared.ErrTransactionNotFound
		}
		if ferr != nil {
			return nil, fmt.Errorf("failed to submit transaction: %w", ferr)
		}
		return nil, shared.ErrNotVerified
	}
	if err != nil {
		return nil, fmt.Errorf("failed to submit transaction: %w", err)
	}
	return &tx, nil
}
