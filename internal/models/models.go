package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold. Role checks are exact-match; admin does not imply
// employee.
const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

type User struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FullName      string             `json:"fullName" bson:"fullName"`
	IDNumber      string             `json:"idNumber" bson:"idNumber"`
	AccountNumber string             `json:"accountNumber" bson:"accountNumber"`
	PasswordHash  string             `json:"-" bson:"password"`
	Role          string             `json:"role" bson:"role"`
	CreatedAt     time.Time          `json:"createdTimestamp" bson:"createdAt"`
}

// Transaction is a payment instruction. It moves through two one-way flags:
// verified (set by an admin) and submittedToSwift (set by an admin, only
// after verified). Neither flag ever resets to false.
type Transaction struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID           string             `json:"userId" bson:"userId"`
	Amount           float64            `json:"amount" bson:"amount"`
	Currency         string             `json:"currency" bson:"currency"`
	Provider         string             `json:"provider" bson:"provider"`
	SwiftCode        string             `json:"swiftCode,omitempty" bson:"swiftCode,omitempty"`
	AccountInfo      string             `json:"accountInfo,omitempty" bson:"accountInfo,omitempty"`
	Verified         bool               `json:"verified" bson:"verified"`
	SubmittedToSwift bool               `json:"submittedToSwift" bson:"submittedToSwift"`
	Timestamp        time.Time          `json:"timestamp" bson:"timestamp"`
}
