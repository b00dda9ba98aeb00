package events

import "time"

// Event types
const (
	UserRegistered = "user.registered"

	TransactionCreated   = "transaction.created"
	TransactionVerified  = "transaction.verified"
	TransactionSubmitted = "transaction.submitted"
)

// Stream names
const (
	UserEventsStream        = "user.events"
	TransactionEventsStream = "transaction.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type UserRegisteredEvent struct {
	UserID        string `json:"userId"`
	AccountNumber string `json:"accountNumber"`
	Role          string `json:"role"`
}

type TransactionCreatedEvent struct {
	TransactionID string  `json:"transactionId"`
	UserID        string  `json:"userId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Provider      string  `json:"provider"`
}

type TransactionVerifiedEvent struct {
	TransactionID string `json:"transactionId"`
}

type TransactionSubmittedEvent struct {
	TransactionID string `json:"transactionId"`
}
