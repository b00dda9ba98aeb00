package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/swiftline/payments-portal/internal/models"
	"github.com/swiftline/payments-portal/internal/service"
	"github.com/swiftline/payments-portal/internal/shared"
)

// ---- mock implementation ----

type mockWorkflow struct {
	createFn func(service.CreateTransactionInput) (*models.Transaction, error)
	verifyFn func(id string) (*models.Transaction, error)
	submitFn func(id string) (*models.Transaction, error)
	listFn   func() ([]models.Transaction, error)
}

func (m *mockWorkflow) Create(_ context.Context, in service.CreateTransactionInput) (*models.Transaction, error) {
	if m.createFn != nil {
		return m.createFn(in)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockWorkflow) Verify(_ context.Context, id string) (*models.Transaction, error) {
	if m.verifyFn != nil {
		return m.verifyFn(id)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockWorkflow) SubmitToSwift(_ context.Context, id string) (*models.Transaction, error) {
	if m.submitFn != nil {
		return m.submitFn(id)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockWorkflow) List(_ context.Context) ([]models.Transaction, error) {
	if m.listFn != nil {
		return m.listFn()
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

// sessionStub plays the part of the access guard, attaching a decoded
// identity to the context.
func sessionStub(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", userID)
		c.Set("role", role)
		c.Next()
	}
}

func newTxTestRouter(wf Workflow) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewTransactionHandler(wf)
	api := r.Group("/api")
	api.POST("/pay", sessionStub("usr-1", "employee"), h.CreatePayment)
	admin := api.Group("/admin", sessionStub("usr-adm", "admin"))
	admin.GET("/transactions", h.ListTransactions)
	admin.PUT("/verify/:id", h.VerifyTransaction)
	admin.PUT("/submit/:id", h.SubmitTransaction)
	return r
}

// ---- tests ----

func TestCreatePayment(t *testing.T) {
	validBody := map[string]any{
		"amount":   100.0,
		"currency": "USD",
		"provider": "Stripe",
	}

	tests := []struct {
		name           string
		body           any
		createFn       func(service.CreateTransactionInput) (*models.Transaction, error)
		expectedStatus int
	}{
		{
			name: "success",
			body: validBody,
			createFn: func(in service.CreateTransactionInput) (*models.Transaction, error) {
				return &models.Transaction{UserID: in.UserID, Amount: in.Amount}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "success - with swift code and account info",
			body: map[string]any{
				"amount":      250.0,
				"currency":    "ZAR",
				"provider":    "SWIFT",
				"swiftCode":   "DEUTDEFF",
				"accountInfo": "IBAN DE89 3704 0044 0532 0130 00",
			},
			createFn: func(in service.CreateTransactionInput) (*models.Transaction, error) {
				return &models.Transaction{UserID: in.UserID, Amount: in.Amount}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "bad request - zero amount",
			body:           map[string]any{"amount": 0, "currency": "USD", "provider": "Stripe"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - negative amount",
			body:           map[string]any{"amount": -10, "currency": "USD", "provider": "Stripe"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - malformed swift code",
			body:           map[string]any{"amount": 10, "currency": "USD", "provider": "SWIFT", "swiftCode": "nope"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - missing provider",
			body:           map[string]any{"amount": 10, "currency": "USD"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "storage failure",
			body: validBody,
			createFn: func(service.CreateTransactionInput) (*models.Transaction, error) {
				return nil, fmt.Errorf("insert failed")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTxTestRouter(&mockWorkflow{createFn: tt.createFn})
			w := doRequest(router, http.MethodPost, "/api/pay", tt.body, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestCreatePayment_OwnerComesFromSession(t *testing.T) {
	var captured service.CreateTransactionInput
	router := newTxTestRouter(&mockWorkflow{
		createFn: func(in service.CreateTransactionInput) (*models.Transaction, error) {
			captured = in
			return &models.Transaction{}, nil
		},
	})

	// A client-supplied userId must not override the session subject.
	w := doRequest(router, http.MethodPost, "/api/pay", map[string]any{
		"userId":   "usr-spoofed",
		"amount":   100.0,
		"currency": "USD",
		"provider": "Stripe",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d; body: %s", w.Code, w.Body.String())
	}
	if captured.UserID != "usr-1" {
		t.Errorf("expected owner usr-1 from session, got %q", captured.UserID)
	}
}

func TestListTransactions(t *testing.T) {
	tests := []struct {
		name           string
		listFn         func() ([]models.Transaction, error)
		expectedStatus int
	}{
		{
			name: "success",
			listFn: func() ([]models.Transaction, error) {
				return []models.Transaction{{UserID: "usr-1", Amount: 100}}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "success - empty store returns empty array",
			listFn:         func() ([]models.Transaction, error) { return nil, nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "fetch failure",
			listFn:         func() ([]models.Transaction, error) { return nil, fmt.Errorf("find failed") },
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTxTestRouter(&mockWorkflow{listFn: tt.listFn})
			w := doRequest(router, http.MethodGet, "/api/admin/transactions", nil, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				var txs []models.Transaction
				if err := json.Unmarshal(w.Body.Bytes(), &txs); err != nil {
					t.Errorf("[%s] expected a JSON array, got %s", tt.name, w.Body.String())
				}
			}
		})
	}
}

func TestVerifyTransaction(t *testing.T) {
	tests := []struct {
		name           string
		verifyFn       func(id string) (*models.Transaction, error)
		expectedStatus int
	}{
		{
			name: "success",
			verifyFn: func(string) (*models.Transaction, error) {
				return &models.Transaction{Verified: true}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			verifyFn: func(string) (*models.Transaction, error) {
				return nil, shared.ErrTransactionNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "storage failure",
			verifyFn: func(string) (*models.Transaction, error) {
				return nil, fmt.Errorf("update failed")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTxTestRouter(&mockWorkflow{verifyFn: tt.verifyFn})
			w := doRequest(router, http.MethodPut, "/api/admin/verify/abc123", nil, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestSubmitTransaction(t *testing.T) {
	tests := []struct {
		name           string
		submitFn       func(id string) (*models.Transaction, error)
		expectedStatus int
	}{
		{
			name: "success",
			submitFn: func(string) (*models.Transaction, error) {
				return &models.Transaction{Verified: true, SubmittedToSwift: true}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			submitFn: func(string) (*models.Transaction, error) {
				return nil, shared.ErrTransactionNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "not verified yet",
			submitFn: func(string) (*models.Transaction, error) {
				return nil, shared.ErrNotVerified
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "storage failure",
			submitFn: func(string) (*models.Transaction, error) {
				return nil, fmt.Errorf("update failed")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTxTestRouter(&mockWorkflow{submitFn: tt.submitFn})
			w := doRequest(router, http.MethodPut, "/api/admin/submit/abc123", nil, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}
