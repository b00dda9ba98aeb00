package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/swiftline/payments-portal/internal/token"
)

func newGuardedRouter(issuer *token.Issuer, requiredRole string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{Auth(issuer)}
	if requiredRole != "" {
		handlers = append(handlers, RequireRole(requiredRole))
	}
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := GetUserID(c)
		role, _ := GetRole(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role})
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)

	valid, err := issuer.Mint("usr-1", "employee")
	if err != nil {
		t.Fatalf("Mint error: %v", err)
	}
	expired, err := token.NewIssuer("test-secret", -1*time.Minute).Mint("usr-1", "employee")
	if err != nil {
		t.Fatalf("Mint error: %v", err)
	}
	wrongKey, err := token.NewIssuer("other-secret", time.Hour).Mint("usr-1", "employee")
	if err != nil {
		t.Fatalf("Mint error: %v", err)
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "missing header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed header - no scheme",
			authHeader:     valid,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed header - wrong scheme",
			authHeader:     "Basic " + valid,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			authHeader:     "Bearer not.a.jwt",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer " + expired,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "token signed with a different secret",
			authHeader:     "Bearer " + wrongKey,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "valid token",
			authHeader:     "Bearer " + valid,
			expectedStatus: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newGuardedRouter(issuer, "")
			w := doGet(router, tt.authHeader)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)

	employee, _ := issuer.Mint("usr-emp", "employee")
	admin, _ := issuer.Mint("usr-adm", "admin")

	tests := []struct {
		name           string
		requiredRole   string
		tokenString    string
		expectedStatus int
	}{
		{
			name:           "employee token rejected on admin route",
			requiredRole:   "admin",
			tokenString:    employee,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "admin token accepted on admin route",
			requiredRole:   "admin",
			tokenString:    admin,
			expectedStatus: http.StatusOK,
		},
		{
			// Role checks are exact-match, not hierarchical.
			name:           "admin token rejected on employee route",
			requiredRole:   "employee",
			tokenString:    admin,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "employee token accepted on employee route",
			requiredRole:   "employee",
			tokenString:    employee,
			expectedStatus: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newGuardedRouter(issuer, tt.requiredRole)
			w := doGet(router, "Bearer "+tt.tokenString)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuth_ClaimsReachTheHandler(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	tok, _ := issuer.Mint("usr-42", "admin")

	router := newGuardedRouter(issuer, "")
	w := doGet(router, "Bearer "+tok)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"usr-42", "admin"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q, got %s", want, body)
		}
	}
}
