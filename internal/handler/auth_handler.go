package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swiftline/payments-portal/internal/middleware"
	"github.com/swiftline/payments-portal/internal/service"
	"github.com/swiftline/payments-portal/internal/shared"
)

// Authenticator defines the operations used by AuthHandler.
type Authenticator interface {
	Register(ctx context.Context, in service.RegisterInput) error
	Login(ctx context.Context, accountNumber, password string) (*service.LoginResult, error)
}

type AuthHandler struct {
	auth Authenticator
}

type RegisterRequest struct {
	FullName      string `json:"fullName" validate:"required"`
	IDNumber      string `json:"idNumber" validate:"required"`
	AccountNumber string `json:"accountNumber" validate:"required"`
	Password      string `json:"password" validate:"required"`
}

type LoginRequest struct {
	AccountNumber string `json:"accountNumber" validate:"required"`
	Password      string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  string `json:"userId"`
	Role    string `json:"role"`
}

func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		FullName:      req.FullName,
		IDNumber:      req.IDNumber,
		AccountNumber: req.AccountNumber,
		Password:      req.Password,
	})
	if err != nil {
		if errors.Is(err, shared.ErrDuplicateAccount) {
			middleware.RespondWithError(c, http.StatusConflict, "Account number already registered")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered securely"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.AccountNumber, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   result.Token,
		UserID:  result.UserID,
		Role:    result.Role,
	})
}
