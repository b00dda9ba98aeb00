package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/swiftline/payments-portal/internal/events"
	"github.com/swiftline/payments-portal/internal/models"
	"github.com/swiftline/payments-portal/internal/shared"
	"github.com/swiftline/payments-portal/internal/token"
	"github.com/swiftline/payments-portal/internal/utils"
)

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByAccountNumber(ctx context.Context, accountNumber string) (*models.User, error)
}

// EventPublisher appends audit events to a stream. Failures are non-fatal.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// AuthService registers users and issues session tokens. It holds no session
// state: a login mints a token and that is the only artifact.
type AuthService struct {
	users      UserStore
	issuer     *token.Issuer
	bcryptCost int
	publisher  EventPublisher
	logger     *zap.Logger
}

func NewAuthService(users UserStore, issuer *token.Issuer, bcryptCost int, publisher EventPublisher, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		issuer:     issuer,
		bcryptCost: bcryptCost,
		publisher:  publisher,
		logger:     logger,
	}
}

type RegisterInput struct {
	FullName      string
	IDNumber      string
	AccountNumber string
	Password      string
}

// Register stores a new employee-role user with a hashed password. The plain
// password never leaves this function.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FullName:      in.FullName,
		IDNumber:      in.IDNumber,
		AccountNumber: in.AccountNumber,
		PasswordHash:  hash,
		Role:          models.RoleEmployee,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserRegistered, events.UserRegisteredEvent{
		UserID:        user.ID.Hex(),
		AccountNumber: user.AccountNumber,
		Role:          user.Role,
	}); err != nil {
		s.logger.Warn("failed to publish user.registered event", zap.Error(err))
	}
	return nil
}

type LoginResult struct {
	Token  string
	UserID string
	Role   string
}

// Login verifies the credential pair and mints a session token. Unknown
// account and wrong password collapse into the same error so responses don't
// reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, accountNumber, password string) (*LoginResult, error) {
	user, err := s.users.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, shared.ErrUserNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(password, user.PasswordHash) {
		return nil, shared.ErrInvalidCredentials
	}

	tok, err := s.issuer.Mint(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &LoginResult{
		Token:  tok,
		UserID: user.ID.Hex(),
		Role:   user.Role,
	}, nil
}
