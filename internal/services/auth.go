package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/linklock/linklock-api/internal/logger"
	"github.com/linklock/linklock-api/internal/models"
)

// Error variables
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrMissingCredentials     = errors.New("email and password are required")
	ErrInvalidCredentials     = errors.New("invalid email or password")
)

// UserReader defines read-only operations needed for authentication.
type UserReader interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserWriter defines write operations needed for registration.
type UserWriter interface {
	CreateUser(ctx context.Context, id, email, passwordHash string) (*models.User, error)
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID, email string) (string, error)
}

// AuthService handles registration and login.
type AuthService struct {
	reader UserReader
	writer UserWriter
	jwt    JWTGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, jwt JWTGenerator) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		jwt:    jwt,
	}
}

// Register creates a new user with a free plan and returns a signed token.
func (svc *AuthService) Register(ctx context.Context, email, password string) (*models.AuthResult, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	existing, err := svc.reader.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	userID := uuid.NewString()
	if _, err := svc.writer.CreateUser(ctx, userID, email, string(hashedPassword)); err != nil {
		logger.Log.Errorw("failed to create user", "err", err)
		return nil, err
	}

	token, err := svc.jwt.Generate(ctx, userID, email)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return nil, err
	}

	return &models.AuthResult{UserID: userID, Email: email, Token: token}, nil
}

// Login authenticates a user and returns a JWT token. A missing user and a
// wrong password both map to ErrInvalidCredentials.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := svc.reader.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "email", email)
		return nil, ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.ID, user.Email)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return nil, err
	}

	return &models.AuthResult{UserID: user.ID, Email: user.Email, Token: token, Plan: user.Plan}, nil
}
