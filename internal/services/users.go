package services

import (
	"context"
	"errors"
	"regexp"

	"github.com/linklock/linklock-api/internal/logger"
	"github.com/linklock/linklock-api/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidUsername = errors.New("username must be 3-20 lowercase letters, digits or underscores")
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)

// ProfileReader defines read operations needed for profile views.
type ProfileReader interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetLinkCount(ctx context.Context, userID string) (int, error)
}

// ProfileWriter defines the profile mutation.
type ProfileWriter interface {
	UpdateUserProfile(ctx context.Context, id string, username *string, isPublic bool) error
}

// PublicReader resolves public profiles by username.
type PublicReader interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetPublicUserLinks(ctx context.Context, username string) ([]models.Link, error)
}

// UserService handles profile views and updates.
type UserService struct {
	reader ProfileReader
	writer ProfileWriter
	public PublicReader
}

// NewUserService creates a new UserService instance.
func NewUserService(reader ProfileReader, writer ProfileWriter, public PublicReader) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
		public: public,
	}
}

// Me returns the current user together with their link count.
func (svc *UserService) Me(ctx context.Context, userID string) (*models.User, int, error) {
	user, err := svc.reader.GetUserByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if user == nil {
		return nil, 0, ErrUserNotFound
	}

	count, err := svc.reader.GetLinkCount(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return user, count, nil
}

// UpdateProfile validates and applies a username/visibility change, then
// returns the updated user. Validation happens before the store is touched;
// a username collision surfaces as storage.ErrUsernameTaken.
func (svc *UserService) UpdateProfile(ctx context.Context, userID string, username *string, isPublic bool) (*models.User, error) {
	if username != nil && !usernamePattern.MatchString(*username) {
		return nil, ErrInvalidUsername
	}

	if err := svc.writer.UpdateUserProfile(ctx, userID, username, isPublic); err != nil {
		logger.Log.Errorw("failed to update profile", "user_id", userID, "err", err)
		return nil, err
	}

	return svc.reader.GetUserByID(ctx, userID)
}

// PublicProfile resolves a public username to the owner and their
// non-private links. A user that is absent or not public yields
// ErrUserNotFound; the two cases are indistinguishable.
func (svc *UserService) PublicProfile(ctx context.Context, username string) (*models.User, []models.Link, error) {
	user, err := svc.public.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	links, err := svc.public.GetPublicUserLinks(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	return user, links, nil
}
