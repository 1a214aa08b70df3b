package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/linklock/linklock-api/internal/logger"
	"github.com/linklock/linklock-api/internal/models"
)

// SQLiteStore implements Store over an embedded single-file database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore returns a new SQLiteStore bound to the given handle.
func NewSQLiteStore(db *sqlx.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// mapSQLiteConstraint translates the driver's unique-violation text into
// the shared sentinel errors. The column name travels in the message.
func mapSQLiteConstraint(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: users.email"):
		return ErrEmailExists
	case strings.Contains(msg, "UNIQUE constraint failed: users.username"):
		return ErrUsernameTaken
	}
	return err
}

func (s *SQLiteStore) CreateUser(ctx context.Context, id, email, passwordHash string) (*models.User, error) {
	now := models.Now()
	query := `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query, id, email, passwordHash, now, now)
	logger.Log.Infow("create user",
		"query", strings.Join(strings.Fields(query), " "),
		"id", id,
		"error", err,
	)
	if err != nil {
		return nil, mapSQLiteConstraint(err)
	}
	return &models.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Plan:         models.PlanFree,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `
		SELECT id, email, password_hash, plan, username, is_public, created_at, updated_at
		FROM users
		WHERE email = ?
	`
	var user models.User
	err := s.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	// Password hash deliberately excluded from this projection.
	const query = `
		SELECT id, email, plan, username, is_public, created_at, updated_at
		FROM users
		WHERE id = ?
	`
	var user models.User
	err := s.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &user, nil
}

func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	// Not-public users are indistinguishable from absent ones.
	const query = `
		SELECT id, email, plan, username, is_public, created_at, updated_at
		FROM users
		WHERE username = ? AND is_public = 1
	`
	var user models.User
	err := s.db.GetContext(ctx, &user, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &user, nil
}

func (s *SQLiteStore) UpdateUserPlan(ctx context.Context, id, plan string) error {
	query := `UPDATE users SET plan = ?, updated_at = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, query, plan, models.Now(), id)
	logger.Log.Infow("update user plan", "id", id, "plan", plan, "error", err)
	if err != nil {
		return fmt.Errorf("update user plan: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpdateUserProfile(ctx context.Context, id string, username *string, isPublic bool) error {
	query := `UPDATE users SET username = ?, is_public = ?, updated_at = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, query, username, isPublic, models.Now(), id)
	logger.Log.Infow("update user profile", "id", id, "is_public", isPublic, "error", err)
	return mapSQLiteConstraint(err)
}

func (s *SQLiteStore) SaveLink(ctx context.Context, link *models.Link) error {
	link.UpdatedAt = models.Now()
	query := `
		INSERT INTO links (id, user_id, url, screenshot, title, folder, is_private, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		link.ID, link.UserID, link.URL, link.Screenshot,
		link.Title, link.Folder, link.IsPrivate, link.CreatedAt, link.UpdatedAt)
	logger.Log.Infow("save link", "id", link.ID, "user_id", link.UserID, "error", err)
	if err != nil {
		return fmt.Errorf("save link: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetLinks(ctx context.Context, userID string) ([]models.Link, error) {
	const query = `
		SELECT id, user_id, url, screenshot, COALESCE(title, '') AS title, folder, is_private, created_at, updated_at
		FROM links
		WHERE user_id = ?
		ORDER BY created_at DESC
	`
	links := []models.Link{}
	if err := s.db.SelectContext(ctx, &links, query, userID); err != nil {
		return nil, fmt.Errorf("get links: %w", err)
	}
	return links, nil
}

func (s *SQLiteStore) SearchLinks(ctx context.Context, userID, query string) ([]models.Link, error) {
	// LOWER on both sides keeps matching case-insensitive regardless of
	// the sqlite case_sensitive_like pragma.
	const stmt = `
		SELECT id, user_id, url, screenshot, COALESCE(title, '') AS title, folder, is_private, created_at, updated_at
		FROM links
		WHERE user_id = ? AND (LOWER(url) LIKE ? OR LOWER(title) LIKE ?)
		ORDER BY created_at DESC
	`
	pattern := "%" + strings.ToLower(query) + "%"
	links := []models.Link{}
	if err := s.db.SelectContext(ctx, &links, stmt, userID, pattern, pattern); err != nil {
		return nil, fmt.Errorf("search links: %w", err)
	}
	return links, nil
}

func (s *SQLiteStore) UpdateLinkFolder(ctx context.Context, linkID, folder string) error {
	query := `UPDATE links SET folder = ?, updated_at = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, query, folder, models.Now(), linkID)
	logger.Log.Infow("update link folder", "id", linkID, "folder", folder, "error", err)
	if err != nil {
		return fmt.Errorf("update link folder: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ToggleLinkPrivacy(ctx context.Context, linkID string, isPrivate bool) error {
	query := `UPDATE links SET is_private = ?, updated_at = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, query, isPrivate, models.Now(), linkID)
	logger.Log.Infow("toggle link privacy", "id", linkID, "is_private", isPrivate, "error", err)
	if err != nil {
		return fmt.Errorf("toggle link privacy: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteLink(ctx context.Context, linkID string) error {
	query := `DELETE FROM links WHERE id = ?`
	_, err := s.db.ExecContext(ctx, query, linkID)
	logger.Log.Infow("delete link", "id", linkID, "error", err)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetLinkCount(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM links WHERE user_id = ?`
	var count int
	if err := s.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("get link count: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) GetPublicUserLinks(ctx context.Context, username string) ([]models.Link, error) {
	const query = `
		SELECT id, user_id, url, screenshot, COALESCE(title, '') AS title, folder, is_private, created_at, updated_at
		FROM links
		WHERE user_id = (SELECT id FROM users WHERE username = ? AND is_public = 1)
		  AND is_private = 0
		ORDER BY created_at DESC
	`
	links := []models.Link{}
	if err := s.db.SelectContext(ctx, &links, query, username); err != nil {
		return nil, fmt.Errorf("get public user links: %w", err)
	}
	return links, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
