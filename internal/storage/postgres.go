package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/linklock/linklock-api/internal/logger"
	"github.com/linklock/linklock-api/internal/models"
)

// PostgresStore implements Store over a networked relational database.
// Semantics must match SQLiteStore exactly; only dialect differs.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore returns a new PostgresStore bound to the given handle.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// mapPostgresConstraint translates a unique_violation (23505) into the
// shared sentinel errors, keyed by the violated constraint name.
func mapPostgresConstraint(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "email"):
			return ErrEmailExists
		case strings.Contains(pgErr.ConstraintName, "username"):
			return ErrUsernameTaken
		}
	}
	return err
}

func (s *PostgresStore) CreateUser(ctx context.Context, id, email, passwordHash string) (*models.User, error) {
	now := models.Now()
	query := `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query, id, email, passwordHash, now, now)
	logger.Log.Infow("create user",
		"query", strings.Join(strings.Fields(query), " "),
		"id", id,
		"error", err,
	)
	if err != nil {
		return nil, mapPostgresConstraint(err)
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

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `
		SELECT id, email, password_hash, plan, username, is_public, created_at, updated_at
		FROM users
		WHERE email = $1
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

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	// Password hash deliberately excluded from this projection.
	const query = `
		SELECT id, email, plan, username, is_public, created_at, updated_at
		FROM users
		WHERE id = $1
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

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `
		SELECT id, email, plan, username, is_public, created_at, updated_at
		FROM users
		WHERE username = $1 AND is_public
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

func (s *PostgresStore) UpdateUserPlan(ctx context.Context, id, plan string) error {
	query := `UPDATE users SET plan = $1, updated_at = $2 WHERE id = $3`
	_, err := s.db.ExecContext(ctx, query, plan, models.Now(), id)
	logger.Log.Infow("update user plan", "id", id, "plan", plan, "error", err)
	if err != nil {
		return fmt.Errorf("update user plan: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateUserProfile(ctx context.Context, id string, username *string, isPublic bool) error {
	query := `UPDATE users SET username = $1, is_public = $2, updated_at = $3 WHERE id = $4`
	_, err := s.db.ExecContext(ctx, query, username, isPublic, models.Now(), id)
	logger.Log.Infow("update user profile", "id", id, "is_public", isPublic, "error", err)
	return mapPostgresConstraint(err)
}

func (s *PostgresStore) SaveLink(ctx context.Context, link *models.Link) error {
	link.UpdatedAt = models.Now()
	query := `
		INSERT INTO links (id, user_id, url, screenshot, title, folder, is_private, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
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

func (s *PostgresStore) GetLinks(ctx context.Context, userID string) ([]models.Link, error) {
	const query = `
		SELECT id, user_id, url, screenshot, COALESCE(title, '') AS title, folder, is_private, created_at, updated_at
		FROM links
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	links := []models.Link{}
	if err := s.db.SelectContext(ctx, &links, query, userID); err != nil {
		return nil, fmt.Errorf("get links: %w", err)
	}
	return links, nil
}

func (s *PostgresStore) SearchLinks(ctx context.Context, userID, query string) ([]models.Link, error) {
	const stmt = `
		SELECT id, user_id, url, screenshot, COALESCE(title, '') AS title, folder, is_private, created_at, updated_at
		FROM links
		WHERE user_id = $1 AND (url ILIKE $2 OR title ILIKE $2)
		ORDER BY created_at DESC
	`
	pattern := "%" + query + "%"
	links := []models.Link{}
	if err := s.db.SelectContext(ctx, &links, stmt, userID, pattern); err != nil {
		return nil, fmt.Errorf("search links: %w", err)
	}
	return links, nil
}

func (s *PostgresStore) UpdateLinkFolder(ctx context.Context, linkID, folder string) error {
	query := `UPDATE links SET folder = $1, updated_at = $2 WHERE id = $3`
	_, err := s.db.ExecContext(ctx, query, folder, models.Now(), linkID)
	logger.Log.Infow("update link folder", "id", linkID, "folder", folder, "error", err)
	if err != nil {
		return fmt.Errorf("update link folder: %w", err)
	}
	return nil
}

func (s *PostgresStore) ToggleLinkPrivacy(ctx context.Context, linkID string, isPrivate bool) error {
	query := `UPDATE links SET is_private = $1, updated_at = $2 WHERE id = $3`
	_, err := s.db.ExecContext(ctx, query, isPrivate, models.Now(), linkID)
	logger.Log.Infow("toggle link privacy", "id", linkID, "is_private", isPrivate, "error", err)
	if err != nil {
		return fmt.Errorf("toggle link privacy: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteLink(ctx context.Context, linkID string) error {
	query := `DELETE FROM links WHERE id = $1`
	_, err := s.db.ExecContext(ctx, query, linkID)
	logger.Log.Infow("delete link", "id", linkID, "error", err)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetLinkCount(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM links WHERE user_id = $1`
	var count int
	if err := s.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("get link count: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) GetPublicUserLinks(ctx context.Context, username string) ([]models.Link, error) {
	const query = `
		SELECT id, user_id, url, screenshot, COALESCE(title, '') AS title, folder, is_private, created_at, updated_at
		FROM links
		WHERE user_id = (SELECT id FROM users WHERE username = $1 AND is_public)
		  AND NOT is_private
		ORDER BY created_at DESC
	`
	links := []models.Link{}
	if err := s.db.SelectContext(ctx, &links, query, username); err != nil {
		return nil, fmt.Errorf("get public user links: %w", err)
	}
	return links, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
