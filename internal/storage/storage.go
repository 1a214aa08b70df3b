package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/linklock/linklock-api/internal/models"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Unique-constraint violations surface as these sentinel errors so callers
// can tell a conflict from a generic store failure.
var (
	ErrEmailExists   = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

// Store is the backend-agnostic contract over user and link records.
// Both implementations must produce equivalent results for equivalent
// inputs; they differ only in connection and dialect mechanics.
//
// Lookups return (nil, nil) when the record is absent. GetUserByUsername
// additionally returns (nil, nil) when the user exists but is not public;
// the two cases are indistinguishable to the caller by design.
type Store interface {
	CreateUser(ctx context.Context, id, email, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUserPlan(ctx context.Context, id, plan string) error
	UpdateUserProfile(ctx context.Context, id string, username *string, isPublic bool) error

	SaveLink(ctx context.Context, link *models.Link) error
	GetLinks(ctx context.Context, userID string) ([]models.Link, error)
	SearchLinks(ctx context.Context, userID, query string) ([]models.Link, error)
	UpdateLinkFolder(ctx context.Context, linkID, folder string) error
	ToggleLinkPrivacy(ctx context.Context, linkID string, isPrivate bool) error
	DeleteLink(ctx context.Context, linkID string) error
	GetLinkCount(ctx context.Context, userID string) (int, error)
	GetPublicUserLinks(ctx context.Context, username string) ([]models.Link, error)

	Close() error
}

// Open connects to the selected backend, brings its schema up to date and
// returns a ready Store. A migration failure is returned to the caller and
// must be treated as fatal: the process must not serve traffic against a
// stale schema.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case DriverSQLite:
		db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		// modernc's driver serializes poorly across connections; a single
		// connection also keeps :memory: databases stable in tests.
		db.SetMaxOpenConns(1)
		if err := Migrate(ctx, db.DB, DriverSQLite); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate sqlite store: %w", err)
		}
		return NewSQLiteStore(db), nil
	case DriverPostgres:
		db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		if err := Migrate(ctx, db.DB, DriverPostgres); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate postgres store: %w", err)
		}
		return NewPostgresStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
