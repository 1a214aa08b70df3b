package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/linklock/linklock-api/internal/jwt"
	"github.com/linklock/linklock-api/internal/models"
	"github.com/linklock/linklock-api/internal/storage"
)

// Service tests run against a real in-memory database rather than mocked
// repositories, so the gates are checked against the same constraint and
// lookup semantics production sees.
func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	store, err := storage.Open(context.Background(), storage.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestJWT() *jwt.JWT {
	return jwt.New("test-secret", time.Hour)
}

func createTestUser(t *testing.T, store storage.Store) *models.User {
	t.Helper()

	id := uuid.NewString()
	user, err := store.CreateUser(context.Background(), id, id+"@example.com", "hash")
	require.NoError(t, err)
	return user
}

func seedLinks(t *testing.T, store storage.Store, userID string, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		err := store.SaveLink(context.Background(), &models.Link{
			ID:        uuid.NewString(),
			UserID:    userID,
			URL:       "https://example.com/seed",
			Title:     "seed",
			Folder:    models.DefaultFolder,
			CreatedAt: models.Now(),
		})
		require.NoError(t, err)
	}
}
