package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linklock/linklock-api/internal/models"
)

// runStoreSuite exercises the full Store contract. Both backends must pass
// it unchanged; they may differ only in connection mechanics.
func runStoreSuite(t *testing.T, store Store) {
	ctx := context.Background()

	newUser := func(t *testing.T) *models.User {
		t.Helper()
		id := uuid.NewString()
		user, err := store.CreateUser(ctx, id, id+"@example.com", "hash-"+id)
		require.NoError(t, err)
		return user
	}

	saveLink := func(t *testing.T, userID, url, title, createdAt string, screenshot []byte) *models.Link {
		t.Helper()
		link := &models.Link{
			ID:         uuid.NewString(),
			UserID:     userID,
			URL:        url,
			Screenshot: screenshot,
			Title:      title,
			Folder:     models.DefaultFolder,
			CreatedAt:  createdAt,
		}
		require.NoError(t, store.SaveLink(ctx, link))
		return link
	}

	t.Run("CreateAndGetByEmail", func(t *testing.T) {
		user := newUser(t)

		got, err := store.GetUserByEmail(ctx, user.Email)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.Email, got.Email)
		assert.Equal(t, models.PlanFree, got.Plan)
		assert.NotEmpty(t, got.PasswordHash)
		assert.Nil(t, got.Username)
		assert.False(t, got.IsPublic)
	})

	t.Run("AbsentUserIsNil", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, got)

		got, err = store.GetUserByID(ctx, uuid.NewString())
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("DuplicateEmailConflict", func(t *testing.T) {
		user := newUser(t)

		_, err := store.CreateUser(ctx, uuid.NewString(), user.Email, "other-hash")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("GetByIDExcludesPasswordHash", func(t *testing.T) {
		user := newUser(t)

		got, err := store.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.Email, got.Email)
		assert.Empty(t, got.PasswordHash)
	})

	t.Run("UsernameLookupRequiresPublic", func(t *testing.T) {
		user := newUser(t)
		username := "u" + uuid.NewString()[:8]

		require.NoError(t, store.UpdateUserProfile(ctx, user.ID, &username, false))

		// Not public: indistinguishable from absent.
		got, err := store.GetUserByUsername(ctx, username)
		assert.NoError(t, err)
		assert.Nil(t, got)

		require.NoError(t, store.UpdateUserProfile(ctx, user.ID, &username, true))

		got, err = store.GetUserByUsername(ctx, username)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("UsernameConflict", func(t *testing.T) {
		first := newUser(t)
		second := newUser(t)
		username := "u" + uuid.NewString()[:8]

		require.NoError(t, store.UpdateUserProfile(ctx, first.ID, &username, true))
		err := store.UpdateUserProfile(ctx, second.ID, &username, true)
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("NilUsernamesNeverConflict", func(t *testing.T) {
		first := newUser(t)
		second := newUser(t)

		require.NoError(t, store.UpdateUserProfile(ctx, first.ID, nil, false))
		assert.NoError(t, store.UpdateUserProfile(ctx, second.ID, nil, false))
	})

	t.Run("UpdatePlan", func(t *testing.T) {
		user := newUser(t)

		require.NoError(t, store.UpdateUserPlan(ctx, user.ID, models.PlanPro))
		got, err := store.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PlanPro, got.Plan)
		assert.GreaterOrEqual(t, got.UpdatedAt, user.UpdatedAt)
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		user := newUser(t)
		saveLink(t, user.ID, "https://old.example.com", "old", "2024-01-01T00:00:00.000Z", nil)
		saveLink(t, user.ID, "https://mid.example.com", "mid", "2024-06-01T00:00:00.000Z", nil)
		saveLink(t, user.ID, "https://new.example.com", "new", "2025-01-01T00:00:00.000Z", nil)

		links, err := store.GetLinks(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, links, 3)
		assert.Equal(t, "new", links[0].Title)
		assert.Equal(t, "mid", links[1].Title)
		assert.Equal(t, "old", links[2].Title)
	})

	t.Run("ScreenshotRoundTrip", func(t *testing.T) {
		user := newUser(t)
		shot := []byte{0x89, 'P', 'N', 'G', 0x00, 0xFF, 0xFE}
		link := saveLink(t, user.ID, "https://shot.example.com", "shot", "2024-02-02T00:00:00.000Z", shot)
		saveLink(t, user.ID, "https://bare.example.com", "bare", "2024-02-01T00:00:00.000Z", nil)

		links, err := store.GetLinks(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, link.ID, links[0].ID)
		assert.Equal(t, shot, links[0].Screenshot)
		assert.Nil(t, links[1].Screenshot)
	})

	t.Run("SearchCaseInsensitive", func(t *testing.T) {
		user := newUser(t)
		saveLink(t, user.ID, "https://example.com/a", "example.com", "2024-03-01T00:00:00.000Z", nil)
		saveLink(t, user.ID, "https://other.org/b", "Something Else", "2024-03-02T00:00:00.000Z", nil)

		links, err := store.SearchLinks(ctx, user.ID, "EXAMPLE")
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "example.com", links[0].Title)

		// Matches on url as well as title.
		links, err = store.SearchLinks(ctx, user.ID, "OTHER.ORG")
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "Something Else", links[0].Title)

		links, err = store.SearchLinks(ctx, user.ID, "missing")
		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("FolderMoveBumpsUpdatedAt", func(t *testing.T) {
		user := newUser(t)
		link := saveLink(t, user.ID, "https://move.example.com", "move", "2024-04-01T00:00:00.000Z", nil)

		require.NoError(t, store.UpdateLinkFolder(ctx, link.ID, "work"))

		links, err := store.GetLinks(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "work", links[0].Folder)
		assert.GreaterOrEqual(t, links[0].UpdatedAt, link.UpdatedAt)
	})

	t.Run("PrivacyToggle", func(t *testing.T) {
		user := newUser(t)
		link := saveLink(t, user.ID, "https://secret.example.com", "secret", "2024-04-02T00:00:00.000Z", nil)

		require.NoError(t, store.ToggleLinkPrivacy(ctx, link.ID, true))
		links, err := store.GetLinks(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.True(t, links[0].IsPrivate)

		require.NoError(t, store.ToggleLinkPrivacy(ctx, link.ID, false))
		links, err = store.GetLinks(ctx, user.ID)
		require.NoError(t, err)
		assert.False(t, links[0].IsPrivate)
	})

	t.Run("DeleteAndCount", func(t *testing.T) {
		user := newUser(t)
		link := saveLink(t, user.ID, "https://gone.example.com", "gone", "2024-05-01T00:00:00.000Z", nil)
		saveLink(t, user.ID, "https://kept.example.com", "kept", "2024-05-02T00:00:00.000Z", nil)

		count, err := store.GetLinkCount(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		require.NoError(t, store.DeleteLink(ctx, link.ID))

		count, err = store.GetLinkCount(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("PublicUserLinks", func(t *testing.T) {
		user := newUser(t)
		username := "u" + uuid.NewString()[:8]
		saveLink(t, user.ID, "https://visible.example.com", "visible", "2024-07-01T00:00:00.000Z", nil)
		hidden := saveLink(t, user.ID, "https://hidden.example.com", "hidden", "2024-07-02T00:00:00.000Z", nil)
		require.NoError(t, store.ToggleLinkPrivacy(ctx, hidden.ID, true))

		// Not public yet: no links resolvable.
		require.NoError(t, store.UpdateUserProfile(ctx, user.ID, &username, false))
		links, err := store.GetPublicUserLinks(ctx, username)
		require.NoError(t, err)
		assert.Empty(t, links)

		require.NoError(t, store.UpdateUserProfile(ctx, user.ID, &username, true))
		links, err = store.GetPublicUserLinks(ctx, username)
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "visible", links[0].Title)
	})

	t.Run("LinksAreScopedToOwner", func(t *testing.T) {
		owner := newUser(t)
		other := newUser(t)
		saveLink(t, owner.ID, "https://mine.example.com", "mine", "2024-08-01T00:00:00.000Z", nil)

		links, err := store.GetLinks(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, links)

		count, err := store.GetLinkCount(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}
