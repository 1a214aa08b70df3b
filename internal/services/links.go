package services

import (
	"context"
	"errors"
	"net/url"

	"github.com/google/uuid"

	"github.com/linklock/linklock-api/internal/logger"
	"github.com/linklock/linklock-api/internal/models"
)

// FreePlanLinkLimit is the maximum number of links a free-plan user may own.
// Checked at creation time only.
const FreePlanLinkLimit = 500

var (
	ErrQuotaExceeded = errors.New("free tier link limit reached")
	ErrPlanRequired  = errors.New("pro plan required")
)

// LinkOwnerReader reads the owner state the gates decide on.
type LinkOwnerReader interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetLinkCount(ctx context.Context, userID string) (int, error)
}

// LinkReader defines read operations over a user's link collection.
type LinkReader interface {
	GetLinks(ctx context.Context, userID string) ([]models.Link, error)
	SearchLinks(ctx context.Context, userID, query string) ([]models.Link, error)
}

// LinkWriter defines write operations over links.
type LinkWriter interface {
	SaveLink(ctx context.Context, link *models.Link) error
	UpdateLinkFolder(ctx context.Context, linkID, folder string) error
	ToggleLinkPrivacy(ctx context.Context, linkID string, isPrivate bool) error
	DeleteLink(ctx context.Context, linkID string) error
}

// LinkService wraps link storage with the plan-derived gates. The gates
// only read current user state and approve or deny; all mutation happens
// in the store.
type LinkService struct {
	owners LinkOwnerReader
	reader LinkReader
	writer LinkWriter
}

// NewLinkService creates a new LinkService instance.
func NewLinkService(owners LinkOwnerReader, reader LinkReader, writer LinkWriter) *LinkService {
	return &LinkService{
		owners: owners,
		reader: reader,
		writer: writer,
	}
}

// Create saves a new link after the quota gate. The count check is
// best-effort: two concurrent creations can both read a pre-quota count and
// both succeed. There is no transactional reservation; callers must not
// rely on the cap being exact.
func (svc *LinkService) Create(ctx context.Context, userID, rawURL, title, folder string, screenshot []byte) (*models.Link, error) {
	user, err := svc.owners.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	count, err := svc.owners.GetLinkCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Plan == models.PlanFree && count >= FreePlanLinkLimit {
		logger.Log.Infow("link quota reached", "user_id", userID, "count", count)
		return nil, ErrQuotaExceeded
	}

	if title == "" {
		title = hostOf(rawURL)
	}
	if folder == "" {
		folder = models.DefaultFolder
	}

	link := &models.Link{
		ID:         uuid.NewString(),
		UserID:     userID,
		URL:        rawURL,
		Screenshot: screenshot,
		Title:      title,
		Folder:     folder,
		CreatedAt:  models.Now(),
	}
	if err := svc.writer.SaveLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// hostOf defaults a missing title to the URL's host, falling back to the
// raw string when it does not parse.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

// List returns the user's links, newest first.
func (svc *LinkService) List(ctx context.Context, userID string) ([]models.Link, error) {
	return svc.reader.GetLinks(ctx, userID)
}

// Search returns the user's links whose url or title contains query as a
// case-insensitive substring, newest first.
func (svc *LinkService) Search(ctx context.Context, userID, query string) ([]models.Link, error) {
	return svc.reader.SearchLinks(ctx, userID, query)
}

// MoveFolder relabels a link's folder.
func (svc *LinkService) MoveFolder(ctx context.Context, linkID, folder string) error {
	return svc.writer.UpdateLinkFolder(ctx, linkID, folder)
}

// SetPrivacy toggles a link's privacy flag. Making a link private requires
// the owner's current plan to be pro; clearing the flag is never gated, so
// privacy set under a pro plan is sticky after a downgrade.
func (svc *LinkService) SetPrivacy(ctx context.Context, userID, linkID string, isPrivate bool) error {
	if isPrivate {
		user, err := svc.owners.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		if user.Plan != models.PlanPro {
			return ErrPlanRequired
		}
	}
	return svc.writer.ToggleLinkPrivacy(ctx, linkID, isPrivate)
}

// Delete removes a link.
func (svc *LinkService) Delete(ctx context.Context, linkID string) error {
	return svc.writer.DeleteLink(ctx, linkID)
}
