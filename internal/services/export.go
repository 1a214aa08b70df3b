package services

import (
	"context"

	"github.com/linklock/linklock-api/internal/export"
	"github.com/linklock/linklock-api/internal/models"
)

// ExportReader reads the owner and their link collection.
type ExportReader interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetLinks(ctx context.Context, userID string) ([]models.Link, error)
}

// ExportService gates export behind the pro plan and renders the
// collection as a portable document.
type ExportService struct {
	reader ExportReader
}

// NewExportService creates a new ExportService instance.
func NewExportService(reader ExportReader) *ExportService {
	return &ExportService{reader: reader}
}

// Export renders the user's links in the requested format and returns the
// document together with its content type.
func (svc *ExportService) Export(ctx context.Context, userID, format string) ([]byte, string, error) {
	user, err := svc.reader.GetUserByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrUserNotFound
	}
	if user.Plan != models.PlanPro {
		return nil, "", ErrPlanRequired
	}

	links, err := svc.reader.GetLinks(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	doc, err := export.Format(links, format)
	if err != nil {
		return nil, "", err
	}
	return doc, export.ContentType(format), nil
}
