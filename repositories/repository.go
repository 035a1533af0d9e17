package repositories

import (
	"context"
	"errors"

	"github.com/chatbet/base-models/models"
)

// ErrNotFound is returned when a tenant has no record of the requested
// kind.
var ErrNotFound = errors.New("configuration record not found")

// MessageTemplatesRepository defines the interface for message-template
// record operations.
type MessageTemplatesRepository interface {
	Get(ctx context.Context, companyID string) (*models.MessageTemplatesDB, error)
	Upsert(ctx context.Context, record *models.MessageTemplatesDB) error
	Delete(ctx context.Context, companyID string) error
}

// EndpointsRepository defines the interface for platform-endpoint record
// operations.
type EndpointsRepository interface {
	Get(ctx context.Context, companyID string) (*models.APIEndpointsDB, error)
	Upsert(ctx context.Context, record *models.APIEndpointsDB) error
	Delete(ctx context.Context, companyID string) error
}

// SiteConfigRepository defines the interface for site-config record
// operations.
type SiteConfigRepository interface {
	Get(ctx context.Context, companyID string) (*models.SiteConfigDB, error)
	Upsert(ctx context.Context, record *models.SiteConfigDB) error
	Delete(ctx context.Context, companyID string) error
}

// SportbookConfigRepository defines the interface for sportbook-config
// record operations.
type SportbookConfigRepository interface {
	Get(ctx context.Context, companyID string) (*models.SportbookConfigDB, error)
	Upsert(ctx context.Context, record *models.SportbookConfigDB) error
	Delete(ctx context.Context, companyID string) error
}

// PromotionsRepository defines the interface for promotion-catalog record
// operations.
type PromotionsRepository interface {
	Get(ctx context.Context, companyID string) (*models.PromotionsConfigDB, error)
	Upsert(ctx context.Context, record *models.PromotionsConfigDB) error
	Delete(ctx context.Context, companyID string) error
}

// TutorialsRepository defines the interface for tutorial-collection record
// operations.
type TutorialsRepository interface {
	Get(ctx context.Context, companyID string) (*models.TutorialsDB, error)
	Upsert(ctx context.Context, record *models.TutorialsDB) error
	Delete(ctx context.Context, companyID string) error
}
