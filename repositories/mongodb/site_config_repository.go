package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chatbet/base-models/models"
	"github.com/chatbet/base-models/repositories"
)

// SiteConfigRepository implements the repositories.SiteConfigRepository
// interface
type SiteConfigRepository struct {
	store store
}

// NewSiteConfigRepository creates a new SiteConfigRepository
func NewSiteConfigRepository(db *mongo.Database) repositories.SiteConfigRepository {
	return &SiteConfigRepository{store: newStore(db)}
}

// Get loads a tenant's site configuration
func (r *SiteConfigRepository) Get(ctx context.Context, companyID string) (*models.SiteConfigDB, error) {
	doc, err := r.store.getDocument(ctx, models.CompanyPK(companyID), models.SKSiteConfig)
	if err != nil {
		return nil, err
	}
	return models.SiteConfigDBFromDocument(doc)
}

// Upsert validates and stores a tenant's site configuration
func (r *SiteConfigRepository) Upsert(ctx context.Context, record *models.SiteConfigDB) error {
	if err := record.Validate(); err != nil {
		return err
	}
	record.Touch()
	doc, err := record.ToDocument(true)
	if err != nil {
		return err
	}
	return r.store.upsertDocument(ctx, record.PK, record.SK, doc)
}

// Delete removes a tenant's site configuration
func (r *SiteConfigRepository) Delete(ctx context.Context, companyID string) error {
	return r.store.deleteDocument(ctx, models.CompanyPK(companyID), models.SKSiteConfig)
}
