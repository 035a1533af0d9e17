package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chatbet/base-models/models"
	"github.com/chatbet/base-models/repositories"
)

// SportbookConfigRepository implements the
// repositories.SportbookConfigRepository interface
type SportbookConfigRepository struct {
	store store
}

// NewSportbookConfigRepository creates a new SportbookConfigRepository
func NewSportbookConfigRepository(db *mongo.Database) repositories.SportbookConfigRepository {
	return &SportbookConfigRepository{store: newStore(db)}
}

// Get loads a tenant's sportbook configuration
func (r *SportbookConfigRepository) Get(ctx context.Context, companyID string) (*models.SportbookConfigDB, error) {
	doc, err := r.store.getDocument(ctx, models.CompanyPK(companyID), models.SKSportbookConfig)
	if err != nil {
		return nil, err
	}
	return models.SportbookConfigDBFromDocument(doc)
}

// Upsert validates and stores a tenant's sportbook configuration
func (r *SportbookConfigRepository) Upsert(ctx context.Context, record *models.SportbookConfigDB) error {
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

// Delete removes a tenant's sportbook configuration
func (r *SportbookConfigRepository) Delete(ctx context.Context, companyID string) error {
	return r.store.deleteDocument(ctx, models.CompanyPK(companyID), models.SKSportbookConfig)
}
