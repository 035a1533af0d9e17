package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chatbet/base-models/models"
	"github.com/chatbet/base-models/repositories"
)

// PromotionsRepository implements the repositories.PromotionsRepository
// interface
type PromotionsRepository struct {
	store store
}

// NewPromotionsRepository creates a new PromotionsRepository
func NewPromotionsRepository(db *mongo.Database) repositories.PromotionsRepository {
	return &PromotionsRepository{store: newStore(db)}
}

// Get loads a tenant's promotion catalog
func (r *PromotionsRepository) Get(ctx context.Context, companyID string) (*models.PromotionsConfigDB, error) {
	doc, err := r.store.getDocument(ctx, models.CompanyPK(companyID), models.SKPromotionsConfig)
	if err != nil {
		return nil, err
	}
	return models.PromotionsConfigDBFromDocument(doc)
}

// Upsert validates and stores a tenant's promotion catalog
func (r *PromotionsRepository) Upsert(ctx context.Context, record *models.PromotionsConfigDB) error {
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

// Delete removes a tenant's promotion catalog
func (r *PromotionsRepository) Delete(ctx context.Context, companyID string) error {
	return r.store.deleteDocument(ctx, models.CompanyPK(companyID), models.SKPromotionsConfig)
}
