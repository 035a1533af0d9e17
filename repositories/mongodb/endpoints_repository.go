package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chatbet/base-models/models"
	"github.com/chatbet/base-models/repositories"
)

// EndpointsRepository implements the repositories.EndpointsRepository
// interface
type EndpointsRepository struct {
	store store
}

// NewEndpointsRepository creates a new EndpointsRepository
func NewEndpointsRepository(db *mongo.Database) repositories.EndpointsRepository {
	return &EndpointsRepository{store: newStore(db)}
}

// Get loads a tenant's endpoint table
func (r *EndpointsRepository) Get(ctx context.Context, companyID string) (*models.APIEndpointsDB, error) {
	doc, err := r.store.getDocument(ctx, models.CompanyPK(companyID), models.SKPlatformEndpoints)
	if err != nil {
		return nil, err
	}
	return models.APIEndpointsDBFromDocument(doc)
}

// Upsert validates and stores a tenant's endpoint table
func (r *EndpointsRepository) Upsert(ctx context.Context, record *models.APIEndpointsDB) error {
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

// Delete removes a tenant's endpoint table
func (r *EndpointsRepository) Delete(ctx context.Context, companyID string) error {
	return r.store.deleteDocument(ctx, models.CompanyPK(companyID), models.SKPlatformEndpoints)
}
