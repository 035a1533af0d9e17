package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chatbet/base-models/models"
	"github.com/chatbet/base-models/repositories"
)

// TutorialsRepository implements the repositories.TutorialsRepository
// interface
type TutorialsRepository struct {
	store store
}

// NewTutorialsRepository creates a new TutorialsRepository
func NewTutorialsRepository(db *mongo.Database) repositories.TutorialsRepository {
	return &TutorialsRepository{store: newStore(db)}
}

// Get loads a tenant's tutorial collection
func (r *TutorialsRepository) Get(ctx context.Context, companyID string) (*models.TutorialsDB, error) {
	doc, err := r.store.getDocument(ctx, models.CompanyPK(companyID), models.SKTutorials)
	if err != nil {
		return nil, err
	}
	return models.TutorialsDBFromDocument(doc)
}

// Upsert validates and stores a tenant's tutorial collection
func (r *TutorialsRepository) Upsert(ctx context.Context, record *models.TutorialsDB) error {
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

// Delete removes a tenant's tutorial collection
func (r *TutorialsRepository) Delete(ctx context.Context, companyID string) error {
	return r.store.deleteDocument(ctx, models.CompanyPK(companyID), models.SKTutorials)
}
