package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chatbet/base-models/models"
	"github.com/chatbet/base-models/repositories"
)

// MessageTemplatesRepository implements the
// repositories.MessageTemplatesRepository interface
type MessageTemplatesRepository struct {
	store store
}

// NewMessageTemplatesRepository creates a new MessageTemplatesRepository
func NewMessageTemplatesRepository(db *mongo.Database) repositories.MessageTemplatesRepository {
	return &MessageTemplatesRepository{store: newStore(db)}
}

// Get loads a tenant's message-template record
func (r *MessageTemplatesRepository) Get(ctx context.Context, companyID string) (*models.MessageTemplatesDB, error) {
	doc, err := r.store.getDocument(ctx, models.CompanyPK(companyID), models.SKMessageTemplates)
	if err != nil {
		return nil, err
	}
	return models.MessageTemplatesDBFromDocument(doc)
}

// Upsert validates and stores a tenant's message-template record
func (r *MessageTemplatesRepository) Upsert(ctx context.Context, record *models.MessageTemplatesDB) error {
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

// Delete removes a tenant's message-template record
func (r *MessageTemplatesRepository) Delete(ctx context.Context, companyID string) error {
	return r.store.deleteDocument(ctx, models.CompanyPK(companyID), models.SKMessageTemplates)
}
