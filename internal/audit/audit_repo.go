package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	Record(ctx context.Context, entry *Entry) error
	FindByEntity(ctx context.Context, organizationID, entityType, entityID string) ([]Entry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Record(ctx context.Context, entry *Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindByEntity(ctx context.Context, organizationID, entityType, entityID string) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND entity_type = ? AND entity_id = ?", organizationID, entityType, entityID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// NewEntry marshals the payload and fills common fields; a marshal failure
// degrades to a row without payload rather than dropping the event.
func NewEntry(organizationID, actorID, action, entityType, entityID string, payload any) *Entry {
	entry := &Entry{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}

	if orgUUID, err := uuid.Parse(organizationID); err == nil {
		entry.OrganizationID = orgUUID
	}
	if actorUUID, err := uuid.Parse(actorID); err == nil {
		entry.ActorID = &actorUUID
	}
	if payload != nil {
		if raw, err := json.Marshal(payload); err == nil {
			entry.Payload = raw
		}
	}

	return entry
}
