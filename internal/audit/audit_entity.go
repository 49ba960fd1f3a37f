package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Entry is one audit-trail row. Every successful pay calculation is
// recorded alongside its resolved input, as are pay-run state transitions
// and grant changes.
type Entry struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorID        *uuid.UUID
	Action         string `gorm:"type:varchar(60);not null;index"`
	EntityType     string `gorm:"type:varchar(40);not null"`
	EntityID       string `gorm:"type:varchar(60)"`
	Payload        datatypes.JSON
	CreatedAt      time.Time
}

func (Entry) TableName() string {
	return "audit_entries"
}
