package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InviteRecord is one invited registration: the user who issued the code,
// the user who registered with it, and the code as used. Rows are written
// once and never updated.
type InviteRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InviterID  uuid.UUID `gorm:"type:uuid;not null;index" json:"inviter_id"`
	InviteeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"invitee_id"`
	InviteCode string    `gorm:"type:varchar(16);not null" json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`

	Inviter User `gorm:"foreignKey:InviterID" json:"-"`
	Invitee User `gorm:"foreignKey:InviteeID" json:"-"`
}

func (InviteRecord) TableName() string { return "invite_records" }

func (r *InviteRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
