package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"referly/invitehub/internal/model"
)

// ErrRecordNotFound is returned by lookups that find no row, so callers
// do not depend on the storage driver's sentinel.
var ErrRecordNotFound = errors.New("record not found")

type InviteRecordRepository interface {
	Create(ctx context.Context, record *model.InviteRecord) error
	// GetByInvitee returns the record where the given user is the invitee,
	// or ErrRecordNotFound. A user is invited at most once.
	GetByInvitee(ctx context.Context, inviteeID uuid.UUID) (*model.InviteRecord, error)
	// ListByInviter returns all records issued by the given user, in
	// insertion order.
	ListByInviter(ctx context.Context, inviterID uuid.UUID) ([]model.InviteRecord, error)
	CountByInviter(ctx context.Context, inviterID uuid.UUID) (int64, error)
}
