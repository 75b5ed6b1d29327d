package repository

import (
	"context"

	"github.com/google/uuid"

	"referly/invitehub/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByInviteCode(ctx context.Context, code string) (*model.User, error)
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error)
	InviteCodeExists(ctx context.Context, code string) (bool, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
}
