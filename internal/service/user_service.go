package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"referly/invitehub/internal/model"
	"referly/invitehub/internal/repository"
	"referly/invitehub/pkg/crypto"
	"referly/invitehub/pkg/invitecode"
)

// UserService owns account creation and credential checks. The
// registration workflow only sees this interface, so a deployment that
// keeps accounts elsewhere can swap in its own implementation.
type UserService interface {
	// Create validates credentials, hashes the password and persists the
	// user. When inviteCode is empty a fresh unique code is assigned
	// before the row is written; updates never touch the code.
	Create(ctx context.Context, username, email, password, inviteCode string) (*model.User, error)
	// Authenticate returns the user matching identifier (username or
	// email) iff the password is correct and the account is active.
	Authenticate(ctx context.Context, identifier, password string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9-_]{4,32}$`)

// createAttempts caps retries when the storage unique index rejects a
// generated invite code that passed the pre-check (two registrations
// racing on the same candidate).
const createAttempts = 5

func (s *userService) Create(ctx context.Context, username, email, password, inviteCode string) (*model.User, error) {
	if !usernameRegex.MatchString(username) {
		return nil, fmt.Errorf("%w: username must be 4-32 characters of letters, numbers, hyphens and underscores", ErrValidation)
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	// bcrypt rejects input over 72 bytes; catch it here as a client error.
	if len(password) > 72 {
		return nil, fmt.Errorf("%w: password must be at most 72 characters", ErrValidation)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	generated := inviteCode == ""

	for attempt := 0; attempt < createAttempts; attempt++ {
		code := inviteCode
		if generated {
			code, err = invitecode.AssignUnique(ctx, s.userRepo.InviteCodeExists)
			if err != nil {
				if errors.Is(err, invitecode.ErrExhausted) {
					return nil, ErrCodeAssignmentExhausted
				}
				return nil, err
			}
		}

		user := &model.User{
			Username:     username,
			Email:        email,
			PasswordHash: hash,
			InviteCode:   code,
			Status:       model.UserStatusActive,
		}

		err = s.userRepo.Create(ctx, user)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("create user: %w", err)
		}

		// A unique index rejected the row. Decide which one: if the
		// username or email is taken that is a client error; otherwise a
		// concurrent creation won the race for our generated code and a
		// fresh candidate may succeed.
		if _, lookupErr := s.userRepo.GetByUsernameOrEmail(ctx, username); lookupErr == nil {
			return nil, ErrUserAlreadyExists
		}
		if _, lookupErr := s.userRepo.GetByUsernameOrEmail(ctx, email); lookupErr == nil {
			return nil, ErrUserAlreadyExists
		}
		if !generated {
			// Caller-supplied code collided; nothing to retry.
			return nil, fmt.Errorf("create user: %w", err)
		}
	}
	return nil, ErrCodeAssignmentExhausted
}

func (s *userService) Authenticate(ctx context.Context, identifier, password string) (*model.User, error) {
	user, err := s.userRepo.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !crypto.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if user.Status != model.UserStatusActive {
		return nil, ErrUserDisabled
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
