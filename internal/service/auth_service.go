package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"referly/invitehub/internal/model"
	"referly/invitehub/internal/repository"
)

// TokenIssuer mints access tokens for a user. Satisfied by pkg/jwt.Manager.
type TokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
}

// AuthResult is returned after a successful registration or login.
type AuthResult struct {
	JWT  string      `json:"jwt"`
	User *model.User `json:"user"`
}

type AuthService interface {
	// RegisterWithInvite validates the invite code, creates the account,
	// records the inviter/invitee relationship and issues a token.
	RegisterWithInvite(ctx context.Context, inviteCode, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
}

type authService struct {
	users      UserService
	userRepo   repository.UserRepository
	recordRepo repository.InviteRecordRepository
	relations  RelationService
	tokens     TokenIssuer
	logger     *zap.Logger
}

func NewAuthService(
	users UserService,
	userRepo repository.UserRepository,
	recordRepo repository.InviteRecordRepository,
	relations RelationService,
	tokens TokenIssuer,
	logger *zap.Logger,
) AuthService {
	return &authService{
		users:      users,
		userRepo:   userRepo,
		recordRepo: recordRepo,
		relations:  relations,
		tokens:     tokens,
		logger:     logger,
	}
}

func (s *authService) RegisterWithInvite(ctx context.Context, inviteCode, username, email, password string) (*AuthResult, error) {
	if inviteCode == "" {
		return nil, ErrInviteCodeRequired
	}

	inviter, err := s.userRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteCodeInvalid
		}
		return nil, err
	}

	// The new user gets a code of their own, assigned at creation time.
	// Credential validation and hashing belong to the user service.
	user, err := s.users.Create(ctx, username, email, password, "")
	if err != nil {
		return nil, err
	}

	record := &model.InviteRecord{
		InviterID:  inviter.ID,
		InviteeID:  user.ID,
		InviteCode: inviteCode,
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		// The account exists but the referral edge is lost. Surface a
		// distinguishable error instead of pretending the registration
		// fully succeeded.
		s.logger.Error("invite record creation failed after user creation",
			zap.String("inviter_id", inviter.ID.String()),
			zap.String("invitee_id", user.ID.String()),
			zap.String("invite_code", inviteCode),
			zap.Error(err),
		)
		return nil, ErrPartialRegistration
	}

	s.relations.InvalidateStats(ctx, inviter.ID)

	token, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{JWT: token, User: user}, nil
}

func (s *authService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	user, err := s.users.Authenticate(ctx, identifier, password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{JWT: token, User: user}, nil
}
