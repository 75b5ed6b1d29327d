package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"referly/invitehub/internal/model"
	"referly/invitehub/internal/repository"
)

// InviteStats aggregates a user's referral activity.
type InviteStats struct {
	InviteCount int64 `json:"invite_count"`
}

// RelationService answers read-only questions about inviter/invitee edges.
type RelationService interface {
	// GetInviter returns the user who invited userID, or nil when the
	// user registered without a code.
	GetInviter(ctx context.Context, userID uuid.UUID) (*model.User, error)
	// GetInvitees returns the users userID invited, oldest first.
	GetInvitees(ctx context.Context, userID uuid.UUID) ([]model.User, error)
	GetInviteStats(ctx context.Context, userID uuid.UUID) (*InviteStats, error)
	// InvalidateStats drops the cached count after a new invited
	// registration. Best effort; a stale entry ages out via TTL anyway.
	InvalidateStats(ctx context.Context, userID uuid.UUID)
}

type relationService struct {
	recordRepo repository.InviteRecordRepository
	userRepo   repository.UserRepository
	cache      repository.CacheStore
	statsTTL   time.Duration
}

func NewRelationService(
	recordRepo repository.InviteRecordRepository,
	userRepo repository.UserRepository,
	cache repository.CacheStore,
	statsTTL time.Duration,
) RelationService {
	if statsTTL <= 0 {
		statsTTL = time.Minute
	}
	return &relationService{
		recordRepo: recordRepo,
		userRepo:   userRepo,
		cache:      cache,
		statsTTL:   statsTTL,
	}
}

func (s *relationService) GetInviter(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	record, err := s.recordRepo.GetByInvitee(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return s.userRepo.GetByID(ctx, record.InviterID)
}

func (s *relationService) GetInvitees(ctx context.Context, userID uuid.UUID) ([]model.User, error) {
	records, err := s.recordRepo.ListByInviter(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Empty result is an empty slice, not nil, so it serializes as a
	// JSON array.
	if len(records) == 0 {
		return []model.User{}, nil
	}

	ids := make([]uuid.UUID, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.InviteeID)
	}
	users, err := s.userRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Preserve record insertion order; Find gives no ordering guarantee.
	byID := make(map[uuid.UUID]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	invitees := make([]model.User, 0, len(records))
	for _, r := range records {
		if u, ok := byID[r.InviteeID]; ok {
			invitees = append(invitees, u)
		}
	}
	return invitees, nil
}

func (s *relationService) GetInviteStats(ctx context.Context, userID uuid.UUID) (*InviteStats, error) {
	key := statsCacheKey(userID)
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
		if count, err := strconv.ParseInt(string(cached), 10, 64); err == nil {
			return &InviteStats{InviteCount: count}, nil
		}
	}

	count, err := s.recordRepo.CountByInviter(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Cache failures are not worth failing the request over.
	_ = s.cache.Set(ctx, key, []byte(strconv.FormatInt(count, 10)), s.statsTTL)

	return &InviteStats{InviteCount: count}, nil
}

func (s *relationService) InvalidateStats(ctx context.Context, userID uuid.UUID) {
	_ = s.cache.Delete(ctx, statsCacheKey(userID))
}

func statsCacheKey(userID uuid.UUID) string {
	return "invite_stats:" + userID.String()
}
