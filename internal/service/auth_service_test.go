package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"referly/invitehub/internal/model"
	"referly/invitehub/internal/repository"
	"referly/invitehub/internal/testutil"
	jwtpkg "referly/invitehub/pkg/jwt"
)

type authFixture struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	recordRepo repository.InviteRecordRepository
	users      UserService
	relations  RelationService
	tokens     *jwtpkg.Manager
	auth       AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	db := testutil.NewDB(t)
	userRepo := repository.NewGormUserRepository(db)
	recordRepo := repository.NewGormInviteRecordRepository(db)
	users := NewUserService(userRepo)
	relations := NewRelationService(recordRepo, userRepo, repository.NewMemoryCacheStore(), 0)
	tokens := jwtpkg.NewManager("test-key", "invitehub-test", time.Hour)
	auth := NewAuthService(users, userRepo, recordRepo, relations, tokens, zap.NewNop())
	return &authFixture{
		db:         db,
		userRepo:   userRepo,
		recordRepo: recordRepo,
		users:      users,
		relations:  relations,
		tokens:     tokens,
		auth:       auth,
	}
}

func (f *authFixture) seedInviter(t *testing.T, username, code string) *model.User {
	t.Helper()
	user, err := f.users.Create(context.Background(), username, username+"@example.com", "Password123", code)
	require.NoError(t, err)
	return user
}

func (f *authFixture) countUsers(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.User{}).Count(&n).Error)
	return n
}

func (f *authFixture) countRecords(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.InviteRecord{}).Count(&n).Error)
	return n
}

func TestRegisterWithInvite_MissingCode(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.RegisterWithInvite(context.Background(), "", "bob", "bob@x.com", "Password123")
	assert.ErrorIs(t, err, ErrInviteCodeRequired)
	assert.Equal(t, int64(0), f.countUsers(t))
	assert.Equal(t, int64(0), f.countRecords(t))
}

func TestRegisterWithInvite_InvalidCode(t *testing.T) {
	f := newAuthFixture(t)
	f.seedInviter(t, "alice", "AB12CD")

	_, err := f.auth.RegisterWithInvite(context.Background(), "ZZZZZZ", "bob1", "bob@x.com", "Password123")
	assert.ErrorIs(t, err, ErrInviteCodeInvalid)
	assert.Equal(t, int64(1), f.countUsers(t), "only the seeded inviter should exist")
	assert.Equal(t, int64(0), f.countRecords(t))
}

func TestRegisterWithInvite_Success(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	inviter := f.seedInviter(t, "alice", "AB12CD")

	result, err := f.auth.RegisterWithInvite(ctx, "AB12CD", "bob1", "bob@x.com", "Password123")
	require.NoError(t, err)
	require.NotNil(t, result.User)

	// token belongs to the new user
	claims, err := f.tokens.Validate(result.JWT)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.String(), claims.Subject)

	// exactly one record with the right endpoints and the code as used
	record, err := f.recordRepo.GetByInvitee(ctx, result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, inviter.ID, record.InviterID)
	assert.Equal(t, result.User.ID, record.InviteeID)
	assert.Equal(t, "AB12CD", record.InviteCode)
	assert.Equal(t, int64(1), f.countRecords(t))

	// the new user got a code of their own, different from the one used
	assert.Regexp(t, codePattern, result.User.InviteCode)
	assert.NotEqual(t, "AB12CD", result.User.InviteCode)

	// relationship queries agree
	got, err := f.relations.GetInviter(ctx, result.User.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, inviter.ID, got.ID)

	stats, err := f.relations.GetInviteStats(ctx, inviter.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.InviteCount)
}

func TestRegisterWithInvite_ValidationPassThrough(t *testing.T) {
	f := newAuthFixture(t)
	f.seedInviter(t, "alice", "AB12CD")

	_, err := f.auth.RegisterWithInvite(context.Background(), "AB12CD", "bob1", "bob@x.com", "short")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, int64(1), f.countUsers(t))
	assert.Equal(t, int64(0), f.countRecords(t))
}

func TestRegisterWithInvite_DuplicateUsername(t *testing.T) {
	f := newAuthFixture(t)
	f.seedInviter(t, "alice", "AB12CD")

	_, err := f.auth.RegisterWithInvite(context.Background(), "AB12CD", "alice", "new@x.com", "Password123")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.Equal(t, int64(0), f.countRecords(t))
}

// failingRecordRepo delegates to the real repository except that every
// insert fails, simulating the store going away between user creation and
// the relationship write.
type failingRecordRepo struct {
	repository.InviteRecordRepository
}

func (r *failingRecordRepo) Create(ctx context.Context, record *model.InviteRecord) error {
	return errors.New("insert rejected")
}

func TestRegisterWithInvite_PartialFailureSurfaced(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.seedInviter(t, "alice", "AB12CD")

	auth := NewAuthService(f.users, f.userRepo,
		&failingRecordRepo{InviteRecordRepository: f.recordRepo},
		f.relations, f.tokens, zap.NewNop())

	_, err := auth.RegisterWithInvite(ctx, "AB12CD", "bob1", "bob@x.com", "Password123")
	assert.ErrorIs(t, err, ErrPartialRegistration)

	// the account exists but the referral edge was never written
	bob, lookupErr := f.userRepo.GetByUsernameOrEmail(ctx, "bob1")
	require.NoError(t, lookupErr)
	require.NotNil(t, bob)
	assert.Equal(t, int64(0), f.countRecords(t))

	inviter, err := f.relations.GetInviter(ctx, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, inviter)
}

func TestRegisterWithInvite_ChainOfInvites(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.seedInviter(t, "alice", "AB12CD")

	// bob registers with alice's code, carol with bob's
	bob, err := f.auth.RegisterWithInvite(ctx, "AB12CD", "bob1", "bob@x.com", "Password123")
	require.NoError(t, err)
	carol, err := f.auth.RegisterWithInvite(ctx, bob.User.InviteCode, "carol", "carol@x.com", "Password123")
	require.NoError(t, err)

	inviter, err := f.relations.GetInviter(ctx, carol.User.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.User.ID, inviter.ID)

	stats, err := f.relations.GetInviteStats(ctx, bob.User.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.InviteCount)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.seedInviter(t, "alice", "AB12CD")

	result, err := f.auth.Login(ctx, "alice", "Password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)

	claims, err := f.tokens.Validate(result.JWT)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)

	_, err = f.auth.Login(ctx, "alice", "nope-nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
