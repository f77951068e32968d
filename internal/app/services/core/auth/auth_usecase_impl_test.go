package auth

import (
	"context"
	"mediscan-service/internal/app/config"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/exceptions"
	"mediscan-service/internal/pkg/testutil"
	"mediscan-service/internal/pkg/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthUsecase(users *testutil.UserRepository) *authUsecase {
	cfg := &config.InternalConfig{
		JWT: config.AppJWT{Secret: "test-secret", ExpTime: time.Hour},
	}
	return NewAuthUsecase(users, cfg, zap.NewNop()).(*authUsecase)
}

func TestIssueTokenThenAuthenticate(t *testing.T) {
	ctx := context.Background()
	uc := newTestAuthUsecase(testutil.NewUserRepository())

	issued, err := uc.IssueToken(ctx, &requests.IssueToken{Email: "patient@example.com", Name: "Rahim"})
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)

	identity, err := uc.Authenticate(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "patient@example.com", identity.Email)
}

func TestAuthenticate_Rejects(t *testing.T) {
	ctx := context.Background()
	uc := newTestAuthUsecase(testutil.NewUserRepository())

	expired, err := utils.GenerateJWT(map[string]interface{}{"email": "a@b.c"}, "test-secret", -time.Minute)
	require.NoError(t, err)
	foreign, err := utils.GenerateJWT(map[string]interface{}{"email": "a@b.c"}, "other-secret", time.Hour)
	require.NoError(t, err)
	noEmail, err := utils.GenerateJWT(map[string]interface{}{"name": "x"}, "test-secret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		credential string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"expired", expired},
		{"wrong secret", foreign},
		{"missing email claim", noEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := uc.Authenticate(ctx, tt.credential)
			assert.Nil(t, identity)
			assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeUnauthenticated), "got %v", err)
		})
	}
}

func TestAuthorizeAdmin(t *testing.T) {
	ctx := context.Background()
	users := testutil.NewUserRepository()
	users.Seed(models.User{Email: "admin@example.com", Role: constvars.UserRoleAdmin, Status: constvars.UserStatusActive})
	users.Seed(models.User{Email: "user@example.com", Role: constvars.UserRoleUser, Status: constvars.UserStatusActive})
	uc := newTestAuthUsecase(users)

	assert.NoError(t, uc.AuthorizeAdmin(ctx, &models.Identity{Email: "admin@example.com"}))

	err := uc.AuthorizeAdmin(ctx, &models.Identity{Email: "user@example.com"})
	assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeForbidden))

	err = uc.AuthorizeAdmin(ctx, &models.Identity{Email: "stranger@example.com"})
	assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeForbidden))

	err = uc.AuthorizeAdmin(ctx, nil)
	assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeUnauthenticated))
}

func TestAuthorizeAdmin_RoleRevokedTakesEffectNextCall(t *testing.T) {
	ctx := context.Background()
	users := testutil.NewUserRepository()
	id := users.Seed(models.User{Email: "admin@example.com", Role: constvars.UserRoleAdmin})
	uc := newTestAuthUsecase(users)
	identity := &models.Identity{Email: "admin@example.com"}

	require.NoError(t, uc.AuthorizeAdmin(ctx, identity))

	_, err := users.UpdateRole(ctx, id, constvars.UserRoleUser)
	require.NoError(t, err)

	assert.Error(t, uc.AuthorizeAdmin(ctx, identity))
}

func TestAuthorizeAdmin_StoreFailure(t *testing.T) {
	users := testutil.NewUserRepository()
	users.FindErr = exceptions.ErrMongoDBFindDocument(testutil.ErrInjected)
	uc := newTestAuthUsecase(users)

	err := uc.AuthorizeAdmin(context.Background(), &models.Identity{Email: "admin@example.com"})
	assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeStoreError))
}
