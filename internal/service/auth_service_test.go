package service

import (
	"context"
	"testing"

	"zodiac/internal/dto"
	"zodiac/internal/model"
	"zodiac/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubAdminRepo struct {
	creds map[string]*model.AdminCredential
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{creds: make(map[string]*model.AdminCredential)}
}

func (r *stubAdminRepo) FindByAdminID(_ context.Context, adminID string) (*model.AdminCredential, error) {
	c, ok := r.creds[adminID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubAdminRepo) Upsert(_ context.Context, cred *model.AdminCredential) error {
	r.creds[cred.AdminID] = cred
	return nil
}

var _ repository.AdminRepository = (*stubAdminRepo)(nil)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	// Minimal cost keeps the test fast; production uses cost 12.
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newAuthFixture(t *testing.T) (*AuthService, *stubUserRepo, *stubSupplierRepo, *stubAdminRepo) {
	t.Helper()
	users := newStubUserRepo()
	suppliers := newStubSupplierRepo()
	admins := newStubAdminRepo()

	users.add(&model.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: mustHash(t, "customer-pass"),
		Role:         model.ActorCustomer,
	})
	suppliers.add(&model.Supplier{
		Name:         "Acme Wholesale",
		PasswordHash: mustHash(t, "supplier-pass"),
	})
	require.NoError(t, admins.Upsert(context.Background(), &model.AdminCredential{
		AdminID:      "admin",
		PasswordHash: mustHash(t, "admin-pass"),
	}))

	svc := NewAuthService(users, suppliers, admins, "test-secret", 1, 2)
	return svc, users, suppliers, admins
}

func TestLogin_AllActorKinds(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	cases := []struct {
		kind       string
		identifier string
		password   string
	}{
		{model.ActorAdmin, "admin", "admin-pass"},
		{model.ActorSupplier, "Acme Wholesale", "supplier-pass"},
		{model.ActorCustomer, "alice@example.com", "customer-pass"},
	}
	for _, tc := range cases {
		resp, err := svc.Login(context.Background(), &dto.LoginRequest{
			ActorKind:  tc.kind,
			Identifier: tc.identifier,
			Password:   tc.password,
		})
		require.NoError(t, err, tc.kind)
		assert.Equal(t, tc.kind, resp.Actor.ActorKind)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)

		claims, err := svc.ParseToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, tc.kind, claims.ActorKind)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	for _, tc := range []struct{ kind, identifier string }{
		{model.ActorAdmin, "admin"},
		{model.ActorSupplier, "Acme Wholesale"},
		{model.ActorCustomer, "alice@example.com"},
	} {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			ActorKind:  tc.kind,
			Identifier: tc.identifier,
			Password:   "wrong",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials, tc.kind)
	}
}

func TestLogin_UnknownActorLooksLikeBadPassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		ActorKind:  model.ActorCustomer,
		Identifier: "nobody@example.com",
		Password:   "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterCustomer_DuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	resp, err := svc.RegisterCustomer(context.Background(), &dto.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ActorCustomer, resp.ActorKind)

	_, err = svc.RegisterCustomer(context.Background(), &dto.RegisterRequest{
		Username: "bob again",
		Email:    "bob@example.com",
		Password: "another-pass",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// Email comparison is case-insensitive in the store; the service
	// normalizes before the pre-check.
	_, err = svc.RegisterCustomer(context.Background(), &dto.RegisterRequest{
		Username: "shouty bob",
		Email:    "BOB@example.com",
		Password: "another-pass",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterCustomer_PasswordIsHashed(t *testing.T) {
	svc, users, _, _ := newAuthFixture(t)

	_, err := svc.RegisterCustomer(context.Background(), &dto.RegisterRequest{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "plain-text",
	})
	require.NoError(t, err)

	u, err := users.FindByEmail(context.Background(), "carol@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "plain-text", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("plain-text")))
}

func TestRefresh_ReissuesTokens(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		ActorKind:  model.ActorCustomer,
		Identifier: "alice@example.com",
		Password:   "customer-pass",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, login.Actor.ID, refreshed.Actor.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
