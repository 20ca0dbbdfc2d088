package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/mudasir256/helplineapp/internal/config"
	"github.com/mudasir256/helplineapp/internal/domain"
	"github.com/mudasir256/helplineapp/internal/infra/database/models"
	"github.com/mudasir256/helplineapp/internal/service"
)

type mockTokens struct {
	issued  int
	revoked []string
	refresh map[string]string // token -> userID
}

func (m *mockTokens) Issue(ctx context.Context, userID, email string) (*service.TokenPair, error) {
	m.issued++
	token := "refresh-" + strconv.Itoa(m.issued)
	if m.refresh == nil {
		m.refresh = map[string]string{}
	}
	m.refresh[token] = userID
	return &service.TokenPair{
		AccessToken:  "access-" + strconv.Itoa(m.issued),
		RefreshToken: token,
	}, nil
}

func (m *mockTokens) Redeem(ctx context.Context, refreshToken string) (string, error) {
	userID, ok := m.refresh[refreshToken]
	if !ok {
		return "", domain.UnauthorizedError{Message: "unknown refresh token"}
	}
	delete(m.refresh, refreshToken)
	return userID, nil
}

func (m *mockTokens) Revoke(ctx context.Context, refreshToken string) error {
	m.revoked = append(m.revoked, refreshToken)
	delete(m.refresh, refreshToken)
	return nil
}

func newAuthFixture() (*AuthUsecase, *mockUserRepo, *mockTokens) {
	users := &mockUserRepo{users: map[string]*models.User{}}
	tokens := &mockTokens{}
	uc := NewAuthUsecase(users, tokens, config.Auth{
		JWTSecret:        "test",
		AllowSignup:      true,
		GoogleAutoCreate: true,
	})
	return uc, users, tokens
}

func TestSignupThenLogin(t *testing.T) {
	uc, users, _ := newAuthFixture()
	ctx := context.Background()

	session, err := uc.Signup(ctx, SignupInput{
		Email:    "New@Example.com",
		Password: "hunter22",
		Name:     "New User",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if session.User.Email != "new@example.com" {
		t.Fatalf("email should be normalized, got %s", session.User.Email)
	}
	if session.Tokens.AccessToken == "" || session.Tokens.RefreshToken == "" {
		t.Fatalf("expected a full token pair")
	}
	if users.users["new@example.com"].PasswordHash == "hunter22" {
		t.Fatalf("password must not be stored in the clear")
	}

	if _, err := uc.Login(ctx, "new@example.com", "hunter22"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := uc.Login(ctx, "new@example.com", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for a bad password, got %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	input := SignupInput{Email: "dup@example.com", Password: "hunter22"}
	if _, err := uc.Signup(ctx, input); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := uc.Signup(ctx, input); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSignupRejectsWeakInput(t *testing.T) {
	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := uc.Signup(ctx, SignupInput{Email: "not-an-email", Password: "hunter22"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for a bad email, got %v", err)
	}
	if _, err := uc.Signup(ctx, SignupInput{Email: "ok@example.com", Password: "short"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for a short password, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	uc, _, _ := newAuthFixture()

	_, err := uc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("unknown email must look like bad credentials, got %v", err)
	}
}

func TestGoogleLoginAutoCreates(t *testing.T) {
	uc, users, _ := newAuthFixture()

	session, err := uc.GoogleLogin(context.Background(), GoogleLoginInput{
		Email:        "g@example.com",
		Name:         "G User",
		ProfileImage: "https://example.com/p.png",
		GoogleID:     "google-123",
	})
	if err != nil {
		t.Fatalf("google login failed: %v", err)
	}
	if session.User.AuthProvider != "google" {
		t.Fatalf("expected google provider, got %s", session.User.AuthProvider)
	}
	if users.users["g@example.com"] == nil {
		t.Fatalf("user should have been provisioned")
	}
}

func TestGoogleLoginLinksExistingAccount(t *testing.T) {
	uc, users, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := uc.Signup(ctx, SignupInput{Email: "linked@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, err := uc.GoogleLogin(ctx, GoogleLoginInput{Email: "linked@example.com", GoogleID: "google-9"}); err != nil {
		t.Fatalf("google login failed: %v", err)
	}
	if users.users["linked@example.com"].GoogleID != "google-9" {
		t.Fatalf("google identity should be linked to the local account")
	}

	// Subsequent logins resolve by google id alone.
	session, err := uc.GoogleLogin(ctx, GoogleLoginInput{Email: "other@example.com", GoogleID: "google-9"})
	if err != nil {
		t.Fatalf("google login by id failed: %v", err)
	}
	if session.User.Email != "linked@example.com" {
		t.Fatalf("expected the linked account, got %s", session.User.Email)
	}
}

func TestRefreshRotates(t *testing.T) {
	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	first, err := uc.Signup(ctx, SignupInput{Email: "r@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	second, err := uc.Refresh(ctx, first.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if second.Tokens.RefreshToken == first.Tokens.RefreshToken {
		t.Fatalf("refresh token should rotate")
	}

	if _, err := uc.Refresh(ctx, first.Tokens.RefreshToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("old refresh token must be dead, got %v", err)
	}
}

func TestProfileResolvesAuthenticatedUser(t *testing.T) {
	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	session, err := uc.Signup(ctx, SignupInput{Email: "me@example.com", Password: "hunter22", Name: "Me"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	user, err := uc.Profile(ctx, session.User.ID)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if user.Email != "me@example.com" {
		t.Fatalf("expected the signed-up account, got %s", user.Email)
	}

	if _, err := uc.Profile(ctx, ""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("no requester must read as unauthorized, got %v", err)
	}
	if _, err := uc.Profile(ctx, "gone"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("deleted account must read as unauthorized, got %v", err)
	}
}

func TestLogoutRevokes(t *testing.T) {
	uc, _, tokens := newAuthFixture()
	ctx := context.Background()

	session, err := uc.Signup(ctx, SignupInput{Email: "l@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if err := uc.Logout(ctx, session.Tokens.RefreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if len(tokens.revoked) != 1 {
		t.Fatalf("expected one revoked token, got %d", len(tokens.revoked))
	}
}
