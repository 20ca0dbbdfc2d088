package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mudasir256/helplineapp/internal/config"
	"github.com/mudasir256/helplineapp/internal/domain"
	"github.com/mudasir256/helplineapp/internal/infra/database/models"
	"github.com/mudasir256/helplineapp/internal/service"
)

type AuthUsecase struct {
	users  UserRepository
	tokens TokenService
	config config.Auth
}

func NewAuthUsecase(users UserRepository, tokens TokenService, config config.Auth) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		tokens: tokens,
		config: config,
	}
}

// Session is what every successful auth operation hands back: the profile
// plus the token pair the client persists.
type Session struct {
	User   *models.User
	Tokens *service.TokenPair
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// GoogleLoginInput mirrors the google sign-in callback payload. GoogleID is
// optional; when present it links the google identity to the account.
type GoogleLoginInput struct {
	Email        string
	Name         string
	ProfileImage string
	GoogleID     string
}

func (uc *AuthUsecase) Signup(ctx context.Context, input SignupInput) (*Session, error) {
	if !uc.config.AllowSignup {
		return nil, domain.UnauthorizedError{Message: "signup is disabled"}
	}

	email := normalizeEmail(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.InvalidInputError{Message: "a valid email is required"}
	}
	if len(input.Password) < 6 {
		return nil, domain.InvalidInputError{Message: "password must be at least 6 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         input.Name,
		Phone:        input.Phone,
		AuthProvider: "local",
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return uc.openSession(ctx, user)
}

func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := uc.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.UnauthorizedError{Message: "invalid email or password"}
	}
	if err != nil {
		return nil, err
	}

	if user.PasswordHash == "" {
		return nil, domain.UnauthorizedError{Message: "account uses google sign-in"}
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.UnauthorizedError{Message: "invalid email or password"}
	}

	return uc.openSession(ctx, user)
}

// GoogleLogin signs a user in via a verified google profile. Resolution
// order: google id, then email (linking the google identity to the local
// account), then auto-provisioning when enabled.
func (uc *AuthUsecase) GoogleLogin(ctx context.Context, input GoogleLoginInput) (*Session, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, domain.InvalidInputError{Message: "email is required"}
	}

	if input.GoogleID != "" {
		user, err := uc.users.GetByGoogleID(ctx, input.GoogleID)
		if err == nil {
			return uc.openSession(ctx, user)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err == nil {
		if input.GoogleID != "" && user.GoogleID == "" {
			if err := uc.users.LinkGoogle(ctx, user.ID, input.GoogleID, input.ProfileImage); err != nil {
				return nil, err
			}
			user.GoogleID = input.GoogleID
		}
		if input.ProfileImage != "" {
			user.Picture = input.ProfileImage
		}
		return uc.openSession(ctx, user)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if !uc.config.GoogleAutoCreate {
		return nil, domain.UnauthorizedError{Message: "no account for this google identity"}
	}

	user = &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         input.Name,
		Picture:      input.ProfileImage,
		GoogleID:     input.GoogleID,
		AuthProvider: "google",
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return uc.openSession(ctx, user)
}

// Refresh rotates a refresh token into a new session.
func (uc *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	userID, err := uc.tokens.Redeem(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := uc.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.UnauthorizedError{Message: "account no longer exists"}
	}
	if err != nil {
		return nil, err
	}

	return uc.openSession(ctx, user)
}

func (uc *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return uc.tokens.Revoke(ctx, refreshToken)
}

// Profile returns the account behind an authenticated request. A stale token
// whose account is gone reads as unauthorized, not as a missing resource.
func (uc *AuthUsecase) Profile(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, domain.UnauthorizedError{Message: "authentication required"}
	}
	user, err := uc.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.UnauthorizedError{Message: "account no longer exists"}
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *AuthUsecase) openSession(ctx context.Context, user *models.User) (*Session, error) {
	tokens, err := uc.tokens.Issue(ctx, user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Tokens: tokens}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
