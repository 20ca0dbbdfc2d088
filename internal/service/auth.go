package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/mudasir256/helplineapp/internal/config"
	"github.com/mudasir256/helplineapp/internal/domain"
)

var tracer = otel.Tracer("auth")

// AuthService issues and verifies the session tokens handed to the mobile
// client. Access tokens are stateless JWTs; refresh tokens are opaque and
// live in redis so they can be revoked on logout.
type AuthService struct {
	config config.Auth
	rdb    *redis.Client
}

func NewAuthService(config config.Auth, rdb *redis.Client) *AuthService {
	return &AuthService{
		config: config,
		rdb:    rdb,
	}
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func refreshKey(token string) string {
	return "helpline:refresh:" + token
}

func (s *AuthService) Issue(ctx context.Context, userID, email string) (*TokenPair, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Issue")
	defer span.End()

	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    "helplineapp",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenTTL)),
		},
	}

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to sign access token")
	}

	refresh := uuid.New().String()
	err = s.rdb.Set(ctx, refreshKey(refresh), userID, s.config.RefreshTokenTTL).Err()
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify parses an access token and returns the requester identity.
func (s *AuthService) Verify(ctx context.Context, token string) (*Claims, error) {
	_, span := tracer.Start(ctx, "Auth.Service.Verify")
	defer span.End()

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, domain.UnauthorizedError{Message: "invalid token"}
	}
	if !parsed.Valid {
		return nil, domain.UnauthorizedError{Message: "invalid token"}
	}
	return claims, nil
}

// Redeem consumes a refresh token and returns the user it belonged to. The
// token is rotated: callers issue a new pair afterwards.
func (s *AuthService) Redeem(ctx context.Context, refreshToken string) (string, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Redeem")
	defer span.End()

	userID, err := s.rdb.Get(ctx, refreshKey(refreshToken)).Result()
	if err == redis.Nil {
		return "", domain.UnauthorizedError{Message: "unknown refresh token"}
	}
	if err != nil {
		span.RecordError(err)
		return "", errors.Wrap(err, "failed to look up refresh token")
	}

	if err := s.rdb.Del(ctx, refreshKey(refreshToken)).Err(); err != nil {
		span.RecordError(err)
	}

	return userID, nil
}

// Revoke drops a refresh token, ending the session server side.
func (s *AuthService) Revoke(ctx context.Context, refreshToken string) error {
	ctx, span := tracer.Start(ctx, "Auth.Service.Revoke")
	defer span.End()

	return s.rdb.Del(ctx, refreshKey(refreshToken)).Err()
}
