package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"

	"github.com/safar-uz/safar-api/config"
	"github.com/safar-uz/safar-api/internal/api"
	"github.com/safar-uz/safar-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for authentication.
type Service interface {
	Register(ctx context.Context, username, email, password string) (*types.UserAuth, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error)
	Refresh(ctx context.Context, refreshToken string) (newAccess, newRefresh string, err error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(tokenString string) (*api.Claims, error)
}

type ServiceImpl struct {
	repo   Repository
	cfg    config.JWTConfig
	logger *slog.Logger
}

func NewServiceImpl(repo Repository, cfg config.JWTConfig, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		repo:   repo,
		cfg:    cfg,
		logger: logger.With(slog.String("service", "auth")),
	}
}

func (s *ServiceImpl) Register(ctx context.Context, username, email, password string) (*types.UserAuth, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Register")
	defer span.End()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, username, email, string(hash))
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create user", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}

	span.SetStatus(codes.Ok, "User registered")
	return user, nil
}

func (s *ServiceImpl) Login(ctx context.Context, email, password string) (string, string, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Login")
	defer span.End()

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return "", "", api.ErrUnauthenticated
		}
		span.RecordError(err)
		return "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", api.ErrUnauthenticated
	}

	access, err := s.issueAccessToken(user)
	if err != nil {
		span.RecordError(err)
		return "", "", err
	}
	refresh, err := s.issueRefreshToken(ctx, user)
	if err != nil {
		span.RecordError(err)
		return "", "", err
	}

	span.SetStatus(codes.Ok, "Login successful")
	return access, refresh, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued.
func (s *ServiceImpl) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Refresh")
	defer span.End()

	rec, err := s.repo.GetRefreshToken(ctx, hashToken(refreshToken))
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return "", "", api.ErrUnauthenticated
		}
		span.RecordError(err)
		return "", "", err
	}
	if rec.RevokedAt != nil || time.Now().After(rec.ExpiresAt) {
		return "", "", api.ErrUnauthenticated
	}

	user, err := s.repo.GetUserByID(ctx, rec.UserID)
	if err != nil {
		span.RecordError(err)
		return "", "", err
	}

	if err := s.repo.RevokeRefreshToken(ctx, rec.TokenHash); err != nil {
		s.logger.WarnContext(ctx, "Failed to revoke rotated refresh token", slog.Any("error", err))
	}

	access, err := s.issueAccessToken(user)
	if err != nil {
		span.RecordError(err)
		return "", "", err
	}
	refresh, err := s.issueRefreshToken(ctx, user)
	if err != nil {
		span.RecordError(err)
		return "", "", err
	}

	span.SetStatus(codes.Ok, "Token refreshed")
	return access, refresh, nil
}

func (s *ServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Logout")
	defer span.End()

	err := s.repo.RevokeRefreshToken(ctx, hashToken(refreshToken))
	if errors.Is(err, api.ErrNotFound) {
		return api.ErrUnauthenticated
	}
	return err
}

// ValidateAccessToken parses and verifies a JWT access token.
func (s *ServiceImpl) ValidateAccessToken(tokenString string) (*api.Claims, error) {
	claims := &api.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, api.ErrUnauthenticated
	}
	if !api.VerifyAudience(claims.Audience, s.cfg.Audience) {
		return nil, api.ErrUnauthenticated
	}
	return claims, nil
}

func (s *ServiceImpl) issueAccessToken(user *types.UserAuth) (string, error) {
	now := time.Now()
	claims := api.Claims{
		UserID:   user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

func (s *ServiceImpl) issueRefreshToken(ctx context.Context, user *types.UserAuth) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating refresh token: %w", err)
	}
	token := hex.EncodeToString(raw)

	expiresAt := time.Now().Add(s.cfg.RefreshTokenTTL)
	if err := s.repo.StoreRefreshToken(ctx, user.ID, hashToken(token), expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
