package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/kdkce/examreg-backend/internal/config"
	"github.com/kdkce/examreg-backend/internal/mailer"
	"github.com/kdkce/examreg-backend/internal/model"
	"github.com/kdkce/examreg-backend/internal/repository"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID int        `json:"user_id"`
	Role   model.Role `json:"role"`
}

// AuthService handles authentication, JWT, and password resets.
type AuthService struct {
	cfg      *config.Config
	rdb      *redis.Client
	users    *repository.UserRepository
	notifier *mailer.Dispatcher
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, rdb *redis.Client, users *repository.UserRepository, notifier *mailer.Dispatcher) *AuthService {
	return &AuthService{cfg: cfg, rdb: rdb, users: users, notifier: notifier}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login authenticates by username or, failing that, by college id. Both
// misses and wrong passwords collapse into ErrInvalidCredentials so the
// response never reveals which part was wrong.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*model.User, string, error) {
	user, err := s.users.GetByUsername(ctx, identifier)
	if errors.Is(err, pgx.ErrNoRows) {
		user, err = s.users.GetByCollegeID(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	if err := s.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GenerateToken creates a signed JWT carrying the account's id and role.
func (s *AuthService) GenerateToken(user *model.User) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		UserID: user.ID,
		Role:   user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// RequestPasswordReset issues a one-time reset token for the account behind
// email and mails the reset link. An unknown email is not an error; the
// endpoint must not leak which addresses have accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	token := uuid.New().String()
	key := config.RedisKey.ResetTokenKey(token)
	if err := s.rdb.Set(ctx, key, strconv.Itoa(user.ID), s.cfg.ResetTokenTTL).Err(); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	_ = s.notifier.Send(mailer.KindPasswordReset, user.Email, user.FullName(), mailer.PasswordResetData{
		StudentName: user.FullName(),
		ResetURL:    fmt.Sprintf("%s/reset-password?token=%s", s.cfg.FrontendBaseURL, token),
	})
	return nil
}

// ConfirmPasswordReset consumes a reset token and replaces the password.
// The token is deleted before the password update so it can be used once
// even under concurrent confirmation attempts.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	key := config.RedisKey.ResetTokenKey(token)

	stored, err := s.rdb.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("check reset token: %w", err)
	}

	userID, err := strconv.Atoi(stored)
	if err != nil {
		return ErrResetTokenInvalid
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}
