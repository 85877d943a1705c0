package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kdkce/examreg-backend/internal/config"
	"github.com/kdkce/examreg-backend/internal/model"
	"github.com/kdkce/examreg-backend/internal/repository"
)

// Account management errors.
var (
	ErrEmailDomainNotAllowed = errors.New("email outside the college domain")
	ErrDuplicateUser         = errors.New("username, college id, email or aadhar already taken")
	ErrUserNotFound          = errors.New("user not found")
)

// UserService handles account registration and profile management.
type UserService struct {
	cfg   *config.Config
	users *repository.UserRepository
	auth  *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(cfg *config.Config, users *repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{cfg: cfg, users: users, auth: auth}
}

// Register creates an account. Email addresses must belong to the
// configured college domain.
func (s *UserService) Register(ctx context.Context, req *model.RegisterUserRequest) (*model.User, error) {
	if !s.emailAllowed(req.Email) {
		return nil, ErrEmailDomainNotAllowed
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("parse date of birth: %w", err)
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		CollegeID:    optional(req.CollegeID),
		Email:        req.Email,
		Role:         req.Role,
		FirstName:    req.FirstName,
		MiddleName:   optional(req.MiddleName),
		LastName:     req.LastName,
		MobileNo:     req.MobileNo,
		AadharNo:     optional(req.AadharNo),
		DateOfBirth:  &dob,
		Address:      req.Address,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return user, nil
}

// Profile retrieves an account by id.
func (s *UserService) Profile(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a self-service profile edit and returns the
// refreshed account.
func (s *UserService) UpdateProfile(ctx context.Context, userID int, req *model.UpdateProfileRequest) (*model.User, error) {
	if !s.emailAllowed(req.Email) {
		return nil, ErrEmailDomainNotAllowed
	}

	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Email = req.Email
	user.FirstName = req.FirstName
	user.MiddleName = optional(req.MiddleName)
	user.LastName = req.LastName
	user.MobileNo = req.MobileNo
	user.AadharNo = optional(req.AadharNo)
	user.Address = req.Address
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("parse date of birth: %w", err)
		}
		user.DateOfBirth = &dob
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return user, nil
}

// UsernameAvailable reports whether a username is free to register.
func (s *UserService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	taken, err := s.users.UsernameExists(ctx, username)
	return !taken, err
}

// EmailAvailable reports whether an email is free to register.
func (s *UserService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	taken, err := s.users.EmailExists(ctx, email)
	return !taken, err
}

func (s *UserService) emailAllowed(email string) bool {
	return strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(s.cfg.EmailDomain))
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
