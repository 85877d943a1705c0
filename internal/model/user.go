package model

import "time"

// Role is the account's capability level, checked once at the route boundary.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User represents an account (student or admin).
type User struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	CollegeID    *string    `json:"college_id,omitempty"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	FirstName    string     `json:"first_name"`
	MiddleName   *string    `json:"middle_name,omitempty"`
	LastName     string     `json:"last_name"`
	MobileNo     string     `json:"mobile_no"`
	AadharNo     *string    `json:"aadhar_no,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Address      string     `json:"address"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// FullName returns the display name used in notification emails.
func (u *User) FullName() string {
	name := u.FirstName
	if u.MiddleName != nil && *u.MiddleName != "" {
		name += " " + *u.MiddleName
	}
	if u.LastName != "" {
		name += " " + u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}

// LoginRequest authenticates by username or college id.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required,min=2,max=100"`
	Password   string `json:"password" binding:"required,min=4,max=128"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterUserRequest is the payload for admin-initiated account creation.
// Email must belong to the college domain; the password confirmation must
// match (both enforced server-side, mirroring the registration form).
type RegisterUserRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=30"`
	Email           string `json:"email" binding:"required,email"`
	CollegeID       string `json:"college_id" binding:"omitempty,min=2,max=20"`
	FirstName       string `json:"first_name" binding:"required,min=1,max=30"`
	MiddleName      string `json:"middle_name" binding:"omitempty,max=30"`
	LastName        string `json:"last_name" binding:"required,min=1,max=30"`
	MobileNo        string `json:"mobile_no" binding:"required,mobile"`
	AadharNo        string `json:"aadhar_no" binding:"required,aadhar"`
	DateOfBirth     string `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Address         string `json:"address" binding:"required,max=500"`
	Role            Role   `json:"role" binding:"required,oneof=student admin"`
	Password        string `json:"password" binding:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}

// UpdateProfileRequest is the payload for self-service profile edits.
type UpdateProfileRequest struct {
	Email       string `json:"email" binding:"required,email"`
	FirstName   string `json:"first_name" binding:"required,min=1,max=30"`
	MiddleName  string `json:"middle_name" binding:"omitempty,max=30"`
	LastName    string `json:"last_name" binding:"required,min=1,max=30"`
	MobileNo    string `json:"mobile_no" binding:"required,mobile"`
	AadharNo    string `json:"aadhar_no" binding:"omitempty,aadhar"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Address     string `json:"address" binding:"required,max=500"`
}

// PasswordResetRequest asks for a reset token to be emailed.
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetConfirmRequest consumes a reset token.
type PasswordResetConfirmRequest struct {
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}
