package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kdkce/examreg-backend/internal/model"
)

// UserRepository handles account data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, username, college_id, email, role, first_name, middle_name,
	last_name, mobile_no, aadhar_no, date_of_birth, address, password_hash,
	created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Username, &u.CollegeID, &u.Email, &u.Role,
		&u.FirstName, &u.MiddleName, &u.LastName, &u.MobileNo, &u.AadharNo,
		&u.DateOfBirth, &u.Address, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a new account. Returns ErrDuplicate when the username,
// college id, email or aadhar number is already taken.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, college_id, email, role, first_name, middle_name,
		                    last_name, mobile_no, aadhar_no, date_of_birth, address, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at`,
		u.Username, u.CollegeID, u.Email, u.Role, u.FirstName, u.MiddleName,
		u.LastName, u.MobileNo, u.AadharNo, u.DateOfBirth, u.Address, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetByID retrieves an account by primary key.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByUsername retrieves an account by its login name.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// GetByCollegeID retrieves an account by its institutional identifier.
func (r *UserRepository) GetByCollegeID(ctx context.Context, collegeID string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE college_id = $1`, collegeID))
}

// GetByEmail retrieves an account by email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// UpdateProfile updates the self-service editable fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, u *model.User) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET email = $1, first_name = $2, middle_name = $3, last_name = $4,
		        mobile_no = $5, aadhar_no = $6, date_of_birth = $7, address = $8,
		        updated_at = NOW()
		 WHERE id = $9`,
		u.Email, u.FirstName, u.MiddleName, u.LastName,
		u.MobileNo, u.AadharNo, u.DateOfBirth, u.Address, u.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id)
	return err
}

// UsernameExists reports whether the username is taken.
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

// EmailExists reports whether the email is taken.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}
