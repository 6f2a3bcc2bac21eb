package domain

import (
	"context"
	"errors"
	"time"
)

// User roles, in ascending privilege order.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

var (
	// ErrDuplicateEmail is returned when signing up with an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotVerified is returned when an unverified user tries to
	// log in.
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrAlreadyVerified is returned when verifying an address twice.
	ErrAlreadyVerified = errors.New("email already verified")

	// ErrInvalidToken is returned for unknown or expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// User is an account holder. PasswordHash never leaves the server.
// swagger:model User
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          string    `json:"role"`
	CollegeID     *string   `json:"college_id"`
	DepartmentID  *string   `json:"department_id"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserUpdate carries the optional fields for a partial user update.
type UserUpdate struct {
	Name         *string
	CollegeID    *string
	DepartmentID *string
	Role         *string
}

// TokenClaims is the verified content of an access token.
type TokenClaims struct {
	UserID    string
	Role      string
	CollegeID *string
}

// TokenIssuer mints access tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *User) (string, error)
}

// TokenVerifier validates access tokens and extracts their claims.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// PasswordHasher hashes and checks user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, collegeID string, params PaginationParams) ([]*User, int, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*User, error)
	Delete(ctx context.Context, id string) error

	SaveVerificationToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	ConsumeVerificationToken(ctx context.Context, token string) (string, error)
	MarkEmailVerified(ctx context.Context, userID string) error
}

// AuthService defines signup, login and email verification.
type AuthService interface {
	// SignUp registers a new account and sends a verification email. When
	// inviteToken is non-empty the account takes the role and college of
	// the invite.
	SignUp(ctx context.Context, name, email, password, inviteToken string) (*User, error)

	// LogIn checks credentials and returns the user with a signed access
	// token.
	LogIn(ctx context.Context, email, password string) (*User, string, error)

	// VerifyEmail consumes a verification token and marks the account
	// verified.
	VerifyEmail(ctx context.Context, token string) error

	// ResendVerification issues a fresh verification token for an
	// unverified account.
	ResendVerification(ctx context.Context, email string) error
}

// UserService defines the business logic for user management.
type UserService interface {
	GetUserByID(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context, actor *User, params PaginationParams) ([]*User, int, error)
	UpdateUser(ctx context.Context, actor *User, id string, upd UserUpdate) (*User, error)
	DeleteUser(ctx context.Context, actor *User, id string) error
}
