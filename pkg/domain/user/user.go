package user

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/google/uuid"
)

// MaxLoginLength is the longest login accepted.
const MaxLoginLength = 256

// User represents an account holder.
type User struct {
	ID        string    `json:"id"`
	Login     string    `json:"login"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
}

// NewUser creates a User with a fresh id and current timestamps.
func NewUser(login, email string) (*User, error) {
	login = strings.TrimSpace(login)
	if err := ValidateLogin(login); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.NewString(),
		Login:     login,
		Email:     strings.TrimSpace(email),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewUserFromData creates a User from raw data (used for DB hydration).
func NewUserFromData(id, login, email string, created, updated time.Time) *User {
	return &User{
		ID:        id,
		Login:     login,
		Email:     email,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}

// Rename applies a new login and email after validating them.
func (u *User) Rename(login, email string) error {
	login = strings.TrimSpace(login)
	if err := ValidateLogin(login); err != nil {
		return err
	}
	u.Login = login
	u.Email = strings.TrimSpace(email)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// ValidateLogin checks the login rules shared by create and update.
func ValidateLogin(login string) error {
	if login == "" {
		return domain.NewValidation("login is required")
	}
	if utf8.RuneCountInString(login) > MaxLoginLength {
		return domain.NewValidationf("login must be at most %d characters", MaxLoginLength)
	}
	return nil
}
