package user

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound      = errors.New("user: not found")
	ErrIDRequired    = errors.New("user: id required")
	ErrEmailRequired = errors.New("user: email required")
	ErrNameRequired  = errors.New("user: name required")
)

type ID string

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// User is a back-office account. Guests never log in; bookings carry
// their contact details as plain fields.
type User struct {
	ID           ID
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Blocked      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateParams struct {
	ID           ID
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

func New(params CreateParams) (*User, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	role := params.Role
	if role == "" {
		role = RoleStaff
	}
	now := params.CreatedAt.UTC()
	return &User{
		ID:           params.ID,
		Email:        email,
		Name:         name,
		PasswordHash: params.PasswordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, u *User) error
}
