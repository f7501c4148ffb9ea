package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials covers unknown email, wrong password, and
	// disabled accounts. One error for all three so responses do not leak
	// which part failed.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrUserNotFound is returned by repositories for missing users.
	ErrUserNotFound = errors.New("auth: user not found")

	// ErrEmailTaken is returned when registering an email that exists
	// within the tenant.
	ErrEmailTaken = errors.New("auth: email already taken")
)

// User is an account within a tenant. Email is unique per tenant, not
// globally: the same address may hold accounts in several tenants.
type User struct {
	ID           uuid.UUID
	TenantID     string
	Email        string
	PasswordHash []byte
	Disabled     bool
	CreatedAt    time.Time
}

func (u *User) OwnerTenantID() string      { return u.TenantID }
func (u *User) SetOwnerTenantID(id string) { u.TenantID = id }
