package products

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// EntityKind identifies products in the scope registry.
const EntityKind = "products"

var (
	// ErrProductNotFound is returned when a product does not exist,
	// belongs to another tenant, or is soft-deleted. The three cases are
	// deliberately indistinguishable to callers.
	ErrProductNotFound = errors.New("products: product not found")

	// ErrSKUExists is returned when a SKU is already taken within the
	// tenant.
	ErrSKUExists = errors.New("products: sku already exists")

	// ErrValidation is returned for invalid product fields.
	ErrValidation = errors.New("products: validation failed")
)

// Product is a catalog entry owned by exactly one tenant.
type Product struct {
	ID         uuid.UUID
	TenantID   string
	Name       string
	SKU        string
	PriceCents int64
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

func (p *Product) OwnerTenantID() string      { return p.TenantID }
func (p *Product) SetOwnerTenantID(id string) { p.TenantID = id }
func (p *Product) IsDeleted() bool            { return p.DeletedAt != nil }

func validate(name, sku string, priceCents int64) error {
	switch {
	case name == "":
		return errors.Join(ErrValidation, errors.New("name is required"))
	case sku == "":
		return errors.Join(ErrValidation, errors.New("sku is required"))
	case priceCents < 0:
		return errors.Join(ErrValidation, errors.New("price must not be negative"))
	}
	return nil
}
