package products

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// CreateProductCommand creates a product in the current tenant's
// catalog. TenantID is intentionally absent: ownership is stamped from
// the request context at the persistence boundary.
type CreateProductCommand struct {
	Name       string
	SKU        string
	PriceCents int64
}

// UpdateProductCommand replaces a product's mutable fields.
type UpdateProductCommand struct {
	ID         uuid.UUID
	Name       string
	SKU        string
	PriceCents int64
	Active     bool
}

// DeleteProductCommand soft-deletes a product.
type DeleteProductCommand struct {
	ID uuid.UUID
}

// Commands mutates the product catalog.
type Commands struct {
	repo Repository
	log  *slog.Logger
}

// NewCommands creates the product command handler.
func NewCommands(repo Repository, log *slog.Logger) *Commands {
	return &Commands{repo: repo, log: log}
}

func (c *Commands) CreateProduct(ctx context.Context, cmd CreateProductCommand) (*Product, error) {
	if err := validate(cmd.Name, cmd.SKU, cmd.PriceCents); err != nil {
		return nil, err
	}

	p := &Product{
		ID:         uuid.New(),
		Name:       cmd.Name,
		SKU:        cmd.SKU,
		PriceCents: cmd.PriceCents,
		Active:     true,
	}
	if err := c.repo.Insert(ctx, p); err != nil {
		return nil, err
	}

	c.log.InfoContext(ctx, "product created",
		slog.String("product_id", p.ID.String()),
		slog.String("sku", p.SKU))
	return p, nil
}

func (c *Commands) UpdateProduct(ctx context.Context, cmd UpdateProductCommand) (*Product, error) {
	if err := validate(cmd.Name, cmd.SKU, cmd.PriceCents); err != nil {
		return nil, err
	}

	p, err := c.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	p.Name = cmd.Name
	p.SKU = cmd.SKU
	p.PriceCents = cmd.PriceCents
	p.Active = cmd.Active
	if err := c.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	c.log.InfoContext(ctx, "product updated", slog.String("product_id", p.ID.String()))
	return p, nil
}

func (c *Commands) DeleteProduct(ctx context.Context, cmd DeleteProductCommand) error {
	if err := c.repo.SoftDelete(ctx, cmd.ID); err != nil {
		return err
	}

	c.log.InfoContext(ctx, "product deleted", slog.String("product_id", cmd.ID.String()))
	return nil
}
