package tenants

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tenantward/tenantward/pkg/logger"
	"github.com/tenantward/tenantward/pkg/tenant"
)

// ErrInvalidSeed is returned when a seed file cannot be read or parsed,
// or when a seed entry carries an invalid tenant identifier.
var ErrInvalidSeed = errors.New("tenants: invalid seed")

// Seed is one tenant entry in a seed file.
type Seed struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Active *bool  `yaml:"active"`
}

type seedFile struct {
	Tenants []Seed `yaml:"tenants"`
}

// LoadSeedFile parses a YAML seed file of the form:
//
//	tenants:
//	  - id: acme
//	    name: Acme Corp
//	  - id: globex
//	    name: Globex
//	    active: false
//
// Identifiers are normalized; active defaults to true when omitted.
func LoadSeedFile(path string) ([]Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrInvalidSeed, path, err)
	}
	return parseSeeds(raw)
}

func parseSeeds(raw []byte) ([]Seed, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: parse: %w", ErrInvalidSeed, err)
	}

	out := make([]Seed, 0, len(f.Tenants))
	for _, s := range f.Tenants {
		id, err := tenant.NormalizeID(s.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %q: %w", ErrInvalidSeed, s.ID, err)
		}
		s.ID = id
		if s.Name == "" {
			s.Name = id
		}
		out = append(out, s)
	}
	return out, nil
}

func (s Seed) tenant() tenant.Tenant {
	active := true
	if s.Active != nil {
		active = *s.Active
	}
	return tenant.Tenant{ID: s.ID, Name: s.Name, Active: active}
}

// Apply upserts every seed entry. Already-present tenants are updated,
// so seeding is safe to run on every boot.
func Apply(ctx context.Context, repo Repository, seeds []Seed, log *slog.Logger) error {
	for _, s := range seeds {
		if err := repo.Upsert(ctx, s.tenant()); err != nil {
			return fmt.Errorf("tenants: seed %s: %w", s.ID, err)
		}
		log.InfoContext(ctx, "tenant seeded", logger.TenantID(s.ID))
	}
	return nil
}
