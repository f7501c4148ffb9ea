package tenants_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantward/tenantward/modules/tenants"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tenants.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSeedFile(t *testing.T) {
	t.Parallel()

	t.Run("parses and normalizes entries", func(t *testing.T) {
		t.Parallel()

		path := writeSeedFile(t, `
tenants:
  - id: "  ACME  "
    name: Acme Corp
  - id: globex
    active: false
`)
		seeds, err := tenants.LoadSeedFile(path)
		require.NoError(t, err)
		require.Len(t, seeds, 2)

		assert.Equal(t, "acme", seeds[0].ID)
		assert.Equal(t, "Acme Corp", seeds[0].Name)
		assert.Nil(t, seeds[0].Active)

		assert.Equal(t, "globex", seeds[1].ID)
		assert.Equal(t, "globex", seeds[1].Name, "name defaults to the id")
		require.NotNil(t, seeds[1].Active)
		assert.False(t, *seeds[1].Active)
	})

	t.Run("rejects invalid identifier", func(t *testing.T) {
		t.Parallel()

		path := writeSeedFile(t, "tenants:\n  - id: \"not valid!\"\n")
		_, err := tenants.LoadSeedFile(path)
		require.ErrorIs(t, err, tenants.ErrInvalidSeed)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := writeSeedFile(t, "tenants: [")
		_, err := tenants.LoadSeedFile(path)
		require.ErrorIs(t, err, tenants.ErrInvalidSeed)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := tenants.LoadSeedFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, tenants.ErrInvalidSeed)
	})
}

func TestApply(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := tenants.NewMemoryRepository()

	path := writeSeedFile(t, `
tenants:
  - id: acme
    name: Acme Corp
  - id: globex
    active: false
`)
	seeds, err := tenants.LoadSeedFile(path)
	require.NoError(t, err)
	require.NoError(t, tenants.Apply(ctx, repo, seeds, log))

	acme, err := repo.GetByID(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, acme.Active)

	globex, err := repo.GetByID(ctx, "globex")
	require.NoError(t, err)
	assert.False(t, globex.Active)

	// Re-applying updates in place instead of failing.
	require.NoError(t, tenants.Apply(ctx, repo, seeds, log))
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
