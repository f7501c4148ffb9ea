package tenant_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantward/tenantward/pkg/tenant"
)

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("empty context has no resolution", func(t *testing.T) {
		t.Parallel()

		_, ok := tenant.ResolutionFromContext(context.Background())
		assert.False(t, ok)

		_, ok = tenant.IDFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("fresh state has no resolution until resolve", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.NewContext(context.Background())
		_, ok := tenant.ResolutionFromContext(ctx)
		assert.False(t, ok)
	})

	t.Run("seeded context exposes id", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.Seed(context.Background(), "acme")
		id, ok := tenant.IDFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "acme", id)
	})

	t.Run("must panics without tenant", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			tenant.MustIDFromContext(context.Background())
		})
	})

	t.Run("logger extractor", func(t *testing.T) {
		t.Parallel()

		ex := tenant.LoggerExtractor()

		attr, ok := ex(tenant.Seed(context.Background(), "acme"))
		require.True(t, ok)
		assert.Equal(t, "tenant_id", attr.Key)
		assert.Equal(t, "acme", attr.Value.String())

		_, ok = ex(context.Background())
		assert.False(t, ok)
	})

	t.Run("concurrent resolution settles on one value", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewResolver()
		req := newRequest(t, "acme")

		const workers = 16
		results := make([]tenant.Resolution, workers)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = r.Resolve(req)
			}()
		}
		wg.Wait()

		for _, res := range results {
			assert.Equal(t, results[0], res)
		}
	})
}
