package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantward/tenantward/pkg/config"
)

func TestLoad(t *testing.T) {
	t.Run("parses env vars with defaults", func(t *testing.T) {
		type cfg struct {
			Name string `env:"CONFIG_TEST_NAME" envDefault:"fallback"`
			Port int    `env:"CONFIG_TEST_PORT" envDefault:"8080"`
		}

		t.Setenv("CONFIG_TEST_NAME", "tenantward")

		var c cfg
		require.NoError(t, config.Load(&c))
		assert.Equal(t, "tenantward", c.Name)
		assert.Equal(t, 8080, c.Port)
	})

	t.Run("nil target", func(t *testing.T) {
		var c *struct {
			Name string `env:"UNUSED"`
		}
		err := config.Load(c)
		require.ErrorIs(t, err, config.ErrNilTarget)
	})

	t.Run("required value missing", func(t *testing.T) {
		type strictCfg struct {
			Secret string `env:"CONFIG_TEST_MISSING_SECRET,required"`
		}

		var c strictCfg
		err := config.Load(&c)
		require.ErrorIs(t, err, config.ErrParse)
	})

	t.Run("memoizes per type", func(t *testing.T) {
		type memoCfg struct {
			Value string `env:"CONFIG_TEST_MEMO" envDefault:"first"`
		}

		t.Setenv("CONFIG_TEST_MEMO", "first")
		var a memoCfg
		require.NoError(t, config.Load(&a))

		// Changing the environment must not change the memoized result.
		t.Setenv("CONFIG_TEST_MEMO", "second")
		var b memoCfg
		require.NoError(t, config.Load(&b))
		assert.Equal(t, a.Value, b.Value)
	})
}
