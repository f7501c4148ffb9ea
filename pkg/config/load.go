package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once

	memoMu sync.RWMutex
	memo   = make(map[string]any)
)

// Load parses environment variables into v based on `env` struct tags.
//
// The first call in a process attempts to load a .env file from the
// working directory; a missing file is not an error. Each distinct struct
// type is parsed exactly once, later calls return the memoized value so
// every part of the application observes identical configuration.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilTarget
	}

	dotenvOnce.Do(func() {
		// The .env file is a development convenience only.
		_ = godotenv.Load()
	})

	key := typeKey[T]()

	memoMu.RLock()
	cached, ok := memo[key]
	memoMu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	memoMu.Lock()
	defer memoMu.Unlock()

	// Re-check under the write lock; another goroutine may have parsed
	// the same type while we were waiting.
	if cached, ok := memo[key]; ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParse, err)
	}
	memo[key] = *v

	return nil
}

// MustLoad is Load for configuration the process cannot run without.
// It panics on failure so misconfiguration surfaces at startup.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

func typeKey[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
