// Package config loads typed configuration structs from environment
// variables.
//
// Configuration is declared as plain structs with `env` tags and loaded
// through the generic Load function. A .env file in the working directory
// is read once per process before the first parse, which keeps local
// development friction-free without affecting deployments where all
// values come from the real environment.
//
// # Usage
//
//	type TenantConfig struct {
//		DefaultTenantID string `env:"TENANT_DEFAULT_ID" envDefault:"default"`
//		HeaderName      string `env:"TENANT_HEADER" envDefault:"X-Tenant-ID"`
//	}
//
//	var cfg TenantConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
// Each struct type is parsed at most once per process; subsequent Load
// calls for the same type return the memoized value. Use MustLoad for
// configuration the process cannot start without.
package config
