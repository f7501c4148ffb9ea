// Package tenants provides the tenant registry: the Postgres store the
// validator reads, a YAML seed loader for bootstrapping environments,
// and an admin router for managing tenants. Admin routes are mounted
// outside tenant enforcement; tenants themselves are not tenant-owned.
package tenants
