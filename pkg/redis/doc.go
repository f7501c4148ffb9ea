// Package redis connects to the Redis instance that backs the shared
// tenant cache.
package redis
