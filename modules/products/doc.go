// Package products implements the product catalog, the reference
// tenant-owned entity. Every read is filtered to the request's resolved
// tenant and every create is stamped with it; products are soft-deleted.
package products
