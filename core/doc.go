// Package core holds the small HTTP conventions shared by all modules:
// the JSON response envelope, error rendering, and request body decoding.
package core
