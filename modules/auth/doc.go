// Package auth issues access tokens. Login exchanges email and password
// for a token whose tenant claim drives tenant resolution on subsequent
// requests. Auth routes are mounted on a path excluded from tenant
// enforcement: a login request has no tenant yet.
package auth
