// Package modio provides a minimal authenticated client for the mod.io
// v1 REST API.
//
// mod.io issues OAuth2 access tokens bound to a per-user API subdomain
// (https://u-<id>.modapi.io/v1), so the client is constructed from the
// numeric user ID together with the bearer token. Only the read endpoints
// needed for reconciliation are implemented: token verification, mod
// lookup by ID, and mod lookup by name_id slug.
package modio
