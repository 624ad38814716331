// Package migrations bundles the goose SQL migrations for the relational
// backends. Each dialect has its own directory because SQLite and PostgreSQL
// diverge on column types and on ALTER TABLE guards.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
