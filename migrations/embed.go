// Package migrations embeds the SQL schema applied by golang-migrate.
package migrations

import "embed"

// FS holds every *.up.sql and *.down.sql file of the schema.
//
//go:embed *.sql
var FS embed.FS
