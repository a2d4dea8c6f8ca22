// Package migrations carries the embedded SQL migration files for the
// postgres driver.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
