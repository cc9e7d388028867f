package migrations

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations holds every schema change, ordered by the numeric file prefix.
var Migrations = migrate.NewMigrations()
