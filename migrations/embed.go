// Package migrations embeds SQL migration files into the binary,
// so schema upgrades run without the SQL files being present on disk.
package migrations

import (
	"embed"

	"github.com/lumesync/lumesync/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
