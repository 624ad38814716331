// Command migrate imports user records from a legacy JSON file store into a
// relational backend. It runs the destination's schema migrations first, then
// upserts every source record keyed by username, preserving password hashes
// and creation timestamps. Safe to re-run.
//
// Usage:
//
//	migrate -from users.json -b sqlite -d users.db
//	migrate -from users.json -b postgres -d postgres://...
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/guluwater/officetools-server/internal/flagx"
	"github.com/guluwater/officetools-server/internal/logging"
	"github.com/guluwater/officetools-server/internal/server/config"
	"github.com/guluwater/officetools-server/internal/server/importer"
	"github.com/guluwater/officetools-server/internal/server/shared/db"
)

func parseSourceFlag() string {
	args := flagx.FilterArgs(os.Args[1:], []string{"-from"})

	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	source := fs.String("from", "users.json", "path of the legacy JSON user file")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("%v", err)
	}
	return *source
}

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	source := parseSourceFlag()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	manager, err := db.NewRepositoryManager(cfg)
	if err != nil {
		log.Fatalf("storage init error: %v", err)
	}
	defer manager.Close()

	if err := manager.RunMigrations(ctx); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	conn := manager.Conn()
	if conn == nil {
		log.Fatalf("import destination must be a relational backend, got %q", cfg.StorageBackend)
	}

	var imp *importer.Importer
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		imp = importer.NewSQLiteImporter(conn, logger)
	case config.BackendPostgres:
		imp = importer.NewPostgresImporter(conn, logger)
	}

	count, err := imp.Run(ctx, source)
	if err != nil {
		log.Fatalf("import error: %v", err)
	}

	logger.Info(ctx, "import complete", "records", count)
}
