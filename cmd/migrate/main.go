package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/workify/backend/internal/infrastructure/config"
	"github.com/workify/backend/internal/infrastructure/logger"
	"github.com/workify/backend/internal/infrastructure/migration"
	"github.com/workify/backend/internal/infrastructure/persistence"
	"github.com/workify/backend/internal/infrastructure/seed"
	"github.com/workify/backend/migrations"
	"github.com/workify/backend/seeds"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultMigrationsDir = "migrations"

func main() {
	var (
		migrationsPath string
		seedPath       string
		logLevel       string
	)

	flag.StringVar(&migrationsPath, "path", "", "Read migrations from this directory instead of the embedded set")
	flag.StringVar(&seedPath, "seed-file", "", "Seed file (default: embedded seeds/default.yaml)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(config.LogConfig{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	var source fs.FS = migrations.FS
	if migrationsPath != "" {
		source = os.DirFS(migrationsPath)
	}

	log.Info("Migration CLI started",
		zap.String("command", command),
		zap.String("migrations_path", migrationsPath),
	)

	// create and list work on files only
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate create <name>")
		}
		dir := migrationsPath
		if dir == "" {
			dir = defaultMigrationsDir
		}
		mf, err := migration.CreateMigration(dir, args[1])
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created successfully",
			zap.Uint("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return

	case "list":
		list, err := migration.ListMigrations(source)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		if len(list) == 0 {
			log.Info("No migrations found")
			return
		}
		log.Info("Available migrations", zap.Int("count", len(list)))
		for _, m := range list {
			fmt.Println("  -", m.BaseName())
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormlogger.Discard)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	ctx := context.Background()

	switch command {
	case "seed":
		raw := seeds.Default
		if seedPath != "" {
			if raw, err = os.ReadFile(seedPath); err != nil {
				log.Fatal("Failed to read seed file", zap.Error(err))
			}
		}
		data, err := seed.Parse(raw)
		if err != nil {
			log.Fatal("Invalid seed file", zap.Error(err))
		}
		result, err := newSeeder(db, log).Apply(ctx, data)
		if err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
		log.Info("Seeding finished",
			zap.Int("roles", result.Roles),
			zap.Int("currencies", result.Currencies),
			zap.Int("document_types", result.DocumentTypes),
		)
		return

	case "superuser":
		if len(args) < 2 {
			log.Fatal("Username required. Usage: migrate superuser <username>")
		}
		password := os.Getenv("WORKIFY_SUPERUSER_PASSWORD")
		if password == "" {
			log.Fatal("WORKIFY_SUPERUSER_PASSWORD must be set")
		}
		created, err := newSeeder(db, log).EnsureSuperuser(ctx, args[1], password)
		if err != nil {
			log.Fatal("Failed to create superuser", zap.Error(err))
		}
		if !created {
			log.Warn("Superuser not created, the account already exists", zap.String("username", args[1]))
		}
		return
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get sql.DB", zap.Error(err))
	}
	m, err := migration.NewWithSource(sqlDB, source, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer func() {
		_ = m.Close()
	}()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Migration up failed", zap.Error(err))
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("Migration down failed", zap.Error(err))
		}

	case "step":
		if len(args) < 2 {
			log.Fatal("Step count required. Usage: migrate step <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid step count", zap.String("value", args[1]))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("Migration step failed", zap.Error(err))
		}

	case "goto":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate goto <version>")
		}
		version, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		if err := m.GoTo(uint(version)); err != nil {
			log.Fatal("Migration goto failed", zap.Error(err))
		}

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("Failed to get version", zap.Error(err))
		}
		if version == 0 {
			log.Info("No migrations applied")
		} else {
			log.Info("Current migration version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty),
			)
		}

	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		log.Warn("Forcing migration version - use with caution!")
		if err := m.Force(version); err != nil {
			log.Fatal("Force version failed", zap.Error(err))
		}

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

func newSeeder(db *persistence.Database, log *zap.Logger) *seed.Seeder {
	return seed.NewSeeder(
		persistence.NewGormRoleRepository(db.DB),
		persistence.NewGormUserRepository(db.DB),
		persistence.NewGormCurrencyRepository(db.DB),
		persistence.NewGormDocumentTypeRepository(db.DB),
		log,
	)
}

func printUsage() {
	fmt.Println(`Workify database tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  goto <version>        Migrate to a specific version
  version               Show current migration version
  force <version>       Force set migration version (use with caution)
  create <name>         Create a new migration file pair
  list                  List available migrations
  seed                  Create the default roles, currencies and document types
  superuser <username>  Create a local superuser (password from WORKIFY_SUPERUSER_PASSWORD)

Flags:
  -path string          Migrations directory (default: embedded migrations)
  -seed-file string     Seed file (default: embedded seeds/default.yaml)
  -log-level string     Log level: debug, info, warn, error (default: info)

Examples:
  migrate up
  migrate step -1
  migrate create add_invoice_notes
  WORKIFY_SUPERUSER_PASSWORD=... migrate superuser admin@example.com`)
}
