package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	catalogapp "github.com/foodhub/backend/internal/application/catalog"
	"github.com/foodhub/backend/internal/infrastructure/config"
	"github.com/foodhub/backend/internal/infrastructure/logger"
	"github.com/foodhub/backend/internal/infrastructure/migration"
	"github.com/foodhub/backend/internal/infrastructure/persistence"
	"github.com/foodhub/backend/migrations"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)

	flag.StringVar(&migrationsPath, "path", "", "Read migrations from this directory instead of the embedded set")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

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
		mf, err := migration.CreateMigration(dirOrDefault(migrationsPath, log), args[1])
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
		files, err := migration.ListMigrations(dirOrDefault(migrationsPath, log))
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		if len(files) == 0 {
			log.Info("No migrations found")
			return
		}
		log.Info("Available migrations", zap.Int("count", len(files)))
		for _, f := range files {
			fmt.Printf("  - %06d %s\n", f.Version, f.Name)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if command == "assign-owner" {
		if len(args) < 3 {
			log.Fatal("Usage: migrate assign-owner <restaurantId> <email>")
		}
		assignOwner(cfg, log, args[1], args[2])
		return
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	var m *migration.Migrator
	if migrationsPath != "" {
		m, err = migration.New(db, dirOrDefault(migrationsPath, log), log)
	} else {
		m, err = migration.NewEmbedded(db, migrations.FS, log)
	}
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

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
		if err := m.Force(version); err != nil {
			log.Fatal("Force version failed", zap.Error(err))
		}

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// assignOwner hands a seeded restaurant to a registered merchant
func assignOwner(cfg *config.Config, log *zap.Logger, restaurantID, email string) {
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database,
		logger.NewGormLogger(log, gormlogger.Warn))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	service := catalogapp.NewRestaurantService(
		persistence.NewGormRestaurantRepository(db.DB),
		persistence.NewGormMenuItemRepository(db.DB),
		persistence.NewGormUserRepository(db.DB),
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	restaurant, err := service.AssignOwner(ctx, restaurantID, email)
	if err != nil {
		log.Fatal("Failed to assign restaurant owner",
			zap.String("restaurant_id", restaurantID),
			zap.String("email", email),
			zap.Error(err),
		)
	}
	log.Info("Restaurant owner assigned",
		zap.String("restaurant_id", restaurant.ID),
		zap.String("restaurant", restaurant.Name),
		zap.String("email", email),
	)
}

// dirOrDefault resolves the migrations directory to an absolute path
func dirOrDefault(path string, log *zap.Logger) string {
	if path == "" {
		path = defaultMigrationsPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		log.Fatal("Failed to get absolute path", zap.Error(err))
	}
	return abs
}

func printUsage() {
	fmt.Println(`FoodHub Database Migration Tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                             Apply all pending migrations
  down                           Roll back all migrations
  step <n>                       Apply n migrations (positive=up, negative=down)
  goto <version>                 Migrate to a specific version
  version                        Show current migration version
  force <version>                Force set migration version (use with caution)
  create <name>                  Create a new migration file pair
  list                           List available migrations
  assign-owner <restaurantId> <email>
                                 Hand a restaurant to a registered merchant

Flags:
  -path string          Read migrations from a directory (default: embedded)
  -log-level string     Log level: debug, info, warn, error (default: info)

Environment Variables:
  FOODHUB_DATABASE_HOST, FOODHUB_DATABASE_PORT, FOODHUB_DATABASE_USER,
  FOODHUB_DATABASE_PASSWORD, FOODHUB_DATABASE_DBNAME, FOODHUB_DATABASE_SSLMODE

Examples:
  # Apply all pending migrations, including the fresh-fusion seed
  migrate up

  # Give the seeded restaurant to a merchant account
  migrate assign-owner fresh-fusion chef@example.com

  # Roll back the last migration
  migrate step -1`)
}
