package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/skarbonka/internal/config"
	"github.com/MrJamesThe3rd/skarbonka/internal/database"
)

const usage = "usage: migrate up | down [steps] | version"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := run(cfg.ConnectionString(), os.Args[1:]); err != nil {
		slog.Error("migrate failed", "error", err)
		os.Exit(1)
	}
}

func run(connStr string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command; %s", usage)
	}

	switch args[0] {
	case "up":
		if err := database.Migrate(connStr); err != nil {
			return err
		}

		slog.Info("migrations applied")
	case "down":
		steps := 1

		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid steps %q; %s", args[1], usage)
			}

			steps = n
		}

		if err := database.Rollback(connStr, steps); err != nil {
			return err
		}

		slog.Info("migrations rolled back", "steps", steps)
	case "version":
		version, dirty, err := database.Version(connStr)
		if err != nil {
			return err
		}

		slog.Info("schema version", "version", version, "dirty", dirty)
	default:
		return fmt.Errorf("unknown command %q; %s", args[0], usage)
	}

	return nil
}
