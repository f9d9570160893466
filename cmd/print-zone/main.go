package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jroosing/hydrazone/internal/config"
	"github.com/jroosing/hydrazone/internal/database"
	"github.com/jroosing/hydrazone/internal/server"
	"github.com/jroosing/hydrazone/internal/zone"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML configuration file (or set HYDRAZONE_CONFIG)")
		dbPath     = flag.String("db", "", "Override SQLite database path")
		flatten    = flag.Bool("flatten", false, "Replace the apex CNAME with the addresses it resolves to")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: print-zone [-db path] [-flatten] zone-name\n")
		os.Exit(2)
	}

	cfg, err := config.Load(config.ResolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	if err := run(context.Background(), cfg, flag.Arg(0), *flatten, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "print-zone: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, name string, flatten bool, w io.Writer) error {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	z, err := db.GetZone(ctx, name)
	if err != nil {
		return fmt.Errorf("zone %s: %w", name, err)
	}
	records, err := db.ZoneRecords(ctx, z.ID)
	if err != nil {
		return err
	}
	if flatten {
		// The CLI never writes the shared durable tier.
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		cfg.Flattening.Enabled = true
		records = server.NewFlattener(cfg, db, nil, logger).FlattenZone(ctx, z.Name, records)
	}

	fmt.Fprintf(w, "; zone %s kind %s serial %d\n", z.Name, z.Kind, z.Serial)
	return zone.WriteText(w, z, records)
}
