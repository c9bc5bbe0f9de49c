package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/darthcode66/Snap-Self/migrations"
	"github.com/darthcode66/Snap-Self/pkg/config"
	"github.com/darthcode66/Snap-Self/pkg/database"
	"github.com/darthcode66/Snap-Self/pkg/logger"
)

func main() {
	timeout := flag.Duration("timeout", 2*time.Minute, "overall migration timeout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-timeout d] [up|up-by-one|up-to V|down|down-to V|redo|reset|status|version]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	command, args := "up", []string(nil)
	if flag.NArg() > 0 {
		command, args = flag.Arg(0), flag.Args()[1:]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	if err := database.Migrate(ctx, db, migrations.Files, logr, command, args...); err != nil {
		logr.Sugar().Fatalw("migration failed", "command", command, "error", err)
	}
	logr.Sugar().Infow("migration finished", "command", command)
}
