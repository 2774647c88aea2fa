package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/itfy/evoting-admin/internal/console"
	"github.com/itfy/evoting-admin/internal/core/service"
	"github.com/itfy/evoting-admin/internal/infrastructure/config"
	mongodb "github.com/itfy/evoting-admin/internal/infrastructure/db/mongo"
	redisdb "github.com/itfy/evoting-admin/internal/infrastructure/db/redis"
	"github.com/itfy/evoting-admin/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "evoting-admin",
		Short:        "Administrative console for the e-voting platform",
		Long:         "evoting-admin manages users, roles, events, categories, candidates, nominations and votes. It reads one command per line, interactively or from piped input.",
		SilenceUsage: true,
		RunE:         run,
	}
	root.AddCommand(newVersionCmd())
	return root
}

func run(cmd *cobra.Command, _ []string) error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	interactive := stdinIsTerminal()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development" && interactive,
		Output: os.Stderr,
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	cache, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("could not ensure user indexes")
	}
	roles := mongodb.NewRoleRepository(db)
	store := mongodb.NewStore(db)
	reservations := redisdb.NewReservations(cache)

	codes := service.NewCodeGenerator(reservations, cfg.CodeTTL, log)
	auth := service.NewAuthService(users, roles, cfg.AdminKey, log)
	entities := service.NewEntityService(store, codes, log)
	admin := service.NewRoleAdminService(users, roles, log)

	c := console.New(auth, entities, admin, log, console.Options{
		Input:       os.Stdin,
		Output:      os.Stdout,
		Interactive: interactive,
	})
	return c.Run(ctx)
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
