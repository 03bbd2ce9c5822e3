package main

import (
	"avatar-chat/ai"
	"avatar-chat/auth"
	"avatar-chat/container"
	"avatar-chat/contract"
	"avatar-chat/domain/event"
	"avatar-chat/facade"
	"avatar-chat/infrastructure/storage"
	"avatar-chat/infrastructure/storage/memory"
	"avatar-chat/internal"
	"avatar-chat/runtime/workers"
	"avatar-chat/screens"
	"avatar-chat/services"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup runs before exiting.
func run() int {
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := container.New(log)
	closeStores, err := registerStores(c, log, config)
	if err != nil {
		log.Error("Unable to open storage", "error", err)
		return 1
	}
	defer closeStores()

	counter := event.NewCounterHandler()
	analytics := workers.NewEventFanout(log, config.EventBufferSize, event.NewLogHandler(log), counter)
	notifications := workers.NewNotificationScheduler(log, config.EventBufferSize)
	registerCapabilities(c, log, config, analytics, notifications)

	if err = c.Validate(); err != nil {
		log.Error("Invalid wiring", "error", err)
		return 1
	}
	manager := container.MustResolve[services.IChatManager](c)
	defer manager.Close()

	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(analytics, notifications, workers.NewTelemetryWorker(log, config.MetricInterval, counter))
	supervised := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supervised)
	}()
	defer func() {
		sup.Stop()
		<-supervised
	}()

	interactor, err := facade.NewCoreInteractor(c)
	if err != nil {
		log.Error("Unable to build interactor", "error", err)
		return 1
	}

	app := screens.NewApp(log, interactor, config.SessionRetryDelay, config.SessionMaxAttempts)
	identity, err := app.EstablishSession(ctx)
	if err != nil {
		log.Error("No session", "error", err)
		return 1
	}
	log.Info("Session established", "user_id", identity.ID, "anonymous", identity.IsAnonymous)

	if err = newConsole(log, interactor, os.Stdin, os.Stdout).Run(ctx); err != nil {
		log.Error("Console stopped", "error", err)
		return 1
	}
	log.Info("Program stopped cleanly")
	return 0
}

// registerStores binds the ChatStore and the RecentAvatarCache for the configured mode.
// Chat data and local data live in two Badger databases.
func registerStores(c *container.Container, log *slog.Logger, config internal.Config) (func(), error) {
	if config.StoreMode == internal.StoreMemory {
		container.Register[contract.ChatStore](c, memory.NewChatStore())
		container.Register[contract.RecentAvatarCache](c, memory.NewRecentAvatarCache(config.RecentAvatarLimit))
		return func() {}, nil
	}

	chatDB, err := badger.Open(badger.DefaultOptions(config.BadgerChatFilepath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, fmt.Errorf("opening chat database: %w", err)
	}
	localDB, err := badger.Open(badger.DefaultOptions(config.BadgerLocalFilepath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		_ = chatDB.Close()
		return nil, fmt.Errorf("opening local database: %w", err)
	}
	container.Register[contract.ChatStore](c, storage.NewChatRepository(chatDB, log, config.LimitMessages))
	container.Register[contract.RecentAvatarCache](c, storage.NewRecentAvatarRepository(localDB, log, config.RecentAvatarLimit))
	return func() {
		log.Info("Closing BadgerDB...")
		_ = chatDB.Close()
		_ = localDB.Close()
	}, nil
}

func registerCapabilities(
	c *container.Container,
	log *slog.Logger,
	config internal.Config,
	analytics *workers.EventFanout,
	notifications *workers.NotificationScheduler,
) {
	container.RegisterFactory(c, func(r container.Resolver) (services.IChatManager, error) {
		store, err := container.Resolve[contract.ChatStore](r)
		if err != nil {
			return nil, err
		}
		return services.NewChatManager(log, store), nil
	})
	container.Register[contract.AuthProvider](c, auth.NewLocalProvider(log, auth.NewSigner(config.AuthSecret, auth.Issuer, config.AuthTokenDuration)))
	container.Register[contract.AIGenerationProvider](c, ai.NewEchoProvider())
	container.Register[contract.AnalyticsSink](c, analytics)
	container.Register[contract.NotificationScheduler](c, notifications)
}
