package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"social-hub/domain/repository"
	"social-hub/infrastructure/cache"
	threadsclient "social-hub/infrastructure/clients/threads"
	youtubeclient "social-hub/infrastructure/clients/youtube"
	"social-hub/infrastructure/configuration"
	"social-hub/infrastructure/crypto"
	"social-hub/infrastructure/logger"
	"social-hub/infrastructure/persistence"
	"social-hub/infrastructure/pubsub"
	"social-hub/infrastructure/servicebus"
	httpHandler "social-hub/interfaces/http"
	"social-hub/server"
	"social-hub/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")
	configuration.Reload()

	app := configuration.C.App

	// Tokens are never stored in cleartext: refuse to start without a key.
	codec, err := crypto.NewTokenCodec(app.EncryptionKey)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("ENCRYPTION_KEY missing or malformed; refusing to start")
		os.Exit(1)
	}

	db, vendor, err := InitiateDatabase()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Database initialization failed")
		os.Exit(1)
	}
	if vendor == "psql" {
		if err := persistence.EnsureSchema(db); err != nil {
			logger.GetLogger().WithField("error", err).Error("Failed ensuring schema")
			os.Exit(1)
		}
	} else {
		logger.GetLogger().Info("MSSQL vendor selected; assuming schema is provisioned")
	}

	mongoDb, err := persistence.NewMongoDb(
		configuration.C.Database.Mongo.Host,
		configuration.C.Database.Mongo.Port,
		configuration.C.Database.Mongo.User,
		configuration.C.Database.Mongo.Password,
		configuration.C.Database.Mongo.Name,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("MongoDB not available - raw fetch archiving disabled")
		mongoDb = nil
	} else if err := mongoDb.Ping(ctx, nil); err != nil {
		logger.GetLogger().WithField("error", err).Warn("MongoDB ping failed - raw fetch archiving disabled")
		mongoDb = nil
	}

	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - overview caching disabled")
		redisClient = nil
	}

	pubSubClient, err := pubsub.NewPubSub(ctx, configuration.C.Pubsub.ProjectID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Pub/Sub not available - continuing without event publishing")
		pubSubClient = nil
	}
	azServiceBusClient, err := servicebus.NewServiceBus(ctx, configuration.C.ServiceBus.Namespace)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Azure Service Bus not available - continuing without Service Bus features")
		azServiceBusClient = nil
	}

	var (
		userRepository       repository.IUser
		postRepository       repository.IPost
		credentialRepository repository.ICredential
		analyticsRepository  repository.IAnalytics
	)
	if vendor == "mssql" {
		userRepository = persistence.NewUserRepositoryMSSQL(db)
		postRepository = persistence.NewPostRepositoryMSSQL(db)
		credentialRepository = persistence.NewCredentialRepositoryMSSQL(db)
		analyticsRepository = persistence.NewAnalyticsRepositoryMSSQL(db)
	} else {
		userRepository = persistence.NewUserRepository(db)
		postRepository = persistence.NewPostRepository(db)
		credentialRepository = persistence.NewCredentialRepository(db)
		analyticsRepository = persistence.NewAnalyticsRepository(db)
	}

	rawFetchRepository := persistence.NewRawFetchRepository(mongoDb)
	overviewCache := cache.NewOverviewCache(redisClient)

	fetchers := map[string]repository.IContentFetcher{
		"threads": threadsclient.NewThreadsClient(configuration.C.Threads.Host),
	}
	ytConfig := &youtubeclient.Config{
		ClientID:     configuration.C.YouTube.ClientID,
		ClientSecret: configuration.C.YouTube.ClientSecret,
		AccessToken:  configuration.C.YouTube.AccessToken,
		RefreshToken: configuration.C.YouTube.RefreshToken,
		ChannelID:    configuration.C.YouTube.ChannelID,
		APIKey:       configuration.C.YouTube.APIKey,
	}
	if configuration.C.YouTube.Mode == "mock" {
		ytConfig = nil
	}
	youtubeClient, err := youtubeclient.NewYouTubeClient(ctx, ytConfig)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("YouTube client initialization failed - falling back to mock mode")
		youtubeClient, _ = youtubeclient.NewYouTubeClient(ctx, nil)
	}
	logger.GetLogger().WithField("mock", youtubeClient.Mock()).Info("YouTube fetcher initialized")
	fetchers["youtube"] = youtubeClient

	publishers := []usecase.ISyncEventPublisher{}
	if pubSubClient != nil {
		publishers = append(publishers, pubsub.NewSyncEventPublisher(pubSubClient, configuration.C.Pubsub.Topic))
	}
	if azServiceBusClient != nil {
		publishers = append(publishers, servicebus.NewSyncEventPublisher(azServiceBusClient, configuration.C.ServiceBus.Queue))
	}

	userUsecase := usecase.NewUserUsecase(userRepository)
	postUsecase := usecase.NewPostUsecase(postRepository)
	syncUsecase := usecase.NewSyncUsecase(
		credentialRepository, codec, postRepository, fetchers,
		rawFetchRepository, overviewCache, publishers...,
	)
	platformUsecase := usecase.NewPlatformUsecase(credentialRepository, codec, fetchers)
	analyticsUsecase := usecase.NewAnalyticsUsecase(analyticsRepository, credentialRepository, overviewCache)

	userHandler := httpHandler.NewUserHandler(userUsecase)
	postHandler := httpHandler.NewPostHandler(postUsecase, syncUsecase)
	platformHandler := httpHandler.NewPlatformHandler(platformUsecase)
	analyticsHandler := httpHandler.NewAnalyticsHandler(analyticsUsecase)

	router := server.InitiateRouter(userHandler, postHandler, platformHandler, analyticsHandler, userRepository)

	port := app.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// InitiateDatabase picks the SQL vendor: MSSQL in production or when
// DB_VENDOR=mssql, PostgreSQL otherwise.
func InitiateDatabase() (*sql.DB, string, error) {
	env := os.Getenv("ENV")
	if v := os.Getenv("DB_VENDOR"); v == "mssql" || env == "production" || env == "prod" {
		db, err := persistence.NewMSSQLDB()
		if err != nil {
			return nil, "", err
		}
		return db, "mssql", nil
	}
	db, err := persistence.NewPostgreSQLDB()
	if err != nil {
		return nil, "", err
	}
	return db, "psql", nil
}
