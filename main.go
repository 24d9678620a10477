package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/cache"
	redditclient "github.com/acidderek/acid-concepts-automation-sub002/infrastructure/clients/reddit"
	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/configuration"
	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/logger"
	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/persistence"
	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/pubsub"
	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/servicebus"
	httpHandler "github.com/acidderek/acid-concepts-automation-sub002/interfaces/http"
	"github.com/acidderek/acid-concepts-automation-sub002/server"
	"github.com/acidderek/acid-concepts-automation-sub002/usecase"

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
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	psqlDb, err := persistence.NewPostgreSQLDB()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot connect to PostgreSQL")
		os.Exit(1)
	}
	if err := psqlDb.Ping(); err != nil {
		logger.GetLogger().WithField("error", err).Error("PostgreSQL ping failed")
		os.Exit(1)
	}
	logger.GetLogger().Info("Database connected.")

	if err := persistence.EnsureMonitoringSchema(psqlDb); err != nil {
		logger.GetLogger().WithField("error", err).Error("failed ensuring monitoring schema")
		os.Exit(1)
	}
	if err := persistence.EnsureCredentialSchema(psqlDb); err != nil {
		logger.GetLogger().WithField("error", err).Error("failed ensuring credential schema columns")
	}

	mongoDb, err := persistence.NewMongoDb(
		configuration.C.Database.Mongo.Host,
		configuration.C.Database.Mongo.Port,
		configuration.C.Database.Mongo.User,
		configuration.C.Database.Mongo.Password,
		configuration.C.Database.Mongo.Name,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("MongoDB not available - continuing without run history")
		mongoDb = nil
	} else {
		pingCtx, cancelPing := context.WithTimeout(ctx, 3*time.Second)
		if err := mongoDb.Ping(pingCtx, nil); err != nil {
			logger.GetLogger().WithField("error", err).Warn("MongoDB ping failed - continuing without run history")
			mongoDb = nil
		} else {
			logger.GetLogger().Info("MongoDB connected successfully")
		}
		cancelPing()
	}

	pubSubClient, err := pubsub.NewPubSub(ctx, configuration.C.Pubsub.ProjectID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Pub/Sub not available - continuing without run events")
		pubSubClient = nil
	}

	azServiceBusClient, err := servicebus.NewServiceBus(ctx, configuration.C.ServiceBus.Namespace)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Azure Service Bus not available - continuing without run notifications")
		azServiceBusClient = nil
	}

	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - continuing without status cache")
		redisClient = nil
	}
	statusCache := cache.NewStatusCache(redisClient)

	redditCfg := redditclient.Config{
		AuthURL:    configuration.C.Reddit.AuthURL,
		TokenURL:   configuration.C.Reddit.TokenURL,
		APIBaseURL: configuration.C.Reddit.APIBaseURL,
		UserAgent:  configuration.C.Reddit.UserAgent,
		Scopes:     configuration.C.Reddit.Scopes,
		Timeout:    time.Duration(configuration.C.Discovery.HTTPTimeoutSeconds) * time.Second,
	}
	redditClient := redditclient.NewRedditClient(redditCfg)

	credRepo := persistence.NewCredentialRepository(psqlDb)
	stateRepo := persistence.NewOAuthStateRepository(psqlDb)
	campaignRepo := persistence.NewCampaignRepository(psqlDb)
	itemRepo := persistence.NewDiscoveredItemRepository(psqlDb)
	runLogRepo := persistence.NewRunLogRepository(mongoDb, configuration.C.Database.Mongo.Name)
	userRepository := persistence.NewUserRepository(psqlDb)

	keyValidator := usecase.NewKeyValidator(redditClient)
	authUsecase := usecase.NewAuthUsecase(
		credRepo,
		stateRepo,
		redditClient,
		keyValidator,
		statusCache,
		configuration.C.Reddit.RedirectURI,
		time.Duration(configuration.C.Discovery.StateTTLMinutes)*time.Minute,
	)
	campaignUsecase := usecase.NewCampaignUsecase(campaignRepo, configuration.C.Discovery.DefaultBudget)
	discoveryUsecase := usecase.NewDiscoveryUsecase(credRepo, campaignRepo, itemRepo, runLogRepo, redditClient)
	if pubSubClient != nil {
		topic := configuration.C.Pubsub.Topic
		if topic == "" {
			topic = "discovery-runs"
		}
		discoveryUsecase = discoveryUsecase.WithRunEvents(pubsub.NewRunEvents(pubSubClient), topic)
	}
	if azServiceBusClient != nil {
		queue := configuration.C.ServiceBus.Queue
		if queue == "" {
			queue = "discovery-runs"
		}
		discoveryUsecase = discoveryUsecase.WithRunNotifier(servicebus.NewRunNotifier(azServiceBusClient), queue)
	}
	userUsecase := usecase.NewUserUsecase(userRepository)

	userHandler := httpHandler.NewUserHandler(userUsecase)
	oauthHandler := httpHandler.NewOAuthHandler(authUsecase, keyValidator)
	campaignHandler := httpHandler.NewCampaignHandler(campaignUsecase)
	discoveryHandler := httpHandler.NewDiscoveryHandler(discoveryUsecase)

	router := server.InitiateRouter(userHandler, oauthHandler, campaignHandler, discoveryHandler, userRepository)

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
