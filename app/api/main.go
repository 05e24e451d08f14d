package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/base/database/mongoclient"
	"github.com/heritage-x/goapi/base/log"
	"github.com/heritage-x/goapi/base/sequencer"
	bValidator "github.com/heritage-x/goapi/base/validator"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/event"
	mmiddleware "github.com/heritage-x/goapi/middleware"
	"github.com/heritage-x/goapi/service/query"
	artifact_delivery "github.com/heritage-x/goapi/stores/artifact/delivery/http"
	artifact_repository "github.com/heritage-x/goapi/stores/artifact/repository"
	artifact_usecase "github.com/heritage-x/goapi/stores/artifact/usecase"
	collection_delivery "github.com/heritage-x/goapi/stores/collection/delivery/http"
	collection_repository "github.com/heritage-x/goapi/stores/collection/repository"
	collection_usecase "github.com/heritage-x/goapi/stores/collection/usecase"
	event_delivery "github.com/heritage-x/goapi/stores/event/delivery/http"
	event_repository "github.com/heritage-x/goapi/stores/event/repository"
	funds_delivery "github.com/heritage-x/goapi/stores/funds/delivery/http"
	funds_repository "github.com/heritage-x/goapi/stores/funds/repository"
	funds_usecase "github.com/heritage-x/goapi/stores/funds/usecase"
	hc_delivery "github.com/heritage-x/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/heritage-x/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/heritage-x/goapi/stores/healthcheck/usecase"
	marketplace_delivery "github.com/heritage-x/goapi/stores/marketplace/delivery/http"
	marketplace_repository "github.com/heritage-x/goapi/stores/marketplace/repository"
	marketplace_usecase "github.com/heritage-x/goapi/stores/marketplace/usecase"
	platform_delivery "github.com/heritage-x/goapi/stores/platform/delivery/http"
	platform_repository "github.com/heritage-x/goapi/stores/platform/repository"
	platform_usecase "github.com/heritage-x/goapi/stores/platform/usecase"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path to the config file")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	mmiddleware.SetupCache(viper.GetInt("cache.sizeMb"))

	// the journal runs in memory unless a mongo uri is configured
	var mongoClient *mongoclient.Client
	var eventRepo event.Repo
	if uri := viper.GetString("mongo.uri"); uri != "" {
		context.Info("init mongo")
		dbName := viper.GetString("mongo.dbName")
		mongoClient = mongoclient.MustConnectMongoClient(uri, dbName, true)
		eventRepo = event_repository.NewMongoRepo(query.New(mongoClient))
	} else {
		eventRepo = event_repository.NewMemoryRepo()
	}

	// the single mutation stream shared by every state-changing operation
	seq := sequencer.New()

	platformOwner := domain.Address(viper.GetString("platform.owner")).ToLower()
	platformFeeRecipient := domain.Address(viper.GetString("platform.feeRecipient")).ToLower()
	platformFeeNumerator := viper.GetInt64("platform.feeNumerator")
	creationFee, err := domain.ParseAmount(viper.GetString("platform.creationFee"))
	if err != nil {
		context.WithField("err", err).Panic("invalid platform.creationFee")
	}

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient)
	platformRepo := platform_repository.New(platformOwner, platformFeeRecipient, platformFeeNumerator, creationFee)
	fundsRepo := funds_repository.New()
	collectionRepo := collection_repository.NewCollection()
	artifactRepo := artifact_repository.NewArtifact()
	operatorRepo := artifact_repository.NewOperator()
	verifiedCreatorRepo := artifact_repository.NewVerifiedCreator()
	listingRepo := marketplace_repository.NewListingRepo()
	offerRepo := marketplace_repository.NewOfferRepo()

	hc := hc_usecase.New(hcRepo)
	platform := platform_usecase.New(platformRepo)
	funds := funds_usecase.New(fundsRepo, seq)
	factory := collection_usecase.New(&collection_usecase.FactoryUseCaseCfg{
		CollectionRepo: collectionRepo,
		FundsRepo:      fundsRepo,
		PlatformUC:     platform,
		EventRepo:      eventRepo,
		Sequencer:      seq,
	})
	artifact := artifact_usecase.New(&artifact_usecase.ArtifactUseCaseCfg{
		ArtifactRepo:        artifactRepo,
		OperatorRepo:        operatorRepo,
		VerifiedCreatorRepo: verifiedCreatorRepo,
		CollectionRepo:      collectionRepo,
		EventRepo:           eventRepo,
		Sequencer:           seq,
	})
	marketplace := marketplace_usecase.New(&marketplace_usecase.MarketplaceUseCaseCfg{
		ListingRepo:   listingRepo,
		OfferRepo:     offerRepo,
		FundsRepo:     fundsRepo,
		PlatformUC:    platform,
		TokenLedger:   artifact,
		RoyaltySource: artifact,
		EventRepo:     eventRepo,
		Sequencer:     seq,
		OfferWindow:   viper.GetDuration("marketplace.offerWindow"),
	})

	hc_delivery.New(e, hc)
	platform_delivery.New(e, platform)
	funds_delivery.New(e, funds)
	collection_delivery.New(e, factory)
	artifact_delivery.New(e, artifact)
	marketplace_delivery.New(e, marketplace)
	event_delivery.New(e, eventRepo)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	sctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
