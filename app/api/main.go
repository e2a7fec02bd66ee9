package main

import (
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/goroutine"
	"github.com/x-xyz/marketcore/base/log"
	"github.com/x-xyz/marketcore/base/metrics"
	bValidator "github.com/x-xyz/marketcore/base/validator"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/keys"
	"github.com/x-xyz/marketcore/domain/notification"
	mmiddleware "github.com/x-xyz/marketcore/middleware"
	"github.com/x-xyz/marketcore/service/cache"
	"github.com/x-xyz/marketcore/service/notifier"
	asset_delivery "github.com/x-xyz/marketcore/stores/asset/delivery/http"
	asset_usecase "github.com/x-xyz/marketcore/stores/asset/usecase"
	auction_delivery "github.com/x-xyz/marketcore/stores/auction/delivery/http"
	auction_usecase "github.com/x-xyz/marketcore/stores/auction/usecase"
	auth_middleware "github.com/x-xyz/marketcore/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/marketcore/stores/auth/usecase"
	cart_delivery "github.com/x-xyz/marketcore/stores/cart/delivery/http"
	cart_usecase "github.com/x-xyz/marketcore/stores/cart/usecase"
	drop_delivery "github.com/x-xyz/marketcore/stores/drop/delivery/http"
	drop_usecase "github.com/x-xyz/marketcore/stores/drop/usecase"
	hc_delivery "github.com/x-xyz/marketcore/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/marketcore/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/marketcore/stores/healthcheck/usecase"
	listing_delivery "github.com/x-xyz/marketcore/stores/listing/delivery/http"
	listing_usecase "github.com/x-xyz/marketcore/stores/listing/usecase"
)

var configPath = pflag.String("config", "infra/configs/config.yaml", "path of the yaml config file")

func init() {
	pflag.Parse()

	// .env is optional, real environment variables win
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configPath)
	viper.SetEnvPrefix("market")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	log.SetLevel(viper.GetString("log.level"))
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
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	context := ctx.Background()
	clk := clock.New()

	store := mustInitStorage(context)
	redisSvc := initRedis(context)
	lock := newLocker(redisSvc)
	cacheProvider := newCacheProvider("marketcore", redisSvc)

	pingers := store.pingers
	if redisSvc != nil {
		pingers = append(pingers, hc_repo.NewRedisPinger(redisSvc))
	}

	dispatcher := notifier.New(notifier.Config{
		Sinks:       newSinks(context),
		Workers:     viper.GetInt("notifier.workers"),
		SendTimeout: viper.GetDuration("notifier.timeout"),
		Metrics:     metrics.New("notifier"),
	})
	defer dispatcher.Close()

	// construct usecase and delivery
	hc := hc_usecase.New(pingers...)
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), adminAddresses(context), clk)
	assetUC := asset_usecase.New(&asset_usecase.AssetUseCaseCfg{
		AssetRepo: store.asset,
		Clock:     clk,
	})
	listingUC := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		AssetRepo:   store.asset,
		ListingRepo: store.listing,
		BidRepo:     store.bid,
		Transactor:  store.transactor,
		Locker:      lock,
		Clock:       clk,
	})
	auctionUC := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		AssetRepo:   store.asset,
		ListingRepo: store.listing,
		BidRepo:     store.bid,
		ListingUC:   listingUC,
		Transactor:  store.transactor,
		Locker:      lock,
		Notifier:    dispatcher,
		Clock:       clk,
	})
	dropUC := drop_usecase.New(&drop_usecase.DropUseCaseCfg{
		DropRepo:   store.drop,
		AssetRepo:  store.asset,
		Transactor: store.transactor,
		FeaturedCache: cache.New(cache.ServiceConfig{
			Ttl:   viper.GetDuration("cache.featuredTtl"),
			Pfx:   keys.PfxFeaturedDrop,
			Cache: cacheProvider,
		}),
		Notifier: dispatcher,
		Clock:    clk,
	})
	cartUC := cart_usecase.New(&cart_usecase.CartUseCaseCfg{
		CartRepo:    store.cart,
		AssetRepo:   store.asset,
		ListingRepo: store.listing,
		ListingUC:   listingUC,
		Clock:       clk,
		Workers:     viper.GetInt("checkout.workers"),
	})

	authMiddleware := auth_middleware.New(auth)
	httpCache := mmiddleware.NewHttpCache(cacheProvider)

	hc_delivery.New(e, hc)
	asset_delivery.New(e, assetUC, authMiddleware)
	listing_delivery.New(e, listingUC, authMiddleware)
	auction_delivery.New(e, auctionUC, authMiddleware)
	drop_delivery.New(e, dropUC, authMiddleware, httpCache)
	cart_delivery.New(e, cartUC, authMiddleware)

	serverDone := goroutine.RecoverableGo(func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}, goroutine.WithLogger(context.Logger))

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case sig := <-quit:
		log.Log().WithField("signal", sig).Info("received signal")
	case <-serverDone:
		log.Log().Warn("server stopped")
	}
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}

func adminAddresses(context ctx.Ctx) []domain.Address {
	res := []domain.Address{}
	for _, a := range viper.GetStringSlice("admin.addresses") {
		if !bValidator.IsValidAddress(a) {
			context.WithField("address", a).Warn("skip invalid admin address")
			continue
		}
		res = append(res, domain.Address(a).ToLower())
	}
	return res
}

// newSinks posts to discord when a bot is configured, and always logs
func newSinks(context ctx.Ctx) []notification.Sink {
	sinks := []notification.Sink{notifier.NewLogSink()}

	botKey := viper.GetString("notifier.discord.botKey")
	if botKey == "" {
		return sinks
	}
	discord, err := notifier.NewDiscordSink(botKey, viper.GetString("notifier.discord.channelId"))
	if err != nil {
		context.WithField("err", err).Error("failed to NewDiscordSink")
		return sinks
	}
	return append(sinks, discord)
}
