package main

import (
	"github.com/spf13/viper"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/database/mongoclient"
	"github.com/x-xyz/marketcore/base/database/redisclient"
	"github.com/x-xyz/marketcore/base/log"
	"github.com/x-xyz/marketcore/base/metrics"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/asset"
	"github.com/x-xyz/marketcore/domain/auction"
	"github.com/x-xyz/marketcore/domain/cart"
	"github.com/x-xyz/marketcore/domain/drop"
	hcdomain "github.com/x-xyz/marketcore/domain/healthcheck"
	"github.com/x-xyz/marketcore/domain/listing"
	"github.com/x-xyz/marketcore/service/cache/provider"
	"github.com/x-xyz/marketcore/service/cache/provider/compound"
	"github.com/x-xyz/marketcore/service/cache/provider/primitive"
	redisProvider "github.com/x-xyz/marketcore/service/cache/provider/redis"
	"github.com/x-xyz/marketcore/service/locker"
	"github.com/x-xyz/marketcore/service/memstore"
	"github.com/x-xyz/marketcore/service/query"
	"github.com/x-xyz/marketcore/service/redis"
	asset_repository "github.com/x-xyz/marketcore/stores/asset/repository"
	auction_repository "github.com/x-xyz/marketcore/stores/auction/repository"
	cart_repository "github.com/x-xyz/marketcore/stores/cart/repository"
	drop_repository "github.com/x-xyz/marketcore/stores/drop/repository"
	hc_repo "github.com/x-xyz/marketcore/stores/healthcheck/repository"
	listing_repository "github.com/x-xyz/marketcore/stores/listing/repository"
)

const (
	driverMongo  = "mongo"
	driverMemory = "memory"
)

// storage bundles the repositories of one backend
type storage struct {
	asset      asset.Repo
	listing    listing.Repo
	bid        auction.BidRepo
	drop       drop.Repo
	cart       cart.Repo
	transactor domain.Transactor
	pingers    []hcdomain.Pinger
}

func mustInitStorage(context ctx.Ctx) *storage {
	switch driver := viper.GetString("storage.driver"); driver {
	case driverMongo:
		context.Info("init mongo")
		mongoClient := mongoclient.MustConnectMongoClient(mongoclient.Config{
			URI:                viper.GetString("mongo.uri"),
			AuthDBName:         viper.GetString("mongo.authDBName"),
			DBName:             viper.GetString("mongo.dbName"),
			SSL:                viper.GetBool("mongo.enableSSL"),
			SetSafe:            true,
			PoolSizeMultiplier: viper.GetFloat64("mongo.poolMultiplier"),
		})
		q := query.New(mongoClient, viper.GetBool("mongo.checkIndex"))

		for _, ensure := range []func(ctx.Ctx, query.Mongo) error{
			asset_repository.EnsureIndexes,
			listing_repository.EnsureIndexes,
			auction_repository.EnsureIndexes,
			drop_repository.EnsureIndexes,
			cart_repository.EnsureIndexes,
		} {
			if err := ensure(context, q); err != nil {
				context.WithField("err", err).Panic("failed to EnsureIndexes")
			}
		}

		return &storage{
			asset:      asset_repository.NewAssetRepo(q),
			listing:    listing_repository.NewListingRepo(q),
			bid:        auction_repository.NewBidRepo(q),
			drop:       drop_repository.NewDropRepo(q),
			cart:       cart_repository.NewCartRepo(q),
			transactor: q,
			pingers:    []hcdomain.Pinger{hc_repo.NewMongoPinger(mongoClient)},
		}
	case driverMemory, "":
		context.Warn("storage.driver is memory, state is lost on restart")
		store := memstore.New()
		return &storage{
			asset:      asset_repository.NewMemoryRepo(store),
			listing:    listing_repository.NewMemoryRepo(store),
			bid:        auction_repository.NewMemoryRepo(store),
			drop:       drop_repository.NewMemoryRepo(store),
			cart:       cart_repository.NewMemoryRepo(store),
			transactor: store,
			pingers:    []hcdomain.Pinger{hc_repo.NewMemoryPinger(store)},
		}
	default:
		log.Log().WithField("driver", driver).Panic("unknown storage.driver")
	}
	return nil
}

// initRedis connects when redis.uri is configured, nil otherwise
func initRedis(context ctx.Ctx) redis.Service {
	uri := viper.GetString("redis.uri")
	if uri == "" {
		context.Info("redis.uri is empty, locks and caches stay in process")
		return nil
	}

	context.Info("init redis")
	name := viper.GetString("redis.name")
	pool := redisclient.MustConnectRedis(redisclient.Config{
		URI:            uri,
		Password:       viper.GetString("redis.password"),
		PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
		Retry:          true,
	})
	return redis.New(name, metrics.New(name), pool)
}

func newLocker(r redis.Service) locker.Locker {
	cfg := locker.Config{
		TTL:  viper.GetDuration("lock.ttl"),
		Wait: viper.GetDuration("lock.wait"),
	}
	if r == nil {
		return locker.NewMemory(cfg)
	}
	return locker.NewRedis(r, metrics.New("locker"), cfg)
}

// newCacheProvider layers the in-process cache over redis when redis is available
func newCacheProvider(name string, r redis.Service) provider.Provider {
	local := primitive.NewPrimitive(name, viper.GetInt("cache.sizeMB"))
	if r == nil {
		return local
	}
	return compound.NewCompound([]provider.Provider{local, redisProvider.NewRedis(r)})
}
