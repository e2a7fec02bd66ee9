package mongoclient

import (
	"context"
	"crypto/tls"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/x-xyz/marketcore/base/log"
)

const (
	mgSocketTimeout = 60 * time.Second
)

// Client wraps mongo.Client
type Client struct {
	DbName string
	*mongo.Client
}

// Config of a mongo connection, `mongo.*` in the config file
type Config struct {
	URI                string
	AuthDBName         string
	DBName             string
	SSL                bool
	SetSafe            bool
	PoolSizeMultiplier float64
}

// MustConnectMongoClient returns MongoDB connection client if connected successfully, or it will trigger panic
func MustConnectMongoClient(cfg Config) *Client {
	cli, err := ConnectMongoClient(cfg)
	if err != nil {
		log.Log().WithFields(log.Fields{"dbName": cfg.DBName, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

// ConnectMongoClient returns mongo driver client. Decimal amounts are stored as Decimal128.
func ConnectMongoClient(cfg Config) (*Client, error) {
	ctx := context.Background()
	connSetting, err := connstring.Parse(cfg.URI)
	if err != nil {
		log.Log().WithFields(log.Fields{
			"dbName": cfg.DBName,
			"err":    err,
		}).Error("fail to parse connstring")
		return nil, err
	}

	clientOpts := options.Client()
	clientOpts.ApplyURI(cfg.URI)
	clientOpts.SetSocketTimeout(mgSocketTimeout)
	clientOpts.SetRegistry(NewRegistry())

	// If AuthSource is not set in connstring, set it to AuthDBName
	if connSetting.Username != "" && connSetting.AuthSource == "" {
		clientOpts.SetAuth(options.Credential{
			AuthMechanism:           connSetting.AuthMechanism,
			AuthMechanismProperties: connSetting.AuthMechanismProperties,
			Username:                connSetting.Username,
			Password:                connSetting.Password,
			PasswordSet:             connSetting.PasswordSet,
			AuthSource:              cfg.AuthDBName,
		})
	}

	if cfg.PoolSizeMultiplier > 0 && len(connSetting.Hosts) > 0 {
		// each host has its own pool, so the total size is divided among hosts
		poolSize := int(float64(runtime.NumCPU()) * cfg.PoolSizeMultiplier)
		poolSize = (poolSize + len(connSetting.Hosts) - 1) / len(connSetting.Hosts)
		clientOpts.SetMinPoolSize(uint64(poolSize / 4))
		clientOpts.SetMaxPoolSize(uint64(poolSize))
		log.Log().WithField("poolSize", poolSize).Info("mongo driver pool size")
	}

	if cfg.SSL {
		clientOpts.SetTLSConfig(&tls.Config{})
	}

	if cfg.SetSafe {
		// Force the server to wait for a majority of members of a replica set to return
		clientOpts.SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
	}
	clientOpts.SetRetryWrites(true)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		log.Log().WithFields(log.Fields{
			"mongoHosts": connSetting.Hosts,
			"dbName":     cfg.DBName,
			"err":        err,
		}).Error("fail to connect mongo db")
		return nil, err
	}

	// Test if DBName is valid
	if _, err := client.Database(cfg.DBName).ListCollectionNames(ctx, bson.D{}); err != nil {
		log.Log().WithFields(log.Fields{
			"mongoHosts": connSetting.Hosts,
			"dbName":     cfg.DBName,
			"err":        err,
		}).Error("fail to test mongo db")
		return nil, err
	}

	log.Log().WithFields(log.Fields{
		"mongoHosts": connSetting.Hosts,
		"db":         cfg.DBName,
	}).Info("mongo connected")
	return &Client{
		Client: client,
		DbName: cfg.DBName,
	}, nil
}
