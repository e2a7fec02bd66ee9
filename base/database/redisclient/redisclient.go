package redisclient

import (
	"math/rand"
	"runtime"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/marketcore/base/log"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1500 * time.Millisecond
	writeTimeout = 1500 * time.Millisecond

	retryCount = 3
)

// Config of a redis connection, `redis.*` in the config file
type Config struct {
	URI            string
	Password       string
	PoolMultiplier float64
	// Retry dials up to 3 more times with a jittered backoff
	Retry bool
}

// MustConnectRedis connects to one redis uri and panics if the connection fails
func MustConnectRedis(cfg Config) *redis.Pool {
	p, err := ConnectRedis(cfg)
	if err != nil {
		log.Log().WithFields(log.Fields{"redisURI": cfg.URI, "err": err}).Panic("fail to dial Redis")
	}
	return p
}

// ConnectRedis builds a pool for cfg.URI and makes sure one connection can be borrowed
func ConnectRedis(cfg Config) (*redis.Pool, error) {
	maxIdle := 200
	maxActive := 1024
	if cfg.PoolMultiplier > 0 {
		cpu := float64(runtime.NumCPU())
		// allowing 25% idle connection
		maxIdle = int(cpu * cfg.PoolMultiplier / 4)
		maxActive = int(cpu * cfg.PoolMultiplier)
	}

	opts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialWriteTimeout(writeTimeout),
	}
	if cfg.Password != "" {
		opts = append(opts, redis.DialPassword(cfg.Password))
	}
	p := &redis.Pool{
		MaxIdle:     maxIdle,
		MaxActive:   maxActive,
		Wait:        true,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", cfg.URI, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			// No need to test if it's been recycled less than 1 sec.
			if time.Since(t) < time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	var dialErr error
	for i := 0; i <= retryCount; i++ {
		if i > 0 {
			if !cfg.Retry {
				break
			}
			time.Sleep(time.Second + time.Duration(r.Intn(1000))*time.Millisecond)
		}
		if dialErr = testConn(p); dialErr == nil {
			break
		}
		log.Log().WithFields(log.Fields{
			"redisURI": cfg.URI,
			"err":      dialErr,
			"retry":    i,
		}).Error("fail to dial Redis")
	}
	if dialErr != nil {
		return nil, dialErr
	}

	log.Log().WithField("redisURI", cfg.URI).Info("redis connected")
	return p, nil
}

func testConn(p *redis.Pool) error {
	c, err := p.Dial()
	if err != nil {
		return err
	}
	defer c.Close()
	_, err = c.Do("PING")
	return err
}
