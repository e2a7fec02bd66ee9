package redis

import (
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/metrics"
	"github.com/x-xyz/marketcore/domain/keys"
)

const (
	// retTTLNoKey is the return value of TTL when the key does not exist
	retTTLNoKey = -2

	// retTTLNoExpire is the return value of TTL when the key exists but has
	// no associated expire
	retTTLNoExpire = -1
)

var (
	delBatchSize = 100
)

type redImpl struct {
	name string
	met  metrics.Service
	pool *redis.Pool
}

// New wraps a redigo pool, name tags every metric of the cluster
func New(name string, met metrics.Service, pool *redis.Pool) Service {
	return &redImpl{
		name: name,
		met:  met,
		pool: pool,
	}
}

func (r *redImpl) getConn() (redis.Conn, error) {
	defer r.met.BumpTime("getconn.time", "cluster", r.name).End()

	conn := r.pool.Get()
	if err := conn.Err(); err != nil {
		r.met.BumpSum("getConn.err", 1, "cluster", r.name, "reason", err.Error())
		return nil, err
	}
	return conn, nil
}

func (r *redImpl) connDo(context ctx.Ctx, commandName string, args ...interface{}) (interface{}, error) {
	conn, err := r.getConn()
	if err != nil {
		return nil, err
	}

	reply, err := conn.Do(commandName, args...)

	// Closing conn explicitly asap keeps the pool small under load
	if err := conn.Close(); err != nil {
		r.met.BumpSum("conn.Close.err", 1, "cluster", r.name)
	}
	return reply, err
}

func (r *redImpl) tags(funcName, key string) []string {
	return []string{"func", funcName, "cluster", r.name, "prefix", keys.GetPrefix(key)}
}

func (r *redImpl) Get(context ctx.Ctx, key string) ([]byte, error) {
	tags := r.tags("get", key)
	defer r.met.BumpTime("time", tags...).End()

	val, err := redis.Bytes(r.connDo(context, "GET", key))
	if err == redis.ErrNil {
		return nil, ErrNotFound
	} else if err != nil {
		context.WithField("err", err).Error("GET redis failed")
		return nil, err
	}
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)
	return val, nil
}

func (r *redImpl) Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error {
	tags := r.tags("set", key)
	defer r.met.BumpTime("time", tags...).End()
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)

	var err error
	if expire == Forever {
		r.met.BumpSum("ttl.forever", 1, tags...)
		_, err = r.connDo(context, "SET", key, val)
	} else {
		r.met.BumpAvg("ttl", expire.Seconds(), tags...)
		_, err = r.connDo(context, "SET", key, val, "PX", int(expire/time.Millisecond))
	}
	if err != nil {
		context.WithField("err", err).Error("set redis failed")
	}
	return err
}

func (r *redImpl) SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) (bool, error) {
	tags := r.tags("setnx", key)
	defer r.met.BumpTime("time", tags...).End()

	var err error
	if expire == Forever {
		_, err = redis.String(r.connDo(context, "SET", key, val, "NX"))
	} else {
		_, err = redis.String(r.connDo(context, "SET", key, val, "NX", "PX", int(expire/time.Millisecond)))
	}
	if err == redis.ErrNil {
		// key exists
		return false, nil
	} else if err != nil {
		context.WithField("err", err).Error("setnx redis failed")
		return false, err
	}
	return true, nil
}

func (r *redImpl) Del(context ctx.Ctx, ks ...string) (int, error) {
	if len(ks) == 0 {
		return 0, fmt.Errorf("length of keys is 0")
	}

	tags := r.tags("del", ks[0])
	defer r.met.BumpTime("time", tags...).End()
	r.met.BumpHistogram("elements", float64(len(ks)), tags...)

	affected := 0
	for start := 0; start < len(ks); start += delBatchSize {
		end := start + delBatchSize
		if end > len(ks) {
			end = len(ks)
		}
		res, err := redis.Int(r.connDo(context, "DEL", redis.Args{}.AddFlat(ks[start:end])...))
		if err != nil {
			context.WithField("err", err).Error("DEL redis failed")
			return 0, err
		}
		affected += res
	}
	return affected, nil
}

// Exists Returns if the key exists.
func (r *redImpl) Exists(context ctx.Ctx, key string) (bool, error) {
	defer r.met.BumpTime("time", r.tags("exists", key)...).End()
	res, err := redis.Bool(r.connDo(context, "EXISTS", key))
	if err != nil {
		context.WithField("err", err).Error("Exists redis failed")
	}
	return res, err
}

func (r *redImpl) TTL(context ctx.Ctx, key string) (int, error) {
	defer r.met.BumpTime("time", r.tags("ttl", key)...).End()
	res, err := redis.Int(r.connDo(context, "TTL", key))
	if err != nil {
		context.WithField("err", err).Error("TTL redis failed")
		return 0, err
	}

	if res == retTTLNoKey {
		return res, ErrNotFound
	} else if res == retTTLNoExpire {
		return res, ErrNoTTL
	}
	return res, nil
}

func (r *redImpl) ScriptDo(context ctx.Ctx, hdl *ScriptHdl, keysAndArgs ...interface{}) (interface{}, error) {
	defer r.met.BumpTime("time", "func", "scriptdo", "cluster", r.name, "prefix", hdl.prefix(keysAndArgs...)).End()

	conn, err := r.getConn()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			r.met.BumpSum("conn.Close.err", 1, "cluster", r.name)
		}
	}()

	value, err := hdl.Do(conn, keysAndArgs...)
	if err != nil && err != redis.ErrNil {
		context.WithField("err", err).Error("ScriptDo redis failed")
	}
	return value, err
}

func (r *redImpl) Ping(context ctx.Ctx) error {
	defer r.met.BumpTime("time", "func", "ping", "cluster", r.name, "prefix", metrics.TagValueNA).End()
	if _, err := r.connDo(context, "PING"); err != nil {
		context.WithField("err", err).Error("PING redis failed")
		return err
	}
	return nil
}

func (r *redImpl) Name() string {
	return r.name
}
