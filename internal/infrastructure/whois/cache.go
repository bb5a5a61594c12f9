package whois

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	"github.com/AcasisDev/siteguard-hub/pkg/helpers"
)

// Lookuper is implemented by Client and Cached.
type Lookuper interface {
	Lookup(ctx context.Context, domain string) (*entity.DomainLookup, error)
}

// Cached keeps successful lookups in Redis. Registries rate-limit WHOIS
// queries, and the domain form tends to look up the same name repeatedly.
type Cached struct {
	Next   Lookuper
	Redis  *redis.Client
	TTL    time.Duration
	Logger *logrus.Logger
}

func NewCached(next Lookuper, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *Cached {
	return &Cached{Next: next, Redis: rdb, TTL: ttl, Logger: logger}
}

func cacheKey(root string) string { return "whois:" + root }

func (c *Cached) Lookup(ctx context.Context, domain string) (*entity.DomainLookup, error) {
	key := cacheKey(RootDomain(domain))
	var hit entity.DomainLookup
	if ok, err := helpers.RedisGetJSON(ctx, c.Redis, key, &hit); err == nil && ok {
		return &hit, nil
	} else if err != nil && c.Logger != nil {
		c.Logger.WithError(err).WithField("key", key).Warn("whois cache read failed")
	}

	res, err := c.Next.Lookup(ctx, domain)
	if err != nil {
		return nil, err
	}
	if err := helpers.RedisSetJSON(ctx, c.Redis, key, res, c.TTL); err != nil && c.Logger != nil {
		c.Logger.WithError(err).WithField("key", key).Warn("whois cache write failed")
	}
	return res, nil
}
