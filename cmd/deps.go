package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/comparison-cli/internal/config"
	"github.com/sells-group/comparison-cli/internal/fetcher"
	"github.com/sells-group/comparison-cli/internal/store"
	"github.com/sells-group/comparison-cli/internal/viewcache"
)

// initStore opens and migrates the configured run store.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

// initCache builds the view-model cache. The returned func releases it.
func initCache(ctx context.Context, c config.CacheConfig) (viewcache.Cache, func(), error) {
	switch c.Driver {
	case "", "memory":
		return viewcache.NewMemory(c.TTL(), c.MaxEntries), func() {}, nil
	case "redis":
		rdb, err := viewcache.DialRedis(ctx, c.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := rdb.Close(); err != nil {
				zap.L().Warn("close redis", zap.Error(err))
			}
		}
		return viewcache.NewRedis(rdb, c.TTL(), c.MaxEntries), closeFn, nil
	default:
		return nil, nil, eris.Errorf("unsupported cache driver: %s", c.Driver)
	}
}

// initSource builds the data API client with its cache.
func initSource(ctx context.Context) (*fetcher.SectionClient, func(), error) {
	cache, closeCache, err := initCache(ctx, cfg.Cache)
	if err != nil {
		return nil, nil, err
	}
	client, err := fetcher.NewSectionClient(fetcher.ClientOptions{
		BaseURL:    cfg.API.BaseURL,
		UserAgent:  cfg.API.UserAgent,
		Timeout:    cfg.API.Timeout(),
		MaxRetries: cfg.API.MaxRetries,
		RatePerSec: cfg.API.RatePerSec,
		Cache:      cache,
	})
	if err != nil {
		closeCache()
		return nil, nil, err
	}
	return client, closeCache, nil
}
