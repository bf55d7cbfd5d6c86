// Package backends opens the store and cache selected by config.
package backends

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"itemd/internal/config"
	"itemd/internal/item"
	"itemd/internal/store"
	appcache "itemd/pkg/cache"
)

type closeFunc func(context.Context) error

func noopClose(context.Context) error { return nil }

// Backends holds the connected collaborators of item.Service.
type Backends struct {
	Store item.Store
	Cache item.Cache

	closeStore closeFunc
	closeCache closeFunc
}

// Connect opens store and cache concurrently. If either fails, whatever did
// open is closed again and the first error is returned.
func Connect(ctx context.Context, conf *config.Config) (*Backends, error) {
	b := &Backends{closeStore: noopClose, closeCache: noopClose}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, closer, err := OpenStore(gctx, conf.Store)
		if err != nil {
			return err
		}
		b.Store, b.closeStore = st, closer
		return nil
	})
	g.Go(func() error {
		c, closer, err := OpenCache(gctx, conf.Cache)
		if err != nil {
			return err
		}
		b.Cache, b.closeCache = c, closer
		return nil
	})

	if err := g.Wait(); err != nil {
		_ = b.Close(context.Background())
		return nil, err
	}
	return b, nil
}

// Close closes cache then store and joins their errors.
func (b *Backends) Close(ctx context.Context) error {
	return errors.Join(b.closeCache(ctx), b.closeStore(ctx))
}

func OpenStore(ctx context.Context, conf config.Store) (item.Store, closeFunc, error) {
	switch conf.Driver {
	case config.StoreMongo:
		m, err := store.OpenMongo(ctx, store.MongoConfig{
			URI:         conf.URI,
			Database:    conf.Database,
			Collection:  conf.Collection,
			PingTimeout: conf.ConnectTimeoutDuration(),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("init mongo store: %w", err)
		}
		log.Printf("[itemd] mongo connected collection=%s", conf.Collection)
		return m, m.Close, nil
	case config.StoreBolt:
		s, err := store.OpenBolt(conf.Path, store.BoltOptions{
			Bucket:  conf.Collection,
			Timeout: conf.ConnectTimeoutDuration(),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("init bolt store: %w", err)
		}
		log.Printf("[itemd] bolt store opened path=%s", conf.Path)
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", conf.Driver)
	}
}

func OpenCache(ctx context.Context, conf config.Cache) (item.Cache, closeFunc, error) {
	switch conf.Driver {
	case config.CacheRedis:
		r, err := appcache.Init(ctx, appcache.Config{
			URL:         conf.URL,
			Addr:        conf.Addr(),
			Password:    conf.Pass,
			DB:          conf.Db,
			Prefix:      conf.Prefix,
			DefaultTTL:  conf.TTLDuration(),
			PingTimeout: conf.ConnectTimeoutDuration(),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("init redis cache: %w", err)
		}
		log.Printf("[itemd] redis connected addr=%s db=%d", r.Client.Options().Addr, r.Client.Options().DB)
		return appcache.New(r), func(context.Context) error { return r.Close() }, nil
	case config.CacheMemory:
		log.Printf("[itemd] using in-memory cache")
		return appcache.NewMemory(conf.TTLDuration()), noopClose, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache driver %q", conf.Driver)
	}
}
