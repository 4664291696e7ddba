package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/grafana/pyroscope-go"
	"gitlab.com/nevasik7/alerting"
	lgcfg "gitlab.com/nevasik7/alerting/config"
	"gitlab.com/nevasik7/alerting/logger"

	"sniperscope/internal/api/http"
	"sniperscope/internal/config"
	"sniperscope/internal/dedupe"
	"sniperscope/internal/feed"
	"sniperscope/internal/metrics"
	"sniperscope/internal/netsim"
	"sniperscope/internal/pubsub"
	"sniperscope/internal/pubsub/nats"
	"sniperscope/internal/service"
	"sniperscope/internal/state"
	"sniperscope/internal/stores/redis"
	"sniperscope/internal/watcher"
)

type Container struct {
	app *App

	// infra
	redis *redis.Client
	nc    *nats.Client

	// servers
	httpSrv *http.Server

	// metrics
	profiler *pyroscope.Profiler

	cleanupF func()
}

func (c *Container) Start() error {
	return c.app.Start()
}

func (c *Container) Stop(ctx context.Context) error {
	if err := c.app.Shutdown(ctx); err != nil {
		return fmt.Errorf("app shutdown is failed, error=%w", err)
	}

	if c.cleanupF != nil {
		c.cleanupF()
	}
	return nil
}

// Construct image app
func Build(ctx context.Context, cfg *config.Config) (*Container, func()) {
	lg := logger.New(lgcfg.LoggerCfg{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	lg.Info("Successfully initialize logger")

	profiler, err := metrics.InitPProf(&metrics.PProfConfig{
		Enabled:       cfg.Metrics.Pyroscope.Enabled,
		AppInstanceID: cfg.App.InstanceID,
		AppName:       cfg.Metrics.Pyroscope.AppName,
		ServerAddr:    cfg.Metrics.Pyroscope.ServerAddr,
		AuthToken:     cfg.Metrics.Pyroscope.AuthToken,
		Tags:          cfg.Metrics.Pyroscope.Tags,
	})
	if err != nil {
		lg.Panicf("Pyroscope initialize failed: %v", err)
	}
	if profiler != nil {
		lg.Infof("Successfully initialize Pyroscope to %s as %s", cfg.Metrics.Pyroscope.ServerAddr, cfg.Metrics.Pyroscope.AppName)
	}

	// In-memory state
	store := state.NewOpportunityStore(cfg.Watcher.StoreCapacity)
	sink := state.NewLogSink(cfg.Watcher.LogCapacity)
	history := state.NewActionHistory(cfg.Watcher.HistoryCapacity)
	networkStats := state.NewNetworkStatsStore(time.Now())
	engineStore := state.NewEngineStore()

	// Feed client
	feedClient := feed.NewClient(lg, &feed.Config{
		BaseURL:   cfg.Watcher.Feed.BaseURL,
		Timeout:   cfg.Watcher.Feed.Timeout,
		UserAgent: cfg.Watcher.Feed.UserAgent,
	})
	lg.Infof("Successfully initialize feed client, base_url=%s", cfg.Watcher.Feed.BaseURL)

	// Deduper
	deduper := dedupe.NewSeenSet(cfg.Watcher.DedupeCapacity)
	lg.Infof("Successfully initialize Deduper in-memory, cap=%d", cfg.Watcher.DedupeCapacity)

	// NATS Broadcaster (optional, degrades to no-op)
	var bcast pubsub.Broadcaster = pubsub.Noop{}
	var natsCl *nats.Client
	if cfg.PubSub.NATS.Enabled {
		natsCl, err = nats.New(lg, &nats.Config{
			Enabled:         cfg.PubSub.NATS.Enabled,
			URL:             cfg.PubSub.NATS.URL,
			BroadcastPrefix: cfg.PubSub.NATS.BroadcastPrefix,
		})
		if err != nil {
			lg.Errorf("Failed to initialize nats client, continuing without broadcast: %v", err)
		} else {
			bcast = natsCl
			lg.Infof("Successfully initialize nats client, url=%s", cfg.PubSub.NATS.URL)
		}
	}

	// Redis client (optional, only backs the rate limiter)
	var rdb *redis.Client
	if cfg.RateLimit.Enabled {
		rdb, err = redis.New(ctx, &cfg.Stores.Redis)
		if err != nil {
			lg.Errorf("Failed to initialize redis client, rate limit disabled: %v", err)
		} else {
			lg.Infof("Successfully initialize redis client, addr=%s", cfg.Stores.Redis.Addr)
		}
	}

	// Pool watcher
	watch := watcher.New(lg, &cfg.Watcher, feedClient, store, sink, deduper, bcast)
	lg.Info("Successfully initialize watcher")

	// Network simulator
	sim := netsim.New(lg, networkStats)
	lg.Info("Successfully initialize network simulator")

	// Service layer
	sniperService := service.NewSniperService(lg, store, sink, history, networkStats, engineStore, bcast)

	// HTTP Server
	httpSrv := http.NewServer(&http.ServerDeps{
		Logger:    lg,
		Cfg:       cfg,
		Sniper:    sniperService,
		RdbClient: rdb,
		Bcast:     bcast,
	})
	lg.Info("Successfully initialize HTTP server")

	c := &Container{
		app:      New(alerting.NewAlerting(lg, nil), httpSrv, watch, sim, cfg.Network.Interval),
		redis:    rdb,
		nc:       natsCl,
		httpSrv:  httpSrv,
		profiler: profiler,
	}

	// cleanup runs once: Stop calls it and Run defers it
	var cleanupOnce sync.Once
	c.cleanupF = func() {
		cleanupOnce.Do(func() { c.closeDeps(lg) })
	}

	lg.Info("Successfully initialize Wiring")
	return c, c.cleanupF
}

func (c *Container) closeDeps(lg logger.Logger) {
	if c.profiler != nil {
		if err := c.profiler.Stop(); err != nil {
			lg.Errorf("Failed to stop profiler: %v", err)
		}
	}

	if c.nc != nil {
		if err := c.nc.Close(); err != nil {
			lg.Errorf("Failed to close by cleanupF nats client: %v", err)
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			lg.Errorf("Failed to close by cleanupF redis client: %v", err)
		}
	}

	lg.Info("Successfully cleaned up dependency")
}
