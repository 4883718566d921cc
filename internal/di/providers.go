package di

import (
	"context"
	"fmt"
	"time"

	"FinCast/internal/domain/repository"
	domsvc "FinCast/internal/domain/service"
	"FinCast/internal/handler/api"
	internalrepo "FinCast/internal/repository"
	"FinCast/internal/service/ratelimit"
	"FinCast/internal/services/forecast"
	"FinCast/internal/usecase"
	"FinCast/pkg/cache"
	pkgch "FinCast/pkg/clickhouse"
	"FinCast/pkg/config"
	xhttp "FinCast/pkg/http"
	pkgkafka "FinCast/pkg/kafka"
	applogger "FinCast/pkg/logger"
	"FinCast/pkg/metrics"
	"FinCast/pkg/server"
)

// ProvideLogger builds the application logger from the logging section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRedisCache connects to Redis when the cache section enables it.
// It returns nil otherwise.
func ProvideRedisCache(cfg *config.Config) (*cache.RedisCache, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Cache.Redis.Addr),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("redis cache: %w", err)
	}
	return rc, func() { _ = rc.Close() }, nil
}

// ProvideForecastCache picks the layered cache when Redis is available and
// the in-process cache otherwise.
func ProvideForecastCache(cfg *config.Config, rc *cache.RedisCache) (cache.Service, func()) {
	if rc != nil {
		lc := cache.NewLayeredCache(rc, cache.WithLayeredMemoryTTL(cfg.Cache.TTL))
		// the Redis client is closed by its own cleanup
		return lc, func() {}
	}
	mc := cache.NewMemoryCache(cache.WithMemoryDefaultTTL(cfg.Cache.TTL))
	return mc, func() { _ = mc.Close() }
}

// ProvideModelStore selects the model blob backend.
func ProvideModelStore(cfg *config.Config, rc *cache.RedisCache) repository.ModelStore {
	if cfg.Model.Store == "redis" && rc != nil {
		return internalrepo.NewRedisModelStore(rc.Client(), cfg.Model.RedisKey)
	}
	return internalrepo.NewFileModelStore(cfg.Model.Path)
}

// ProvideClickHouseClient creates a ClickHouse client and its schema when
// the archive is enabled. It returns nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, func(), error) {
	if !cfg.ClickHouse.Enabled {
		return nil, func() {}, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(4, 2),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, pkgch.Schema(cfg.ClickHouse.Database)); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, func() { _ = client.Close() }, nil
}

// ProvideRunArchive wraps the ClickHouse client; nil when it is disabled.
func ProvideRunArchive(ch *pkgch.Client, l *applogger.Logger) repository.RunArchive {
	if ch == nil {
		return nil
	}
	return internalrepo.NewClickHouseArchive(ch, l)
}

// ProvideKafkaProducer creates a Kafka producer when Kafka is enabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAutoCreateTopic(cfg.Environment != "production"),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideEventPublisher publishes domain events and ships aggregated error
// logs through the same producer. It returns nil without a producer.
func ProvideEventPublisher(cfg *config.Config, producer *pkgkafka.Producer, l *applogger.Logger) (repository.EventPublisher, func()) {
	if producer == nil {
		return nil, func() {}
	}
	pub := internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
	l.AddCollector(&applogger.CollectionConfig{
		TimeInterval:   30 * time.Second,
		CountThreshold: 100,
		Key:            cfg.Environment,
		Publisher:      internalrepo.NewSharedKafkaPublisher(producer, cfg.Kafka.LogTopic),
	})
	return pub, func() {
		l.RemoveCollector()
		if err := pub.Close(); err != nil {
			l.Warn("kafka producer close error", applogger.Error(err))
		}
	}
}

// ProvideForecaster returns the forecasting engine.
func ProvideForecaster() domsvc.Forecaster {
	return forecast.NewEngine()
}

// ProvidePipelineConfig maps the data and model sections onto a run.
func ProvidePipelineConfig(cfg *config.Config) usecase.PipelineConfig {
	return usecase.PipelineConfig{
		CSVPath:  cfg.Data.CSVPath,
		DataDir:  cfg.Data.Dir,
		TestDays: cfg.Data.TestDays,
		Model:    cfg.Model.ModelConfig,
		Reuse:    cfg.Model.Reuse,
	}
}

// ProvideState runs the startup pipeline. Any failure aborts startup.
func ProvideState(ctx context.Context, p *usecase.Pipeline) (*usecase.State, error) {
	st, err := p.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("startup pipeline: %w", err)
	}
	return st, nil
}

// ProvideForecastService creates the memoizing forecast service.
func ProvideForecastService(
	cfg *config.Config,
	st *usecase.State,
	f domsvc.Forecaster,
	c cache.Service,
	events repository.EventPublisher,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.ForecastService {
	return usecase.NewForecastService(st, f, c, cfg.Cache.TTL, events, m, l)
}

// ProvideHTTPHandler creates the dashboard and API handler.
func ProvideHTTPHandler(
	cfg *config.Config,
	l *applogger.Logger,
	d *usecase.Dashboard,
	fs *usecase.ForecastService,
) (xhttp.Handler, error) {
	h, err := api.NewDashboardEchoHandler(l, d, fs, cfg.Data.MaxHorizon)
	if err != nil {
		return nil, fmt.Errorf("dashboard handler: %w", err)
	}
	return h, nil
}

// ProvideRateLimiter creates the per-client limiter; nil when disabled.
func ProvideRateLimiter(cfg *config.Config) (*ratelimit.Limiter, func()) {
	if !cfg.RateLimit.Enabled {
		return nil, func() {}
	}
	lim := ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	return lim, func() { _ = lim.Close() }
}

// ProvideHTTPServer builds the echo server from the server section.
func ProvideHTTPServer(
	cfg *config.Config,
	h xhttp.Handler,
	l *applogger.Logger,
	lim *ratelimit.Limiter,
) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(true, cfg.Server.CORSOrigins...),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(cfg.Metrics.Path))
	} else {
		opts = append(opts, xhttp.WithMetrics(""))
	}
	if lim != nil {
		opts = append(opts, xhttp.WithRateLimit(lim, "/api"))
	}
	return xhttp.NewServer(h, l, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	srv *xhttp.Server,
	l *applogger.Logger,
	st *usecase.State,
) *server.App {
	return server.New(cfg, srv, l, st)
}

// Training is what a one-shot training run reports on.
type Training struct {
	Log       *applogger.Logger
	State     *usecase.State
	Dashboard *usecase.Dashboard
}
