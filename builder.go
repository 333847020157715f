package stayauth

import (
	"errors"
	"io"
	"log/slog"

	evbus "github.com/asaskevich/EventBus"
	"github.com/redis/go-redis/v9"

	"github.com/lumenstay/stayauth/session"
	"github.com/lumenstay/stayauth/transport"
)

// Builder defines a public type used by stayauth APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	store     CredentialStore
	redis     *redis.Client
	installID string

	bus       evbus.Bus
	logger    *slog.Logger
	auditSink AuditSink

	built bool
}

// New creates a Builder seeded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL sets the backend origin.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.HTTP.BaseURL = baseURL
	return b
}

// WithCredentialStore installs an explicit token store. It takes precedence
// over WithRedis.
func (b *Builder) WithCredentialStore(store CredentialStore) *Builder {
	b.store = store
	return b
}

// WithRedis persists the token in Redis under the given installation id.
func (b *Builder) WithRedis(client *redis.Client, installID string) *Builder {
	b.redis = client
	b.installID = installID
	return b
}

// WithEventBus publishes every committed session snapshot on
// [TopicSessionChanged].
func (b *Builder) WithEventBus(bus evbus.Bus) *Builder {
	b.bus = bus
	return b
}

// WithLogger installs the structured logger. Without one, log output is
// discarded.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithAuditSink installs the sink that receives audit events. Audit must
// also be enabled in the configuration.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles in-process metric collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the login latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build wires the engine: credential store, state machine, request pipeline
// with its late-bound token source and 401 hook, audit, metrics, and the
// optional event bus bridge.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := b.store
	if store == nil && b.redis != nil {
		if b.installID == "" {
			return nil, errors.New("WithRedis requires an installation id")
		}
		store = NewRedisCredentialStore(b.redis, cfg.Storage.RedisPrefix, b.installID, cfg.Storage.TokenTTL)
	}
	if store == nil {
		store = NewMemoryCredentialStore()
	}

	logger := b.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	engine := &Engine{
		config:  cfg,
		store:   store,
		logger:  logger,
		metrics: NewMetrics(cfg.Metrics),
		audit:   newAuditDispatcher(cfg.Audit, b.auditSink),
	}

	engine.machine = session.NewMachine(storeSink{e: engine})

	pipeline := transport.New(transport.Config{
		BaseURL:   cfg.HTTP.BaseURL,
		LoginPath: cfg.Endpoints.Login,
		Timeout:   cfg.HTTP.Timeout,
		UserAgent: cfg.HTTP.UserAgent,
	})
	// Late-bound accessor: the pipeline reads the token per request, so the
	// very first call at app start sees whatever the machine holds then.
	pipeline.BindTokenSource(engine.machine.Token)
	pipeline.BindOnUnauthorized(engine.sessionInvalidated)
	engine.pipeline = pipeline

	if b.bus != nil {
		bus := b.bus
		engine.unsubscribeBus = engine.machine.Subscribe(func(snap session.Snapshot) {
			bus.Publish(TopicSessionChanged, snap)
		})
	}

	b.built = true

	return engine, nil
}
