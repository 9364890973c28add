package gateAuth

import (
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gatentry/gateAuth/jwt"
	"github.com/gatentry/gateAuth/store"
	"github.com/gatentry/gateAuth/transport"
)

// Builder defines a public type used by gateAuth APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	doer    transport.Doer
	baseURL string

	tokenStore TokenStore
	redis      *redis.Client

	sink     EventSink
	deviceID DeviceIDProvider

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithTransport describes the withtransport operation and its observable behavior.
//
// WithTransport may return an error when input validation, dependency calls, or security checks fail.
// WithTransport does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithTransport(doer transport.Doer) *Builder {
	b.doer = doer
	return b
}

// WithBaseURL constructs the default HTTP transport against the given base
// URL. Ignored when an explicit transport is supplied.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.baseURL = baseURL
	return b
}

// WithTokenStore describes the withtokenstore operation and its observable behavior.
//
// WithTokenStore may return an error when input validation, dependency calls, or security checks fail.
// WithTokenStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithTokenStore(ts TokenStore) *Builder {
	b.tokenStore = ts
	return b
}

// WithRedis backs the token store with Redis for shared-terminal
// deployments. Ignored when an explicit token store is supplied.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithEventSink describes the witheventsink operation and its observable behavior.
//
// WithEventSink may return an error when input validation, dependency calls, or security checks fail.
// WithEventSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithEventSink(sink EventSink) *Builder {
	b.sink = sink
	return b
}

// WithDeviceIDProvider describes the withdeviceidprovider operation and its observable behavior.
//
// WithDeviceIDProvider may return an error when input validation, dependency calls, or security checks fail.
// WithDeviceIDProvider does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithDeviceIDProvider(provider DeviceIDProvider) *Builder {
	b.deviceID = provider
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Manager, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	doer := b.doer
	if doer == nil {
		if b.baseURL == "" {
			return nil, errors.New("transport or base url required")
		}
		client, err := transport.New(b.baseURL)
		if err != nil {
			return nil, err
		}
		doer = client
	}

	deviceID := b.deviceID
	if deviceID == nil {
		// Process-lifetime random identity for hosts that bridge no
		// platform device ID.
		generated := uuid.NewString()
		deviceID = func() string { return generated }
	}

	tokenStore := b.tokenStore
	if tokenStore == nil {
		if b.redis == nil {
			return nil, errors.New("token store or redis client required")
		}
		tokenStore = store.NewRedis(b.redis, cfg.Storage.RedisPrefix, deviceID())
	}

	m := &Manager{
		cfg:       cfg,
		store:     tokenStore,
		metrics:   NewMetrics(cfg.Metrics),
		events:    newEventDispatcher(cfg.Events, b.sink),
		inspector: jwt.NewInspector(),
		deviceID:  deviceID,
	}

	bootstrapRoutes := append([]string{
		cfg.Endpoints.Identity,
		cfg.Endpoints.Refresh,
		cfg.Endpoints.SendOTP,
		cfg.Endpoints.VerifyOTP,
	}, cfg.Endpoints.ExtraBootstrapRoutes...)

	gateway, err := NewGateway(doer, GatewayHooks{
		AccessToken:        m.currentAccessToken,
		RefreshAccessToken: m.RefreshAccessToken,
		SessionDied:        m.HandleUnauthorized,
		ServerDown:         m.noteServerDown,
		ServerUp:           m.noteServerUp,
	},
		WithBootstrapRoutes(bootstrapRoutes...),
		WithGatewayMetrics(m.metrics),
	)
	if err != nil {
		return nil, err
	}
	m.gateway = gateway

	b.built = true
	return m, nil
}
