package intake

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/preset"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// Config controls the Redis intake.
type Config struct {
	Channel    string  `env:"INTAKE_CHANNEL" envDefault:"toasts"`
	RatePerSec float64 `env:"INTAKE_RATE_PER_SEC" envDefault:"5"`
	Burst      int     `env:"INTAKE_BURST" envDefault:"10"`
}

// Submitter accepts toast requests. *toast.Scheduler satisfies it.
type Submitter interface {
	Submit(req toast.Request) (uuid.UUID, error)
}

const tracerName = "github.com/dmitrymomot/toastkit/pkg/intake"

// Option configures a Consumer.
type Option func(*Consumer)

// WithTracerProvider sets the provider for message spans. The global provider
// is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Consumer) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

// Consumer turns pub/sub messages into toast submissions.
type Consumer struct {
	cfg     Config
	sub     Submitter
	presets preset.Applier
	limiter *rate.Limiter
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewConsumer creates a consumer. A nil presets uses the built-in set.
func NewConsumer(cfg Config, sub Submitter, presets preset.Applier, log *slog.Logger, opts ...Option) (*Consumer, error) {
	if sub == nil {
		return nil, ErrNilSubmitter
	}
	if presets == nil {
		presets = preset.Defaults()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}
	c := &Consumer{
		cfg:     cfg,
		sub:     sub,
		presets: presets,
		limiter: rate.NewLimiter(limit, max(cfg.Burst, 1)),
		logger:  log.With(logger.Component("intake"), logger.Channel(cfg.Channel)),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Listen subscribes to the configured channel and consumes it until ctx is
// done or the subscription closes.
func (c *Consumer) Listen(ctx context.Context, client goredis.UniversalClient) error {
	ps := client.Subscribe(ctx, c.cfg.Channel)
	defer ps.Close()

	if _, err := ps.Receive(ctx); err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "intake subscribed")
	return c.Consume(ctx, ps.Channel())
}

// Consume handles messages until ctx is done or msgs is closed.
func (c *Consumer) Consume(ctx context.Context, msgs <-chan *goredis.Message) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := c.limiter.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			c.handle(ctx, msg)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg *goredis.Message) {
	ctx, span := c.tracer.Start(ctx, "intake.message",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(attribute.String("messaging.destination.name", msg.Channel)),
	)
	defer span.End()

	fail := func(err error, status string) {
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
	}

	m, err := Decode([]byte(msg.Payload))
	if err != nil {
		fail(err, "malformed message")
		c.logger.WarnContext(ctx, "skipping malformed message", logger.Error(err))
		return
	}
	req, err := m.Request(c.presets)
	if err != nil {
		fail(err, "invalid message")
		c.logger.WarnContext(ctx, "skipping message", logger.Error(err))
		return
	}

	id, err := c.sub.Submit(req)
	switch {
	case errors.Is(err, toast.ErrInvalidRequest):
		fail(err, "rejected")
		c.logger.WarnContext(ctx, "rejected invalid toast", logger.Error(err))
	case err != nil:
		fail(err, "submit failed")
		c.logger.ErrorContext(ctx, "failed to submit toast", logger.Error(err))
	default:
		span.SetAttributes(attribute.String("toast.id", id.String()), attribute.Int("toast.priority", int(req.Priority)))
		c.logger.DebugContext(ctx, "toast submitted", logger.ToastID(id), logger.Priority(int(req.Priority)))
	}
}
