package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	identitydomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	identityports "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/ports"
)

const tracerName = "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/adapters/observability/service"

// Service decorates the identity service with tracing, logging, and metrics.
// Tokens and passwords are never logged.
type Service struct {
	inner   identityports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core identity service.
func New(inner identityports.Service, opts ...Option) identityports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Register(ctx context.Context, input identityports.RegisterInput) (*identityports.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.Register")
	defer span.End()

	result, err := s.inner.Register(ctx, input)
	if err != nil {
		s.metrics.recordAuth(ctx, "register", false)
		return nil, s.handleError(ctx, span, err, "failed to register account")
	}
	s.metrics.recordAuth(ctx, "register", true)
	span.SetAttributes(attribute.String("identity.uid", result.Identity.UID))
	s.logInfo(ctx, "account registered", slog.String("identity.uid", result.Identity.UID))
	return result, nil
}

func (s *Service) SignIn(ctx context.Context, creds identityports.Credentials) (*identityports.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.SignIn")
	defer span.End()

	result, err := s.inner.SignIn(ctx, creds)
	if err != nil {
		s.metrics.recordAuth(ctx, "sign_in", false)
		return nil, s.handleError(ctx, span, err, "sign-in rejected")
	}
	s.metrics.recordAuth(ctx, "sign_in", true)
	span.SetAttributes(attribute.String("identity.uid", result.Identity.UID))
	s.logInfo(ctx, "signed in", slog.String("identity.uid", result.Identity.UID))
	return result, nil
}

func (s *Service) Verify(ctx context.Context, token string) (identitydomain.Authenticated, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.Verify")
	defer span.End()

	identity, err := s.inner.Verify(ctx, token)
	if err != nil {
		span.RecordError(err)
		return identity, err
	}
	span.SetAttributes(attribute.String("identity.uid", identity.UID))
	return identity, nil
}

func (s *Service) Refresh(ctx context.Context, token string) (*identityports.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.Refresh")
	defer span.End()

	result, err := s.inner.Refresh(ctx, token)
	if err != nil {
		s.metrics.recordAuth(ctx, "refresh", false)
		return nil, s.handleError(ctx, span, err, "failed to refresh session")
	}
	s.metrics.recordAuth(ctx, "refresh", true)
	return result, nil
}

func (s *Service) SignOut(ctx context.Context, token string) error {
	ctx, span := s.tracer.Start(ctx, "IdentityService.SignOut")
	defer span.End()

	if err := s.inner.SignOut(ctx, token); err != nil {
		return s.handleError(ctx, span, err, "failed to sign out")
	}
	s.logInfo(ctx, "signed out")
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	authAttempts metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	authAttempts, _ := m.Int64Counter("identity.service.auth_attempts", metric.WithDescription("Number of identity operations by outcome"))
	return serviceMetrics{authAttempts: authAttempts}
}

func (m serviceMetrics) recordAuth(ctx context.Context, operation string, ok bool) {
	if m.authAttempts != nil {
		m.authAttempts.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.Bool("success", ok),
		))
	}
}

var _ identityports.Service = (*Service)(nil)
