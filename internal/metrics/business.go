package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records the domain events operators watch: token issuance
// volume, rate-limit rejections, optimistic-concurrency conflicts and note
// creation. All methods are cheap and safe for the request path.
type BusinessMetrics interface {
	TokenIssued(ctx context.Context, kind string)
	RateLimitRejected(ctx context.Context, category string)
	VersionConflict(ctx context.Context)
	NoteCreated(ctx context.Context)
}

type businessMetrics struct {
	tokensIssued     metric.Int64Counter
	rateLimitRejects metric.Int64Counter
	versionConflicts metric.Int64Counter
	notesCreated     metric.Int64Counter
}

// NewBusinessMetrics creates the business instruments on the given provider.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	tokensIssued, err := meter.Int64Counter(
		fmt.Sprintf("%s_tokens_issued_total", namespace),
		metric.WithDescription("Total number of tokens issued, by kind"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokens issued counter: %w", err)
	}

	rateLimitRejects, err := meter.Int64Counter(
		fmt.Sprintf("%s_rate_limit_rejections_total", namespace),
		metric.WithDescription("Total number of rate-limited requests, by category"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit rejection counter: %w", err)
	}

	versionConflicts, err := meter.Int64Counter(
		fmt.Sprintf("%s_version_conflicts_total", namespace),
		metric.WithDescription("Total number of optimistic concurrency conflicts"),
		metric.WithUnit("{conflict}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create version conflict counter: %w", err)
	}

	notesCreated, err := meter.Int64Counter(
		fmt.Sprintf("%s_notes_created_total", namespace),
		metric.WithDescription("Total number of notes created"),
		metric.WithUnit("{note}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create notes created counter: %w", err)
	}

	return &businessMetrics{
		tokensIssued:     tokensIssued,
		rateLimitRejects: rateLimitRejects,
		versionConflicts: versionConflicts,
		notesCreated:     notesCreated,
	}, nil
}

func (b *businessMetrics) TokenIssued(ctx context.Context, kind string) {
	b.tokensIssued.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (b *businessMetrics) RateLimitRejected(ctx context.Context, category string) {
	b.rateLimitRejects.Add(ctx, 1, metric.WithAttributes(attribute.String("category", category)))
}

func (b *businessMetrics) VersionConflict(ctx context.Context) {
	b.versionConflicts.Add(ctx, 1)
}

func (b *businessMetrics) NoteCreated(ctx context.Context) {
	b.notesCreated.Add(ctx, 1)
}

// NoOpBusinessMetrics is used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) TokenIssued(ctx context.Context, kind string) {}

func (n *NoOpBusinessMetrics) RateLimitRejected(ctx context.Context, category string) {}

func (n *NoOpBusinessMetrics) VersionConflict(ctx context.Context) {}

func (n *NoOpBusinessMetrics) NoteCreated(ctx context.Context) {}
