// Package redirect decides the outbound destination for a product visit
// and triggers attribution on the way. The visitor always ends up at a
// destination; every failure path terminates in a redirect, never an
// error page.
package redirect

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"comparo/internal/attribution/device"
	"comparo/internal/catalog"
	"comparo/internal/domain"
	"comparo/internal/platform/metrics"
	"comparo/internal/platform/middleware"
)

// SiteRoot is the fail-safe destination for unresolvable visits.
const SiteRoot = "/"

// Outcome names where a resolution landed, for metrics and logs.
type Outcome string

const (
	OutcomeAffiliate   Outcome = "affiliate"
	OutcomeMarketplace Outcome = "marketplace"
	OutcomeDetail      Outcome = "detail"
	OutcomeNotFound    Outcome = "not_found"
	OutcomeError       Outcome = "error"
)

// Decision is the resolved outbound target. Computed fresh per request and
// never cached, because affiliate terms can change between visits.
type Decision struct {
	TargetURL string
	Outcome   Outcome
}

// ProductFinder is the catalog surface the resolver consumes.
type ProductFinder interface {
	FindBySlug(ctx context.Context, slug string) (domain.Product, error)
}

// Recorder accepts attribution events. Failures are logged here and never
// propagate past the attribution boundary.
type Recorder interface {
	Record(ctx context.Context, event domain.AttributionEvent) error
}

// Resolver turns (slug, referral hints) into a redirect decision.
type Resolver struct {
	products ProductFinder
	tracker  Recorder
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewResolver(products ProductFinder, tracker Recorder, logger *slog.Logger, m *metrics.Metrics) *Resolver {
	return &Resolver{
		products: products,
		tracker:  tracker,
		logger:   logger,
		metrics:  m,
	}
}

// Resolve looks up the product and picks the destination. Social-origin
// visits are attributed before the decision is returned; attribution
// failure downgrades to a log line and the redirect proceeds unchanged.
func (r *Resolver) Resolve(ctx context.Context, slug string, source domain.ReferralSource) Decision {
	tracer := otel.Tracer("comparo/internal/redirect")
	ctx, span := tracer.Start(ctx, "redirect.resolve")
	defer span.End()
	span.SetAttributes(
		attribute.String("product.slug", slug),
		attribute.String("referral.source", string(source)),
	)

	start := time.Now()
	decision := r.resolve(ctx, slug, source)
	span.SetAttributes(attribute.String("redirect.outcome", string(decision.Outcome)))

	if r.metrics != nil {
		r.metrics.RedirectResolutions.WithLabelValues(string(decision.Outcome)).Inc()
		r.metrics.ResolveDuration.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}
	return decision
}

func (r *Resolver) resolve(ctx context.Context, slug string, source domain.ReferralSource) Decision {
	product, err := r.products.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			// Unknown slug: back to the root, and nothing to attribute.
			return Decision{TargetURL: SiteRoot, Outcome: OutcomeNotFound}
		}
		r.logger.ErrorContext(ctx, "catalog lookup failed, falling back to site root",
			"error", err,
			"slug", slug,
			"request_id", middleware.GetRequestID(ctx),
		)
		return Decision{TargetURL: SiteRoot, Outcome: OutcomeError}
	}

	if !source.Social() {
		// Untagged visits go straight to the detail page, unrecorded.
		return Decision{TargetURL: product.DetailPath(), Outcome: OutcomeDetail}
	}

	r.attribute(ctx, product, source)

	switch {
	case product.AffiliateURL != "":
		return Decision{TargetURL: product.AffiliateURL, Outcome: OutcomeAffiliate}
	case product.MarketplaceURL != "":
		return Decision{TargetURL: product.MarketplaceURL, Outcome: OutcomeMarketplace}
	default:
		return Decision{TargetURL: product.DetailPath(), Outcome: OutcomeDetail}
	}
}

// attribute records the visit. Recording is attempted before the redirect
// is emitted, but a failure must not abort it.
func (r *Resolver) attribute(ctx context.Context, product domain.Product, source domain.ReferralSource) {
	userAgent := middleware.GetUserAgent(ctx)
	event := domain.AttributionEvent{
		ProductID:      product.ID,
		ProductSlug:    product.Slug,
		Source:         source,
		AffiliateURL:   product.AffiliateURL,
		MarketplaceURL: product.MarketplaceURL,
		UserAgent:      userAgent,
		DeviceDisplay:  device.ParseUserAgent(userAgent),
		Referrer:       middleware.GetReferrer(ctx),
		ClientIP:       middleware.GetClientIP(ctx),
	}
	if err := r.tracker.Record(ctx, event); err != nil {
		r.logger.ErrorContext(ctx, "attribution failed, redirect proceeds",
			"error", err,
			"slug", product.Slug,
			"source", string(source),
			"request_id", middleware.GetRequestID(ctx),
		)
	}
}
