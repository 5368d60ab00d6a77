package redirect

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"comparo/internal/attribution"
	"comparo/internal/catalog"
	"comparo/internal/domain"
)

type failingFinder struct{ err error }

func (f failingFinder) FindBySlug(context.Context, string) (domain.Product, error) {
	return domain.Product{}, f.err
}

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, domain.AttributionEvent) error {
	return errors.New("tracker unavailable")
}

type ResolverSuite struct {
	suite.Suite
	products *catalog.MemoryStore
	tracker  *attribution.Tracker
	resolver *Resolver
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.products = catalog.NewMemoryStore()
	s.products.Seed(
		domain.Product{
			ID:             "prd_1001",
			Slug:           "fridge-5star",
			Name:           "5-Star Fridge",
			AffiliateURL:   "https://aff.example/x",
			MarketplaceURL: "https://market.example/fridge",
		},
		domain.Product{
			ID:             "prd_1002",
			Slug:           "washer-compact",
			Name:           "Compact Washer",
			MarketplaceURL: "https://market.example/washer",
		},
		domain.Product{
			ID:   "prd_1003",
			Slug: "aircon-quiet",
			Name: "Quiet Aircon",
		},
	)
	s.tracker = attribution.NewTracker()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.resolver = NewResolver(s.products, s.tracker, logger, nil)
}

func (s *ResolverSuite) TestSocialVisitPrefersAffiliateURL() {
	decision := s.resolver.Resolve(context.Background(), "fridge-5star", domain.SourceFacebook)

	s.Equal("https://aff.example/x", decision.TargetURL)
	s.Equal(OutcomeAffiliate, decision.Outcome)

	events := s.tracker.Snapshot()
	s.Require().Len(events, 1)
	s.Equal("prd_1001", events[0].ProductID)
	s.Equal(domain.SourceFacebook, events[0].Source)
	s.Equal("https://aff.example/x", events[0].AffiliateURL)
}

func (s *ResolverSuite) TestSocialVisitFallsBackToMarketplace() {
	decision := s.resolver.Resolve(context.Background(), "washer-compact", domain.SourceTwitter)

	s.Equal("https://market.example/washer", decision.TargetURL)
	s.Equal(OutcomeMarketplace, decision.Outcome)
	s.Len(s.tracker.Snapshot(), 1)
}

func (s *ResolverSuite) TestSocialVisitWithoutOutboundURLsLandsOnDetail() {
	decision := s.resolver.Resolve(context.Background(), "aircon-quiet", domain.SourceLine)

	s.Equal("/products/aircon-quiet", decision.TargetURL)
	s.Equal(OutcomeDetail, decision.Outcome)
	// Still a social visit, so it is still attributed.
	s.Len(s.tracker.Snapshot(), 1)
}

func (s *ResolverSuite) TestDirectVisitGoesToDetailUnrecorded() {
	decision := s.resolver.Resolve(context.Background(), "fridge-5star", domain.SourceDirect)

	s.Equal("/products/fridge-5star", decision.TargetURL)
	s.Equal(OutcomeDetail, decision.Outcome)
	s.Empty(s.tracker.Snapshot())
}

func (s *ResolverSuite) TestUnknownSlugRedirectsToRoot() {
	decision := s.resolver.Resolve(context.Background(), "no-such-product", domain.SourceFacebook)

	s.Equal(SiteRoot, decision.TargetURL)
	s.Equal(OutcomeNotFound, decision.Outcome)
	s.Empty(s.tracker.Snapshot(), "unknown products are never attributed")
}

func (s *ResolverSuite) TestCatalogErrorRedirectsToRoot() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := NewResolver(failingFinder{err: errors.New("connection reset")}, s.tracker, logger, nil)

	decision := resolver.Resolve(context.Background(), "fridge-5star", domain.SourceFacebook)

	s.Equal(SiteRoot, decision.TargetURL)
	s.Equal(OutcomeError, decision.Outcome)
	s.Empty(s.tracker.Snapshot())
}

func (s *ResolverSuite) TestNotFoundErrorIsNotTreatedAsFailure() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := NewResolver(failingFinder{err: catalog.ErrNotFound}, s.tracker, logger, nil)

	decision := resolver.Resolve(context.Background(), "anything", domain.SourceDirect)
	s.Equal(OutcomeNotFound, decision.Outcome)
}

func (s *ResolverSuite) TestAttributionFailureDoesNotAbortRedirect() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := NewResolver(s.products, failingRecorder{}, logger, nil)

	decision := resolver.Resolve(context.Background(), "fridge-5star", domain.SourceFacebook)

	s.Equal("https://aff.example/x", decision.TargetURL)
	s.Equal(OutcomeAffiliate, decision.Outcome)
}
