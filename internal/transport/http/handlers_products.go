package httptransport

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"comparo/internal/catalog"
	"comparo/internal/platform/middleware"
	"comparo/internal/redirect"
	"comparo/internal/transport/http/shared"
	dErrors "comparo/pkg/domain-errors"
)

type productResponse struct {
	ID             string `json:"id"`
	Slug           string `json:"slug"`
	Name           string `json:"name"`
	AffiliateURL   string `json:"affiliate_url,omitempty"`
	MarketplaceURL string `json:"marketplace_url,omitempty"`
}

// handleProductDetail serves the catalog record for the detail page.
func (h *Handler) handleProductDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	product, err := h.products.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "product not found"))
			return
		}
		h.logger.ErrorContext(ctx, "product lookup failed",
			"error", err,
			"slug", slug,
			"request_id", middleware.GetRequestID(ctx),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "product lookup failed"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, productResponse{
		ID:             product.ID,
		Slug:           product.Slug,
		Name:           product.Name,
		AffiliateURL:   product.AffiliateURL,
		MarketplaceURL: product.MarketplaceURL,
	})
}

// handleProductVisit is the outbound-click flow: classify the referral,
// resolve the destination, emit exactly one redirect. The resolver already
// guarantees every failure path terminates in a redirect.
func (h *Handler) handleProductVisit(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	source := redirect.ClassifyReferral(r.URL.Query())

	decision := h.resolver.Resolve(r.Context(), slug, source)
	http.Redirect(w, r, decision.TargetURL, http.StatusFound)
}
