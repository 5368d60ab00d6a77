package httptransport

import (
	"net/http"
	"time"

	"comparo/internal/transport/http/shared"
)

type attributionEventResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	ProductSlug    string    `json:"product_slug"`
	Source         string    `json:"source"`
	AffiliateURL   string    `json:"affiliate_url,omitempty"`
	MarketplaceURL string    `json:"marketplace_url,omitempty"`
	UserAgent      string    `json:"user_agent,omitempty"`
	DeviceDisplay  string    `json:"device_display,omitempty"`
	Referrer       string    `json:"referrer,omitempty"`
	ClientIP       string    `json:"client_ip,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// handleListAttributionEvents returns the tracker's snapshot in insertion
// order. The gate has already enforced the admin role by the time this
// runs.
func (h *Handler) handleListAttributionEvents(w http.ResponseWriter, _ *http.Request) {
	events := h.tracker.Snapshot()
	out := make([]attributionEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, attributionEventResponse{
			ID:             e.ID,
			ProductID:      e.ProductID,
			ProductSlug:    e.ProductSlug,
			Source:         string(e.Source),
			AffiliateURL:   e.AffiliateURL,
			MarketplaceURL: e.MarketplaceURL,
			UserAgent:      e.UserAgent,
			DeviceDisplay:  e.DeviceDisplay,
			Referrer:       e.Referrer,
			ClientIP:       e.ClientIP,
			Timestamp:      e.Timestamp,
		})
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"events": out})
}

// handleResetAttributionEvents clears the in-process log. Debug tooling
// only; the durable sink is unaffected.
func (h *Handler) handleResetAttributionEvents(w http.ResponseWriter, _ *http.Request) {
	h.tracker.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAdminDashboard(w http.ResponseWriter, _ *http.Request) {
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"page":         "admin_dashboard",
		"click_events": len(h.tracker.Snapshot()),
	})
}

// handleAccount is the protected sample surface; the gate guarantees a
// valid session before it runs.
func (h *Handler) handleAccount(w http.ResponseWriter, _ *http.Request) {
	shared.WriteJSON(w, http.StatusOK, map[string]string{"page": "account"})
}
