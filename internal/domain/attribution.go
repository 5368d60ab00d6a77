package domain

import "time"

// AttributionEvent records a single referral-sourced product visit. Events
// are immutable once recorded and are never merged or deduplicated here;
// dedup is a downstream analytics concern.
type AttributionEvent struct {
	ID             string
	ProductID      string
	ProductSlug    string
	Source         ReferralSource
	AffiliateURL   string
	MarketplaceURL string
	UserAgent      string
	DeviceDisplay  string
	Referrer       string
	ClientIP       string
	Timestamp      time.Time
}
