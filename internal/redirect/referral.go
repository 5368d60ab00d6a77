package redirect

import (
	"net/url"

	"comparo/internal/domain"
)

// Query parameters recognized by the redirect flow. The click identifier
// marks a social referral by presence alone; its value is an opaque token
// assigned by the network and is not inspected.
const (
	SourceParam  = "source"
	ClickIDParam = "fbclid"
)

// ClassifyReferral maps referral query hints onto a referral source. The
// mapping is total with documented precedence: a recognized source value
// wins, then click-identifier presence marks a facebook origin, and
// everything else is direct. Unknown source values normalize to direct
// rather than failing.
func ClassifyReferral(query url.Values) domain.ReferralSource {
	if raw := query.Get(SourceParam); raw != "" {
		if src := domain.ParseReferralSource(raw); src != domain.SourceDirect {
			return src
		}
	}
	if query.Has(ClickIDParam) {
		return domain.SourceFacebook
	}
	return domain.SourceDirect
}
