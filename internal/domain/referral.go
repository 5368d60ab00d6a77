package domain

// ReferralSource identifies the channel a product visit arrived from.
// Closed set; unknown inputs normalize to SourceDirect.
type ReferralSource string

const (
	SourceFacebook ReferralSource = "facebook"
	SourceTwitter  ReferralSource = "twitter"
	SourceWhatsApp ReferralSource = "whatsapp"
	SourceLine     ReferralSource = "line"
	SourceDirect   ReferralSource = "direct"
)

var knownSources = map[ReferralSource]struct{}{
	SourceFacebook: {},
	SourceTwitter:  {},
	SourceWhatsApp: {},
	SourceLine:     {},
	SourceDirect:   {},
}

// ParseReferralSource maps a raw source string onto the closed set,
// falling back to SourceDirect for anything it does not recognize.
func ParseReferralSource(raw string) ReferralSource {
	if _, ok := knownSources[ReferralSource(raw)]; ok {
		return ReferralSource(raw)
	}
	return SourceDirect
}

// Social reports whether the source counts as a social referral. Only
// social visits are attributed.
func (s ReferralSource) Social() bool {
	_, known := knownSources[s]
	return known && s != SourceDirect
}
