package domain

// Product is the catalog record the redirect flow cares about. The full
// catalog row carries pricing and copy as well, but the core only reads
// identity and outbound URLs.
type Product struct {
	ID             string
	Slug           string
	Name           string
	AffiliateURL   string // empty when no affiliate terms exist
	MarketplaceURL string // empty when not listed on a marketplace
}

// DetailPath is the internal detail page for the product, the fallback
// destination when no outbound URL applies.
func (p Product) DetailPath() string {
	return "/products/" + p.Slug
}
