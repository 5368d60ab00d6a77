// Package device turns raw User-Agent strings into the short display form
// stored on attribution events, so analytics dashboards don't have to
// re-parse user agents downstream.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent produces a human-readable "Browser on OS" string. Empty
// input yields "Unknown Device"; partial parses degrade gracefully.
func ParseUserAgent(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "Unknown Device"
	}

	ua := useragent.New(raw)
	browser, _ := ua.Browser()
	os := ua.OSInfo().Name
	if os == "" {
		os = ua.Platform()
	}

	switch {
	case browser != "" && os != "":
		return browser + " on " + os
	case browser != "":
		return browser
	case os != "":
		return "Unknown Browser on " + os
	default:
		return "Unknown Device"
	}
}
