package httptransport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRedirectTo(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "site-local path", raw: "/admin/dashboard", want: "/admin/dashboard"},
		{name: "root", raw: "/", want: "/"},
		{name: "path with query", raw: "/account?tab=orders", want: "/account?tab=orders"},
		{name: "absolute url", raw: "https://evil.example", want: ""},
		{name: "relative path", raw: "account", want: ""},
		{name: "protocol-relative", raw: "//evil.example", want: ""},
		{name: "backslash protocol-relative", raw: `/\evil.example`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeRedirectTo(tt.raw))
		})
	}
}
