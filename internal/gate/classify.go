package gate

import "strings"

// PathClass tiers every route into one of three access classes.
type PathClass string

const (
	ClassPublic    PathClass = "public"
	ClassProtected PathClass = "protected"
	ClassAdmin     PathClass = "admin"
)

// Classifier maps request paths onto path classes. Classification is total
// and deterministic given only the path string; overlapping prefixes
// resolve most-restrictive-first (admin before protected before public).
type Classifier struct {
	adminPrefixes     []string
	protectedPrefixes []string
}

// NewClassifier builds a classifier over explicit prefix lists.
func NewClassifier(adminPrefixes, protectedPrefixes []string) *Classifier {
	return &Classifier{
		adminPrefixes:     adminPrefixes,
		protectedPrefixes: protectedPrefixes,
	}
}

// DefaultClassifier covers the site's route map: the admin back office and
// the account-scoped pages. Everything else is public.
func DefaultClassifier() *Classifier {
	return NewClassifier(
		[]string{"/admin"},
		[]string{"/account", "/favorites", "/compare/saved"},
	)
}

// Classify returns the class for a path. Admin wins over protected so a
// protected prefix nested under /admin can never downgrade the check.
func (c *Classifier) Classify(path string) PathClass {
	for _, prefix := range c.adminPrefixes {
		if matchesPrefix(path, prefix) {
			return ClassAdmin
		}
	}
	for _, prefix := range c.protectedPrefixes {
		if matchesPrefix(path, prefix) {
			return ClassProtected
		}
	}
	return ClassPublic
}

// matchesPrefix matches on whole path segments: /admin and /admin/x match,
// /administrator does not.
func matchesPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
