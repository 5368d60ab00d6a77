// Package gate intercepts every inbound request and decides whether the
// visitor may reach the path. Denials are always redirects; no request in
// this flow ever sees a raw error page.
package gate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"comparo/internal/domain"
	"comparo/internal/platform/metrics"
	"comparo/internal/platform/middleware"
	"comparo/internal/session"
)

// Action is the terminal state of a gate evaluation.
type Action string

const (
	ActionAllow              Action = "allow"
	ActionDenyToLogin        Action = "deny_to_login"
	ActionDenyToUnauthorized Action = "deny_to_unauthorized"
)

// Decision is the gate's answer for a single request. Evaluation is a pure
// function of (path, credential, role-lookup result): identical inputs
// always produce identical decisions.
type Decision struct {
	Action Action
	Class  PathClass
	// Target is the redirect destination for deny actions.
	Target string
	// Reason names which failure produced a denial, for logs only.
	Reason string
}

// CredentialSource is the session store surface the gate consumes. The
// gate only reads; it never mutates session state.
type CredentialSource interface {
	Find(ctx context.Context, sessionID string) (domain.Credential, error)
}

// IdentityProvider validates credentials and resolves roles.
type IdentityProvider interface {
	Validate(cred domain.Credential) (domain.Identity, error)
	ResolveRole(ctx context.Context, userID string) (domain.Role, error)
}

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// Gate evaluates access decisions for inbound requests.
type Gate struct {
	classifier *Classifier
	sessions   CredentialSource
	identities IdentityProvider
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func New(
	classifier *Classifier,
	sessions CredentialSource,
	identities IdentityProvider,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Gate {
	return &Gate{
		classifier: classifier,
		sessions:   sessions,
		identities: identities,
		logger:     logger,
		metrics:    m,
	}
}

// Evaluate classifies the path and produces a terminal decision. Role
// lookup errors on admin paths fail closed to the login redirect: an
// indeterminate identity must not reach /unauthorized, which implies a
// confirmed-but-insufficient one.
func (g *Gate) Evaluate(ctx context.Context, path, sessionID string) Decision {
	class := g.classifier.Classify(path)
	if class == ClassPublic {
		// Public paths never consult the credential, so an expired
		// session can never cause a login loop on them.
		return Decision{Action: ActionAllow, Class: class}
	}

	identity, ok := g.resolveIdentity(ctx, sessionID)
	if !ok {
		return Decision{
			Action: ActionDenyToLogin,
			Class:  class,
			Target: loginRedirect(path),
			Reason: "no valid credential",
		}
	}

	if class == ClassProtected {
		return Decision{Action: ActionAllow, Class: class}
	}

	role, err := g.identities.ResolveRole(ctx, identity.UserID)
	if err != nil {
		return Decision{
			Action: ActionDenyToLogin,
			Class:  class,
			Target: loginRedirect(path),
			Reason: "role lookup failed",
		}
	}
	if role != domain.RoleAdmin {
		return Decision{
			Action: ActionDenyToUnauthorized,
			Class:  class,
			Target: UnauthorizedPath,
			Reason: "role " + string(role) + " is not admin",
		}
	}
	return Decision{Action: ActionAllow, Class: class}
}

// resolveIdentity loads and validates the current credential. Absent,
// expired, and rejected credentials all collapse to "not authenticated";
// the caller does not need to distinguish them.
func (g *Gate) resolveIdentity(ctx context.Context, sessionID string) (domain.Identity, bool) {
	if sessionID == "" {
		return domain.Identity{}, false
	}
	cred, err := g.sessions.Find(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			g.logger.WarnContext(ctx, "session lookup failed, treating as unauthenticated",
				"error", err,
				"request_id", middleware.GetRequestID(ctx),
			)
		}
		return domain.Identity{}, false
	}
	if cred.Expired(time.Now()) {
		// The stored expiry short-circuits token validation; the
		// identity provider would reject the token anyway.
		return domain.Identity{}, false
	}
	identity, err := g.identities.Validate(cred)
	if err != nil {
		return domain.Identity{}, false
	}
	return identity, true
}

// Middleware applies gate decisions to the request pipeline. Allow passes
// the request through unmodified; denials short-circuit with a redirect.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		decision := g.Evaluate(ctx, r.URL.Path, session.SessionIDFromRequest(r))

		if g.metrics != nil {
			g.metrics.GateDecisions.WithLabelValues(string(decision.Class), string(decision.Action)).Inc()
		}

		if decision.Action == ActionAllow {
			next.ServeHTTP(w, r)
			return
		}

		g.logger.InfoContext(ctx, "gate denied request",
			"path", r.URL.Path,
			"class", string(decision.Class),
			"action", string(decision.Action),
			"reason", decision.Reason,
			"request_id", middleware.GetRequestID(ctx),
		)

		if decision.Class == ClassAdmin {
			// An admin allow/deny must never be replayed from a cache
			// for a different subsequent session state.
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		}
		http.Redirect(w, r, decision.Target, http.StatusSeeOther)
	})
}

// loginRedirect carries the original path so login can send the visitor
// back where they were headed.
func loginRedirect(path string) string {
	return LoginPath + "?redirectTo=" + url.QueryEscape(path)
}
