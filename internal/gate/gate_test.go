package gate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"comparo/internal/domain"
	"comparo/internal/gate/mocks"
	"comparo/internal/platform/metrics"
	"comparo/internal/session"
)

//go:generate mockgen -source=gate.go -destination=mocks/gate_mocks.go -package=mocks CredentialSource,IdentityProvider

type GateSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	sessions   *mocks.MockCredentialSource
	identities *mocks.MockIdentityProvider
	gate       *Gate
}

func TestGateSuite(t *testing.T) {
	suite.Run(t, new(GateSuite))
}

func (s *GateSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.sessions = mocks.NewMockCredentialSource(s.ctrl)
	s.identities = mocks.NewMockIdentityProvider(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.gate = New(DefaultClassifier(), s.sessions, s.identities, logger, metrics.NewWith(prometheus.NewRegistry()))
}

func (s *GateSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *GateSuite) validSession() {
	cred := domain.Credential{AccessToken: "token-abc"}
	s.sessions.EXPECT().Find(gomock.Any(), "sess-1").Return(cred, nil)
	s.identities.EXPECT().Validate(cred).Return(domain.Identity{UserID: "usr-1", Email: "u@example.com"}, nil)
}

func (s *GateSuite) TestPublicPathAllowsWithoutCredential() {
	decision := s.gate.Evaluate(context.Background(), "/products/fridge-5star", "")
	s.Equal(ActionAllow, decision.Action)
	s.Equal(ClassPublic, decision.Class)
}

func (s *GateSuite) TestPublicPathNeverConsultsSession() {
	// No EXPECT on the session store: a lookup would fail the test. This
	// is what prevents login loops on public pages with a broken session.
	decision := s.gate.Evaluate(context.Background(), "/", "sess-1")
	s.Equal(ActionAllow, decision.Action)
}

func (s *GateSuite) TestProtectedPathWithoutSessionDeniesToLogin() {
	decision := s.gate.Evaluate(context.Background(), "/account", "")
	s.Equal(ActionDenyToLogin, decision.Action)
	s.Equal("/login?redirectTo=%2Faccount", decision.Target)
}

func (s *GateSuite) TestProtectedPathWithUnknownSessionDeniesToLogin() {
	s.sessions.EXPECT().Find(gomock.Any(), "sess-gone").Return(domain.Credential{}, session.ErrNotFound)

	decision := s.gate.Evaluate(context.Background(), "/account", "sess-gone")
	s.Equal(ActionDenyToLogin, decision.Action)
}

func (s *GateSuite) TestProtectedPathWithExpiredCredentialDeniesToLogin() {
	// No EXPECT on Validate: the stored expiry is checked before the
	// token ever reaches the identity provider.
	cred := domain.Credential{AccessToken: "stale", ExpiresAt: time.Now().Add(-time.Minute)}
	s.sessions.EXPECT().Find(gomock.Any(), "sess-1").Return(cred, nil)

	decision := s.gate.Evaluate(context.Background(), "/account", "sess-1")
	s.Equal(ActionDenyToLogin, decision.Action)
	s.Equal("/login?redirectTo=%2Faccount", decision.Target)
}

func (s *GateSuite) TestProtectedPathWithInvalidCredentialDeniesToLogin() {
	cred := domain.Credential{AccessToken: "expired"}
	s.sessions.EXPECT().Find(gomock.Any(), "sess-1").Return(cred, nil)
	s.identities.EXPECT().Validate(cred).Return(domain.Identity{}, errors.New("token has expired"))

	decision := s.gate.Evaluate(context.Background(), "/account", "sess-1")
	s.Equal(ActionDenyToLogin, decision.Action)
}

func (s *GateSuite) TestProtectedPathWithValidCredentialAllows() {
	s.validSession()

	decision := s.gate.Evaluate(context.Background(), "/account", "sess-1")
	s.Equal(ActionAllow, decision.Action)
}

func (s *GateSuite) TestAdminPathWithoutSessionDeniesToLogin() {
	decision := s.gate.Evaluate(context.Background(), "/admin/dashboard", "")
	s.Equal(ActionDenyToLogin, decision.Action)
	s.Equal("/login?redirectTo=%2Fadmin%2Fdashboard", decision.Target)
}

func (s *GateSuite) TestAdminPathWithAdminRoleAllows() {
	s.validSession()
	s.identities.EXPECT().ResolveRole(gomock.Any(), "usr-1").Return(domain.RoleAdmin, nil)

	decision := s.gate.Evaluate(context.Background(), "/admin/dashboard", "sess-1")
	s.Equal(ActionAllow, decision.Action)
}

func (s *GateSuite) TestAdminPathWithMemberRoleDeniesToUnauthorized() {
	s.validSession()
	s.identities.EXPECT().ResolveRole(gomock.Any(), "usr-1").Return(domain.RoleMember, nil)

	decision := s.gate.Evaluate(context.Background(), "/admin/dashboard", "sess-1")
	s.Equal(ActionDenyToUnauthorized, decision.Action)
	s.Equal(UnauthorizedPath, decision.Target)
}

func (s *GateSuite) TestAdminPathRoleLookupErrorFailsClosedToLogin() {
	// An indeterminate identity goes back to login, never to
	// /unauthorized, which implies a confirmed-but-insufficient one.
	s.validSession()
	s.identities.EXPECT().ResolveRole(gomock.Any(), "usr-1").Return(domain.RoleAnonymous, errors.New("backend unavailable"))

	decision := s.gate.Evaluate(context.Background(), "/admin/dashboard", "sess-1")
	s.Equal(ActionDenyToLogin, decision.Action)
	s.Equal("/login?redirectTo=%2Fadmin%2Fdashboard", decision.Target)
}

func (s *GateSuite) TestEvaluateIsIdempotent() {
	for range 2 {
		s.validSession()
		s.identities.EXPECT().ResolveRole(gomock.Any(), "usr-1").Return(domain.RoleMember, nil)
	}

	first := s.gate.Evaluate(context.Background(), "/admin/dashboard", "sess-1")
	second := s.gate.Evaluate(context.Background(), "/admin/dashboard", "sess-1")
	s.Equal(first, second)
}

func (s *GateSuite) serve(path, sessionID string) *httptest.ResponseRecorder {
	handler := s.gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("handled"))
	}))

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sessionID})
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func (s *GateSuite) TestMiddlewareAdminDenialRedirectsWithNoStoreHeaders() {
	rr := s.serve("/admin/dashboard", "")

	s.Equal(http.StatusSeeOther, rr.Code)
	s.Equal("/login?redirectTo=%2Fadmin%2Fdashboard", rr.Header().Get("Location"))
	s.Equal("no-cache, no-store, must-revalidate", rr.Header().Get("Cache-Control"))
	s.Equal("no-cache", rr.Header().Get("Pragma"))
}

func (s *GateSuite) TestMiddlewareAdminMemberRedirectsToUnauthorized() {
	s.validSession()
	s.identities.EXPECT().ResolveRole(gomock.Any(), "usr-1").Return(domain.RoleMember, nil)

	rr := s.serve("/admin/dashboard", "sess-1")

	s.Equal(http.StatusSeeOther, rr.Code)
	s.Equal("/unauthorized", rr.Header().Get("Location"))
}

func (s *GateSuite) TestMiddlewareAllowPassesRequestThroughUnmodified() {
	rr := s.serve("/products/fridge-5star", "")

	s.Equal(http.StatusOK, rr.Code)
	s.Equal("handled", rr.Body.String())
	s.Empty(rr.Header().Get("Cache-Control"))
}

func (s *GateSuite) TestMiddlewareProtectedDenialOmitsAdminCacheHeaders() {
	rr := s.serve("/account", "")

	s.Equal(http.StatusSeeOther, rr.Code)
	s.Equal("/login?redirectTo=%2Faccount", rr.Header().Get("Location"))
	s.Empty(rr.Header().Get("Cache-Control"))
}
