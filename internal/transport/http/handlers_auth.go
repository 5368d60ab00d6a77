package httptransport

import (
	"encoding/json"
	"net/http"

	"comparo/internal/platform/middleware"
	"comparo/internal/session"
	"comparo/internal/transport/http/shared"
	dErrors "comparo/pkg/domain-errors"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Remember selects the durable session policy; default is an
	// ephemeral session cleared at tab close.
	Remember bool `json:"remember"`
}

type loginResponse struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// handleLogin authenticates the user and establishes the session cookie.
// The redirectTo query parameter set by gate denials is echoed back so the
// client can return the visitor to the page they were headed for.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "email and password are required"))
		return
	}

	result, err := h.authSvc.Login(ctx, req.Email, req.Password, req.Remember)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeUnauthorized) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "login failed",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "login failed"))
		return
	}

	session.SetCookie(w, result.SessionID, result.Durable, h.durableTTL)
	shared.WriteJSON(w, http.StatusOK, loginResponse{
		UserID:     result.Identity.UserID,
		Email:      result.Identity.Email,
		Role:       string(result.Identity.Role),
		RedirectTo: sanitizeRedirectTo(r.URL.Query().Get("redirectTo")),
	})
}

// handleLogout clears the stored credential and the cookie. Always
// succeeds from the visitor's point of view.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := session.SessionIDFromRequest(r)

	if err := h.authSvc.Logout(ctx, sessionID); err != nil {
		h.logger.ErrorContext(ctx, "logout failed to clear session",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
	}
	session.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleLoginPage is the destination of gate denials. Rendering is out of
// scope here; the JSON body carries what a front end needs to draw it.
func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, http.StatusOK, map[string]string{
		"page":        "login",
		"redirect_to": sanitizeRedirectTo(r.URL.Query().Get("redirectTo")),
	})
}

func (h *Handler) handleUnauthorized(w http.ResponseWriter, _ *http.Request) {
	shared.WriteJSON(w, http.StatusForbidden, map[string]string{
		"page":              "unauthorized",
		"error":             "forbidden",
		"error_description": "your account does not have access to this page",
	})
}

// sanitizeRedirectTo only accepts site-local paths so a crafted login link
// cannot bounce a visitor to a foreign host.
func sanitizeRedirectTo(raw string) string {
	if raw == "" || raw[0] != '/' {
		return ""
	}
	if len(raw) > 1 && (raw[1] == '/' || raw[1] == '\\') {
		// "//evil.example" is protocol-relative, and browsers treat
		// "/\evil.example" the same way.
		return ""
	}
	return raw
}
