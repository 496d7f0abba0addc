package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

type authContextKey string

// contextKeySubject carries the resolved subject id for the audit log line
// only. Handlers receive the subject as an explicit argument instead.
const contextKeySubject authContextKey = "taskvault-subject"

type contextSetter interface {
	SetContext(context.Context)
}

// authedHandler is a handler that runs only after authentication, with the
// verified subject identifier resolved once at the request boundary.
type authedHandler func(w http.ResponseWriter, req *http.Request, subjectID string)

// requireAuth ensures the request has a valid bearer token before invoking
// the handler, passing the resolved subject explicitly.
func (r *Router) requireAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		token, err := bearerToken(req.Header.Get("Authorization"))
		if err != nil {
			r.logger.Warn("authorization header invalid", "error", err, "path", req.URL.Path)
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		subject, err := r.auth.Authorize(token)
		if err != nil {
			// Failure subtype is already logged by the auth service;
			// the response stays generic.
			writeError(w, http.StatusUnauthorized, "authentication failed")
			return
		}
		ctx := context.WithValue(req.Context(), contextKeySubject, subject)
		if setter, ok := w.(contextSetter); ok {
			setter.SetContext(ctx)
		}
		next(w, req.WithContext(ctx), subject)
	}
}

// subjectFromContext extracts the authenticated subject for audit logging.
func subjectFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(contextKeySubject)
	if value == nil {
		return "", false
	}
	subject, ok := value.(string)
	return subject, ok
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("empty bearer token")
	}
	return token, nil
}
