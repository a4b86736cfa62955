package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/middleware"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

var testPrincipal = &models.Principal{ID: 1, Email: "alice@example.com"}

// withPrincipal имитирует Authenticator: кладет пользователя в контекст.
func withPrincipal(p *models.Principal) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p != nil {
				r = r.WithContext(middleware.WithPrincipal(r.Context(), p))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newRouter(p *models.Principal, routes func(r chi.Router)) *chi.Mux {
	r := chi.NewRouter()
	r.Use(withPrincipal(p))
	routes(r)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, h, method, target, strings.NewReader(body), "application/json")
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}
