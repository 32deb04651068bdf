package httptransport

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docseal/internal/audit"
	"docseal/internal/diff"
	diffhandler "docseal/internal/diff/handler"
	"docseal/internal/duplicate"
	duplicatehandler "docseal/internal/duplicate/handler"
	"docseal/internal/fingerprint"
	jwttoken "docseal/internal/jwt_token"
	"docseal/internal/ledger"
	"docseal/internal/proof"
	proofhandler "docseal/internal/proof/handler"
	"docseal/internal/verification"
	verificationhandler "docseal/internal/verification/handler"
)

func newTestRouter(t *testing.T) (http.Handler, *jwttoken.JWTService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := ledger.NewInMemoryStore()
	auditor := audit.NewPublisher(audit.NewInMemoryStore())
	fingerprints := fingerprint.NewService()
	jwtService := jwttoken.NewJWTService("test-key", "docseal", "docseal-api")

	router := NewRouter(Deps{
		Logger:       logger,
		Validator:    jwttoken.NewJWTServiceAdapter(jwtService),
		Verification: verificationhandler.New(verification.NewService(store, fingerprints, verification.NewStats(), nil, auditor, logger), logger),
		Diff:         diffhandler.New(diff.NewService(logger, nil), logger),
		Duplicate:    duplicatehandler.New(duplicate.NewService(store, nil, auditor, logger), fingerprints, logger),
		Proof:        proofhandler.New(proof.NewService(store, auditor, logger), logger),
	})
	return router, jwtService
}

func TestHealthzIsOpen(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsIsOpen(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIRequiresBearerToken(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/verify", "/compare", "/duplicates/check", "/proofs/generate", "/proofs/verify"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	req := httptest.NewRequest(http.MethodGet, "/verification/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatedVerifyRoundtrip(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token, err := jwtService.GenerateAccessToken("user-1", "seal-ui", time.Hour)
	require.NoError(t, err)

	body := `{"hash":"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"}`
	req := httptest.NewRequest(http.MethodPost, "/verify", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"not_found"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
