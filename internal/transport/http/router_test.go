package httptransport

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cpfhandler "switchyard/internal/cpf/handler"
	cpfservice "switchyard/internal/cpf/service"
	"switchyard/internal/eligibility"
	"switchyard/internal/experiment"
	memorysink "switchyard/internal/experiment/sink/memory"
	jwttoken "switchyard/internal/jwt_token"
	rollouthandler "switchyard/internal/rollout/handler"
	rolloutservice "switchyard/internal/rollout/service"
	"switchyard/internal/rollout/store"
)

func newTestRouter(t *testing.T) (http.Handler, *jwttoken.JWTService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	rollout, err := rolloutservice.New(store.NewMemoryStore())
	require.NoError(t, err)

	policy, err := eligibility.NewPolicy(rollout)
	require.NoError(t, err)

	runner, err := experiment.New(rollout, memorysink.New())
	require.NoError(t, err)

	svc, err := cpfservice.New(policy, runner)
	require.NoError(t, err)

	jwtService := jwttoken.NewJWTService("test-signing-key", "switchyard", "switchyard-admin")

	router := NewRouter(Deps{
		Logger:         logger,
		CPF:            cpfhandler.New(svc, logger),
		Rollout:        rollouthandler.New(rollout, logger),
		TokenValidator: jwttoken.NewJWTServiceAdapter(jwtService),
	})
	return router, jwtService
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/rollout", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutes_AcceptValidToken(t *testing.T) {
	router, jwtService := newTestRouter(t)

	token, err := jwtService.GenerateAdminToken("ops@example.com", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/rollout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicRoute_NoTokenNeeded(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/cpf/format",
		bytes.NewReader([]byte(`{"subject_id": 1, "cpf": "123.456.789-09"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
