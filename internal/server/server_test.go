package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thegranduke/ATS-sub001/internal/config"
	"github.com/thegranduke/ATS-sub001/internal/store"
	"github.com/thegranduke/ATS-sub001/internal/types"
)

// testFixture holds the seeded identities shared by the handler tests.
type testFixture struct {
	srv     *Server
	mem     *store.Memory
	tenantA uuid.UUID
	tenantB uuid.UUID
	userA   uuid.UUID
	tokenA  string
}

func newTestServer(t *testing.T) *testFixture {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	mem := store.NewMemory()
	tenantA := uuid.New()
	tenantB := uuid.New()
	userA := uuid.New()

	mem.PutTenant(types.Tenant{ID: tenantA, Name: "Acme Corp", CreatedAt: time.Now().UTC()})
	mem.PutTenant(types.Tenant{ID: tenantB, Name: "Globex", CreatedAt: time.Now().UTC()})
	mem.PutUser(types.User{ID: userA, TenantID: tenantA, Name: "Alex", Email: "alex@acme.test", Role: types.RoleAdmin})

	stores := Stores{
		Tenants:    mem,
		Users:      mem,
		Jobs:       mem,
		Candidates: mem,
		Events:     mem,
		Audit:      mem,
		Sessions:   mem,
	}

	jwtService := NewJWTService(&config.JWTConfig{Secret: "test-secret-key", ExpirationHours: 1})
	srv := newServer(Config{Port: 0}, stores, jwtService)
	t.Cleanup(srv.rateLimiter.Stop)

	tokenA, err := jwtService.GenerateToken(userA)
	require.NoError(t, err)

	return &testFixture{
		srv:     srv,
		mem:     mem,
		tenantA: tenantA,
		tenantB: tenantB,
		userA:   userA,
		tokenA:  tokenA,
	}
}

// do runs one request through the full middleware chain and decodes the JSON body.
func (f *testFixture) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.srv.handler.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

func TestHealth(t *testing.T) {
	f := newTestServer(t)

	rec, body := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	f := newTestServer(t)

	rec, _ := f.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIRequiresAuth(t *testing.T) {
	f := newTestServer(t)

	paths := []string{
		"/api/tenants",
		"/api/jobs",
		"/api/candidates",
		"/api/reports/hiring-metrics",
	}
	for _, path := range paths {
		rec, _ := f.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestAPIRejectsBadToken(t *testing.T) {
	f := newTestServer(t)

	rec, _ := f.do(t, http.MethodGet, "/api/jobs", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
