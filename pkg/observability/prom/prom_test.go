package prom

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ontodag/pkg/errors"
	"github.com/matzehuels/ontodag/pkg/observability"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_Exposition(t *testing.T) {
	ctx := context.Background()
	m := New()

	m.OnOperation(ctx, "put", time.Millisecond, nil)
	m.OnOperation(ctx, "put", time.Millisecond, errors.New(errors.ErrCodeUnknownCategory, "unknown category %q", "Dog"))
	m.OnOperation(ctx, "get", time.Millisecond, fmt.Errorf("plain"))
	m.OnSessions(ctx, 2)
	m.OnStoreHit(ctx, "redis")
	m.OnStoreMiss(ctx, "redis")
	m.OnStoreSet(ctx, "redis", 128)
	m.OnRequest(ctx, http.MethodGet, "/sessions/{id}/dag", http.StatusOK, time.Millisecond)

	body := scrape(t, m)
	for _, want := range []string{
		`ontodag_ontology_operations_total{operation="put",result="ok"} 1`,
		`ontodag_ontology_operations_total{operation="put",result="UNKNOWN_CATEGORY"} 1`,
		`ontodag_ontology_operations_total{operation="get",result="error"} 1`,
		`ontodag_session_live 2`,
		`ontodag_store_requests_total{backend="redis",result="hit"} 1`,
		`ontodag_store_requests_total{backend="redis",result="miss"} 1`,
		`ontodag_store_written_bytes_total{backend="redis"} 128`,
		`ontodag_http_requests_total{method="GET",route="/sessions/{id}/dag",status="200"} 1`,
		`go_goroutines`,
	} {
		assert.Contains(t, body, want)
	}
}

func TestMetrics_PrivateRegistries(t *testing.T) {
	a, b := New(), New()
	a.OnSessions(context.Background(), 5)

	assert.Contains(t, scrape(t, a), "ontodag_session_live 5")
	assert.Contains(t, scrape(t, b), "ontodag_session_live 0")
}

func TestMetrics_Register(t *testing.T) {
	t.Cleanup(observability.Reset)
	m := New()
	m.Register()

	observability.Ontology().OnOperation(context.Background(), "remove", time.Millisecond, nil)
	observability.Store().OnStoreMiss(context.Background(), "file")

	body := scrape(t, m)
	assert.Contains(t, body, `ontodag_ontology_operations_total{operation="remove",result="ok"} 1`)
	assert.Contains(t, body, `ontodag_store_requests_total{backend="file",result="miss"} 1`)
}
