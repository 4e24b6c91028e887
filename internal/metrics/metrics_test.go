package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_IsolatedRegistries(t *testing.T) {
	// Two instances must not collide; each owns its own registry.
	a := New()
	b := New()

	a.RequestsTotal.Inc()

	if got := testutil.ToFloat64(a.RequestsTotal); got != 1 {
		t.Errorf("a requests = %f, want 1", got)
	}
	if got := testutil.ToFloat64(b.RequestsTotal); got != 0 {
		t.Errorf("b requests = %f, want 0", got)
	}
}

func TestMetrics_CountersAccumulate(t *testing.T) {
	m := New()

	m.RequestsTotal.Inc()
	m.RequestsTotal.Inc()
	m.ErrorsTotal.Inc()
	m.TokensProcessed.Add(7)

	if got := testutil.ToFloat64(m.RequestsTotal); got != 2 {
		t.Errorf("requests = %f, want 2", got)
	}
	if got := testutil.ToFloat64(m.ErrorsTotal); got != 1 {
		t.Errorf("errors = %f, want 1", got)
	}
	if got := testutil.ToFloat64(m.TokensProcessed); got != 7 {
		t.Errorf("tokens = %f, want 7", got)
	}
}

func TestMetrics_HandlerExposesAllInstruments(t *testing.T) {
	m := New()
	m.RequestsTotal.Inc()
	m.RequestDuration.Observe(0.05)

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("GET metrics error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body error = %v", err)
	}
	exposition := string(body)

	for _, name := range []string{
		"semembed_requests_total",
		"semembed_errors_total",
		"semembed_tokens_processed_total",
		"semembed_request_duration_seconds",
	} {
		if !strings.Contains(exposition, name) {
			t.Errorf("exposition missing instrument %s", name)
		}
		if !strings.Contains(exposition, "# HELP "+name) {
			t.Errorf("exposition missing HELP line for %s", name)
		}
		if !strings.Contains(exposition, "# TYPE "+name) {
			t.Errorf("exposition missing TYPE line for %s", name)
		}
	}

	if !strings.Contains(exposition, "semembed_requests_total 1") {
		t.Error("requests_total value not exported")
	}
}

func TestMetrics_HandlerIsReadOnly(t *testing.T) {
	m := New()
	m.RequestsTotal.Inc()

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	first := scrape(t, server.URL)
	second := scrape(t, server.URL)

	if first != second {
		t.Error("consecutive scrapes differ without metric updates")
	}
}

func scrape(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET metrics error = %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body error = %v", err)
	}
	return string(body)
}
