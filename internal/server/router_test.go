// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/numdict/internal/compare"
	"github.com/pdiddy/numdict/internal/logging"
	"github.com/pdiddy/numdict/internal/metrics"
	"github.com/pdiddy/numdict/pkg/types"
)

func newTestRouter(t *testing.T, cmp *compare.Client) (*httptest.Server, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	ts := httptest.NewServer(NewRouter(RouterConfig{
		Compare:      cmp,
		Metrics:      m,
		Logger:       logging.NewNop(),
		MaxBodyBytes: 4096,
		Version:      "test",
	}))
	t.Cleanup(ts.Close)
	return ts, m
}

func post(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	resp, err := http.Post(url, "application/json", &buf)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts, _ := newTestRouter(t, nil)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))
	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, map[string]string{"status": "ok", "version": "test"}, got)
}

func TestScan(t *testing.T) {
	ts, _ := newTestRouter(t, nil)

	resp := post(t, ts.URL+"/api/v1/scan", ScanRequest{Text: "The car went 5 km.\nIt cost $3.50 and 5 km."})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got ScanResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Len(t, got.Segments, 2)
	require.Len(t, got.Matches, 3)
	assert.Equal(t, "5 km", got.Matches[0].Match)
	assert.Equal(t, 13, got.Matches[0].StartIndex)
	assert.Equal(t, "$3.50", got.Matches[1].Match)
	assert.Equal(t, "USD", got.Matches[1].Currency)
	assert.Equal(t, 1, got.Matches[1].Segment)
}

func TestScanUniqueHTML(t *testing.T) {
	ts, _ := newTestRouter(t, nil)

	resp := post(t, ts.URL+"/api/v1/scan", ScanRequest{
		Text:   "<p>Ran 5 km</p><p>Then 5 KM more</p>",
		Format: "html",
		Unique: true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got ScanResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Matches, 1)
	assert.Equal(t, "html/body/p", got.Matches[0].Path)
}

func TestScanEmpty(t *testing.T) {
	ts, _ := newTestRouter(t, nil)

	resp := post(t, ts.URL+"/api/v1/scan", ScanRequest{Text: "nothing to see"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"matches":[]`)
}

func TestScanBadRequests(t *testing.T) {
	ts, _ := newTestRouter(t, nil)

	resp := post(t, ts.URL+"/api/v1/scan", "{not json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = post(t, ts.URL+"/api/v1/scan", ScanRequest{Text: "5 km", Format: "pdf"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = post(t, ts.URL+"/api/v1/scan", ScanRequest{Text: strings.Repeat("5 km ", 2000)})
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	r, err := http.Get(ts.URL + "/api/v1/scan")
	require.NoError(t, err)
	r.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, r.StatusCode)
}

func TestCompareNotConfigured(t *testing.T) {
	ts, _ := newTestRouter(t, nil)
	resp := post(t, ts.URL+"/api/v1/compare", ScanRequest{Text: "5 km"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCompare(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<queryresult success="true" error="false"><pod id="Comparison"><subpod><plaintext>≈ 0.12 × marathon (42 km)</plaintext></subpod></pod></queryresult>`)
	}))
	defer upstream.Close()

	cmp := compare.New(types.LookupConfig{BaseURL: upstream.URL, AppID: "id"},
		compare.WithHTTPClient(upstream.Client()), compare.WithLogger(logging.NewNop()))
	ts, _ := newTestRouter(t, cmp)

	resp := post(t, ts.URL+"/api/v1/compare", ScanRequest{Text: "Ran 5 km with 3 friends."})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got CompareResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Matches, 2)
	assert.Equal(t, "5 km", got.Matches[0].Match)
	assert.Equal(t, "≈ 0.12 × marathon", got.Matches[0].Comparison.Result)
	assert.Equal(t, compare.SourceRemote, got.Matches[0].Comparison.Source)
	assert.Equal(t, "3", got.Matches[1].Match)
	assert.Empty(t, got.Matches[1].Comparison.Result)
}

func TestMetricsEndpoint(t *testing.T) {
	ts, _ := newTestRouter(t, nil)
	post(t, ts.URL+"/api/v1/scan", ScanRequest{Text: "5 km"})

	// The request counter is recorded after the response is written.
	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get(ts.URL + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return false
		}
		body = string(b)
		return strings.Contains(body, `numdict_http_requests_total{code="200",route="/api/v1/scan"} 1`)
	}, 2*time.Second, 10*time.Millisecond)

	assert.Contains(t, body, `numdict_matches_total{kind="unit"} 1`)
}

func TestServerServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := New(types.ServerConfig{}, NewRouter(RouterConfig{Logger: logging.NewNop()}), logging.NewNop())
	assert.Equal(t, defaultAddr, s.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
