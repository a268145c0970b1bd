package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/beetlebugorg/gars/internal/cache"
	"github.com/beetlebugorg/gars/internal/server"
	"github.com/beetlebugorg/gars/pkg/gars"
)

// ---- Fake tile cache ----

type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	pingErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return b, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = append([]byte(nil), value...)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeCache) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.data)
}

// ---- Helpers ----

func setupApp(deps *server.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	server.SetupRoutes(app, deps)
	return app
}

func makeDeps(opts ...func(*server.Dependencies)) *server.Dependencies {
	d := &server.Dependencies{
		Grids:     gars.NewGrids(),
		MaxLabels: 5000,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func readBody(t *testing.T, body io.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return b
}

func get(t *testing.T, app *fiber.App, target string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	return resp.StatusCode, readBody(t, resp.Body)
}

func decode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// ---- Health ----

func TestHealth(t *testing.T) {
	app := setupApp(makeDeps())

	status, body := get(t, app, "/v1/health")
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	var result map[string]any
	decode(t, body, &result)
	if result["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", result["status"])
	}
}

func TestReady(t *testing.T) {
	status, body := get(t, setupApp(makeDeps()), "/v1/ready")
	if status != 200 {
		t.Fatalf("expected 200 without cache, got %d: %s", status, body)
	}

	failing := newFakeCache()
	failing.pingErr = errors.New("connection refused")
	app := setupApp(makeDeps(func(d *server.Dependencies) { d.Cache = failing }))

	status, body = get(t, app, "/v1/ready")
	if status != 503 {
		t.Fatalf("expected 503 with unreachable cache, got %d", status)
	}
	var result struct {
		Checks map[string]string `json:"checks"`
	}
	decode(t, body, &result)
	if !strings.Contains(result.Checks["cache"], "connection refused") {
		t.Errorf("cache check = %q", result.Checks["cache"])
	}
}

// ---- Coordinates ----

func TestCoordinate(t *testing.T) {
	app := setupApp(makeDeps())

	tests := []struct {
		path      string
		gars      string
		precision gars.GridType
		quadrant  int
		keypad    int
		bounds    server.BBox
	}{
		{"/v1/gars/361HN", "361HN", gars.ThirtyMinute, 0, 0, server.BBox{0, 0, 0.5, 0.5}},
		{"/v1/gars/361hn3", "361HN3", gars.FifteenMinute, 3, 0, server.BBox{0, 0, 0.25, 0.25}},
		{"/v1/gars/361HN37", "361HN37", gars.FiveMinute, 3, 7, server.BBox{0, 0, 5.0 / 60, 5.0 / 60}},
		{"/v1/gars/361%20HN%2037", "361HN37", gars.FiveMinute, 3, 7, server.BBox{0, 0, 5.0 / 60, 5.0 / 60}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := get(t, app, tt.path)
			if status != 200 {
				t.Fatalf("expected 200, got %d: %s", status, body)
			}

			var resp server.CoordinateResponse
			decode(t, body, &resp)
			if resp.GARS != tt.gars {
				t.Errorf("gars = %q, want %q", resp.GARS, tt.gars)
			}
			if resp.Precision != tt.precision {
				t.Errorf("precision = %s, want %s", resp.Precision, tt.precision)
			}
			if resp.LongitudeBand != 361 || resp.LatitudeBand != "HN" {
				t.Errorf("bands = %d %q, want 361 HN", resp.LongitudeBand, resp.LatitudeBand)
			}
			if resp.Quadrant != tt.quadrant || resp.Keypad != tt.keypad {
				t.Errorf("quadrant, keypad = %d, %d, want %d, %d", resp.Quadrant, resp.Keypad, tt.quadrant, tt.keypad)
			}
			for i := range tt.bounds {
				if !near(resp.Bounds[i], tt.bounds[i]) {
					t.Errorf("bounds = %v, want %v", resp.Bounds, tt.bounds)
					break
				}
			}
			if resp.Southwest.Lon != 0 || resp.Southwest.Lat != 0 {
				t.Errorf("southwest = %+v, want 0,0", resp.Southwest)
			}
		})
	}
}

func TestCoordinateInvalid(t *testing.T) {
	app := setupApp(makeDeps())

	tests := []struct {
		path string
		code string
	}{
		{"/v1/gars/361H", "invalid_format"},
		{"/v1/gars/361HN0", "invalid_format"},
		{"/v1/gars/361IO", "invalid_format"},
		{"/v1/gars/000AA", "out_of_range"},
		{"/v1/gars/721AA", "out_of_range"},
		{"/v1/gars/001RA", "out_of_range"},
	}

	for _, tt := range tests {
		status, body := get(t, app, tt.path)
		if status != 400 {
			t.Errorf("%s: expected 400, got %d", tt.path, status)
			continue
		}
		var apiErr server.APIError
		decode(t, body, &apiErr)
		if apiErr.Code != tt.code {
			t.Errorf("%s: code = %q, want %q", tt.path, apiErr.Code, tt.code)
		}
		if apiErr.RequestID == "" {
			t.Errorf("%s: error has no request id", tt.path)
		}
	}
}

func TestPoint(t *testing.T) {
	app := setupApp(makeDeps())

	tests := []struct {
		query string
		want  string
	}{
		{"lon=0.01&lat=0.01", "361HN37"},
		{"lon=0.01&lat=0.01&precision=thirty_minute", "361HN"},
		{"lon=0.3&lat=0.3&precision=fifteen_minute", "361HN2"},
		{"lon=-180&lat=-90", "001AA37"},
	}

	for _, tt := range tests {
		status, body := get(t, app, "/v1/point?"+tt.query)
		if status != 200 {
			t.Errorf("%s: expected 200, got %d: %s", tt.query, status, body)
			continue
		}
		var resp server.CoordinateResponse
		decode(t, body, &resp)
		if resp.GARS != tt.want {
			t.Errorf("%s: gars = %q, want %q", tt.query, resp.GARS, tt.want)
		}
	}

	for _, query := range []string{"lat=1", "lon=1", "lon=x&lat=1", "lon=1&lat=1&precision=one_degree", "lon=1&lat=1&precision=bogus"} {
		if status, _ := get(t, app, "/v1/point?"+query); status != 400 {
			t.Errorf("%s: expected 400, got %d", query, status)
		}
	}
}

// ---- Labels ----

func TestLabels(t *testing.T) {
	app := setupApp(makeDeps())

	status, body := get(t, app, "/v1/labels?bbox=0.1,0.1,0.9,0.9&type=thirty_minute")
	if status != 200 {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	var resp server.LabelsResponse
	decode(t, body, &resp)
	if resp.Count != 9 || len(resp.Labels) != 9 {
		t.Fatalf("got %d labels, want 9", resp.Count)
	}
	if resp.Labels[0].Text != "361HN" {
		t.Errorf("first label = %q, want 361HN", resp.Labels[0].Text)
	}
	if resp.GridType != gars.ThirtyMinute {
		t.Errorf("grid type = %s", resp.GridType)
	}

	status, body = get(t, app, "/v1/labels?bbox=69,7,98,38")
	if status != 200 {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	decode(t, body, &resp)
	if resp.GridType != gars.OneDegree || resp.Count != 1023 {
		t.Errorf("default labels = %d %s, want 1023 one_degree", resp.Count, resp.GridType)
	}
}

func TestLabelsInvalid(t *testing.T) {
	app := setupApp(makeDeps())

	tests := []struct {
		query string
		code  string
	}{
		{"", "bad_request"},
		{"bbox=1,2,3", "bad_request"},
		{"bbox=1,2,a,4", "bad_request"},
		{"bbox=5,5,1,1", "bad_request"},
		{"bbox=0,-100,1,1", "bad_request"},
		{"bbox=0,0,1,1&type=one_minute", "bad_request"},
		{"bbox=-180,-90,180,90&type=five_minute", "too_many_labels"},
	}

	for _, tt := range tests {
		status, body := get(t, app, "/v1/labels?"+tt.query)
		if status != 400 {
			t.Errorf("%q: expected 400, got %d", tt.query, status)
			continue
		}
		var apiErr server.APIError
		decode(t, body, &apiErr)
		if apiErr.Code != tt.code {
			t.Errorf("%q: code = %q, want %q", tt.query, apiErr.Code, tt.code)
		}
	}
}

// ---- Tiles ----

func TestTile(t *testing.T) {
	app := setupApp(makeDeps())

	status, body := get(t, app, "/v1/tiles/5/45/28")
	if status != 200 {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var tile server.TileResponse
	decode(t, body, &tile)
	if tile.Zoom != 5 || tile.X != 45 || tile.Y != 28 {
		t.Errorf("tile = %d/%d/%d", tile.Zoom, tile.X, tile.Y)
	}
	if len(tile.Lines) != 18 || len(tile.Labels) != 9 {
		t.Errorf("got %d lines and %d labels, want 18 and 9", len(tile.Lines), len(tile.Labels))
	}
	if tile.Precision == nil || *tile.Precision != gars.TenDegree {
		t.Errorf("precision = %v, want ten_degree", tile.Precision)
	}
	if tile.Bounds[0] != 326.25 || tile.Bounds[2] != 337.5 {
		t.Errorf("bounds = %v", tile.Bounds)
	}
}

func TestTileInvalid(t *testing.T) {
	app := setupApp(makeDeps())

	paths := []string{
		"/v1/tiles/5/0/99",
		"/v1/tiles/a/0/0",
		"/v1/tiles/31/0/0",
		"/v1/tiles/3/-1/0",
		"/v1/tiles/3/16/0",
		"/v1/tiles/0/4611686018427387904/0",
		"/v1/tiles/0/4611686018427387904/0/hit?lon=0&lat=0",
	}
	for _, path := range paths {
		if status, _ := get(t, app, path); status != 400 {
			t.Errorf("%s: expected 400, got %d", path, status)
		}
	}
}

func TestTileCache(t *testing.T) {
	tiles := newFakeCache()
	app := setupApp(makeDeps(func(d *server.Dependencies) {
		d.Cache = tiles
		d.CacheTTL = time.Hour
	}))

	req := httptest.NewRequest("GET", "/v1/tiles/5/45/28", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	first := readBody(t, resp.Body)
	if got := resp.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}

	key := cache.TileKey(5, 45, 28)
	if tiles.len() != 1 || tiles.ttls[key] != time.Hour {
		t.Fatalf("cache holds %d entries, ttl %v", tiles.len(), tiles.ttls[key])
	}

	req = httptest.NewRequest("GET", "/v1/tiles/5/45/28", nil)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	second := readBody(t, resp.Body)
	if got := resp.Header.Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
	if string(first) != string(second) {
		t.Error("cached body differs from generated body")
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestTileETag(t *testing.T) {
	app := setupApp(makeDeps())

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/tiles/0/0/0", nil), -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("no ETag on tile response")
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "public, max-age=86400" {
		t.Errorf("Cache-Control = %q", cc)
	}

	req := httptest.NewRequest("GET", "/v1/tiles/0/0/0", nil)
	req.Header.Set("If-None-Match", etag)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 304 {
		t.Errorf("expected 304, got %d", resp.StatusCode)
	}
}

func TestTileHit(t *testing.T) {
	app := setupApp(makeDeps())

	status, body := get(t, app, "/v1/tiles/5/45/28/hit?lon=331&lat=-80.5")
	if status != 200 {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	var label server.LabelResponse
	decode(t, body, &label)
	if label.GridType != gars.TenDegree {
		t.Errorf("grid type = %s, want ten_degree", label.GridType)
	}
	if label.Bounds != (server.BBox{330, -90, 340, -80}) {
		t.Errorf("bounds = %v, want 330,-90,340,-80", label.Bounds)
	}

	if status, _ := get(t, app, "/v1/tiles/5/45/28/hit?lon=0&lat=0"); status != 404 {
		t.Errorf("expected 404 off the tile, got %d", status)
	}
	if status, _ := get(t, app, "/v1/tiles/5/45/28/hit?lon=331"); status != 400 {
		t.Errorf("expected 400 without lat, got %d", status)
	}
}

func TestWarmTileCache(t *testing.T) {
	tiles := newFakeCache()
	deps := makeDeps(func(d *server.Dependencies) { d.Cache = tiles })

	stored, err := server.WarmTileCache(context.Background(), deps, 2)
	if err != nil {
		t.Fatalf("WarmTileCache failed: %v", err)
	}
	// 1 + 4 + 16 tiles
	if stored != 21 || tiles.len() != 21 {
		t.Errorf("stored %d tiles, cache holds %d, want 21", stored, tiles.len())
	}

	if _, err := server.WarmTileCache(context.Background(), makeDeps(), 1); err == nil {
		t.Error("WarmTileCache without cache succeeded, want error")
	}
}

// ---- Metrics ----

func TestMetrics(t *testing.T) {
	app := setupApp(makeDeps())
	get(t, app, "/v1/tiles/1/0/0")

	status, body := get(t, app, "/metrics")
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	for _, name := range []string{"gars_http_requests_total", "gars_grid_tiles_generated_total"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output is missing %s", name)
		}
	}
}

// ---- GraphQL ----

func postGraphQL(t *testing.T, app *fiber.App, query string) map[string]any {
	t.Helper()
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", "/graphql", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("POST /graphql: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var result map[string]any
	decode(t, readBody(t, resp.Body), &result)
	return result
}

func TestGraphQLCoordinate(t *testing.T) {
	app := setupApp(makeDeps())

	result := postGraphQL(t, app, `{ coordinate(gars: "361HN3") { gars precision quadrant southwest { lon lat } } }`)
	if result["errors"] != nil {
		t.Fatalf("errors: %v", result["errors"])
	}
	coord := result["data"].(map[string]any)["coordinate"].(map[string]any)
	if coord["gars"] != "361HN3" || coord["precision"] != "fifteen_minute" {
		t.Errorf("coordinate = %v", coord)
	}
	if coord["quadrant"] != float64(3) {
		t.Errorf("quadrant = %v, want 3", coord["quadrant"])
	}

	result = postGraphQL(t, app, `{ coordinate(gars: "361IO") { gars } }`)
	if result["errors"] == nil {
		t.Error("invalid GARS returned no errors")
	}
}

func TestGraphQLEncodeAndLabels(t *testing.T) {
	app := setupApp(makeDeps())

	result := postGraphQL(t, app, `{ encode(lon: 0.01, lat: 0.01) { gars } }`)
	encoded := result["data"].(map[string]any)["encode"].(map[string]any)
	if encoded["gars"] != "361HN37" {
		t.Errorf("encode = %v, want 361HN37", encoded["gars"])
	}

	result = postGraphQL(t, app, `{ labels(minLon: 0.1, minLat: 0.1, maxLon: 0.9, maxLat: 0.9, type: "thirty_minute") { text } }`)
	if result["errors"] != nil {
		t.Fatalf("errors: %v", result["errors"])
	}
	labels := result["data"].(map[string]any)["labels"].([]any)
	if len(labels) != 9 {
		t.Fatalf("got %d labels, want 9", len(labels))
	}
	if text := labels[0].(map[string]any)["text"]; text != "361HN" {
		t.Errorf("first label = %v, want 361HN", text)
	}
}
