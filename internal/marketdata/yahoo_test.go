package marketdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// chartJSON builds a v8 chart response body from parallel timestamp and
// close slices. A nil close marks a null observation.
func chartJSON(t *testing.T, timestamps []int64, closes []*float64) string {
	t.Helper()
	body := map[string]any{
		"chart": map[string]any{
			"result": []map[string]any{
				{
					"timestamp": timestamps,
					"indicators": map[string]any{
						"quote": []map[string]any{{"close": closes}},
					},
				},
			},
		},
	}
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling chart body: %v", err)
	}
	return string(b)
}

func chartErrorJSON(code, description string) string {
	return `{"chart":{"result":null,"error":{"code":"` + code + `","description":"` + description + `"}}}`
}

func fp(v float64) *float64 { return &v }

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date literal %q: %v", s, err)
	}
	return d
}

func TestYahooProvider_FetchDailyCloses(t *testing.T) {
	d1 := day(t, "2024-01-01")
	d2 := day(t, "2024-01-02")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/AAPL") {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("interval") != "1d" {
			t.Errorf("expected interval=1d, got %q", r.URL.Query().Get("interval"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chartJSON(t,
			[]int64{d1.Unix(), d2.Unix()},
			[]*float64{fp(150.0), fp(152.5)},
		)))
	}))
	defer server.Close()

	p := NewYahooProvider(server.Client(), server.URL)
	points, err := p.FetchDailyCloses(context.Background(), "AAPL", d1, d2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if !points[0].Date.Equal(d1) || points[0].Ticker != "AAPL" {
		t.Errorf("unexpected first point: %+v", points[0])
	}
	if points[1].Close.String() != "152.5" {
		t.Errorf("expected close 152.5, got %s", points[1].Close)
	}
}

func TestYahooProvider_SkipsNullCloses(t *testing.T) {
	d1 := day(t, "2024-01-01")
	d2 := day(t, "2024-01-02")
	d3 := day(t, "2024-01-03")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chartJSON(t,
			[]int64{d1.Unix(), d2.Unix(), d3.Unix()},
			[]*float64{fp(150.0), nil, fp(153.0)},
		)))
	}))
	defer server.Close()

	p := NewYahooProvider(server.Client(), server.URL)
	points, err := p.FetchDailyCloses(context.Background(), "AAPL", d1, d3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected null close to be skipped, got %d points", len(points))
	}
	if !points[1].Date.Equal(d3) {
		t.Errorf("expected second point on %s, got %s", d3, points[1].Date)
	}
}

func TestYahooProvider_ChartError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chartErrorJSON("Not Found", "No data found, symbol may be delisted")))
	}))
	defer server.Close()

	p := NewYahooProvider(server.Client(), server.URL)
	_, err := p.FetchDailyCloses(context.Background(), "NOPE", day(t, "2024-01-01"), day(t, "2024-01-02"))
	if err == nil || !strings.Contains(err.Error(), "Not Found") {
		t.Fatalf("expected chart error, got %v", err)
	}
}

func TestYahooProvider_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := NewYahooProvider(server.Client(), server.URL)
	_, err := p.FetchDailyCloses(context.Background(), "AAPL", day(t, "2024-01-01"), day(t, "2024-01-02"))
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status error, got %v", err)
	}
}
