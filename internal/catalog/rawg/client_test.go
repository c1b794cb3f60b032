package rawg

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSearch(t *testing.T) {
	var gotPath, gotKey, gotOrdering string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		gotOrdering = r.URL.Query().Get("ordering")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 1, "results": [{"id": 3498, "slug": "grand-theft-auto-v", "name": "Grand Theft Auto V", "rating": 4.47}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", testLogger())

	result, err := c.Search(context.Background(), SearchParams{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotPath != "/games" {
		t.Errorf("path = %q, want /games", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("key = %q, want test-key", gotKey)
	}
	if gotOrdering != "-rating" {
		t.Errorf("ordering = %q, want -rating", gotOrdering)
	}
	if result.Count != 1 || len(result.Results) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Results[0].Name != "Grand Theft Auto V" {
		t.Errorf("name = %q", result.Results[0].Name)
	}
}

func TestGetGame(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/games/3498" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 3498, "name": "Grand Theft Auto V", "background_image": "https://media.rawg.io/gta5.jpg", "rating": 4.47, "metacritic": 92}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", testLogger())

	game, err := c.GetGame(context.Background(), 3498)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if game.Name != "Grand Theft Auto V" {
		t.Errorf("Name = %q", game.Name)
	}
	if game.Metacritic == nil || *game.Metacritic != 92 {
		t.Errorf("Metacritic = %v, want 92", game.Metacritic)
	}

	if _, err := c.GetGame(context.Background(), 999999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDoRequest_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", testLogger())

	if _, err := c.Search(context.Background(), SearchParams{Query: "doom"}); !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}

	// Connection refused counts as upstream failure too.
	srv.Close()
	if _, err := c.Search(context.Background(), SearchParams{Query: "doom"}); !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream after close, got %v", err)
	}
}

func TestMediaFetches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/games/42/screenshots":
			w.Write([]byte(`{"count": 2, "results": [{"id": 1, "image": "https://media.rawg.io/s1.jpg"}, {"id": 2, "image": "https://media.rawg.io/s2.jpg"}]}`))
		case "/games/42/movies":
			w.Write([]byte(`{"count": 1, "results": [{"id": 7, "name": "Launch Trailer", "preview": "https://media.rawg.io/p.jpg", "data": {"480": "https://media.rawg.io/480.mp4", "max": "https://media.rawg.io/max.mp4"}}]}`))
		case "/games/42/youtube":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", testLogger())
	ctx := context.Background()

	shots, err := c.GetScreenshots(ctx, 42)
	if err != nil {
		t.Fatalf("GetScreenshots: %v", err)
	}
	if len(shots) != 2 {
		t.Errorf("expected 2 screenshots, got %d", len(shots))
	}

	trailers, err := c.GetTrailers(ctx, 42)
	if err != nil {
		t.Fatalf("GetTrailers: %v", err)
	}
	if len(trailers) != 1 || trailers[0].Data.Max == "" {
		t.Errorf("unexpected trailers: %+v", trailers)
	}

	if _, err := c.GetVideos(ctx, 42); !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream for failing videos endpoint, got %v", err)
	}
}
