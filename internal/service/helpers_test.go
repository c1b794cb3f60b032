package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gameshubapp/gameshub-server/internal/auth"
	"github.com/gameshubapp/gameshub-server/internal/catalog/rawg"
	"github.com/gameshubapp/gameshub-server/internal/mail"
	"github.com/gameshubapp/gameshub-server/internal/sessions"
	"github.com/gameshubapp/gameshub-server/internal/store/sqlite"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestStores creates real sqlite and badger stores under a temp dir.
func newTestStores(t *testing.T) (*sqlite.Store, *sessions.Store) {
	t.Helper()
	dir := t.TempDir()

	s, err := sqlite.Open(filepath.Join(dir, "test.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	sess, err := sessions.New(filepath.Join(dir, "sessions"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { sess.Close() })

	return s, sess
}

func newTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	key, err := auth.LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)
	ts, err := auth.NewTokenService(key, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)
	return ts
}

// fakeCatalog is a scriptable Catalog implementation.
type fakeCatalog struct {
	games       map[int64]*rawg.Game
	searchRes   *rawg.SearchResult
	searchErr   error
	detailErr   error
	screenshots []rawg.Screenshot
	trailers    []rawg.Trailer
	videos      []rawg.Video
	shotsErr    error
	trailersErr error
	videosErr   error
}

func (f *fakeCatalog) Search(_ context.Context, _ rawg.SearchParams) (*rawg.SearchResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if f.searchRes != nil {
		return f.searchRes, nil
	}
	return &rawg.SearchResult{Results: []rawg.Game{}}, nil
}

func (f *fakeCatalog) GetGame(_ context.Context, gameID int64) (*rawg.Game, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	if game, ok := f.games[gameID]; ok {
		return game, nil
	}
	return nil, rawg.ErrNotFound
}

func (f *fakeCatalog) GetScreenshots(_ context.Context, _ int64) ([]rawg.Screenshot, error) {
	return f.screenshots, f.shotsErr
}

func (f *fakeCatalog) GetTrailers(_ context.Context, _ int64) ([]rawg.Trailer, error) {
	return f.trailers, f.trailersErr
}

func (f *fakeCatalog) GetVideos(_ context.Context, _ int64) ([]rawg.Video, error) {
	return f.videos, f.videosErr
}

// captureSender records outbound mail instead of sending it.
type captureSender struct {
	sent []mail.Message
}

func (c *captureSender) Send(_ context.Context, msg mail.Message) error {
	c.sent = append(c.sent, msg)
	return nil
}
