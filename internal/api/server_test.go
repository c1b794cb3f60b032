package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/gameshubapp/gameshub-server/internal/auth"
	"github.com/gameshubapp/gameshub-server/internal/catalog/rawg"
	"github.com/gameshubapp/gameshub-server/internal/config"
	"github.com/gameshubapp/gameshub-server/internal/mail"
	"github.com/gameshubapp/gameshub-server/internal/service"
	"github.com/gameshubapp/gameshub-server/internal/sessions"
	"github.com/gameshubapp/gameshub-server/internal/store/sqlite"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// testServer wraps the API server with a humatest client.
type testServer struct {
	*Server
	api    humatest.TestAPI
	sender *captureSender
}

// fakeCatalog is a scriptable catalog implementation for handler tests.
type fakeCatalog struct {
	games       map[int64]*rawg.Game
	searchRes   *rawg.SearchResult
	searchErr   error
	detailErr   error
	screenshots []rawg.Screenshot
	trailers    []rawg.Trailer
	videos      []rawg.Video
	trailersErr error
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
	return f.screenshots, nil
}

func (f *fakeCatalog) GetTrailers(_ context.Context, _ int64) ([]rawg.Trailer, error) {
	return f.trailers, f.trailersErr
}

func (f *fakeCatalog) GetVideos(_ context.Context, _ int64) ([]rawg.Video, error) {
	return f.videos, nil
}

// captureSender records outbound mail instead of sending it.
type captureSender struct {
	sent []mail.Message
}

func (c *captureSender) Send(_ context.Context, msg mail.Message) error {
	c.sent = append(c.sent, msg)
	return nil
}

// setupTestServer wires a server against real stores and a fake catalog.
func setupTestServer(t *testing.T, catalog service.Catalog) *testServer {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	st, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	sess, err := sessions.New(filepath.Join(dir, "sessions"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { sess.Close() })

	key, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)
	tokenService, err := auth.NewTokenService(key, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)
	resetTokens := auth.NewResetTokenService(key, 72*time.Hour)

	if catalog == nil {
		catalog = &fakeCatalog{}
	}
	sender := &captureSender{}

	services := &service.Services{
		Auth:    service.NewAuthService(st, sess, tokenService, logger),
		Account: service.NewAccountService(st, sess, resetTokens, sender, "http://localhost:5173", logger),
		Library: service.NewLibraryService(st, catalog, logger),
		Games:   service.NewGamesService(catalog, logger),
	}

	cfg := &config.Config{}
	cfg.Server.AllowedOrigins = "http://localhost:5173"

	srv := NewServer(cfg, st, sess, services, logger)

	return &testServer{
		Server: srv,
		api:    humatest.Wrap(t, srv.api),
		sender: sender,
	}
}

// createTestUser registers and logs in a user, returning the token pair.
func (ts *testServer) createTestUser(t *testing.T, username, email string) (accessToken, refreshToken, userID string) {
	t.Helper()

	resp := ts.api.Post("/users/register/", map[string]any{
		"username":         username,
		"email":            email,
		"password":         "tr0ub4dor&3",
		"password_confirm": "tr0ub4dor&3",
	})
	require.Equal(t, http.StatusCreated, resp.Code, "register failed: %s", resp.Body.String())

	resp = ts.api.Post("/users/token/", map[string]any{
		"username": username,
		"password": "tr0ub4dor&3",
	})
	require.Equal(t, http.StatusOK, resp.Code, "login failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	return envelope.Data.AccessToken, envelope.Data.RefreshToken, envelope.Data.User.ID
}

func bearer(token string) string {
	return "Authorization: Bearer " + token
}
